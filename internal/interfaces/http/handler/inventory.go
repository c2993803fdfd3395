package handler

import (
	inventoryapp "github.com/aquaflow/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// InventoryHandler handles stock movement and inventory report endpoints
type InventoryHandler struct {
	BaseHandler
	movementService *inventoryapp.MovementService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(movementService *inventoryapp.MovementService) *InventoryHandler {
	return &InventoryHandler{
		movementService: movementService,
	}
}

// ApplyMovement handles POST /inventory/movements
func (h *InventoryHandler) ApplyMovement(c *gin.Context) {
	var req inventoryapp.ApplyMovementRequest
	if !h.bindJSON(c, &req) {
		return
	}

	log, err := h.movementService.ApplyMovement(c.Request.Context(), req, requestMeta(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, log)
}

// Movements handles GET /inventory/products/:id/movements, newest first
func (h *InventoryHandler) Movements(c *gin.Context) {
	id, ok := h.parseID(c, "id", "product")
	if !ok {
		return
	}

	var filter inventoryapp.MovementListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	pageDefaults(&filter.Page, &filter.PageSize)

	page, err := h.movementService.GetMovementsByProduct(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Report handles GET /inventory/report
func (h *InventoryHandler) Report(c *gin.Context) {
	lines, err := h.movementService.GetInventoryReport(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lines)
}

// ReportByDate handles GET /inventory/report/by-date
func (h *InventoryHandler) ReportByDate(c *gin.Context) {
	var req inventoryapp.DatedReportRequest
	if !h.bindQuery(c, &req) {
		return
	}

	report, err := h.movementService.GetInventoryReportByDate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

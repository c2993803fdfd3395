package handler

import (
	tradeapp "github.com/aquaflow/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// PurchaseHandler handles purchase endpoints
type PurchaseHandler struct {
	BaseHandler
	purchaseService *tradeapp.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService *tradeapp.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
	}
}

// Create handles POST /purchases
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req tradeapp.CreatePurchaseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	purchase, err := h.purchaseService.Create(c.Request.Context(), req, requestMeta(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, purchase)
}

// GetByID handles GET /purchases/:id
func (h *PurchaseHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id", "purchase")
	if !ok {
		return
	}

	purchase, err := h.purchaseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// List handles GET /purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	var filter tradeapp.PurchaseListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	supplierID, ok := h.queryID(c, "supplier_id", "supplier")
	if !ok {
		return
	}
	filter.SupplierID = supplierID
	pageDefaults(&filter.Page, &filter.PageSize)

	purchases, total, err := h.purchaseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, purchases, total, filter.Page, filter.PageSize)
}

// Pay handles POST /purchases/:id/payments
func (h *PurchaseHandler) Pay(c *gin.Context) {
	id, ok := h.parseID(c, "id", "purchase")
	if !ok {
		return
	}

	var req tradeapp.PaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	purchase, err := h.purchaseService.Pay(c.Request.Context(), id, req, requestMeta(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

// UpdateStatus handles PATCH /purchases/:id/status
func (h *PurchaseHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseID(c, "id", "purchase")
	if !ok {
		return
	}

	var req tradeapp.UpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	purchase, err := h.purchaseService.UpdateStatus(c.Request.Context(), id, req, requestMeta(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchase)
}

package handler

import (
	inventoryapp "github.com/aquaflow/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// ImportHandler handles stock import endpoints
type ImportHandler struct {
	BaseHandler
	importService *inventoryapp.ImportService
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService *inventoryapp.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// Create handles POST /imports
func (h *ImportHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateImportRequest
	if !h.bindJSON(c, &req) {
		return
	}

	imp, err := h.importService.Create(c.Request.Context(), req, requestMeta(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, imp)
}

// GetByID handles GET /imports/:id
func (h *ImportHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id", "import")
	if !ok {
		return
	}

	imp, err := h.importService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, imp)
}

// List handles GET /imports
func (h *ImportHandler) List(c *gin.Context) {
	var filter inventoryapp.ImportListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	pageDefaults(&filter.Page, &filter.PageSize)

	imports, total, err := h.importService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, imports, total, filter.Page, filter.PageSize)
}

// Delete handles DELETE /imports/:id. The received stock is taken back
// out; the whole deletion fails if any of it has already been sold.
func (h *ImportHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "import")
	if !ok {
		return
	}

	if err := h.importService.Delete(c.Request.Context(), id, requestMeta(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

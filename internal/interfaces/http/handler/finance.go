package handler

import (
	financeapp "github.com/aquaflow/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// FinanceHandler records customer payments and empty-container visits
type FinanceHandler struct {
	BaseHandler
	reconciliationService *financeapp.ReconciliationService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(reconciliationService *financeapp.ReconciliationService) *FinanceHandler {
	return &FinanceHandler{
		reconciliationService: reconciliationService,
	}
}

// RecordTransaction handles POST /transactions
func (h *FinanceHandler) RecordTransaction(c *gin.Context) {
	var req financeapp.RecordTransactionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tx, err := h.reconciliationService.RecordTransaction(c.Request.Context(), req, requestMeta(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}

// RecordEmptyReturn handles POST /empty-returns
func (h *FinanceHandler) RecordEmptyReturn(c *gin.Context) {
	var req financeapp.RecordEmptyReturnRequest
	if !h.bindJSON(c, &req) {
		return
	}

	record, err := h.reconciliationService.RecordEmptyReturn(c.Request.Context(), req, requestMeta(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, record)
}

package handler

import (
	tradeapp "github.com/aquaflow/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles sales order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// Create handles POST /orders. The customer is either referenced by
// customer_id or described by phone, in which case it is found or created.
func (h *OrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req, requestMeta(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// GetByID handles GET /orders/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id", "order")
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	var filter tradeapp.OrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	customerID, ok := h.queryID(c, "customer_id", "customer")
	if !ok {
		return
	}
	filter.CustomerID = customerID
	pageDefaults(&filter.Page, &filter.PageSize)

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// UpdateStatus handles PATCH /orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseID(c, "id", "order")
	if !ok {
		return
	}

	var req tradeapp.UpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, req, requestMeta(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Pay handles POST /orders/:id/payments
func (h *OrderHandler) Pay(c *gin.Context) {
	id, ok := h.parseID(c, "id", "order")
	if !ok {
		return
	}

	var req tradeapp.PaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.UpdatePayment(c.Request.Context(), id, req, requestMeta(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Return handles POST /orders/:id/returns, empty containers coming back
// against the order
func (h *OrderHandler) Return(c *gin.Context) {
	id, ok := h.parseID(c, "id", "order")
	if !ok {
		return
	}

	var req tradeapp.ReturnRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.UpdateReturnable(c.Request.Context(), id, req, requestMeta(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

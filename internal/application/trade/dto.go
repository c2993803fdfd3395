package trade

import (
	"time"

	"github.com/aquaflow/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerContactInput identifies a customer by phone, used by the website
// order form. Name and address are only needed for a first order.
type CustomerContactInput struct {
	Name    string `json:"name" binding:"max=200"`
	Phone   string `json:"phone" binding:"required,max=20,phone"`
	Address string `json:"address" binding:"max=500"`
}

// OrderItemInput is one requested line of a new order
type OrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1,max=1000000000"`
}

// CreateOrderRequest represents a request to place an order. Either
// CustomerID or Customer must be set.
type CreateOrderRequest struct {
	CustomerID *uuid.UUID            `json:"customer_id"`
	Customer   *CustomerContactInput `json:"customer"`
	Items      []OrderItemInput      `json:"items" binding:"required,min=1,dive"`
	Note       string                `json:"note" binding:"max=500"`
}

// UpdateStatusRequest represents a status change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending completed canceled"`
}

// PaymentRequest represents money received against a document
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,dong"`
}

// ReturnRequest represents containers brought back against an order
type ReturnRequest struct {
	Quantity int64 `json:"quantity" binding:"required,min=1,max=1000000000"`
}

// OrderListFilter represents filter options for order list
type OrderListFilter struct {
	CustomerID *uuid.UUID `form:"-"`
	Status     string     `form:"status" binding:"omitempty,oneof=pending completed canceled"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	Returnable  bool            `json:"returnable"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	CustomerID      uuid.UUID           `json:"customer_id"`
	CustomerName    string              `json:"customer_name"`
	Items           []OrderItemResponse `json:"items"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	DiscountAmount  decimal.Decimal     `json:"discount_amount"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	PaidAmount      decimal.Decimal     `json:"paid_amount"`
	DebtRemaining   decimal.Decimal     `json:"debt_remaining"`
	Overpaid        bool                `json:"overpaid"`
	ReturnableOut   int64               `json:"returnable_out"`
	ReturnableIn    int64               `json:"returnable_in"`
	Status          string              `json:"status"`
	PricingStrategy string              `json:"pricing_strategy"`
	Note            string              `json:"note"`
	CreatedBy       *uuid.UUID          `json:"created_by,omitempty"`
	OrderDate       time.Time           `json:"order_date"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	Version         int                 `json:"version"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.Decimal(),
			Total:       item.Total().Decimal(),
			Returnable:  item.Returnable,
		}
	}
	return OrderResponse{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		CustomerName:    o.CustomerName,
		Items:           items,
		Subtotal:        o.Subtotal.Decimal(),
		DiscountAmount:  o.DiscountAmount.Decimal(),
		TotalAmount:     o.TotalAmount.Decimal(),
		PaidAmount:      o.PaidAmount.Decimal(),
		DebtRemaining:   o.DebtRemaining().Decimal(),
		Overpaid:        o.IsOverpaid(),
		ReturnableOut:   o.ReturnableOut,
		ReturnableIn:    o.ReturnableIn,
		Status:          string(o.Status),
		PricingStrategy: o.PricingStrategy,
		Note:            o.Note,
		CreatedBy:       o.CreatedBy,
		OrderDate:       o.OrderDate,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Version:         o.Version,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []trade.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}

// PurchaseItemInput is one line of a new purchase
type PurchaseItemInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required,min=1,max=1000000000"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required,dong"`
}

// CreatePurchaseRequest represents a request to buy stock from a supplier
type CreatePurchaseRequest struct {
	SupplierID uuid.UUID           `json:"supplier_id" binding:"required"`
	Items      []PurchaseItemInput `json:"items" binding:"required,min=1,dive"`
	Notes      string              `json:"notes" binding:"max=500"`
}

// PurchaseListFilter represents filter options for purchase list
type PurchaseListFilter struct {
	SupplierID *uuid.UUID `form:"-"`
	Status     string     `form:"status" binding:"omitempty,oneof=pending completed canceled"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// PurchaseItemResponse represents a purchase line in API responses
type PurchaseItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// PurchaseResponse represents a purchase in API responses
type PurchaseResponse struct {
	ID            uuid.UUID              `json:"id"`
	SupplierID    uuid.UUID              `json:"supplier_id"`
	SupplierName  string                 `json:"supplier_name"`
	Items         []PurchaseItemResponse `json:"items"`
	TotalAmount   decimal.Decimal        `json:"total_amount"`
	PaidAmount    decimal.Decimal        `json:"paid_amount"`
	DebtRemaining decimal.Decimal        `json:"debt_remaining"`
	Status        string                 `json:"status"`
	Notes         string                 `json:"notes"`
	CreatedBy     *uuid.UUID             `json:"created_by,omitempty"`
	PurchaseDate  time.Time              `json:"purchase_date"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	Version       int                    `json:"version"`
}

// ToPurchaseResponse converts a domain Purchase to PurchaseResponse
func ToPurchaseResponse(p *trade.Purchase) PurchaseResponse {
	items := make([]PurchaseItemResponse, len(p.Items))
	for i, item := range p.Items {
		items[i] = PurchaseItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.Decimal(),
			Total:       item.Total().Decimal(),
		}
	}
	return PurchaseResponse{
		ID:            p.ID,
		SupplierID:    p.SupplierID,
		SupplierName:  p.SupplierName,
		Items:         items,
		TotalAmount:   p.TotalAmount.Decimal(),
		PaidAmount:    p.PaidAmount.Decimal(),
		DebtRemaining: p.DebtRemaining().Decimal(),
		Status:        string(p.Status),
		Notes:         p.Notes,
		CreatedBy:     p.CreatedBy,
		PurchaseDate:  p.PurchaseDate,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.Version,
	}
}

// ToPurchaseResponses converts a slice of purchases
func ToPurchaseResponses(purchases []trade.Purchase) []PurchaseResponse {
	out := make([]PurchaseResponse, len(purchases))
	for i := range purchases {
		out[i] = ToPurchaseResponse(&purchases[i])
	}
	return out
}

// SupplierDebtResponse is a supplier's derived debt
type SupplierDebtResponse struct {
	SupplierID       uuid.UUID       `json:"supplier_id"`
	SupplierName     string          `json:"supplier_name"`
	Debt             decimal.Decimal `json:"debt"`
	PendingPurchases int             `json:"pending_purchases"`
}

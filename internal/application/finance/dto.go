package finance

import (
	"time"

	"github.com/aquaflow/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordTransactionRequest represents money received from a customer
type RecordTransactionRequest struct {
	CustomerID uuid.UUID       `json:"customer_id" binding:"required"`
	OrderID    *uuid.UUID      `json:"order_id"`
	Amount     decimal.Decimal `json:"amount" binding:"required,dong"`
	Method     string          `json:"method" binding:"omitempty,oneof=cash bank momo"`
	Note       string          `json:"note" binding:"max=500"`
}

// RecordEmptyReturnRequest represents containers delivered and collected
// in one visit
type RecordEmptyReturnRequest struct {
	CustomerID uuid.UUID  `json:"customer_id" binding:"required"`
	OrderID    *uuid.UUID `json:"order_id"`
	Delivered  int64      `json:"delivered" binding:"min=0,max=1000000000"`
	Returned   int64      `json:"returned" binding:"min=0,max=1000000000"`
	Note       string     `json:"note" binding:"max=500"`
}

// HistoryFilter pages through a customer's records
type HistoryFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// TransactionResponse represents a payment transaction in API responses
type TransactionResponse struct {
	ID         uuid.UUID       `json:"id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	OrderID    *uuid.UUID      `json:"order_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Note       string          `json:"note"`
	CreatedBy  *uuid.UUID      `json:"created_by,omitempty"`
	Date       time.Time       `json:"date"`
	// CustomerDebt is the customer's balance after the payment
	CustomerDebt decimal.Decimal `json:"customer_debt"`
}

// EmptyReturnResponse represents an empty-container record in API responses
type EmptyReturnResponse struct {
	ID         uuid.UUID  `json:"id"`
	CustomerID uuid.UUID  `json:"customer_id"`
	OrderID    *uuid.UUID `json:"order_id,omitempty"`
	Delivered  int64      `json:"delivered"`
	Returned   int64      `json:"returned"`
	NetChange  int64      `json:"net_change"`
	Note       string     `json:"note"`
	CreatedBy  *uuid.UUID `json:"created_by,omitempty"`
	Date       time.Time  `json:"date"`
	// CustomerEmptyDebt is the customer's outstanding containers afterwards
	CustomerEmptyDebt int64 `json:"customer_empty_debt"`
}

// ToTransactionResponse converts a domain PaymentTransaction
func ToTransactionResponse(tx *finance.PaymentTransaction) TransactionResponse {
	return TransactionResponse{
		ID:         tx.ID,
		CustomerID: tx.CustomerID,
		OrderID:    tx.OrderID,
		Amount:     tx.Amount.Decimal(),
		Method:     string(tx.Method),
		Note:       tx.Note,
		CreatedBy:  tx.CreatedBy,
		Date:       tx.Date,
	}
}

// ToEmptyReturnResponse converts a domain EmptyReturn
func ToEmptyReturnResponse(er *finance.EmptyReturn) EmptyReturnResponse {
	return EmptyReturnResponse{
		ID:         er.ID,
		CustomerID: er.CustomerID,
		OrderID:    er.OrderID,
		Delivered:  er.Delivered,
		Returned:   er.Returned,
		NetChange:  er.NetChange(),
		Note:       er.Note,
		CreatedBy:  er.CreatedBy,
		Date:       er.Date,
	}
}

package finance

import (
	"time"

	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EmptyReturn records containers delivered to and collected from a customer
// in one visit. Delivered adds to the customer's empty debt, Returned
// subtracts from it.
type EmptyReturn struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	OrderID    *uuid.UUID
	Delivered  int64
	Returned   int64
	Note       string
	CreatedBy  *uuid.UUID
	Date       time.Time
	CreatedAt  time.Time
}

// NewEmptyReturn validates and creates an empty-container record
func NewEmptyReturn(customerID uuid.UUID, orderID *uuid.UUID, delivered, returned int64, note string, createdBy *uuid.UUID) (*EmptyReturn, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("Customer is required")
	}
	if delivered < 0 || returned < 0 {
		return nil, shared.NewValidationError("Container counts cannot be negative")
	}
	if delivered == 0 && returned == 0 {
		return nil, shared.NewValidationError("Either delivered or returned must be positive")
	}
	now := time.Now()
	return &EmptyReturn{
		ID:         uuid.New(),
		CustomerID: customerID,
		OrderID:    orderID,
		Delivered:  delivered,
		Returned:   returned,
		Note:       note,
		CreatedBy:  createdBy,
		Date:       now,
		CreatedAt:  now,
	}, nil
}

// NetChange is the effect on the customer's empty debt
func (e *EmptyReturn) NetChange() int64 {
	return e.Delivered - e.Returned
}

package finance

import (
	"fmt"
	"time"

	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypePaymentTransaction = "PaymentTransaction"

// PaymentMethod is how the customer paid
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodBank PaymentMethod = "bank"
	PaymentMethodMomo PaymentMethod = "momo"
)

// IsValid returns true if the payment method is supported
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBank, PaymentMethodMomo:
		return true
	}
	return false
}

// PaymentTransaction is an immutable record of money received from a
// customer, optionally earmarked for one order.
type PaymentTransaction struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	OrderID    *uuid.UUID
	Amount     valueobject.Money
	Method     PaymentMethod
	Note       string
	CreatedBy  *uuid.UUID
	Date       time.Time
	CreatedAt  time.Time
}

// NewPaymentTransaction validates and creates a payment record
func NewPaymentTransaction(customerID uuid.UUID, orderID *uuid.UUID, amount valueobject.Money, method PaymentMethod, note string, createdBy *uuid.UUID) (*PaymentTransaction, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("Customer is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("Payment amount must be positive")
	}
	if method == "" {
		method = PaymentMethodCash
	}
	if !method.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("Invalid payment method: %s", method))
	}
	now := time.Now()
	return &PaymentTransaction{
		ID:         uuid.New(),
		CustomerID: customerID,
		OrderID:    orderID,
		Amount:     amount,
		Method:     method,
		Note:       note,
		CreatedBy:  createdBy,
		Date:       now,
		CreatedAt:  now,
	}, nil
}

package models

import (
	"time"

	"github.com/aquaflow/backend/internal/domain/finance"
	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// PaymentTransactionModel is the persistence model for finance.PaymentTransaction
type PaymentTransactionModel struct {
	ID         uuid.UUID             `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID             `gorm:"type:uuid;not null;index"`
	OrderID    *uuid.UUID            `gorm:"type:uuid;index"`
	Amount     int64                 `gorm:"not null"`
	Method     finance.PaymentMethod `gorm:"type:varchar(20);not null;default:'cash'"`
	Note       string                `gorm:"type:text"`
	CreatedBy  *uuid.UUID            `gorm:"type:uuid"`
	Date       time.Time             `gorm:"not null"`
	CreatedAt  time.Time             `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PaymentTransactionModel) TableName() string {
	return "payment_transactions"
}

// ToDomain converts the model to a domain PaymentTransaction
func (m *PaymentTransactionModel) ToDomain() finance.PaymentTransaction {
	return finance.PaymentTransaction{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		OrderID:    m.OrderID,
		Amount:     valueobject.Money(m.Amount),
		Method:     m.Method,
		Note:       m.Note,
		CreatedBy:  m.CreatedBy,
		Date:       m.Date,
		CreatedAt:  m.CreatedAt,
	}
}

// PaymentTransactionModelFromDomain creates a model from a domain PaymentTransaction
func PaymentTransactionModelFromDomain(t *finance.PaymentTransaction) *PaymentTransactionModel {
	return &PaymentTransactionModel{
		ID:         t.ID,
		CustomerID: t.CustomerID,
		OrderID:    t.OrderID,
		Amount:     t.Amount.Int64(),
		Method:     t.Method,
		Note:       t.Note,
		CreatedBy:  t.CreatedBy,
		Date:       t.Date,
		CreatedAt:  t.CreatedAt,
	}
}

// EmptyReturnModel is the persistence model for finance.EmptyReturn
type EmptyReturnModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderID    *uuid.UUID `gorm:"type:uuid;index"`
	Delivered  int64      `gorm:"not null;default:0"`
	Returned   int64      `gorm:"not null;default:0"`
	Note       string     `gorm:"type:text"`
	CreatedBy  *uuid.UUID `gorm:"type:uuid"`
	Date       time.Time  `gorm:"not null"`
	CreatedAt  time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (EmptyReturnModel) TableName() string {
	return "empty_returns"
}

// ToDomain converts the model to a domain EmptyReturn
func (m *EmptyReturnModel) ToDomain() finance.EmptyReturn {
	return finance.EmptyReturn{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		OrderID:    m.OrderID,
		Delivered:  m.Delivered,
		Returned:   m.Returned,
		Note:       m.Note,
		CreatedBy:  m.CreatedBy,
		Date:       m.Date,
		CreatedAt:  m.CreatedAt,
	}
}

// EmptyReturnModelFromDomain creates a model from a domain EmptyReturn
func EmptyReturnModelFromDomain(e *finance.EmptyReturn) *EmptyReturnModel {
	return &EmptyReturnModel{
		ID:         e.ID,
		CustomerID: e.CustomerID,
		OrderID:    e.OrderID,
		Delivered:  e.Delivered,
		Returned:   e.Returned,
		Note:       e.Note,
		CreatedBy:  e.CreatedBy,
		Date:       e.Date,
		CreatedAt:  e.CreatedAt,
	}
}

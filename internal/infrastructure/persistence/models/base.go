package models

import (
	"time"

	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides the identity and timestamp columns
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// AggregateModel adds the optimistic-lock version column
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// FromDomainAggregateRoot populates the columns from an aggregate root
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.ID = a.ID
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
	m.Version = a.Version
}

// ToDomainAggregateRoot rebuilds the aggregate root header
func (m *AggregateModel) ToDomainAggregateRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Version: m.Version,
	}
}

// All lists every model, in dependency order, for AutoMigrate in tests
func All() []any {
	return []any{
		&ProductModel{}, &CustomerModel{}, &SupplierModel{},
		&OrderModel{}, &OrderItemModel{},
		&PurchaseModel{}, &PurchaseItemModel{},
		&ImportModel{}, &ImportItemModel{},
		&MovementLogModel{},
		&PaymentTransactionModel{}, &EmptyReturnModel{},
	}
}

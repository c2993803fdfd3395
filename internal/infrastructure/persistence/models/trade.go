package models

import (
	"time"

	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
	"github.com/aquaflow/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// OrderModel is the persistence model for trade.Order
type OrderModel struct {
	AggregateModel
	CustomerID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	CustomerName    string           `gorm:"type:varchar(200);not null"`
	Subtotal        int64            `gorm:"not null"`
	DiscountAmount  int64            `gorm:"not null;default:0"`
	TotalAmount     int64            `gorm:"not null"`
	PaidAmount      int64            `gorm:"not null;default:0"`
	ReturnableOut   int64            `gorm:"not null;default:0"`
	ReturnableIn    int64            `gorm:"not null;default:0"`
	Status          trade.Status     `gorm:"type:varchar(20);not null;default:'pending';index"`
	PricingStrategy string           `gorm:"type:varchar(50)"`
	Note            string           `gorm:"type:text"`
	CreatedBy       *uuid.UUID       `gorm:"type:uuid"`
	OrderDate       time.Time        `gorm:"not null;index"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is one order line. Lines are immutable once placed.
type OrderItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Position    int       `gorm:"not null"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName string    `gorm:"type:varchar(200);not null"`
	Quantity    int64     `gorm:"not null"`
	UnitPrice   int64     `gorm:"not null"`
	Returnable  bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the model and its loaded items to a domain Order
func (m *OrderModel) ToDomain() *trade.Order {
	o := &trade.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CustomerID:        m.CustomerID,
		CustomerName:      m.CustomerName,
		Items:             make([]trade.OrderItem, len(m.Items)),
		Subtotal:          valueobject.Money(m.Subtotal),
		DiscountAmount:    valueobject.Money(m.DiscountAmount),
		TotalAmount:       valueobject.Money(m.TotalAmount),
		PaidAmount:        valueobject.Money(m.PaidAmount),
		ReturnableOut:     m.ReturnableOut,
		ReturnableIn:      m.ReturnableIn,
		Status:            m.Status,
		PricingStrategy:   m.PricingStrategy,
		Note:              m.Note,
		CreatedBy:         m.CreatedBy,
		OrderDate:         m.OrderDate,
	}
	for i, it := range m.Items {
		o.Items[i] = trade.OrderItem{
			ID:          it.ID,
			OrderID:     it.OrderID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   valueobject.Money(it.UnitPrice),
			Returnable:  it.Returnable,
		}
	}
	return o
}

// OrderModelFromDomain creates a model, items included, from a domain Order
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{
		CustomerID:      o.CustomerID,
		CustomerName:    o.CustomerName,
		Subtotal:        o.Subtotal.Int64(),
		DiscountAmount:  o.DiscountAmount.Int64(),
		TotalAmount:     o.TotalAmount.Int64(),
		PaidAmount:      o.PaidAmount.Int64(),
		ReturnableOut:   o.ReturnableOut,
		ReturnableIn:    o.ReturnableIn,
		Status:          o.Status,
		PricingStrategy: o.PricingStrategy,
		Note:            o.Note,
		CreatedBy:       o.CreatedBy,
		OrderDate:       o.OrderDate,
		Items:           make([]OrderItemModel, len(o.Items)),
	}
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	for i, it := range o.Items {
		m.Items[i] = OrderItemModel{
			ID:          it.ID,
			OrderID:     o.ID,
			Position:    i,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.Int64(),
			Returnable:  it.Returnable,
		}
	}
	return m
}

// PurchaseModel is the persistence model for trade.Purchase
type PurchaseModel struct {
	AggregateModel
	SupplierID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	SupplierName string              `gorm:"type:varchar(200);not null"`
	TotalAmount  int64               `gorm:"not null"`
	PaidAmount   int64               `gorm:"not null;default:0"`
	Status       trade.Status        `gorm:"type:varchar(20);not null;default:'pending';index"`
	Notes        string              `gorm:"type:text"`
	CreatedBy    *uuid.UUID          `gorm:"type:uuid"`
	PurchaseDate time.Time           `gorm:"not null;index"`
	Items        []PurchaseItemModel `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string {
	return "purchases"
}

// PurchaseItemModel is one purchase line
type PurchaseItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PurchaseID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Position    int       `gorm:"not null"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName string    `gorm:"type:varchar(200);not null"`
	Quantity    int64     `gorm:"not null"`
	UnitPrice   int64     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseItemModel) TableName() string {
	return "purchase_items"
}

// ToDomain converts the model and its loaded items to a domain Purchase
func (m *PurchaseModel) ToDomain() *trade.Purchase {
	p := &trade.Purchase{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		SupplierID:        m.SupplierID,
		SupplierName:      m.SupplierName,
		Items:             make([]trade.PurchaseItem, len(m.Items)),
		TotalAmount:       valueobject.Money(m.TotalAmount),
		PaidAmount:        valueobject.Money(m.PaidAmount),
		Status:            m.Status,
		Notes:             m.Notes,
		CreatedBy:         m.CreatedBy,
		PurchaseDate:      m.PurchaseDate,
	}
	for i, it := range m.Items {
		p.Items[i] = trade.PurchaseItem{
			ID:          it.ID,
			PurchaseID:  it.PurchaseID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   valueobject.Money(it.UnitPrice),
		}
	}
	return p
}

// PurchaseModelFromDomain creates a model, items included, from a domain Purchase
func PurchaseModelFromDomain(p *trade.Purchase) *PurchaseModel {
	m := &PurchaseModel{
		SupplierID:   p.SupplierID,
		SupplierName: p.SupplierName,
		TotalAmount:  p.TotalAmount.Int64(),
		PaidAmount:   p.PaidAmount.Int64(),
		Status:       p.Status,
		Notes:        p.Notes,
		CreatedBy:    p.CreatedBy,
		PurchaseDate: p.PurchaseDate,
		Items:        make([]PurchaseItemModel, len(p.Items)),
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	for i, it := range p.Items {
		m.Items[i] = PurchaseItemModel{
			ID:          it.ID,
			PurchaseID:  p.ID,
			Position:    i,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.Int64(),
		}
	}
	return m
}

package models

import (
	"github.com/aquaflow/backend/internal/domain/catalog"
	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
)

// ProductModel is the persistence model for catalog.Product
type ProductModel struct {
	AggregateModel
	Name       string `gorm:"type:varchar(200);not null;index"`
	Unit       string `gorm:"type:varchar(50);not null"`
	Price      int64  `gorm:"not null"`
	Returnable bool   `gorm:"not null;default:false"`
	Stock      int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Unit:              m.Unit,
		Price:             valueobject.Money(m.Price),
		Returnable:        m.Returnable,
		Stock:             m.Stock,
	}
}

// ProductModelFromDomain creates a model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Name:       p.Name,
		Unit:       p.Unit,
		Price:      p.Price.Int64(),
		Returnable: p.Returnable,
		Stock:      p.Stock,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

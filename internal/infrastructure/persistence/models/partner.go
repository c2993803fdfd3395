package models

import (
	"github.com/aquaflow/backend/internal/domain/partner"
	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
)

// CustomerModel is the persistence model for partner.Customer.
// Debt is signed; a negative value is a credit balance.
type CustomerModel struct {
	AggregateModel
	Name        string               `gorm:"type:varchar(200);not null;index"`
	Phone       *string              `gorm:"type:varchar(30);uniqueIndex"`
	Address     string               `gorm:"type:text"`
	Type        partner.CustomerType `gorm:"type:varchar(20);not null;default:'retail'"`
	AgencyLevel int                  `gorm:"not null;default:0"`
	Debt        int64                `gorm:"not null;default:0;index"`
	EmptyDebt   int64                `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the model to a domain Customer
func (m *CustomerModel) ToDomain() *partner.Customer {
	c := &partner.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Address:           m.Address,
		Type:              m.Type,
		AgencyLevel:       m.AgencyLevel,
		Debt:              valueobject.Money(m.Debt),
		EmptyDebt:         m.EmptyDebt,
	}
	if m.Phone != nil {
		c.Phone = *m.Phone
	}
	return c
}

// CustomerModelFromDomain creates a model from a domain Customer. An empty
// phone is stored as NULL so the unique index only covers real numbers.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{
		Name:        c.Name,
		Address:     c.Address,
		Type:        c.Type,
		AgencyLevel: c.AgencyLevel,
		Debt:        c.Debt.Int64(),
		EmptyDebt:   c.EmptyDebt,
	}
	if c.Phone != "" {
		phone := c.Phone
		m.Phone = &phone
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// SupplierModel is the persistence model for partner.Supplier
type SupplierModel struct {
	AggregateModel
	Name          string `gorm:"type:varchar(200);not null;index"`
	ContactPerson string `gorm:"type:varchar(200)"`
	Phone         string `gorm:"type:varchar(30)"`
	Email         string `gorm:"type:varchar(200)"`
	Address       string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the model to a domain Supplier
func (m *SupplierModel) ToDomain() *partner.Supplier {
	return &partner.Supplier{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		ContactPerson:     m.ContactPerson,
		Phone:             m.Phone,
		Email:             m.Email,
		Address:           m.Address,
	}
}

// SupplierModelFromDomain creates a model from a domain Supplier
func SupplierModelFromDomain(s *partner.Supplier) *SupplierModel {
	m := &SupplierModel{
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Email:         s.Email,
		Address:       s.Address,
	}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	return m
}

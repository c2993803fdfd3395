package partner

import (
	"time"

	"github.com/aquaflow/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ===================== Customer DTOs =====================

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Phone       string `json:"phone" binding:"omitempty,max=20,phone"`
	Address     string `json:"address" binding:"max=500"`
	Type        string `json:"type" binding:"omitempty,oneof=retail agency"`
	AgencyLevel int    `json:"agency_level" binding:"omitempty,oneof=1 2"`
}

// UpdateCustomerRequest represents a request to update contact details and
// classification. Balances are never edited here.
type UpdateCustomerRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Phone       string `json:"phone" binding:"omitempty,max=20,phone"`
	Address     string `json:"address" binding:"max=500"`
	Type        string `json:"type" binding:"required,oneof=retail agency"`
	AgencyLevel int    `json:"agency_level" binding:"omitempty,oneof=1 2"`
}

// CustomerListFilter represents filter options for customer list
type CustomerListFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type" binding:"omitempty,oneof=retail agency"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	Type           string          `json:"type"`
	AgencyLevel    int             `json:"agency_level,omitempty"`
	Classification string          `json:"classification"`
	Debt           decimal.Decimal `json:"debt"`
	EmptyDebt      int64           `json:"empty_debt"`
	BalanceState   string          `json:"balance_state"`
	CreditBalance  decimal.Decimal `json:"credit_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		Phone:          c.Phone,
		Address:        c.Address,
		Type:           string(c.Type),
		AgencyLevel:    c.AgencyLevel,
		Classification: c.Classification(),
		Debt:           c.Debt.Decimal(),
		EmptyDebt:      c.EmptyDebt,
		BalanceState:   string(c.BalanceState()),
		CreditBalance:  c.CreditBalance().Decimal(),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
		Version:        c.Version,
	}
}

// ToCustomerResponses converts a slice of domain Customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}

// ===================== Supplier DTOs =====================

// SupplierRequest represents a request to create or update a supplier
type SupplierRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200"`
	ContactPerson string `json:"contact_person" binding:"max=100"`
	Phone         string `json:"phone" binding:"omitempty,max=20,phone"`
	Email         string `json:"email" binding:"omitempty,email,max=100"`
	Address       string `json:"address" binding:"max=500"`
}

func (r SupplierRequest) contact() partner.SupplierContact {
	return partner.SupplierContact{
		ContactPerson: r.ContactPerson,
		Phone:         r.Phone,
		Email:         r.Email,
		Address:       r.Address,
	}
}

// SupplierListFilter represents filter options for supplier list
type SupplierListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Version       int       `json:"version"`
}

// ToSupplierResponse converts a domain Supplier to SupplierResponse
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Email:         s.Email,
		Address:       s.Address,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		Version:       s.Version,
	}
}

// ToSupplierResponses converts a slice of domain Suppliers
func ToSupplierResponses(suppliers []partner.Supplier) []SupplierResponse {
	responses := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = ToSupplierResponse(&suppliers[i])
	}
	return responses
}

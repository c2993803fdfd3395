package catalog

import (
	"time"

	"github.com/aquaflow/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name       string          `json:"name" binding:"required,min=1,max=200"`
	Unit       string          `json:"unit" binding:"required,min=1,max=50"`
	Price      decimal.Decimal `json:"price" binding:"dong"`
	Returnable bool            `json:"returnable"`
	// InitialStock is received through an import movement
	InitialStock int64 `json:"initial_stock" binding:"min=0,max=1000000000"`
}

// UpdatePriceRequest represents a price change
type UpdatePriceRequest struct {
	Price decimal.Decimal `json:"price" binding:"dong"`
}

// UpdateProductRequest replaces a product's editable fields. Stock is only
// changed through inventory movements.
type UpdateProductRequest struct {
	Name       string          `json:"name" binding:"required,min=1,max=200"`
	Unit       string          `json:"unit" binding:"required,min=1,max=50"`
	Price      decimal.Decimal `json:"price" binding:"dong"`
	Returnable bool            `json:"returnable"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Unit       string          `json:"unit"`
	Price      decimal.Decimal `json:"price"`
	Returnable bool            `json:"returnable"`
	Stock      int64           `json:"stock"`
	Sellable   bool            `json:"sellable"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Version    int             `json:"version"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Unit:       p.Unit,
		Price:      p.Price.Decimal(),
		Returnable: p.Returnable,
		Stock:      p.Stock,
		Sellable:   p.CanSell() == nil,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		Version:    p.Version,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

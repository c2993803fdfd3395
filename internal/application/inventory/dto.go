package inventory

import (
	"time"

	"github.com/aquaflow/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApplyMovementRequest represents a manual stock movement
type ApplyMovementRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Type      string    `json:"type" binding:"required,oneof=import export return"`
	Quantity  int64     `json:"quantity" binding:"required,min=1,max=1000000000"`
	Note      string    `json:"note" binding:"max=500"`
}

// MovementListFilter represents paging options for a product's movements
type MovementListFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// DatedReportRequest represents the date-range report query
type DatedReportRequest struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}

// DatedReportResponse is the inventory report over a date range
type DatedReportResponse struct {
	StartDate time.Time                   `json:"start_date"`
	EndDate   time.Time                   `json:"end_date"`
	Products  []inventory.DatedReportLine `json:"products"`
}

// ImportItemInput is one line of a new import
type ImportItemInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required,min=1,max=1000000000"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"dong"`
}

// CreateImportRequest represents a request to receive stock from a supplier
type CreateImportRequest struct {
	SupplierID uuid.UUID         `json:"supplier_id" binding:"required"`
	Items      []ImportItemInput `json:"items" binding:"required,min=1,dive"`
	Note       string            `json:"note" binding:"max=500"`
}

// ImportListFilter represents paging options for imports
type ImportListFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ImportItemResponse represents an import line in API responses
type ImportItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// ImportResponse represents an import in API responses
type ImportResponse struct {
	ID           uuid.UUID            `json:"id"`
	SupplierID   uuid.UUID            `json:"supplier_id"`
	SupplierName string               `json:"supplier_name"`
	Items        []ImportItemResponse `json:"items"`
	TotalAmount  decimal.Decimal      `json:"total_amount"`
	Note         string               `json:"note"`
	CreatedBy    *uuid.UUID           `json:"created_by,omitempty"`
	ImportDate   time.Time            `json:"import_date"`
	CreatedAt    time.Time            `json:"created_at"`
}

// ToImportResponse converts a domain Import to ImportResponse
func ToImportResponse(imp *inventory.Import) ImportResponse {
	items := make([]ImportItemResponse, len(imp.Items))
	for i, item := range imp.Items {
		items[i] = ImportItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.Decimal(),
			Total:       item.Total().Decimal(),
		}
	}
	return ImportResponse{
		ID:           imp.ID,
		SupplierID:   imp.SupplierID,
		SupplierName: imp.SupplierName,
		Items:        items,
		TotalAmount:  imp.TotalAmount().Decimal(),
		Note:         imp.Note,
		CreatedBy:    imp.CreatedBy,
		ImportDate:   imp.ImportDate,
		CreatedAt:    imp.CreatedAt,
	}
}

// ToImportResponses converts a slice of imports
func ToImportResponses(imports []inventory.Import) []ImportResponse {
	out := make([]ImportResponse, len(imports))
	for i := range imports {
		out[i] = ToImportResponse(&imports[i])
	}
	return out
}

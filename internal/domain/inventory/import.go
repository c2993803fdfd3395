package inventory

import (
	"fmt"
	"time"

	"github.com/aquaflow/backend/internal/domain/catalog"
	"github.com/aquaflow/backend/internal/domain/partner"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeImport = "Import"

// ImportItem is one product line received on an import
type ImportItem struct {
	ID          uuid.UUID
	ImportID    uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int64
	UnitPrice   valueobject.Money
}

// Total returns quantity × unit price. AddItem rejects lines whose total
// does not fit, so the product is exact for every stored item.
func (i ImportItem) Total() valueobject.Money {
	return valueobject.Money(i.UnitPrice.Int64() * i.Quantity)
}

// Import records stock received from a supplier outside of a purchase.
// Deleting an import reverses its stock effect with compensating log
// entries before the record itself is removed.
type Import struct {
	shared.BaseAggregateRoot
	SupplierID   uuid.UUID
	SupplierName string
	Items        []ImportItem
	Note         string
	CreatedBy    *uuid.UUID
	ImportDate   time.Time
}

// NewImport creates an empty import for a supplier
func NewImport(supplier *partner.Supplier, note string, createdBy *uuid.UUID) *Import {
	imp := &Import{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SupplierID:        supplier.ID,
		SupplierName:      supplier.Name,
		Items:             make([]ImportItem, 0),
		Note:              note,
		CreatedBy:         createdBy,
		ImportDate:        time.Now(),
	}
	return imp
}

// AddItem appends a line for a product
func (imp *Import) AddItem(p *catalog.Product, quantity int64, unitPrice valueobject.Money) error {
	if quantity <= 0 {
		return shared.NewValidationError("Import quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewValidationError("Import unit price cannot be negative")
	}
	line, err := unitPrice.Times(quantity)
	if err != nil {
		return err
	}
	if _, err := imp.TotalAmount().Add(line); err != nil {
		return err
	}
	imp.Items = append(imp.Items, ImportItem{
		ID:          uuid.New(),
		ImportID:    imp.ID,
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	})
	return nil
}

// TotalAmount returns the sum of line totals
func (imp *Import) TotalAmount() valueobject.Money {
	var total valueobject.Money
	for _, item := range imp.Items {
		total += item.Total()
	}
	return total
}

// QuantitiesByProduct sums item quantities per product
func (imp *Import) QuantitiesByProduct() map[uuid.UUID]int64 {
	out := make(map[uuid.UUID]int64, len(imp.Items))
	for _, item := range imp.Items {
		out[item.ProductID] += item.Quantity
	}
	return out
}

// ProductIDs returns the distinct product ids in item order
func (imp *Import) ProductIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(imp.Items))
	ids := make([]uuid.UUID, 0, len(imp.Items))
	for _, item := range imp.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}

// ReceiveNote is the movement note written when the import is applied
func (imp *Import) ReceiveNote() string {
	return fmt.Sprintf("Import from %s", imp.SupplierName)
}

// ReversalNote is the movement note written when the import is reverted
func (imp *Import) ReversalNote() string {
	return fmt.Sprintf("Reverting import #%s", imp.ID)
}

// CheckReversible verifies that every product still holds the stock this
// import brought in. Products must contain every product on the import.
// Returns IMPORT_IN_USE naming the first product that would go negative.
func (imp *Import) CheckReversible(products map[uuid.UUID]*catalog.Product) error {
	quantities := imp.QuantitiesByProduct()
	for _, productID := range imp.ProductIDs() {
		required := quantities[productID]
		p, ok := products[productID]
		if !ok {
			return shared.NewNotFoundError("product", productID)
		}
		if p.Stock < required {
			return shared.NewDomainErrorWithDetails(shared.CodeImportInUse,
				fmt.Sprintf("Import stock of %s has already been consumed", p.Name),
				map[string]any{
					"importId":       imp.ID.String(),
					"productId":      productID.String(),
					"productName":    p.Name,
					"requiredStock":  required,
					"availableStock": p.Stock,
				})
		}
	}
	return nil
}

// MarkCreated records the ImportCreated event once items are in place
func (imp *Import) MarkCreated() {
	imp.AddDomainEvent(NewImportCreatedEvent(imp))
}

// MarkDeleted records the ImportDeleted event
func (imp *Import) MarkDeleted() {
	imp.AddDomainEvent(NewImportDeletedEvent(imp))
}

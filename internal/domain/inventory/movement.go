package inventory

import (
	"fmt"
	"time"

	"github.com/aquaflow/backend/internal/domain/catalog"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MovementType represents the direction of a stock movement
type MovementType string

const (
	// MovementTypeImport adds stock (supplier import, purchase)
	MovementTypeImport MovementType = "import"
	// MovementTypeExport removes stock (sale, import reversal)
	MovementTypeExport MovementType = "export"
	// MovementTypeReturn removes stock sent back to a supplier
	MovementTypeReturn MovementType = "return"
)

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeImport, MovementTypeExport, MovementTypeReturn:
		return true
	}
	return false
}

// IsIncrease returns true if this movement type adds stock
func (t MovementType) IsIncrease() bool {
	return t == MovementTypeImport
}

// SourceType identifies the document that caused a movement
type SourceType string

const (
	SourceTypeManual         SourceType = "manual"
	SourceTypeOrder          SourceType = "order"
	SourceTypePurchase       SourceType = "purchase"
	SourceTypeImport         SourceType = "import"
	SourceTypeImportReversal SourceType = "import_reversal"
)

// MovementSource references the document behind a movement
type MovementSource struct {
	Type SourceType
	ID   *uuid.UUID
}

// ManualSource is the source for movements entered by hand
func ManualSource() MovementSource {
	return MovementSource{Type: SourceTypeManual}
}

// DocumentSource builds a source pointing at a document
func DocumentSource(t SourceType, id uuid.UUID) MovementSource {
	return MovementSource{Type: t, ID: &id}
}

// MovementLog is an immutable, append-only record of one stock movement.
// Log entries are never updated; reversals append new entries.
type MovementLog struct {
	ID          uuid.UUID    `json:"id"`
	ProductID   uuid.UUID    `json:"product_id"`
	Type        MovementType `json:"type"`
	Quantity    int64        `json:"quantity"`
	StockBefore int64        `json:"stock_before"`
	StockAfter  int64        `json:"stock_after"`
	Note        string       `json:"note"`
	SourceType  SourceType   `json:"source_type"`
	SourceID    *uuid.UUID   `json:"source_id,omitempty"`
	CreatedBy   *uuid.UUID   `json:"created_by,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// ApplyMovement adjusts the product's stock and returns the log entry that
// records it. Export and return require enough stock; on failure the product
// is untouched and no entry is produced.
func ApplyMovement(p *catalog.Product, movementType MovementType, quantity int64, note string, source MovementSource, actor *uuid.UUID) (*MovementLog, error) {
	if !movementType.IsValid() {
		return nil, shared.NewValidationError(fmt.Sprintf("Invalid movement type: %s", movementType))
	}
	if quantity <= 0 {
		return nil, shared.NewValidationError("Movement quantity must be positive")
	}

	before := p.Stock
	var err error
	if movementType.IsIncrease() {
		err = p.IncreaseStock(quantity)
	} else {
		err = p.DecreaseStock(quantity)
	}
	if err != nil {
		return nil, err
	}

	return &MovementLog{
		ID:          uuid.New(),
		ProductID:   p.ID,
		Type:        movementType,
		Quantity:    quantity,
		StockBefore: before,
		StockAfter:  p.Stock,
		Note:        note,
		SourceType:  source.Type,
		SourceID:    source.ID,
		CreatedBy:   actor,
		CreatedAt:   time.Now(),
	}, nil
}

// MovementTotals is the per-type sum of movement quantities for one product
type MovementTotals struct {
	ProductID uuid.UUID
	Imported  int64
	Exported  int64
	Returned  int64
}

// NetChange returns import − export + return, the figure shown on the dated report
func (t MovementTotals) NetChange() int64 {
	return t.Imported - t.Exported + t.Returned
}

// Add folds a quantity of the given type into the totals
func (t *MovementTotals) Add(movementType MovementType, quantity int64) {
	switch movementType {
	case MovementTypeImport:
		t.Imported += quantity
	case MovementTypeExport:
		t.Exported += quantity
	case MovementTypeReturn:
		t.Returned += quantity
	}
}

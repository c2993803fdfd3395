package inventory

import (
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Event type constants
const (
	EventTypeImportCreated = "ImportCreated"
	EventTypeImportDeleted = "ImportDeleted"
)

// ImportCreatedEvent is published after an import has been applied to stock
type ImportCreatedEvent struct {
	shared.BaseDomainEvent
	ImportID    uuid.UUID         `json:"import_id"`
	SupplierID  uuid.UUID         `json:"supplier_id"`
	ItemCount   int               `json:"item_count"`
	TotalAmount valueobject.Money `json:"total_amount"`
}

// NewImportCreatedEvent creates a new ImportCreatedEvent
func NewImportCreatedEvent(imp *Import) *ImportCreatedEvent {
	return &ImportCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeImportCreated, AggregateTypeImport, imp.ID),
		ImportID:        imp.ID,
		SupplierID:      imp.SupplierID,
		ItemCount:       len(imp.Items),
		TotalAmount:     imp.TotalAmount(),
	}
}

// ImportDeletedEvent is published after an import has been reverted and removed
type ImportDeletedEvent struct {
	shared.BaseDomainEvent
	ImportID   uuid.UUID           `json:"import_id"`
	SupplierID uuid.UUID           `json:"supplier_id"`
	Reversed   map[uuid.UUID]int64 `json:"reversed"`
}

// NewImportDeletedEvent creates a new ImportDeletedEvent
func NewImportDeletedEvent(imp *Import) *ImportDeletedEvent {
	return &ImportDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeImportDeleted, AggregateTypeImport, imp.ID),
		ImportID:        imp.ID,
		SupplierID:      imp.SupplierID,
		Reversed:        imp.QuantitiesByProduct(),
	}
}

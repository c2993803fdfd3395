package inventory

import (
	"context"
	"time"

	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MovementLogRepository stores the append-only movement log
type MovementLogRepository interface {
	// Append stores new log entries
	Append(ctx context.Context, logs ...*MovementLog) error

	// FindByProduct returns a product's entries, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]MovementLog, error)

	// CountByProduct counts a product's entries
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// FindBetween returns all entries created in [from, to], newest first
	FindBetween(ctx context.Context, from, to time.Time) ([]MovementLog, error)

	// SumByProduct aggregates quantities per product and type over all time
	SumByProduct(ctx context.Context) ([]MovementTotals, error)
}

// ImportRepository persists imports together with their items
type ImportRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Import, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Import, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, imp *Import) error
	// Delete hard-deletes the import and its items
	Delete(ctx context.Context, id uuid.UUID) error
}

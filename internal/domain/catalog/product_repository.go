package catalog

import (
	"context"

	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs finds products by IDs; missing IDs are simply absent from the result
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates a new product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock updates a product guarded by its version.
	// Returns CONCURRENCY_CONFLICT if the stored version moved on.
	SaveWithLock(ctx context.Context, product *Product) error

	// Delete removes a product guarded by its version
	Delete(ctx context.Context, product *Product) error
}

package partner

import (
	"context"

	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByPhone finds a customer by phone number
	FindByPhone(ctx context.Context, phone string) (*Customer, error)

	// FindAll finds all customers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// FindWithDebt finds customers whose debt is above zero, largest first
	FindWithDebt(ctx context.Context) ([]Customer, error)

	// Count counts customers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates a new customer
	Save(ctx context.Context, customer *Customer) error

	// SaveWithLock updates a customer guarded by its version
	SaveWithLock(ctx context.Context, customer *Customer) error
}

package trade

import (
	"context"
	"time"

	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID loads an order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindAll finds orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// FindByCustomer finds a customer's orders, newest first
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindByStatusBetween finds orders in a status placed within [from, to]
	FindByStatusBetween(ctx context.Context, status Status, from, to time.Time) ([]Order, error)

	// FindBetween finds orders in any status placed within [from, to]
	FindBetween(ctx context.Context, from, to time.Time) ([]Order, error)

	// StatsByCustomer aggregates the orders of the given customers in one
	// grouped query. Customers without orders are absent from the map.
	StatsByCustomer(ctx context.Context, customerIDs []uuid.UUID) (map[uuid.UUID]CustomerOrderStats, error)

	// FindRecent returns the latest orders by order date, with items
	FindRecent(ctx context.Context, limit int) ([]Order, error)

	// Revenue sums the headers of the orders matching q
	Revenue(ctx context.Context, q SalesQuery) (RevenueTotal, error)

	// SalesByProduct groups the lines of the orders matching q by product,
	// highest quantity first
	SalesByProduct(ctx context.Context, q SalesQuery) ([]ProductSalesTotal, error)

	// Save creates a new order together with its items
	Save(ctx context.Context, order *Order) error

	// SaveWithLock updates the order header guarded by its version.
	// Items are immutable once placed and are not rewritten.
	SaveWithLock(ctx context.Context, order *Order) error
}

// PurchaseRepository defines the interface for purchase persistence
type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Purchase, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// FindBySupplier returns all of a supplier's purchases, newest first
	FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]Purchase, error)

	// FindOutstanding returns non-canceled purchases with debt remaining,
	// optionally restricted to purchase dates within [from, to]
	FindOutstanding(ctx context.Context, from, to *time.Time) ([]Purchase, error)

	// StatsBySupplier aggregates every supplier's purchases in one grouped
	// query
	StatsBySupplier(ctx context.Context) (map[uuid.UUID]SupplierPurchaseStats, error)

	Save(ctx context.Context, purchase *Purchase) error
	SaveWithLock(ctx context.Context, purchase *Purchase) error
}

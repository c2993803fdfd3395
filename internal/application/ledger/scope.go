// Package ledger runs balance-bearing operations as one unit of work:
// a single database transaction, retried on optimistic-lock conflicts,
// optionally guarded by a distributed lock and an idempotency key.
package ledger

import (
	"context"

	"github.com/aquaflow/backend/internal/domain/catalog"
	"github.com/aquaflow/backend/internal/domain/finance"
	"github.com/aquaflow/backend/internal/domain/inventory"
	"github.com/aquaflow/backend/internal/domain/partner"
	"github.com/aquaflow/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the ledger repositories.
// All repository operations made through fn are committed or rolled back
// together.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories gives access to every repository that takes part in a
// ledger operation. All repositories share the same transaction.
type Repositories interface {
	Products() catalog.ProductRepository
	Customers() partner.CustomerRepository
	Suppliers() partner.SupplierRepository
	Orders() trade.OrderRepository
	Purchases() trade.PurchaseRepository
	Imports() inventory.ImportRepository
	Movements() inventory.MovementLogRepository
	Payments() finance.PaymentTransactionRepository
	EmptyReturns() finance.EmptyReturnRepository
}

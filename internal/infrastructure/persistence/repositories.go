package persistence

import (
	"context"

	"github.com/aquaflow/backend/internal/application/ledger"
	"github.com/aquaflow/backend/internal/domain/catalog"
	"github.com/aquaflow/backend/internal/domain/finance"
	"github.com/aquaflow/backend/internal/domain/inventory"
	"github.com/aquaflow/backend/internal/domain/partner"
	"github.com/aquaflow/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormRepositories hands out repositories bound to one *gorm.DB, either
// the pool for reads or a transaction inside GormTransactionScope.
type GormRepositories struct {
	db *gorm.DB
}

// NewGormRepositories creates repositories on db
func NewGormRepositories(db *gorm.DB) *GormRepositories {
	return &GormRepositories{db: db}
}

func (r *GormRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.db)
}

func (r *GormRepositories) Customers() partner.CustomerRepository {
	return NewGormCustomerRepository(r.db)
}

func (r *GormRepositories) Suppliers() partner.SupplierRepository {
	return NewGormSupplierRepository(r.db)
}

func (r *GormRepositories) Orders() trade.OrderRepository {
	return NewGormOrderRepository(r.db)
}

func (r *GormRepositories) Purchases() trade.PurchaseRepository {
	return NewGormPurchaseRepository(r.db)
}

func (r *GormRepositories) Imports() inventory.ImportRepository {
	return NewGormImportRepository(r.db)
}

func (r *GormRepositories) Movements() inventory.MovementLogRepository {
	return NewGormMovementLogRepository(r.db)
}

func (r *GormRepositories) Payments() finance.PaymentTransactionRepository {
	return NewGormPaymentTransactionRepository(r.db)
}

func (r *GormRepositories) EmptyReturns() finance.EmptyReturnRepository {
	return NewGormEmptyReturnRepository(r.db)
}

// GormTransactionScope implements ledger.TransactionScope using GORM transactions
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos ledger.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormRepositories(tx))
	})
}

var (
	_ ledger.TransactionScope = (*GormTransactionScope)(nil)
	_ ledger.Repositories     = (*GormRepositories)(nil)
)

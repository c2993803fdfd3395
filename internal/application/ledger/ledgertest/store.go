// Package ledgertest provides an in-memory implementation of the ledger
// repositories for service tests. Writes are buffered per transaction and
// validated against committed versions on commit, so lost updates surface
// as CONCURRENCY_CONFLICT exactly like the SQL repositories.
package ledgertest

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/aquaflow/backend/internal/application/ledger"
	"github.com/aquaflow/backend/internal/domain/catalog"
	"github.com/aquaflow/backend/internal/domain/finance"
	"github.com/aquaflow/backend/internal/domain/inventory"
	"github.com/aquaflow/backend/internal/domain/partner"
	"github.com/aquaflow/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// Store holds committed ledger state
type Store struct {
	mu sync.Mutex

	products  *table[catalog.Product]
	customers *table[partner.Customer]
	suppliers *table[partner.Supplier]
	orders    *table[trade.Order]
	purchases *table[trade.Purchase]
	imports   *table[inventory.Import]

	movements    []inventory.MovementLog
	payments     []finance.PaymentTransaction
	emptyReturns []finance.EmptyReturn

	// BeforeCommit, when set, runs after a transaction body succeeded and
	// before its writes are validated. Tests use it to interleave commits.
	BeforeCommit func()
	// FailCommit, when set, makes commit return the error it yields
	FailCommit func() error
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		products: newTable(accessors[catalog.Product]{
			name:    "Product",
			id:      func(p catalog.Product) uuid.UUID { return p.ID },
			version: func(p catalog.Product) int { return p.Version },
			bump:    func(p *catalog.Product) { p.IncrementVersion() },
			created: func(p catalog.Product) time.Time { return p.CreatedAt },
			clone: func(p catalog.Product) catalog.Product {
				p.ClearDomainEvents()
				return p
			},
		}),
		customers: newTable(accessors[partner.Customer]{
			name:    "Customer",
			id:      func(c partner.Customer) uuid.UUID { return c.ID },
			version: func(c partner.Customer) int { return c.Version },
			bump:    func(c *partner.Customer) { c.IncrementVersion() },
			created: func(c partner.Customer) time.Time { return c.CreatedAt },
			clone: func(c partner.Customer) partner.Customer {
				c.ClearDomainEvents()
				return c
			},
		}),
		suppliers: newTable(accessors[partner.Supplier]{
			name:    "Supplier",
			id:      func(s partner.Supplier) uuid.UUID { return s.ID },
			version: func(s partner.Supplier) int { return s.Version },
			bump:    func(s *partner.Supplier) { s.IncrementVersion() },
			created: func(s partner.Supplier) time.Time { return s.CreatedAt },
			clone: func(s partner.Supplier) partner.Supplier {
				s.ClearDomainEvents()
				return s
			},
		}),
		orders: newTable(accessors[trade.Order]{
			name:    "Order",
			id:      func(o trade.Order) uuid.UUID { return o.ID },
			version: func(o trade.Order) int { return o.Version },
			bump:    func(o *trade.Order) { o.IncrementVersion() },
			created: func(o trade.Order) time.Time { return o.CreatedAt },
			clone: func(o trade.Order) trade.Order {
				o.ClearDomainEvents()
				o.Items = slices.Clone(o.Items)
				return o
			},
		}),
		purchases: newTable(accessors[trade.Purchase]{
			name:    "Purchase",
			id:      func(p trade.Purchase) uuid.UUID { return p.ID },
			version: func(p trade.Purchase) int { return p.Version },
			bump:    func(p *trade.Purchase) { p.IncrementVersion() },
			created: func(p trade.Purchase) time.Time { return p.CreatedAt },
			clone: func(p trade.Purchase) trade.Purchase {
				p.ClearDomainEvents()
				p.Items = slices.Clone(p.Items)
				return p
			},
		}),
		imports: newTable(accessors[inventory.Import]{
			name:    "Import",
			id:      func(i inventory.Import) uuid.UUID { return i.ID },
			version: func(i inventory.Import) int { return i.Version },
			bump:    func(i *inventory.Import) { i.IncrementVersion() },
			created: func(i inventory.Import) time.Time { return i.CreatedAt },
			clone: func(i inventory.Import) inventory.Import {
				i.ClearDomainEvents()
				i.Items = slices.Clone(i.Items)
				return i
			},
		}),
	}
}

// Execute runs fn in a buffered transaction and commits it on success
func (s *Store) Execute(ctx context.Context, fn func(repos ledger.Repositories) error) error {
	t := s.begin(false)
	if err := fn(t); err != nil {
		return err
	}
	if s.BeforeCommit != nil {
		s.BeforeCommit()
	}
	return t.commit()
}

// Repositories returns a view whose every write commits immediately
func (s *Store) Repositories() ledger.Repositories {
	return s.begin(true)
}

// Product returns a committed product
func (s *Store) Product(id uuid.UUID) *catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products.rows[id]
	if !ok {
		return nil
	}
	p = s.products.clone(p)
	return &p
}

// Customer returns a committed customer
func (s *Store) Customer(id uuid.UUID) *partner.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers.rows[id]
	if !ok {
		return nil
	}
	c = s.customers.clone(c)
	return &c
}

// Order returns a committed order
func (s *Store) Order(id uuid.UUID) *trade.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders.rows[id]
	if !ok {
		return nil
	}
	o = s.orders.clone(o)
	return &o
}

// Purchase returns a committed purchase
func (s *Store) Purchase(id uuid.UUID) *trade.Purchase {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.purchases.rows[id]
	if !ok {
		return nil
	}
	p = s.purchases.clone(p)
	return &p
}

// Import returns a committed import
func (s *Store) Import(id uuid.UUID) *inventory.Import {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.imports.rows[id]
	if !ok {
		return nil
	}
	i = s.imports.clone(i)
	return &i
}

// Movements returns the committed movement log in append order
func (s *Store) Movements() []inventory.MovementLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.movements)
}

// Payments returns the committed payment transactions
func (s *Store) Payments() []finance.PaymentTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.payments)
}

// EmptyReturns returns the committed empty-return records
func (s *Store) EmptyReturns() []finance.EmptyReturn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.emptyReturns)
}

// AddProduct commits a product directly
func (s *Store) AddProduct(p *catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products.rows[p.ID] = s.products.clone(*p)
}

// AddCustomer commits a customer directly
func (s *Store) AddCustomer(c *partner.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers.rows[c.ID] = s.customers.clone(*c)
}

// AddSupplier commits a supplier directly
func (s *Store) AddSupplier(sup *partner.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers.rows[sup.ID] = s.suppliers.clone(*sup)
}

// AddOrder commits an order directly
func (s *Store) AddOrder(o *trade.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders.rows[o.ID] = s.orders.clone(*o)
}

// AddPurchase commits a purchase directly
func (s *Store) AddPurchase(p *trade.Purchase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purchases.rows[p.ID] = s.purchases.clone(*p)
}

// AddMovements commits movement log entries directly
func (s *Store) AddMovements(logs ...inventory.MovementLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movements = append(s.movements, logs...)
}

type tx struct {
	store      *Store
	autoCommit bool

	products  *txTable[catalog.Product]
	customers *txTable[partner.Customer]
	suppliers *txTable[partner.Supplier]
	orders    *txTable[trade.Order]
	purchases *txTable[trade.Purchase]
	imports   *txTable[inventory.Import]

	movements    []inventory.MovementLog
	payments     []finance.PaymentTransaction
	emptyReturns []finance.EmptyReturn
}

func (s *Store) begin(autoCommit bool) *tx {
	return &tx{
		store:      s,
		autoCommit: autoCommit,
		products:   newTxTable(s.products),
		customers:  newTxTable(s.customers),
		suppliers:  newTxTable(s.suppliers),
		orders:     newTxTable(s.orders),
		purchases:  newTxTable(s.purchases),
		imports:    newTxTable(s.imports),
	}
}

// written is called with the store lock held after every write
func (t *tx) written() error {
	if !t.autoCommit {
		return nil
	}
	return t.commitLocked()
}

func (t *tx) commit() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	return t.commitLocked()
}

func (t *tx) commitLocked() error {
	if t.store.FailCommit != nil {
		if err := t.store.FailCommit(); err != nil {
			t.discard()
			return err
		}
	}
	validators := []func() error{
		t.products.validate, t.customers.validate, t.suppliers.validate,
		t.orders.validate, t.purchases.validate, t.imports.validate,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			t.discard()
			return err
		}
	}
	t.products.apply()
	t.customers.apply()
	t.suppliers.apply()
	t.orders.apply()
	t.purchases.apply()
	t.imports.apply()
	t.store.movements = append(t.store.movements, t.movements...)
	t.store.payments = append(t.store.payments, t.payments...)
	t.store.emptyReturns = append(t.store.emptyReturns, t.emptyReturns...)
	t.discard()
	return nil
}

func (t *tx) discard() {
	t.products.reset()
	t.customers.reset()
	t.suppliers.reset()
	t.orders.reset()
	t.purchases.reset()
	t.imports.reset()
	t.movements = nil
	t.payments = nil
	t.emptyReturns = nil
}

func (t *tx) Products() catalog.ProductRepository            { return productRepo{t} }
func (t *tx) Customers() partner.CustomerRepository          { return customerRepo{t} }
func (t *tx) Suppliers() partner.SupplierRepository          { return supplierRepo{t} }
func (t *tx) Orders() trade.OrderRepository                  { return orderRepo{t} }
func (t *tx) Purchases() trade.PurchaseRepository            { return purchaseRepo{t} }
func (t *tx) Imports() inventory.ImportRepository            { return importRepo{t} }
func (t *tx) Movements() inventory.MovementLogRepository     { return movementRepo{t} }
func (t *tx) Payments() finance.PaymentTransactionRepository { return paymentRepo{t} }
func (t *tx) EmptyReturns() finance.EmptyReturnRepository    { return emptyReturnRepo{t} }

var (
	_ ledger.TransactionScope = (*Store)(nil)
	_ ledger.Repositories     = (*tx)(nil)
)

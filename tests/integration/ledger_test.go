//go:build integration

package integration

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	catalogapp "github.com/aquaflow/backend/internal/application/catalog"
	inventoryapp "github.com/aquaflow/backend/internal/application/inventory"
	"github.com/aquaflow/backend/internal/application/ledger"
	partnerapp "github.com/aquaflow/backend/internal/application/partner"
	tradeapp "github.com/aquaflow/backend/internal/application/trade"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/trade"
	"github.com/aquaflow/backend/internal/infrastructure/cache"
	"github.com/aquaflow/backend/internal/infrastructure/event"
	"github.com/aquaflow/backend/internal/infrastructure/persistence"
	infrastrategy "github.com/aquaflow/backend/internal/infrastructure/strategy"
	"github.com/aquaflow/backend/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var phoneSeq atomic.Int64

type ledgerStack struct {
	events    *testutil.EventRecorder
	products  *catalogapp.ProductService
	customers *partnerapp.CustomerService
	suppliers *partnerapp.SupplierService
	orders    *tradeapp.OrderService
	imports   *inventoryapp.ImportService
}

func newLedgerStack(t *testing.T) *ledgerStack {
	t.Helper()
	tdb := NewTestDB(t)

	recorder := testutil.NewEventRecorder()
	bus := event.NewInMemoryEventBus(nil)
	bus.Subscribe(recorder)

	exec := ledger.NewExecutor(persistence.NewGormTransactionScope(tdb.DB),
		ledger.WithRetry(ledger.RetryConfig{MaxAttempts: 5}),
		ledger.WithIdempotency(cache.NewInMemoryIdempotencyStore(), shared.DefaultIdempotencyConfig()),
		ledger.WithEventPublisher(bus),
	)
	repos := persistence.NewGormRepositories(tdb.DB)
	pricing, err := infrastrategy.NewRegistryWithDefaults(nil)
	require.NoError(t, err)

	return &ledgerStack{
		events:    recorder,
		products:  catalogapp.NewProductService(exec, repos, nil),
		customers: partnerapp.NewCustomerService(exec, repos, nil),
		suppliers: partnerapp.NewSupplierService(exec, repos, nil),
		orders:    tradeapp.NewOrderService(exec, repos, pricing, nil),
		imports:   inventoryapp.NewImportService(exec, repos, nil),
	}
}

func (s *ledgerStack) product(t *testing.T, price, stock int64) uuid.UUID {
	t.Helper()
	p, err := s.products.Create(context.Background(), catalogapp.CreateProductRequest{
		Name:         "Bình 20L " + uuid.NewString()[:6],
		Unit:         "bình",
		Price:        decimal.NewFromInt(price),
		Returnable:   true,
		InitialStock: stock,
	}, ledger.Meta{})
	require.NoError(t, err)
	return p.ID
}

func (s *ledgerStack) customer(t *testing.T) uuid.UUID {
	t.Helper()
	c, err := s.customers.Create(context.Background(), partnerapp.CreateCustomerRequest{
		Name:  "Lan",
		Phone: fmt.Sprintf("09%08d", phoneSeq.Add(1)),
		Type:  "retail",
	}, ledger.Meta{})
	require.NoError(t, err)
	return c.ID
}

func (s *ledgerStack) stock(t *testing.T, productID uuid.UUID) int64 {
	t.Helper()
	p, err := s.products.GetByID(context.Background(), productID)
	require.NoError(t, err)
	return p.Stock
}

func (s *ledgerStack) debt(t *testing.T, customerID uuid.UUID) decimal.Decimal {
	t.Helper()
	c, err := s.customers.GetByID(context.Background(), customerID)
	require.NoError(t, err)
	return c.Debt
}

func orderOf(customerID, productID uuid.UUID, qty int64) tradeapp.CreateOrderRequest {
	return tradeapp.CreateOrderRequest{
		CustomerID: &customerID,
		Items:      []tradeapp.OrderItemInput{{ProductID: productID, Quantity: qty}},
	}
}

func TestOrder_InsufficientStockLeavesStock(t *testing.T) {
	s := newLedgerStack(t)
	productID := s.product(t, 1000, 10)
	customerID := s.customer(t)

	_, err := s.orders.Create(context.Background(), orderOf(customerID, productID, 12), ledger.Meta{})
	require.ErrorIs(t, err, shared.ErrInsufficientStock)

	assert.Equal(t, int64(10), s.stock(t, productID))
	assert.True(t, s.debt(t, customerID).IsZero())
}

func TestOrder_LifecycleOnPostgres(t *testing.T) {
	s := newLedgerStack(t)
	ctx := context.Background()
	productID := s.product(t, 1000, 10)
	customerID := s.customer(t)

	order, err := s.orders.Create(ctx, orderOf(customerID, productID, 3), ledger.Meta{})
	require.NoError(t, err)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, int64(3), order.ReturnableOut)
	assert.Equal(t, int64(7), s.stock(t, productID))
	assert.True(t, s.debt(t, customerID).Equal(decimal.NewFromInt(3000)))

	order, err = s.orders.UpdatePayment(ctx, order.ID, tradeapp.PaymentRequest{Amount: decimal.NewFromInt(1000)}, ledger.Meta{})
	require.NoError(t, err)
	assert.True(t, order.PaidAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, order.DebtRemaining.Equal(decimal.NewFromInt(2000)))
	assert.True(t, s.debt(t, customerID).Equal(decimal.NewFromInt(2000)))

	_, err = s.orders.UpdateReturnable(ctx, order.ID, tradeapp.ReturnRequest{Quantity: 4}, ledger.Meta{})
	require.ErrorIs(t, err, shared.ErrReturnExceedsOutstanding)

	got, err := s.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.ReturnableIn)
	assert.Equal(t, order.Version, got.Version)

	_, err = s.orders.UpdateStatus(ctx, order.ID, tradeapp.UpdateStatusRequest{Status: trade.StatusCompleted.String()}, ledger.Meta{})
	require.NoError(t, err)

	assert.Contains(t, s.events.Types(), trade.EventTypeOrderCreated)
	assert.Contains(t, s.events.Types(), trade.EventTypeOrderPaymentApplied)
	assert.Contains(t, s.events.Types(), trade.EventTypeOrderStatusChanged)
}

func TestOrder_ConcurrentOrdersForLastUnit(t *testing.T) {
	s := newLedgerStack(t)
	productID := s.product(t, 1000, 1)
	customers := []uuid.UUID{s.customer(t), s.customer(t)}

	errs := make([]error, len(customers))
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i, customerID := range customers {
		wg.Add(1)
		go func(i int, customerID uuid.UUID) {
			defer wg.Done()
			<-start
			_, errs[i] = s.orders.Create(context.Background(), orderOf(customerID, productID, 1), ledger.Meta{})
		}(i, customerID)
	}
	close(start)
	wg.Wait()

	var succeeded, short int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, shared.ErrInsufficientStock):
			short++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, short)
	assert.Equal(t, int64(0), s.stock(t, productID))
}

func TestOrder_IdempotentReplayOnPostgres(t *testing.T) {
	s := newLedgerStack(t)
	ctx := context.Background()
	productID := s.product(t, 1000, 5)
	customerID := s.customer(t)
	meta := ledger.Meta{IdempotencyKey: "order-" + uuid.NewString()}

	_, err := s.orders.Create(ctx, orderOf(customerID, productID, 2), meta)
	require.NoError(t, err)

	_, err = s.orders.Create(ctx, orderOf(customerID, productID, 2), meta)
	require.ErrorIs(t, err, shared.ErrDuplicateRequest)
	assert.Equal(t, int64(3), s.stock(t, productID))
}

func TestImport_DeleteReversesStock(t *testing.T) {
	s := newLedgerStack(t)
	ctx := context.Background()
	productID := s.product(t, 1000, 0)
	supplier, err := s.suppliers.Create(ctx, partnerapp.SupplierRequest{Name: "Nhà máy A"}, ledger.Meta{})
	require.NoError(t, err)

	imp, err := s.imports.Create(ctx, inventoryapp.CreateImportRequest{
		SupplierID: supplier.ID,
		Items: []inventoryapp.ImportItemInput{
			{ProductID: productID, Quantity: 20, UnitPrice: decimal.NewFromInt(600)},
		},
	}, ledger.Meta{})
	require.NoError(t, err)
	assert.Equal(t, int64(20), s.stock(t, productID))

	customerID := s.customer(t)
	_, err = s.orders.Create(ctx, orderOf(customerID, productID, 15), ledger.Meta{})
	require.NoError(t, err)

	err = s.imports.Delete(ctx, imp.ID, ledger.Meta{})
	require.ErrorIs(t, err, shared.ErrImportInUse)
	assert.Equal(t, int64(5), s.stock(t, productID))
}

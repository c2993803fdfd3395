package trade

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aquaflow/backend/internal/application/ledger"
	"github.com/aquaflow/backend/internal/application/ledger/ledgertest"
	"github.com/aquaflow/backend/internal/domain/inventory"
	"github.com/aquaflow/backend/internal/domain/partner"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
	"github.com/aquaflow/backend/internal/domain/trade"
	infrastrategy "github.com/aquaflow/backend/internal/infrastructure/strategy"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderService(t *testing.T, store *ledgertest.Store) *OrderService {
	t.Helper()
	registry, err := infrastrategy.NewRegistryWithDefaults(nil)
	require.NoError(t, err)
	exec := ledger.NewExecutor(store, ledger.WithRetry(ledger.RetryConfig{MaxAttempts: 3}))
	return NewOrderService(exec, store.Repositories(), registry, nil)
}

func placeOrder(t *testing.T, svc *OrderService, customerID uuid.UUID, items ...OrderItemInput) *OrderResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), CreateOrderRequest{CustomerID: &customerID, Items: items}, ledger.Meta{})
	require.NoError(t, err)
	return resp
}

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("insufficient stock leaves stock untouched", func(t *testing.T) {
		store := ledgertest.NewStore()
		p := ledgertest.SeedProduct(t, store, "Water 20L", 1000, 10, true)
		c := ledgertest.SeedCustomer(t, store, "An", "0901234567", partner.CustomerTypeRetail, 0)
		svc := newOrderService(t, store)

		_, err := svc.Create(ctx, CreateOrderRequest{
			CustomerID: &c.ID,
			Items:      []OrderItemInput{{ProductID: p.ID, Quantity: 12}},
		}, ledger.Meta{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))

		de, ok := shared.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, p.ID.String(), de.Details["productId"])
		assert.Equal(t, "Water 20L", de.Details["productName"])
		assert.Equal(t, int64(12), de.Details["requestedQuantity"])
		assert.Equal(t, int64(10), de.Details["availableStock"])

		assert.Equal(t, int64(10), store.Product(p.ID).Stock)
		assert.Equal(t, valueobject.Money(0), store.Customer(c.ID).Debt)
		assert.Empty(t, store.Movements())
	})

	t.Run("successful order takes stock and charges the customer", func(t *testing.T) {
		store := ledgertest.NewStore()
		p := ledgertest.SeedProduct(t, store, "Water 20L", 1000, 10, true)
		c := ledgertest.SeedCustomer(t, store, "An", "0901234567", partner.CustomerTypeRetail, 0)
		svc := newOrderService(t, store)

		resp := placeOrder(t, svc, c.ID, OrderItemInput{ProductID: p.ID, Quantity: 3})

		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(3000)))
		assert.Equal(t, int64(3), resp.ReturnableOut)
		assert.Equal(t, "pending", resp.Status)
		assert.True(t, resp.PaidAmount.IsZero())
		assert.Equal(t, "standard", resp.PricingStrategy)

		assert.Equal(t, int64(7), store.Product(p.ID).Stock)
		customer := store.Customer(c.ID)
		assert.Equal(t, valueobject.Money(3000), customer.Debt)
		assert.Equal(t, int64(3), customer.EmptyDebt)

		logs := store.Movements()
		require.Len(t, logs, 1)
		assert.Equal(t, inventory.MovementTypeExport, logs[0].Type)
		assert.Equal(t, inventory.SourceTypeOrder, logs[0].SourceType)
		assert.Equal(t, resp.ID, *logs[0].SourceID)
		assert.Equal(t, int64(10), logs[0].StockBefore)
		assert.Equal(t, int64(7), logs[0].StockAfter)
	})

	t.Run("repeated lines are summed before the stock check", func(t *testing.T) {
		store := ledgertest.NewStore()
		p := ledgertest.SeedProduct(t, store, "Water 20L", 1000, 5, true)
		c := ledgertest.SeedCustomer(t, store, "An", "0901234567", partner.CustomerTypeRetail, 0)
		svc := newOrderService(t, store)

		_, err := svc.Create(ctx, CreateOrderRequest{
			CustomerID: &c.ID,
			Items: []OrderItemInput{
				{ProductID: p.ID, Quantity: 3},
				{ProductID: p.ID, Quantity: 3},
			},
		}, ledger.Meta{})
		require.Error(t, err)
		de, _ := shared.AsDomainError(err)
		assert.Equal(t, shared.CodeInsufficientStock, de.Code)
		assert.Equal(t, int64(6), de.Details["requestedQuantity"])
		assert.Equal(t, int64(5), store.Product(p.ID).Stock)
	})

	t.Run("multi-line order against mixed products", func(t *testing.T) {
		store := ledgertest.NewStore()
		water := ledgertest.SeedProduct(t, store, "Water 20L", 20000, 10, true)
		cup := ledgertest.SeedProduct(t, store, "Cup", 500, 100, false)
		c := ledgertest.SeedCustomer(t, store, "An", "0901234567", partner.CustomerTypeRetail, 0)
		svc := newOrderService(t, store)

		resp := placeOrder(t, svc, c.ID,
			OrderItemInput{ProductID: water.ID, Quantity: 2},
			OrderItemInput{ProductID: cup.ID, Quantity: 10},
			OrderItemInput{ProductID: water.ID, Quantity: 1},
		)
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(65000)))
		assert.Equal(t, int64(3), resp.ReturnableOut)
		assert.Equal(t, int64(7), store.Product(water.ID).Stock)
		assert.Equal(t, int64(90), store.Product(cup.ID).Stock)
		assert.Len(t, store.Movements(), 3)
	})

	t.Run("zero price product is rejected", func(t *testing.T) {
		store := ledgertest.NewStore()
		p := ledgertest.SeedProduct(t, store, "Sample", 0, 10, false)
		c := ledgertest.SeedCustomer(t, store, "An", "0901234567", partner.CustomerTypeRetail, 0)
		svc := newOrderService(t, store)

		_, err := svc.Create(ctx, CreateOrderRequest{
			CustomerID: &c.ID,
			Items:      []OrderItemInput{{ProductID: p.ID, Quantity: 1}},
		}, ledger.Meta{})
		assert.True(t, errors.Is(err, shared.ErrInvalidPrice))
		assert.Equal(t, int64(10), store.Product(p.ID).Stock)
	})

	t.Run("unknown product and customer", func(t *testing.T) {
		store := ledgertest.NewStore()
		p := ledgertest.SeedProduct(t, store, "Water 20L", 1000, 10, true)
		c := ledgertest.SeedCustomer(t, store, "An", "0901234567", partner.CustomerTypeRetail, 0)
		svc := newOrderService(t, store)

		_, err := svc.Create(ctx, CreateOrderRequest{
			CustomerID: &c.ID,
			Items:      []OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
		}, ledger.Meta{})
		assert.True(t, errors.Is(err, shared.ErrNotFound))

		missing := uuid.New()
		_, err = svc.Create(ctx, CreateOrderRequest{
			CustomerID: &missing,
			Items:      []OrderItemInput{{ProductID: p.ID, Quantity: 1}},
		}, ledger.Meta{})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("invalid requests", func(t *testing.T) {
		store := ledgertest.NewStore()
		c := ledgertest.SeedCustomer(t, store, "An", "0901234567", partner.CustomerTypeRetail, 0)
		svc := newOrderService(t, store)

		_, err := svc.Create(ctx, CreateOrderRequest{CustomerID: &c.ID}, ledger.Meta{})
		assert.True(t, errors.Is(err, shared.ErrValidation))

		_, err = svc.Create(ctx, CreateOrderRequest{
			CustomerID: &c.ID,
			Items:      []OrderItemInput{{ProductID: uuid.New(), Quantity: 0}},
		}, ledger.Meta{})
		assert.True(t, errors.Is(err, shared.ErrValidation))

		_, err = svc.Create(ctx, CreateOrderRequest{
			Items: []OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
		}, ledger.Meta{})
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("agency level two gets the agency discount", func(t *testing.T) {
		store := ledgertest.NewStore()
		p := ledgertest.SeedProduct(t, store, "Water 20L", 20000, 10, true)
		c := ledgertest.SeedCustomer(t, store, "Dai ly Minh", "0907654321", partner.CustomerTypeAgency, partner.AgencyLevelTwo)
		svc := newOrderService(t, store)

		resp := placeOrder(t, svc, c.ID, OrderItemInput{ProductID: p.ID, Quantity: 5})
		assert.Equal(t, "agency_discount", resp.PricingStrategy)
		assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(100000)))
		assert.True(t, resp.DiscountAmount.Equal(decimal.NewFromInt(10000)))
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(90000)))
		assert.Equal(t, valueobject.Money(90000), store.Customer(c.ID).Debt)
	})

	t.Run("website order creates a retail customer on first contact", func(t *testing.T) {
		store := ledgertest.NewStore()
		p := ledgertest.SeedProduct(t, store, "Water 20L", 1000, 10, true)
		svc := newOrderService(t, store)

		contact := &CustomerContactInput{Name: "Binh", Phone: "0912345678", Address: "12 Le Loi"}
		first, err := svc.Create(ctx, CreateOrderRequest{
			Customer: contact,
			Items:    []OrderItemInput{{ProductID: p.ID, Quantity: 1}},
		}, ledger.Meta{})
		require.NoError(t, err)

		customer := store.Customer(first.CustomerID)
		require.NotNil(t, customer)
		assert.Equal(t, partner.CustomerTypeRetail, customer.Type)
		assert.Equal(t, "0912345678", customer.Phone)
		assert.Equal(t, valueobject.Money(1000), customer.Debt)

		second, err := svc.Create(ctx, CreateOrderRequest{
			Customer: &CustomerContactInput{Phone: "0912345678"},
			Items:    []OrderItemInput{{ProductID: p.ID, Quantity: 2}},
		}, ledger.Meta{})
		require.NoError(t, err)
		assert.Equal(t, first.CustomerID, second.CustomerID)
		assert.Equal(t, valueobject.Money(3000), store.Customer(first.CustomerID).Debt)
	})

	t.Run("formatted phone resolves to the same customer", func(t *testing.T) {
		store := ledgertest.NewStore()
		p := ledgertest.SeedProduct(t, store, "Water 20L", 1000, 10, true)
		svc := newOrderService(t, store)

		first, err := svc.Create(ctx, CreateOrderRequest{
			Customer: &CustomerContactInput{Name: "Binh", Phone: "0912 345 678", Address: "12 Le Loi"},
			Items:    []OrderItemInput{{ProductID: p.ID, Quantity: 1}},
		}, ledger.Meta{})
		require.NoError(t, err)
		assert.Equal(t, "0912345678", store.Customer(first.CustomerID).Phone)

		for _, phone := range []string{"0912345678", "0912.345.678", " 0912-345-678 "} {
			next, err := svc.Create(ctx, CreateOrderRequest{
				Customer: &CustomerContactInput{Phone: phone},
				Items:    []OrderItemInput{{ProductID: p.ID, Quantity: 1}},
			}, ledger.Meta{})
			require.NoError(t, err, phone)
			assert.Equal(t, first.CustomerID, next.CustomerID, phone)
		}
		assert.Equal(t, valueobject.Money(4000), store.Customer(first.CustomerID).Debt)
	})

	t.Run("website order for a new phone needs name and address", func(t *testing.T) {
		store := ledgertest.NewStore()
		p := ledgertest.SeedProduct(t, store, "Water 20L", 1000, 10, true)
		svc := newOrderService(t, store)

		_, err := svc.Create(ctx, CreateOrderRequest{
			Customer: &CustomerContactInput{Phone: "0912345678"},
			Items:    []OrderItemInput{{ProductID: p.ID, Quantity: 1}},
		}, ledger.Meta{})
		assert.True(t, errors.Is(err, shared.ErrValidation))
		assert.Equal(t, int64(10), store.Product(p.ID).Stock)
	})

	t.Run("duplicate idempotency key is applied once", func(t *testing.T) {
		store := ledgertest.NewStore()
		p := ledgertest.SeedProduct(t, store, "Water 20L", 1000, 10, true)
		c := ledgertest.SeedCustomer(t, store, "An", "0901234567", partner.CustomerTypeRetail, 0)
		registry, err := infrastrategy.NewRegistryWithDefaults(nil)
		require.NoError(t, err)
		exec := ledger.NewExecutor(store, ledger.WithIdempotency(newMemoryIdempotency(), shared.DefaultIdempotencyConfig()))
		svc := NewOrderService(exec, store.Repositories(), registry, nil)

		req := CreateOrderRequest{CustomerID: &c.ID, Items: []OrderItemInput{{ProductID: p.ID, Quantity: 2}}}
		_, err = svc.Create(ctx, req, ledger.Meta{IdempotencyKey: "req-1"})
		require.NoError(t, err)
		_, err = svc.Create(ctx, req, ledger.Meta{IdempotencyKey: "req-1"})
		assert.True(t, errors.Is(err, shared.ErrDuplicateRequest))

		assert.Equal(t, int64(8), store.Product(p.ID).Stock)
		assert.Equal(t, valueobject.Money(2000), store.Customer(c.ID).Debt)
	})
}

func TestOrderService_ConcurrentOrdersForLastUnit(t *testing.T) {
	ctx := context.Background()
	store := ledgertest.NewStore()
	p := ledgertest.SeedProduct(t, store, "Water 20L", 1000, 1, true)
	c1 := ledgertest.SeedCustomer(t, store, "An", "0901234567", partner.CustomerTypeRetail, 0)
	c2 := ledgertest.SeedCustomer(t, store, "Binh", "0907654321", partner.CustomerTypeRetail, 0)
	svc := newOrderService(t, store)

	// Hold both first attempts at the commit point so that both have read
	// stock=1 before either writes.
	var arrived sync.WaitGroup
	arrived.Add(2)
	var commits atomic.Int32
	store.BeforeCommit = func() {
		if commits.Add(1) <= 2 {
			arrived.Done()
			arrived.Wait()
		}
	}

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, customerID := range []uuid.UUID{c1.ID, c2.ID} {
		wg.Add(1)
		go func(i int, customerID uuid.UUID) {
			defer wg.Done()
			_, errs[i] = svc.Create(ctx, CreateOrderRequest{
				CustomerID: &customerID,
				Items:      []OrderItemInput{{ProductID: p.ID, Quantity: 1}},
			}, ledger.Meta{})
		}(i, customerID)
	}
	wg.Wait()

	successes, insufficient := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, shared.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, int64(0), store.Product(p.ID).Stock)
	assert.Len(t, store.Movements(), 1)
	assert.Equal(t, valueobject.Money(1000), store.Customer(c1.ID).Debt+store.Customer(c2.ID).Debt)
}

func TestOrderService_UpdatePayment(t *testing.T) {
	ctx := context.Background()
	store := ledgertest.NewStore()
	p := ledgertest.SeedProduct(t, store, "Water 20L", 1000, 10, true)
	c := ledgertest.SeedCustomer(t, store, "An", "0901234567", partner.CustomerTypeRetail, 0)
	svc := newOrderService(t, store)
	order := placeOrder(t, svc, c.ID, OrderItemInput{ProductID: p.ID, Quantity: 3})

	resp, err := svc.UpdatePayment(ctx, order.ID, PaymentRequest{Amount: decimal.NewFromInt(1000)}, ledger.Meta{})
	require.NoError(t, err)
	assert.True(t, resp.PaidAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, resp.DebtRemaining.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, valueobject.Money(2000), store.Customer(c.ID).Debt)

	t.Run("overpayment leaves a credit balance", func(t *testing.T) {
		resp, err := svc.UpdatePayment(ctx, order.ID, PaymentRequest{Amount: decimal.NewFromInt(2500)}, ledger.Meta{})
		require.NoError(t, err)
		assert.True(t, resp.DebtRemaining.Equal(decimal.NewFromInt(-500)))
		assert.True(t, resp.Overpaid)

		customer := store.Customer(c.ID)
		assert.Equal(t, partner.BalanceStateCredit, customer.BalanceState())
		assert.Equal(t, valueobject.Money(500), customer.CreditBalance())
	})

	t.Run("non-positive and fractional amounts", func(t *testing.T) {
		_, err := svc.UpdatePayment(ctx, order.ID, PaymentRequest{Amount: decimal.Zero}, ledger.Meta{})
		assert.True(t, errors.Is(err, shared.ErrValidation))

		_, err = svc.UpdatePayment(ctx, order.ID, PaymentRequest{Amount: decimal.RequireFromString("10.5")}, ledger.Meta{})
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("amount beyond int64 is rejected, not truncated", func(t *testing.T) {
		before := store.Customer(c.ID).Debt
		_, err := svc.UpdatePayment(ctx, order.ID, PaymentRequest{Amount: decimal.RequireFromString("18446744073709552616")}, ledger.Meta{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
		assert.Equal(t, before, store.Customer(c.ID).Debt)

		got, err := svc.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.True(t, got.PaidAmount.Equal(decimal.NewFromInt(3500)))
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := svc.UpdatePayment(ctx, uuid.New(), PaymentRequest{Amount: decimal.NewFromInt(1)}, ledger.Meta{})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestOrderService_UpdateReturnable(t *testing.T) {
	ctx := context.Background()
	store := ledgertest.NewStore()
	p := ledgertest.SeedProduct(t, store, "Water 20L", 1000, 10, true)
	c := ledgertest.SeedCustomer(t, store, "An", "0901234567", partner.CustomerTypeRetail, 0)
	svc := newOrderService(t, store)
	order := placeOrder(t, svc, c.ID, OrderItemInput{ProductID: p.ID, Quantity: 3})

	t.Run("returning more than outstanding changes nothing", func(t *testing.T) {
		_, err := svc.UpdateReturnable(ctx, order.ID, ReturnRequest{Quantity: 4}, ledger.Meta{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrReturnExceedsOutstanding))

		stored := store.Order(order.ID)
		assert.Equal(t, int64(3), stored.ReturnableOut)
		assert.Equal(t, int64(0), stored.ReturnableIn)
		assert.Equal(t, int64(3), store.Customer(c.ID).EmptyDebt)
	})

	t.Run("partial returns accumulate", func(t *testing.T) {
		resp, err := svc.UpdateReturnable(ctx, order.ID, ReturnRequest{Quantity: 2}, ledger.Meta{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.ReturnableIn)
		assert.Equal(t, int64(1), store.Customer(c.ID).EmptyDebt)

		_, err = svc.UpdateReturnable(ctx, order.ID, ReturnRequest{Quantity: 2}, ledger.Meta{})
		assert.True(t, errors.Is(err, shared.ErrReturnExceedsOutstanding))

		resp, err = svc.UpdateReturnable(ctx, order.ID, ReturnRequest{Quantity: 1}, ledger.Meta{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.ReturnableIn)
		assert.Equal(t, int64(0), store.Customer(c.ID).EmptyDebt)
	})

	t.Run("quantity must be positive", func(t *testing.T) {
		_, err := svc.UpdateReturnable(ctx, order.ID, ReturnRequest{Quantity: 0}, ledger.Meta{})
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	store := ledgertest.NewStore()
	p := ledgertest.SeedProduct(t, store, "Water 20L", 1000, 10, true)
	c := ledgertest.SeedCustomer(t, store, "An", "0901234567", partner.CustomerTypeRetail, 0)
	svc := newOrderService(t, store)
	order := placeOrder(t, svc, c.ID, OrderItemInput{ProductID: p.ID, Quantity: 3})

	resp, err := svc.UpdateStatus(ctx, order.ID, UpdateStatusRequest{Status: "completed"}, ledger.Meta{})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, int64(7), store.Product(p.ID).Stock, "status changes never touch stock")
	assert.Equal(t, valueobject.Money(3000), store.Customer(c.ID).Debt)

	_, err = svc.UpdateStatus(ctx, order.ID, UpdateStatusRequest{Status: "canceled"}, ledger.Meta{})
	assert.True(t, errors.Is(err, shared.ErrInvalidTransition))
	assert.Equal(t, trade.StatusCompleted, store.Order(order.ID).Status)

	t.Run("payments and returns are still accepted after completion", func(t *testing.T) {
		_, err := svc.UpdatePayment(ctx, order.ID, PaymentRequest{Amount: decimal.NewFromInt(3000)}, ledger.Meta{})
		require.NoError(t, err)
		_, err = svc.UpdateReturnable(ctx, order.ID, ReturnRequest{Quantity: 3}, ledger.Meta{})
		require.NoError(t, err)
	})
}

func TestOrderService_List(t *testing.T) {
	ctx := context.Background()
	store := ledgertest.NewStore()
	p := ledgertest.SeedProduct(t, store, "Water 20L", 1000, 10, true)
	c1 := ledgertest.SeedCustomer(t, store, "An", "0901234567", partner.CustomerTypeRetail, 0)
	c2 := ledgertest.SeedCustomer(t, store, "Binh", "0907654321", partner.CustomerTypeRetail, 0)
	svc := newOrderService(t, store)
	placeOrder(t, svc, c1.ID, OrderItemInput{ProductID: p.ID, Quantity: 1})
	placeOrder(t, svc, c1.ID, OrderItemInput{ProductID: p.ID, Quantity: 1})
	placeOrder(t, svc, c2.ID, OrderItemInput{ProductID: p.ID, Quantity: 1})

	orders, total, err := svc.List(ctx, OrderListFilter{CustomerID: &c1.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, orders, 2)

	all, total, err := svc.List(ctx, OrderListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)
}

type memoryIdempotency struct {
	mu   sync.Mutex
	keys map[string]bool
}

func newMemoryIdempotency() *memoryIdempotency {
	return &memoryIdempotency{keys: make(map[string]bool)}
}

func (m *memoryIdempotency) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.keys[key] {
		return false, nil
	}
	m.keys[key] = true
	return true, nil
}

func (m *memoryIdempotency) IsProcessed(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.keys[key], nil
}

func (m *memoryIdempotency) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, key)
	return nil
}

func (m *memoryIdempotency) Close() error { return nil }

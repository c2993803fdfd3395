package finance

import (
	"context"
	"errors"
	"testing"

	"github.com/aquaflow/backend/internal/application/ledger"
	"github.com/aquaflow/backend/internal/application/ledger/ledgertest"
	"github.com/aquaflow/backend/internal/domain/catalog"
	"github.com/aquaflow/backend/internal/domain/partner"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
	"github.com/aquaflow/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store    *ledgertest.Store
	svc      *ReconciliationService
	customer *partner.Customer
	order    *trade.Order
}

// newFixture seeds a customer holding one placed order for three
// returnable bottles at 1000 each
func newFixture(t *testing.T) fixture {
	t.Helper()
	store := ledgertest.NewStore()
	product := ledgertest.SeedProduct(t, store, "Water 20L", 1000, 10, true)
	customer := ledgertest.SeedCustomer(t, store, "An", "0901234567", partner.CustomerTypeRetail, 0)

	order := placedOrder(t, customer, product, 3)
	store.AddOrder(order)
	require.NoError(t, customer.ChargeDebt(order.TotalAmount, order.ID))
	require.NoError(t, customer.AddEmptyDebt(order.ReturnableOut))
	customer.ClearDomainEvents()
	store.AddCustomer(customer)

	return fixture{
		store:    store,
		svc:      NewReconciliationService(ledger.NewExecutor(store), store.Repositories(), nil),
		customer: customer,
		order:    order,
	}
}

func placedOrder(t *testing.T, c *partner.Customer, p *catalog.Product, qty int64) *trade.Order {
	t.Helper()
	order := trade.NewOrder(c, "", nil)
	require.NoError(t, order.AddItem(p, qty))
	require.NoError(t, order.Place())
	order.ClearDomainEvents()
	return order
}

func TestReconciliationService_RecordTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("payment against an order", func(t *testing.T) {
		f := newFixture(t)
		resp, err := f.svc.RecordTransaction(ctx, RecordTransactionRequest{
			CustomerID: f.customer.ID,
			OrderID:    &f.order.ID,
			Amount:     decimal.NewFromInt(1000),
			Method:     "momo",
			Note:       "transfer",
		}, ledger.Meta{})
		require.NoError(t, err)
		assert.Equal(t, "momo", resp.Method)
		assert.True(t, resp.CustomerDebt.Equal(decimal.NewFromInt(2000)))

		assert.Equal(t, valueobject.Money(1000), f.store.Order(f.order.ID).PaidAmount)
		assert.Equal(t, valueobject.Money(2000), f.store.Customer(f.customer.ID).Debt)
		require.Len(t, f.store.Payments(), 1)
	})

	t.Run("payment on account defaults to cash and leaves orders alone", func(t *testing.T) {
		f := newFixture(t)
		resp, err := f.svc.RecordTransaction(ctx, RecordTransactionRequest{
			CustomerID: f.customer.ID,
			Amount:     decimal.NewFromInt(5000),
		}, ledger.Meta{})
		require.NoError(t, err)
		assert.Equal(t, "cash", resp.Method)

		assert.Equal(t, valueobject.Money(0), f.store.Order(f.order.ID).PaidAmount)
		customer := f.store.Customer(f.customer.ID)
		assert.Equal(t, valueobject.Money(-2000), customer.Debt)
		assert.Equal(t, partner.BalanceStateCredit, customer.BalanceState())
	})

	t.Run("order of another customer is rejected", func(t *testing.T) {
		f := newFixture(t)
		other := ledgertest.SeedCustomer(t, f.store, "Binh", "0907654321", partner.CustomerTypeRetail, 0)
		_, err := f.svc.RecordTransaction(ctx, RecordTransactionRequest{
			CustomerID: other.ID,
			OrderID:    &f.order.ID,
			Amount:     decimal.NewFromInt(1000),
		}, ledger.Meta{})
		assert.True(t, errors.Is(err, shared.ErrValidation))
		assert.Empty(t, f.store.Payments())
		assert.Equal(t, valueobject.Money(0), f.store.Customer(other.ID).Debt)
	})

	t.Run("invalid input", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.RecordTransaction(ctx, RecordTransactionRequest{
			CustomerID: f.customer.ID, Amount: decimal.NewFromInt(-5),
		}, ledger.Meta{})
		assert.True(t, errors.Is(err, shared.ErrValidation))

		_, err = f.svc.RecordTransaction(ctx, RecordTransactionRequest{
			CustomerID: f.customer.ID, Amount: decimal.NewFromInt(5), Method: "cheque",
		}, ledger.Meta{})
		assert.True(t, errors.Is(err, shared.ErrValidation))

		_, err = f.svc.RecordTransaction(ctx, RecordTransactionRequest{
			CustomerID: uuid.New(), Amount: decimal.NewFromInt(5),
		}, ledger.Meta{})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		assert.Empty(t, f.store.Payments())
	})
}

func TestReconciliationService_RecordEmptyReturn(t *testing.T) {
	ctx := context.Background()

	t.Run("delivered and returned net against empty debt", func(t *testing.T) {
		f := newFixture(t)
		resp, err := f.svc.RecordEmptyReturn(ctx, RecordEmptyReturnRequest{
			CustomerID: f.customer.ID,
			Delivered:  2,
			Returned:   4,
		}, ledger.Meta{})
		require.NoError(t, err)
		assert.Equal(t, int64(-2), resp.NetChange)
		assert.Equal(t, int64(1), resp.CustomerEmptyDebt)
		assert.Equal(t, int64(1), f.store.Customer(f.customer.ID).EmptyDebt)
		assert.Len(t, f.store.EmptyReturns(), 1)
	})

	t.Run("returned containers count against the order", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.RecordEmptyReturn(ctx, RecordEmptyReturnRequest{
			CustomerID: f.customer.ID,
			OrderID:    &f.order.ID,
			Returned:   2,
		}, ledger.Meta{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), f.store.Order(f.order.ID).ReturnableIn)
		assert.Equal(t, int64(1), f.store.Customer(f.customer.ID).EmptyDebt)
	})

	t.Run("returning more than owed is rejected", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.RecordEmptyReturn(ctx, RecordEmptyReturnRequest{
			CustomerID: f.customer.ID,
			Returned:   5,
		}, ledger.Meta{})
		assert.True(t, errors.Is(err, shared.ErrReturnExceedsOutstanding))
		assert.Equal(t, int64(3), f.store.Customer(f.customer.ID).EmptyDebt)
		assert.Empty(t, f.store.EmptyReturns())
	})

	t.Run("order bound applies even when the customer owes more", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.RecordEmptyReturn(ctx, RecordEmptyReturnRequest{
			CustomerID: f.customer.ID,
			OrderID:    &f.order.ID,
			Delivered:  5,
			Returned:   4,
		}, ledger.Meta{})
		assert.True(t, errors.Is(err, shared.ErrReturnExceedsOutstanding))
		assert.Equal(t, int64(0), f.store.Order(f.order.ID).ReturnableIn)
		assert.Equal(t, int64(3), f.store.Customer(f.customer.ID).EmptyDebt)
	})

	t.Run("empty record is rejected", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.RecordEmptyReturn(ctx, RecordEmptyReturnRequest{CustomerID: f.customer.ID}, ledger.Meta{})
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

func TestReconciliationService_History(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		_, err := f.svc.RecordTransaction(ctx, RecordTransactionRequest{
			CustomerID: f.customer.ID, Amount: decimal.NewFromInt(100),
		}, ledger.Meta{})
		require.NoError(t, err)
	}
	_, err := f.svc.RecordEmptyReturn(ctx, RecordEmptyReturnRequest{CustomerID: f.customer.ID, Returned: 1}, ledger.Meta{})
	require.NoError(t, err)

	txs, err := f.svc.ListTransactions(ctx, f.customer.ID, HistoryFilter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), txs.Total)
	assert.Len(t, txs.Items, 2)
	assert.Equal(t, 2, txs.TotalPages)

	returns, err := f.svc.ListEmptyReturns(ctx, f.customer.ID, HistoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), returns.Total)
	assert.Equal(t, int64(1), returns.Items[0].Returned)

	_, err = f.svc.ListTransactions(ctx, uuid.New(), HistoryFilter{})
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

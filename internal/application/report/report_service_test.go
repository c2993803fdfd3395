package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aquaflow/backend/internal/application/ledger"
	"github.com/aquaflow/backend/internal/application/ledger/ledgertest"
	apptrade "github.com/aquaflow/backend/internal/application/trade"
	"github.com/aquaflow/backend/internal/domain/partner"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportFixture struct {
	store     *ledgertest.Store
	orders    *apptrade.OrderService
	purchases *apptrade.PurchaseService
	reports   *ReportService
	today     PeriodRequest
}

func newReportFixture(t *testing.T) reportFixture {
	t.Helper()
	store := ledgertest.NewStore()
	exec := ledger.NewExecutor(store)
	today := time.Now().Format("2006-01-02")
	return reportFixture{
		store:     store,
		orders:    apptrade.NewOrderService(exec, store.Repositories(), nil, nil),
		purchases: apptrade.NewPurchaseService(exec, store.Repositories(), nil),
		reports:   NewReportService(store.Repositories(), nil),
		today:     PeriodRequest{StartDate: today, EndDate: today},
	}
}

func (f reportFixture) order(t *testing.T, customerID, productID uuid.UUID, qty int64) uuid.UUID {
	t.Helper()
	resp, err := f.orders.Create(context.Background(), apptrade.CreateOrderRequest{
		CustomerID: &customerID,
		Items:      []apptrade.OrderItemInput{{ProductID: productID, Quantity: qty}},
	}, ledger.Meta{})
	require.NoError(t, err)
	return resp.ID
}

func TestReportService_CustomerDebt(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)
	p := ledgertest.SeedProduct(t, f.store, "Water 20L", 1000, 100, true)
	an := ledgertest.SeedCustomer(t, f.store, "An", "0901234567", partner.CustomerTypeRetail, 0)
	binh := ledgertest.SeedCustomer(t, f.store, "Binh", "0907654321", partner.CustomerTypeRetail, 0)
	ledgertest.SeedCustomer(t, f.store, "Chi", "0909999999", partner.CustomerTypeRetail, 0)

	f.order(t, an.ID, p.ID, 2)
	paid := f.order(t, an.ID, p.ID, 1)
	f.order(t, binh.ID, p.ID, 5)
	_, err := f.orders.UpdatePayment(ctx, paid, apptrade.PaymentRequest{Amount: decimal.NewFromInt(1000)}, ledger.Meta{})
	require.NoError(t, err)

	r, err := f.reports.CustomerDebt(ctx, f.today)
	require.NoError(t, err)
	assert.True(t, r.TotalDebt.Equal(decimal.NewFromInt(7000)))
	assert.Equal(t, 2, r.TotalCustomers)
	require.Len(t, r.Customers, 2)
	assert.Equal(t, binh.ID, r.Customers[0].CustomerID)
	assert.Equal(t, 1, r.Customers[1].PendingOrders)
	assert.Equal(t, int64(8), r.TotalEmptyDebt)

	assert.Equal(t, 2, r.PendingOrders)
	require.Len(t, r.DebtByTime, 1)
	assert.True(t, r.DebtByTime[0].Amount.Equal(decimal.NewFromInt(7000)))
}

func TestReportService_SupplierDebt(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)
	p := ledgertest.SeedProduct(t, f.store, "Water 20L", 1000, 0, true)
	source := ledgertest.SeedSupplier(t, f.store, "Nguon Song")
	ledgertest.SeedSupplier(t, f.store, "No Purchases")

	for _, qty := range []int64{10, 4} {
		_, err := f.purchases.Create(ctx, apptrade.CreatePurchaseRequest{
			SupplierID: source.ID,
			Items:      []apptrade.PurchaseItemInput{{ProductID: p.ID, Quantity: qty, UnitPrice: decimal.NewFromInt(500)}},
		}, ledger.Meta{})
		require.NoError(t, err)
	}

	r, err := f.reports.SupplierDebt(ctx, f.today)
	require.NoError(t, err)
	assert.True(t, r.TotalDebt.Equal(decimal.NewFromInt(7000)))
	require.Len(t, r.Suppliers, 1)
	assert.Equal(t, "Nguon Song", r.Suppliers[0].SupplierName)
	assert.Equal(t, 2, r.Suppliers[0].PendingPurchases)
	assert.NotNil(t, r.Suppliers[0].LastPurchaseDate)
	assert.Equal(t, 2, r.PendingPurchases)
}

func TestReportService_Sales(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)
	p := ledgertest.SeedProduct(t, f.store, "Water 20L", 1000, 100, true)
	an := ledgertest.SeedCustomer(t, f.store, "An", "0901234567", partner.CustomerTypeRetail, 0)

	done := f.order(t, an.ID, p.ID, 3)
	f.order(t, an.ID, p.ID, 7)
	_, err := f.orders.UpdateStatus(ctx, done, apptrade.UpdateStatusRequest{Status: "completed"}, ledger.Meta{})
	require.NoError(t, err)

	s, err := f.reports.Sales(ctx, f.today)
	require.NoError(t, err)
	assert.Equal(t, 1, s.TotalOrders)
	assert.True(t, s.TotalSales.Equal(decimal.NewFromInt(3000)))
	assert.True(t, s.TotalDebt.Equal(decimal.NewFromInt(3000)))
	require.Len(t, s.TopProducts, 1)
	assert.Equal(t, int64(3), s.TopProducts[0].Quantity)
}

func TestReportService_Period(t *testing.T) {
	svc := NewReportService(nil, nil)
	svc.now = func() time.Time { return time.Date(2024, time.March, 17, 10, 0, 0, 0, time.UTC) }

	p, err := svc.period(PeriodRequest{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, 17, p.End.Day())
	assert.Equal(t, 23, p.End.Hour())

	p, err = svc.period(PeriodRequest{StartDate: "2024-02-01", EndDate: "2024-02-29"})
	require.NoError(t, err)
	assert.Equal(t, time.February, p.Start.Month())
	assert.Equal(t, 29, p.End.Day())

	_, err = svc.period(PeriodRequest{StartDate: "2024-03-10", EndDate: "2024-03-01"})
	assert.True(t, errors.Is(err, shared.ErrValidation))

	_, err = svc.period(PeriodRequest{StartDate: "10/03/2024"})
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestReportService_Revenue(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)
	p := ledgertest.SeedProduct(t, f.store, "Water 20L", 1000, 100, true)
	an := ledgertest.SeedCustomer(t, f.store, "An", "0901234567", partner.CustomerTypeRetail, 0)

	done := f.order(t, an.ID, p.ID, 3)
	f.order(t, an.ID, p.ID, 7)
	_, err := f.orders.UpdatePayment(ctx, done, apptrade.PaymentRequest{Amount: decimal.NewFromInt(1000)}, ledger.Meta{})
	require.NoError(t, err)
	_, err = f.orders.UpdateStatus(ctx, done, apptrade.UpdateStatusRequest{Status: "completed"}, ledger.Meta{})
	require.NoError(t, err)

	t.Run("daily", func(t *testing.T) {
		r, err := f.reports.DailyRevenue(ctx, DailyRevenueRequest{Date: f.today.StartDate})
		require.NoError(t, err)
		assert.Equal(t, f.today.StartDate, r.Date)
		assert.Equal(t, 1, r.TotalOrders)
		assert.True(t, r.TotalRevenue.Equal(decimal.NewFromInt(3000)))
		assert.True(t, r.TotalDebt.Equal(decimal.NewFromInt(2000)))
		require.Len(t, r.Orders, 1)
		assert.Equal(t, done, r.Orders[0].ID)

		r, err = f.reports.DailyRevenue(ctx, DailyRevenueRequest{})
		require.NoError(t, err)
		assert.Equal(t, 1, r.TotalOrders)

		_, err = f.reports.DailyRevenue(ctx, DailyRevenueRequest{Date: "yesterday"})
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("monthly", func(t *testing.T) {
		r, err := f.reports.MonthlyRevenue(ctx, MonthlyRevenueRequest{})
		require.NoError(t, err)
		now := time.Now()
		assert.Equal(t, now.Year(), r.Year)
		assert.Equal(t, int(now.Month()), r.Month)
		assert.Equal(t, 1, r.TotalOrders)
		assert.Equal(t, 1, r.DailyStats[now.Day()-1].TotalOrders)

		other, err := f.reports.MonthlyRevenue(ctx, MonthlyRevenueRequest{Year: 2001, Month: 2})
		require.NoError(t, err)
		assert.Len(t, other.DailyStats, 28)
		assert.Zero(t, other.TotalOrders)
	})
}

func TestReportService_BestSelling(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)
	water := ledgertest.SeedProduct(t, f.store, "Water 20L", 1000, 100, true)
	cup := ledgertest.SeedProduct(t, f.store, "Cup", 200, 100, false)
	an := ledgertest.SeedCustomer(t, f.store, "An", "0901234567", partner.CustomerTypeRetail, 0)

	complete := func(productID uuid.UUID, qty int64) {
		t.Helper()
		id := f.order(t, an.ID, productID, qty)
		_, err := f.orders.UpdateStatus(ctx, id, apptrade.UpdateStatusRequest{Status: "completed"}, ledger.Meta{})
		require.NoError(t, err)
	}
	complete(water.ID, 2)
	complete(water.ID, 3)
	complete(cup.ID, 4)
	f.order(t, an.ID, cup.ID, 50)

	got, err := f.reports.BestSelling(ctx, BestSellingRequest{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, water.ID, got[0].ProductID)
	assert.Equal(t, int64(5), got[0].Quantity)
	assert.Equal(t, 2, got[0].OrderCount)
	assert.Equal(t, "bottle", got[0].Unit)
	assert.Equal(t, int64(4), got[1].Quantity)

	top, err := f.reports.BestSelling(ctx, BestSellingRequest{Limit: 1, StartDate: f.today.StartDate})
	require.NoError(t, err)
	require.Len(t, top, 1)

	none, err := f.reports.BestSelling(ctx, BestSellingRequest{EndDate: "2001-01-01"})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.reports.BestSelling(ctx, BestSellingRequest{StartDate: "2024-03-10", EndDate: "2024-03-01"})
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestReportService_Dashboard(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)
	p := ledgertest.SeedProduct(t, f.store, "Water 20L", 1000, 100, true)
	an := ledgertest.SeedCustomer(t, f.store, "An", "0901234567", partner.CustomerTypeRetail, 0)
	ledgertest.SeedCustomer(t, f.store, "Binh", "0907654321", partner.CustomerTypeRetail, 0)

	f.order(t, an.ID, p.ID, 2)
	dropped := f.order(t, an.ID, p.ID, 9)
	_, err := f.orders.UpdateStatus(ctx, dropped, apptrade.UpdateStatusRequest{Status: "canceled"}, ledger.Meta{})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		f.order(t, an.ID, p.ID, 1)
	}

	d, err := f.reports.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), d.Customers)
	assert.Equal(t, int64(1), d.Products)
	assert.Equal(t, int64(7), d.Orders)
	assert.True(t, d.Revenue.Equal(decimal.NewFromInt(7000)))

	week := 0
	for _, n := range d.OrdersByDay.Data {
		week += n
	}
	assert.Equal(t, 6, week, "the canceled order is not counted")
	assert.Equal(t, []string{"Water 20L"}, d.RevenueByProduct.Labels)
	assert.Len(t, d.RecentOrders, 5)
}

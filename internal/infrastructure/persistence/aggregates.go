package persistence

import (
	"context"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/aquaflow/backend/internal/domain/trade"
	"github.com/aquaflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// aggregateTime scans the result of MAX() over a timestamp column. Postgres
// returns a time.Time; SQLite loses the column type and returns text.
type aggregateTime struct {
	Time  time.Time
	Valid bool
}

var aggregateTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Scan implements sql.Scanner
func (t *aggregateTime) Scan(value any) error {
	var raw string
	switch v := value.(type) {
	case nil:
		t.Time, t.Valid = time.Time{}, false
		return nil
	case time.Time:
		t.Time, t.Valid = v, true
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into a timestamp", value)
	}
	for _, layout := range aggregateTimeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time, t.Valid = parsed, true
			return nil
		}
	}
	return fmt.Errorf("cannot parse timestamp %q", raw)
}

// Value implements driver.Valuer
func (t aggregateTime) Value() (driver.Value, error) {
	if !t.Valid {
		return nil, nil
	}
	return t.Time, nil
}

func (t aggregateTime) ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

type customerOrderStatsRow struct {
	CustomerID    uuid.UUID
	OrderCount    int64
	OwingOrders   int64
	LastOrderDate aggregateTime
}

// StatsByCustomer aggregates the orders of the given customers with one
// GROUP BY query
func (r *GormOrderRepository) StatsByCustomer(ctx context.Context, customerIDs []uuid.UUID) (map[uuid.UUID]trade.CustomerOrderStats, error) {
	out := make(map[uuid.UUID]trade.CustomerOrderStats, len(customerIDs))
	if len(customerIDs) == 0 {
		return out, nil
	}
	var rows []customerOrderStatsRow
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Select(`customer_id,
			COUNT(*) AS order_count,
			SUM(CASE WHEN status <> ? AND total_amount > paid_amount THEN 1 ELSE 0 END) AS owing_orders,
			MAX(order_date) AS last_order_date`, trade.StatusCanceled).
		Where("customer_id IN ?", customerIDs).
		Group("customer_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.CustomerID] = trade.CustomerOrderStats{
			CustomerID:    row.CustomerID,
			OrderCount:    int(row.OrderCount),
			OwingOrders:   int(row.OwingOrders),
			LastOrderDate: row.LastOrderDate.ptr(),
		}
	}
	return out, nil
}

type supplierPurchaseStatsRow struct {
	SupplierID       uuid.UUID
	PurchaseCount    int64
	Debt             decimal.Decimal
	PendingPurchases int64
	LastPurchaseDate aggregateTime
}

// StatsBySupplier aggregates every supplier's purchases with one GROUP BY
// query. Debt is summed by the database as numeric, so it cannot wrap.
func (r *GormPurchaseRepository) StatsBySupplier(ctx context.Context) (map[uuid.UUID]trade.SupplierPurchaseStats, error) {
	var rows []supplierPurchaseStatsRow
	err := r.db.WithContext(ctx).Model(&models.PurchaseModel{}).
		Select(`supplier_id,
			COUNT(*) AS purchase_count,
			SUM(CASE WHEN status <> ? THEN total_amount - paid_amount ELSE 0 END) AS debt,
			SUM(CASE WHEN status <> ? AND total_amount > paid_amount THEN 1 ELSE 0 END) AS pending_purchases,
			MAX(purchase_date) AS last_purchase_date`, trade.StatusCanceled, trade.StatusCanceled).
		Group("supplier_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]trade.SupplierPurchaseStats, len(rows))
	for _, row := range rows {
		out[row.SupplierID] = trade.SupplierPurchaseStats{
			SupplierID:       row.SupplierID,
			PurchaseCount:    int(row.PurchaseCount),
			Debt:             row.Debt,
			PendingPurchases: int(row.PendingPurchases),
			LastPurchaseDate: row.LastPurchaseDate.ptr(),
		}
	}
	return out, nil
}

// FindRecent returns the newest orders with their items
func (r *GormOrderRepository) FindRecent(ctx context.Context, limit int) ([]trade.Order, error) {
	return r.find(r.withItems(ctx).Order("order_date desc, id").Limit(limit))
}

func salesWhere(query *gorm.DB, prefix string, q trade.SalesQuery) *gorm.DB {
	query = query.Where(prefix+"status IN ?", q.EffectiveStatuses())
	if !q.From.IsZero() {
		query = query.Where(prefix+"order_date >= ?", q.From)
	}
	if !q.To.IsZero() {
		query = query.Where(prefix+"order_date <= ?", q.To)
	}
	return query
}

type revenueRow struct {
	Orders  int64
	Revenue decimal.Decimal
	Paid    decimal.Decimal
	Debt    decimal.Decimal
}

// Revenue sums the headers of the orders the query selects
func (r *GormOrderRepository) Revenue(ctx context.Context, q trade.SalesQuery) (trade.RevenueTotal, error) {
	var row revenueRow
	err := salesWhere(r.db.WithContext(ctx).Model(&models.OrderModel{}), "", q).
		Select(`COUNT(*) AS orders,
			COALESCE(SUM(total_amount), 0) AS revenue,
			COALESCE(SUM(paid_amount), 0) AS paid,
			COALESCE(SUM(total_amount - paid_amount), 0) AS debt`).
		Scan(&row).Error
	if err != nil {
		return trade.RevenueTotal{}, err
	}
	return trade.RevenueTotal{Orders: int(row.Orders), Revenue: row.Revenue, Paid: row.Paid, Debt: row.Debt}, nil
}

type productSalesRow struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int64
	Revenue     decimal.Decimal
	OrderCount  int64
}

// SalesByProduct groups the order lines of the selected orders by product
func (r *GormOrderRepository) SalesByProduct(ctx context.Context, q trade.SalesQuery) ([]trade.ProductSalesTotal, error) {
	var rows []productSalesRow
	err := salesWhere(r.db.WithContext(ctx).Table("order_items AS oi").Joins("JOIN orders o ON o.id = oi.order_id"), "o.", q).
		Select(`oi.product_id,
			MAX(oi.product_name) AS product_name,
			SUM(oi.quantity) AS quantity,
			SUM(oi.quantity * oi.unit_price) AS revenue,
			COUNT(DISTINCT oi.order_id) AS order_count`).
		Group("oi.product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]trade.ProductSalesTotal, len(rows))
	for i, row := range rows {
		out[i] = trade.ProductSalesTotal{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			Revenue:     row.Revenue,
			OrderCount:  int(row.OrderCount),
		}
	}
	trade.SortProductSales(out)
	return out, nil
}

package report

import (
	"time"

	"github.com/aquaflow/backend/internal/domain/catalog"
	"github.com/aquaflow/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RevenueOrder is one completed order in a day's revenue
type RevenueOrder struct {
	ID       uuid.UUID       `json:"id"`
	Customer string          `json:"customer"`
	Total    decimal.Decimal `json:"total"`
	Paid     decimal.Decimal `json:"paid"`
	Debt     decimal.Decimal `json:"debt"`
	Date     time.Time       `json:"date"`
}

// RevenueStats totals a set of completed orders
type RevenueStats struct {
	TotalOrders  int             `json:"total_orders"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	TotalDebt    decimal.Decimal `json:"total_debt"`
}

func newRevenueStats() RevenueStats {
	return RevenueStats{TotalRevenue: decimal.Zero, TotalPaid: decimal.Zero, TotalDebt: decimal.Zero}
}

func (s *RevenueStats) add(o *trade.Order) {
	s.TotalOrders++
	s.TotalRevenue = s.TotalRevenue.Add(o.TotalAmount.Decimal())
	s.TotalPaid = s.TotalPaid.Add(o.PaidAmount.Decimal())
	s.TotalDebt = s.TotalDebt.Add(o.DebtRemaining().Decimal())
}

// DailyRevenue lists the completed orders of one day
type DailyRevenue struct {
	Date string `json:"date"`
	RevenueStats
	Orders []RevenueOrder `json:"orders"`
}

// BuildDailyRevenue totals the completed orders placed within the day
func BuildDailyRevenue(day Period, orders []trade.Order) DailyRevenue {
	r := DailyRevenue{
		Date:         day.Start.Format(DayLayout),
		RevenueStats: newRevenueStats(),
		Orders:       []RevenueOrder{},
	}
	for i := range orders {
		o := &orders[i]
		if o.Status != trade.StatusCompleted || !day.Contains(o.OrderDate) {
			continue
		}
		r.add(o)
		r.Orders = append(r.Orders, RevenueOrder{
			ID:       o.ID,
			Customer: o.CustomerName,
			Total:    o.TotalAmount.Decimal(),
			Paid:     o.PaidAmount.Decimal(),
			Debt:     o.DebtRemaining().Decimal(),
			Date:     o.OrderDate,
		})
	}
	return r
}

// DayRevenue is one calendar day of a monthly revenue report
type DayRevenue struct {
	Date string `json:"date"`
	RevenueStats
}

// MonthlyRevenue totals a month of completed orders with a row for every day
type MonthlyRevenue struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	RevenueStats
	DailyStats []DayRevenue `json:"daily_stats"`
}

// MonthPeriod covers the whole calendar month in loc
func MonthPeriod(year int, month time.Month, loc *time.Location) Period {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return NewPeriod(first, first.AddDate(0, 1, -1))
}

// BuildMonthlyRevenue buckets the month's completed orders by day. Days
// without sales are present with zero totals.
func BuildMonthlyRevenue(year int, month time.Month, loc *time.Location, orders []trade.Order) MonthlyRevenue {
	period := MonthPeriod(year, month, loc)
	days := period.End.Day()
	r := MonthlyRevenue{
		Year:         year,
		Month:        int(month),
		RevenueStats: newRevenueStats(),
		DailyStats:   make([]DayRevenue, days),
	}
	for d := 0; d < days; d++ {
		r.DailyStats[d] = DayRevenue{
			Date:         period.Start.AddDate(0, 0, d).Format(DayLayout),
			RevenueStats: newRevenueStats(),
		}
	}
	for i := range orders {
		o := &orders[i]
		if o.Status != trade.StatusCompleted || !period.Contains(o.OrderDate) {
			continue
		}
		r.add(o)
		r.DailyStats[o.OrderDate.In(loc).Day()-1].add(o)
	}
	return r
}

// BestSeller ranks a product by quantity sold. Unit and Price are the
// product's current values and are empty once the product is deleted.
type BestSeller struct {
	ProductID   uuid.UUID        `json:"product_id"`
	ProductName string           `json:"product_name"`
	Quantity    int64            `json:"total_quantity"`
	Revenue     decimal.Decimal  `json:"total_revenue"`
	OrderCount  int              `json:"order_count"`
	Unit        string           `json:"unit,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// BuildBestSellers keeps the first limit totals and joins the current
// product details
func BuildBestSellers(totals []trade.ProductSalesTotal, products []catalog.Product, limit int) []BestSeller {
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	if limit > 0 && len(totals) > limit {
		totals = totals[:limit]
	}
	out := make([]BestSeller, len(totals))
	for i, t := range totals {
		out[i] = BestSeller{
			ProductID:   t.ProductID,
			ProductName: t.ProductName,
			Quantity:    t.Quantity,
			Revenue:     t.Revenue,
			OrderCount:  t.OrderCount,
		}
		if p := byID[t.ProductID]; p != nil {
			price := p.Price.Decimal()
			out[i].Unit = p.Unit
			out[i].Price = &price
		}
	}
	return out
}

// WeekdayLabels name the dashboard's weekday buckets, Monday first
var WeekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekdayCounts is a chart of order counts per weekday
type WeekdayCounts struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// ProductRevenueChart is a chart of revenue per product
type ProductRevenueChart struct {
	Labels []string          `json:"labels"`
	Data   []decimal.Decimal `json:"data"`
}

// RecentOrder is a row of the dashboard's latest orders table
type RecentOrder struct {
	ID           uuid.UUID       `json:"id"`
	CustomerName string          `json:"customer_name"`
	OrderDate    time.Time       `json:"order_date"`
	Status       trade.Status    `json:"status"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// Dashboard is the landing page summary
type Dashboard struct {
	Customers        int64               `json:"customers"`
	Products         int64               `json:"products"`
	Orders           int64               `json:"orders"`
	Revenue          decimal.Decimal     `json:"revenue"`
	OrdersByDay      WeekdayCounts       `json:"orders_by_day"`
	RevenueByProduct ProductRevenueChart `json:"revenue_by_product"`
	RecentOrders     []RecentOrder       `json:"recent_orders"`
}

// DashboardInput carries what the dashboard is built from. WeekOrders are
// the orders of the trailing week; canceled ones are not counted.
type DashboardInput struct {
	Customers    int64
	Products     int64
	Orders       int64
	Revenue      trade.RevenueTotal
	WeekOrders   []trade.Order
	ProductSales []trade.ProductSalesTotal
	Recent       []trade.Order
}

// BuildDashboard assembles the dashboard charts
func BuildDashboard(in DashboardInput) Dashboard {
	d := Dashboard{
		Customers:        in.Customers,
		Products:         in.Products,
		Orders:           in.Orders,
		Revenue:          in.Revenue.Revenue,
		OrdersByDay:      WeekdayCounts{Labels: WeekdayLabels, Data: make([]int, len(WeekdayLabels))},
		RevenueByProduct: ProductRevenueChart{Labels: []string{}, Data: []decimal.Decimal{}},
		RecentOrders:     make([]RecentOrder, len(in.Recent)),
	}
	for i := range in.WeekOrders {
		o := &in.WeekOrders[i]
		if o.Status == trade.StatusCanceled {
			continue
		}
		// time.Weekday starts on Sunday
		d.OrdersByDay.Data[(int(o.OrderDate.Weekday())+6)%7]++
	}
	for _, p := range in.ProductSales {
		d.RevenueByProduct.Labels = append(d.RevenueByProduct.Labels, p.ProductName)
		d.RevenueByProduct.Data = append(d.RevenueByProduct.Data, p.Revenue)
	}
	for i := range in.Recent {
		o := &in.Recent[i]
		d.RecentOrders[i] = RecentOrder{
			ID:           o.ID,
			CustomerName: o.CustomerName,
			OrderDate:    o.OrderDate,
			Status:       o.Status,
			TotalAmount:  o.TotalAmount.Decimal(),
		}
	}
	return d
}

package report

import (
	"sort"
	"time"

	"github.com/aquaflow/backend/internal/domain/partner"
	"github.com/aquaflow/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerDebtLine is one owing customer on the customer debt report
type CustomerDebtLine struct {
	CustomerID    uuid.UUID       `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Debt          decimal.Decimal `json:"debt"`
	EmptyDebt     int64           `json:"empty_debt"`
	LastOrderDate *time.Time      `json:"last_order_date,omitempty"`
	PendingOrders int             `json:"pending_orders"`
}

// CustomerDebtReport lists customers with debt above zero, largest first.
// DebtByTime buckets the unpaid remainder of orders placed in the period.
type CustomerDebtReport struct {
	Period         Period             `json:"period"`
	TotalDebt      decimal.Decimal    `json:"total_debt"`
	TotalEmptyDebt int64              `json:"total_empty_debt"`
	TotalCustomers int                `json:"total_customers"`
	PendingOrders  int                `json:"pending_orders"`
	Customers      []CustomerDebtLine `json:"customers"`
	DebtByTime     []DailyAmount      `json:"debt_by_time"`
}

// BuildCustomerDebtReport assembles the report from owing customers, their
// per-customer order stats and the orders placed in the period
func BuildCustomerDebtReport(period Period, customers []partner.Customer, stats map[uuid.UUID]trade.CustomerOrderStats, periodOrders []trade.Order) CustomerDebtReport {
	r := CustomerDebtReport{Period: period, TotalDebt: decimal.Zero, Customers: make([]CustomerDebtLine, 0, len(customers))}
	for i := range customers {
		c := &customers[i]
		if !c.Debt.IsPositive() {
			continue
		}
		st := stats[c.ID]
		r.Customers = append(r.Customers, CustomerDebtLine{
			CustomerID:    c.ID,
			CustomerName:  c.Name,
			CustomerPhone: c.Phone,
			Debt:          c.Debt.Decimal(),
			EmptyDebt:     c.EmptyDebt,
			LastOrderDate: st.LastOrderDate,
			PendingOrders: st.OwingOrders,
		})
		r.TotalDebt = r.TotalDebt.Add(c.Debt.Decimal())
		r.TotalEmptyDebt += c.EmptyDebt
	}
	sort.SliceStable(r.Customers, func(i, j int) bool {
		return r.Customers[i].Debt.GreaterThan(r.Customers[j].Debt)
	})
	r.TotalCustomers = len(r.Customers)

	buckets := dailyBuckets{}
	for i := range periodOrders {
		o := &periodOrders[i]
		if !period.Contains(o.OrderDate) || !o.Owes() {
			continue
		}
		r.PendingOrders++
		buckets.add(o.OrderDate, o.DebtRemaining().Decimal())
	}
	r.DebtByTime = buckets.sorted()
	return r
}

// SupplierDebtLine is one supplier the business still owes
type SupplierDebtLine struct {
	SupplierID       uuid.UUID       `json:"supplier_id"`
	SupplierName     string          `json:"supplier_name"`
	SupplierPhone    string          `json:"supplier_phone"`
	Debt             decimal.Decimal `json:"debt"`
	LastPurchaseDate *time.Time      `json:"last_purchase_date,omitempty"`
	PendingPurchases int             `json:"pending_purchases"`
}

// SupplierDebtReport lists suppliers with a positive derived debt, largest
// first. Supplier debt is never stored; it is summed from purchases.
type SupplierDebtReport struct {
	Period           Period             `json:"period"`
	TotalDebt        decimal.Decimal    `json:"total_debt"`
	TotalSuppliers   int                `json:"total_suppliers"`
	PendingPurchases int                `json:"pending_purchases"`
	Suppliers        []SupplierDebtLine `json:"suppliers"`
	DebtByTime       []DailyAmount      `json:"debt_by_time"`
}

// BuildSupplierDebtReport assembles the report from the suppliers, their
// aggregated purchase stats and the outstanding purchases made in the period
func BuildSupplierDebtReport(period Period, suppliers []partner.Supplier, stats map[uuid.UUID]trade.SupplierPurchaseStats, periodOutstanding []trade.Purchase) SupplierDebtReport {
	r := SupplierDebtReport{Period: period, TotalDebt: decimal.Zero, Suppliers: make([]SupplierDebtLine, 0)}
	for i := range suppliers {
		sup := &suppliers[i]
		st, ok := stats[sup.ID]
		if !ok || !st.Debt.IsPositive() {
			continue
		}
		r.Suppliers = append(r.Suppliers, SupplierDebtLine{
			SupplierID:       sup.ID,
			SupplierName:     sup.Name,
			SupplierPhone:    sup.Phone,
			Debt:             st.Debt,
			LastPurchaseDate: st.LastPurchaseDate,
			PendingPurchases: st.PendingPurchases,
		})
		r.TotalDebt = r.TotalDebt.Add(st.Debt)
	}
	sort.SliceStable(r.Suppliers, func(i, j int) bool {
		return r.Suppliers[i].Debt.GreaterThan(r.Suppliers[j].Debt)
	})
	r.TotalSuppliers = len(r.Suppliers)

	buckets := dailyBuckets{}
	for i := range periodOutstanding {
		p := &periodOutstanding[i]
		if !period.Contains(p.PurchaseDate) || !p.Owes() {
			continue
		}
		r.PendingPurchases++
		buckets.add(p.PurchaseDate, p.DebtRemaining().Decimal())
	}
	r.DebtByTime = buckets.sorted()
	return r
}

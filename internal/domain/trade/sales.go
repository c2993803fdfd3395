package trade

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesQuery selects the orders a sales aggregate covers. A zero From or To
// leaves that side open. Without Statuses every non-canceled order counts.
type SalesQuery struct {
	From     time.Time
	To       time.Time
	Statuses []Status
}

// EffectiveStatuses returns the statuses the query matches
func (q SalesQuery) EffectiveStatuses() []Status {
	if len(q.Statuses) == 0 {
		return []Status{StatusPending, StatusCompleted}
	}
	return q.Statuses
}

// Matches reports whether o falls inside the query
func (q SalesQuery) Matches(o *Order) bool {
	if !q.From.IsZero() && o.OrderDate.Before(q.From) {
		return false
	}
	if !q.To.IsZero() && o.OrderDate.After(q.To) {
		return false
	}
	for _, s := range q.EffectiveStatuses() {
		if o.Status == s {
			return true
		}
	}
	return false
}

// RevenueTotal sums order headers. Revenue is after order discounts.
type RevenueTotal struct {
	Orders  int
	Revenue decimal.Decimal
	Paid    decimal.Decimal
	Debt    decimal.Decimal
}

// ProductSalesTotal sums the order lines of one product at line prices.
// OrderCount counts distinct orders.
type ProductSalesTotal struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int64
	Revenue     decimal.Decimal
	OrderCount  int
}

// SummarizeRevenue totals the matching orders the way the order repository
// aggregates them in storage
func SummarizeRevenue(orders []Order, q SalesQuery) RevenueTotal {
	t := RevenueTotal{Revenue: decimal.Zero, Paid: decimal.Zero, Debt: decimal.Zero}
	for i := range orders {
		o := &orders[i]
		if !q.Matches(o) {
			continue
		}
		t.Orders++
		t.Revenue = t.Revenue.Add(o.TotalAmount.Decimal())
		t.Paid = t.Paid.Add(o.PaidAmount.Decimal())
		t.Debt = t.Debt.Add(o.DebtRemaining().Decimal())
	}
	return t
}

// SummarizeProductSales groups the lines of matching orders by product,
// highest quantity first
func SummarizeProductSales(orders []Order, q SalesQuery) []ProductSalesTotal {
	byProduct := map[uuid.UUID]*ProductSalesTotal{}
	seen := map[uuid.UUID]map[uuid.UUID]bool{}
	for i := range orders {
		o := &orders[i]
		if !q.Matches(o) {
			continue
		}
		for _, item := range o.Items {
			t := byProduct[item.ProductID]
			if t == nil {
				t = &ProductSalesTotal{ProductID: item.ProductID, ProductName: item.ProductName, Revenue: decimal.Zero}
				byProduct[item.ProductID] = t
				seen[item.ProductID] = map[uuid.UUID]bool{}
			}
			t.Quantity += item.Quantity
			t.Revenue = t.Revenue.Add(item.Total().Decimal())
			if !seen[item.ProductID][o.ID] {
				seen[item.ProductID][o.ID] = true
				t.OrderCount++
			}
		}
	}
	out := make([]ProductSalesTotal, 0, len(byProduct))
	for _, t := range byProduct {
		out = append(out, *t)
	}
	SortProductSales(out)
	return out
}

// SortProductSales orders by quantity, then revenue, then name
func SortProductSales(totals []ProductSalesTotal) {
	sort.Slice(totals, func(i, j int) bool {
		a, b := totals[i], totals[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		return a.ProductName < b.ProductName
	})
}

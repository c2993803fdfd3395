package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerOrderStats aggregates one customer's orders for the debt report
type CustomerOrderStats struct {
	CustomerID    uuid.UUID
	OrderCount    int
	OwingOrders   int
	LastOrderDate *time.Time
}

// SupplierPurchaseStats aggregates one supplier's purchases. Debt is the
// derived supplier debt over non-canceled purchases, kept in decimal so
// the sum cannot wrap.
type SupplierPurchaseStats struct {
	SupplierID       uuid.UUID
	PurchaseCount    int
	Debt             decimal.Decimal
	PendingPurchases int
	LastPurchaseDate *time.Time
}

// Owes reports whether an order still carries unpaid money
func (o *Order) Owes() bool {
	return o.Status != StatusCanceled && o.DebtRemaining().IsPositive()
}

// Owes reports whether a purchase still carries money owed to the supplier
func (p *Purchase) Owes() bool {
	return p.Status != StatusCanceled && p.DebtRemaining().IsPositive()
}

// SummarizeOrders groups orders by customer the way the order repository
// aggregates them in storage
func SummarizeOrders(orders []Order) map[uuid.UUID]CustomerOrderStats {
	out := make(map[uuid.UUID]CustomerOrderStats)
	for i := range orders {
		o := &orders[i]
		s := out[o.CustomerID]
		s.CustomerID = o.CustomerID
		s.OrderCount++
		if o.Owes() {
			s.OwingOrders++
		}
		s.LastOrderDate = later(s.LastOrderDate, o.OrderDate)
		out[o.CustomerID] = s
	}
	return out
}

// SummarizePurchases groups purchases by supplier the way the purchase
// repository aggregates them in storage
func SummarizePurchases(purchases []Purchase) map[uuid.UUID]SupplierPurchaseStats {
	out := make(map[uuid.UUID]SupplierPurchaseStats)
	for i := range purchases {
		p := &purchases[i]
		s := out[p.SupplierID]
		s.SupplierID = p.SupplierID
		s.PurchaseCount++
		if p.Status != StatusCanceled {
			s.Debt = s.Debt.Add(p.DebtRemaining().Decimal())
		}
		if p.Owes() {
			s.PendingPurchases++
		}
		s.LastPurchaseDate = later(s.LastPurchaseDate, p.PurchaseDate)
		out[p.SupplierID] = s
	}
	return out
}

func later(current *time.Time, t time.Time) *time.Time {
	if current == nil || t.After(*current) {
		return &t
	}
	return current
}

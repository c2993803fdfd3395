package trade

import (
	"fmt"
	"time"

	"github.com/aquaflow/backend/internal/domain/catalog"
	"github.com/aquaflow/backend/internal/domain/partner"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/shared/strategy"
	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// OrderItem is a sold line. Name, price and returnable flag are snapshots
// taken when the order was placed.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int64
	UnitPrice   valueobject.Money
	Returnable  bool
}

// Total returns quantity × unit price. AddItem rejects lines whose total
// does not fit, so the product is exact for every stored item.
func (i OrderItem) Total() valueobject.Money {
	return valueobject.Money(i.UnitPrice.Int64() * i.Quantity)
}

// Order is a sale to a customer.
//
// DebtRemaining is always TotalAmount − PaidAmount and is never stored on its
// own. ReturnableIn stays within [0, ReturnableOut].
type Order struct {
	shared.BaseAggregateRoot
	CustomerID      uuid.UUID
	CustomerName    string
	Items           []OrderItem
	Subtotal        valueobject.Money
	DiscountAmount  valueobject.Money
	TotalAmount     valueobject.Money
	PaidAmount      valueobject.Money
	ReturnableOut   int64
	ReturnableIn    int64
	Status          Status
	PricingStrategy string
	Note            string
	CreatedBy       *uuid.UUID
	OrderDate       time.Time
}

// NewOrder starts a pending order for the customer, snapshotting the name
func NewOrder(customer *partner.Customer, note string, createdBy *uuid.UUID) *Order {
	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customer.ID,
		CustomerName:      customer.Name,
		Items:             make([]OrderItem, 0),
		Status:            StatusPending,
		Note:              note,
		CreatedBy:         createdBy,
		OrderDate:         time.Now(),
	}
}

// AddItem adds a line priced at the product's current price
func (o *Order) AddItem(p *catalog.Product, quantity int64) error {
	if quantity < 1 {
		return shared.NewValidationError("Item quantity must be at least 1")
	}
	if err := p.CanSell(); err != nil {
		return err
	}
	line, err := p.Price.Times(quantity)
	if err != nil {
		return err
	}
	if _, err := o.Subtotal.Add(line); err != nil {
		return err
	}
	if _, err := shared.AddInt64(o.ReturnableOut, quantity); err != nil {
		return err
	}
	o.Items = append(o.Items, OrderItem{
		ID:          uuid.New(),
		OrderID:     o.ID,
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    quantity,
		UnitPrice:   p.Price,
		Returnable:  p.Returnable,
	})
	o.recalculate()
	return nil
}

func (o *Order) recalculate() {
	var subtotal valueobject.Money
	var returnable int64
	for _, item := range o.Items {
		subtotal += item.Total()
		if item.Returnable {
			returnable += item.Quantity
		}
	}
	o.Subtotal = subtotal
	o.TotalAmount = subtotal - o.DiscountAmount
	o.ReturnableOut = returnable
}

// PricingLines exposes the lines to a pricing strategy
func (o *Order) PricingLines() []strategy.PricingLine {
	lines := make([]strategy.PricingLine, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, strategy.PricingLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return lines
}

// ApplyPricing sets the discount and total computed by a pricing strategy
func (o *Order) ApplyPricing(result strategy.PricingResult) error {
	if result.Subtotal != o.Subtotal {
		return shared.NewValidationError(fmt.Sprintf(
			"Pricing subtotal %d does not match order subtotal %d", result.Subtotal, o.Subtotal))
	}
	if result.DiscountAmount.IsNegative() || result.DiscountAmount > o.Subtotal {
		return shared.NewValidationError("Discount must be between zero and the subtotal")
	}
	o.DiscountAmount = result.DiscountAmount
	o.TotalAmount = o.Subtotal - o.DiscountAmount
	o.PricingStrategy = result.Strategy
	return nil
}

// QuantitiesByProduct sums line quantities per product
func (o *Order) QuantitiesByProduct() map[uuid.UUID]int64 {
	out := make(map[uuid.UUID]int64, len(o.Items))
	for _, item := range o.Items {
		out[item.ProductID] += item.Quantity
	}
	return out
}

// Place finalizes a new order and records the OrderCreated event
func (o *Order) Place() error {
	if len(o.Items) == 0 {
		return shared.NewValidationError("Order must contain at least one item")
	}
	o.AddDomainEvent(NewOrderCreatedEvent(o))
	return nil
}

// DebtRemaining returns what the customer still owes on this order.
// Negative means the order was overpaid.
func (o *Order) DebtRemaining() valueobject.Money {
	return o.TotalAmount - o.PaidAmount
}

// IsOverpaid reports whether payments exceed the total
func (o *Order) IsOverpaid() bool {
	return o.DebtRemaining().IsNegative()
}

// OutstandingReturnables returns containers still to come back
func (o *Order) OutstandingReturnables() int64 {
	return o.ReturnableOut - o.ReturnableIn
}

// ApplyPayment adds to the paid amount. Overpayment is accepted.
func (o *Order) ApplyPayment(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewValidationError("Payment amount must be positive")
	}
	paid, err := o.PaidAmount.Add(amount)
	if err != nil {
		return err
	}
	o.PaidAmount = paid
	o.Touch()
	o.AddDomainEvent(NewOrderPaymentAppliedEvent(o, amount))
	return nil
}

// ApplyReturn records containers brought back against this order.
// Returns beyond ReturnableOut are rejected and change nothing.
func (o *Order) ApplyReturn(quantity int64) error {
	if quantity < 1 {
		return shared.NewValidationError("Returned quantity must be at least 1")
	}
	if quantity > o.OutstandingReturnables() {
		return shared.NewDomainErrorWithDetails(shared.CodeReturnExceedsOutstanding,
			"Returned quantity exceeds containers outstanding on the order",
			map[string]any{
				"orderId":          o.ID.String(),
				"returnedQuantity": quantity,
				"returnableOut":    o.ReturnableOut,
				"returnableIn":     o.ReturnableIn,
				"outstanding":      o.OutstandingReturnables(),
			})
	}
	o.ReturnableIn += quantity
	o.Touch()
	o.AddDomainEvent(NewOrderReturnAppliedEvent(o, quantity))
	return nil
}

// ChangeStatus moves the order along pending → completed | canceled.
// Status changes never touch stock or balances.
func (o *Order) ChangeStatus(target Status) error {
	if !target.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid order status: %s", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainErrorWithDetails(shared.CodeInvalidTransition,
			fmt.Sprintf("Cannot change order status from %s to %s", o.Status, target),
			map[string]any{
				"orderId": o.ID.String(),
				"from":    string(o.Status),
				"to":      string(target),
			})
	}
	from := o.Status
	o.Status = target
	o.Touch()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from))
	return nil
}

package trade

import (
	"fmt"
	"time"

	"github.com/aquaflow/backend/internal/domain/catalog"
	"github.com/aquaflow/backend/internal/domain/partner"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypePurchase = "Purchase"

// PurchaseItem is a line bought from a supplier
type PurchaseItem struct {
	ID          uuid.UUID
	PurchaseID  uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int64
	UnitPrice   valueobject.Money
}

// Total returns quantity × unit price. AddItem rejects lines whose total
// does not fit, so the product is exact for every stored item.
func (i PurchaseItem) Total() valueobject.Money {
	return valueobject.Money(i.UnitPrice.Int64() * i.Quantity)
}

// Purchase is stock bought from a supplier. It carries no returnable
// tracking; DebtRemaining is what the business still owes the supplier.
type Purchase struct {
	shared.BaseAggregateRoot
	SupplierID   uuid.UUID
	SupplierName string
	Items        []PurchaseItem
	TotalAmount  valueobject.Money
	PaidAmount   valueobject.Money
	Status       Status
	Notes        string
	CreatedBy    *uuid.UUID
	PurchaseDate time.Time
}

// NewPurchase starts a pending purchase from the supplier
func NewPurchase(supplier *partner.Supplier, notes string, createdBy *uuid.UUID) *Purchase {
	return &Purchase{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SupplierID:        supplier.ID,
		SupplierName:      supplier.Name,
		Items:             make([]PurchaseItem, 0),
		Status:            StatusPending,
		Notes:             notes,
		CreatedBy:         createdBy,
		PurchaseDate:      time.Now(),
	}
}

// AddItem adds a line at the negotiated unit price
func (p *Purchase) AddItem(product *catalog.Product, quantity int64, unitPrice valueobject.Money) error {
	if quantity < 1 {
		return shared.NewValidationError("Item quantity must be at least 1")
	}
	if !unitPrice.IsPositive() {
		return shared.ErrInvalidPrice.
			WithDetail("productId", product.ID.String()).
			WithDetail("unitPrice", unitPrice.Int64())
	}
	line, err := unitPrice.Times(quantity)
	if err != nil {
		return err
	}
	total, err := p.TotalAmount.Add(line)
	if err != nil {
		return err
	}
	p.Items = append(p.Items, PurchaseItem{
		ID:          uuid.New(),
		PurchaseID:  p.ID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	})
	p.TotalAmount = total
	return nil
}

// QuantitiesByProduct sums line quantities per product
func (p *Purchase) QuantitiesByProduct() map[uuid.UUID]int64 {
	out := make(map[uuid.UUID]int64, len(p.Items))
	for _, item := range p.Items {
		out[item.ProductID] += item.Quantity
	}
	return out
}

// Place finalizes a new purchase and records the PurchaseCreated event
func (p *Purchase) Place() error {
	if len(p.Items) == 0 {
		return shared.NewValidationError("Purchase must contain at least one item")
	}
	p.AddDomainEvent(NewPurchaseCreatedEvent(p))
	return nil
}

// DebtRemaining returns what is still owed to the supplier on this purchase
func (p *Purchase) DebtRemaining() valueobject.Money {
	return p.TotalAmount - p.PaidAmount
}

// ApplyPayment adds to the paid amount. Overpayment is accepted.
func (p *Purchase) ApplyPayment(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewValidationError("Payment amount must be positive")
	}
	paid, err := p.PaidAmount.Add(amount)
	if err != nil {
		return err
	}
	p.PaidAmount = paid
	p.Touch()
	p.AddDomainEvent(NewPurchasePaidEvent(p, amount))
	return nil
}

// ChangeStatus moves the purchase along pending → completed | canceled
func (p *Purchase) ChangeStatus(target Status) error {
	if !target.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid purchase status: %s", target))
	}
	if !p.Status.CanTransitionTo(target) {
		return shared.NewDomainErrorWithDetails(shared.CodeInvalidTransition,
			fmt.Sprintf("Cannot change purchase status from %s to %s", p.Status, target),
			map[string]any{
				"purchaseId": p.ID.String(),
				"from":       string(p.Status),
				"to":         string(target),
			})
	}
	p.Status = target
	p.Touch()
	return nil
}

// SupplierDebt derives what is owed to a supplier from its purchases.
// Canceled purchases do not count; overpaid purchases reduce the total.
func SupplierDebt(purchases []Purchase) (valueobject.Money, error) {
	var total valueobject.Money
	for i := range purchases {
		if purchases[i].Status == StatusCanceled {
			continue
		}
		var err error
		if total, err = total.Add(purchases[i].DebtRemaining()); err != nil {
			return 0, err
		}
	}
	return total, nil
}

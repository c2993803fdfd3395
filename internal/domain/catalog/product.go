package catalog

import (
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
)

// Product is a sellable item and the owner of its own stock balance.
// Stock is only changed through IncreaseStock/DecreaseStock; the repository
// bumps Version when the change is persisted.
type Product struct {
	shared.BaseAggregateRoot
	Name       string
	Unit       string
	Price      valueobject.Money
	Returnable bool
	Stock      int64
}

// NewProduct creates a new product with zero stock
func NewProduct(name, unit string, price valueobject.Money, returnable bool) (*Product, error) {
	name, unit, err := validateDetails(name, unit)
	if err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewValidationError("Product price cannot be negative")
	}

	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Unit:              unit,
		Price:             price,
		Returnable:        returnable,
	}
	p.AddDomainEvent(NewProductCreatedEvent(p))
	return p, nil
}

func validateDetails(name, unit string) (string, string, error) {
	name = shared.NormalizeName(name)
	if name == "" {
		return "", "", shared.NewValidationError("Product name cannot be empty")
	}
	if len(name) > 200 {
		return "", "", shared.NewValidationError("Product name cannot exceed 200 characters")
	}
	unit = shared.NormalizeName(unit)
	if unit == "" {
		return "", "", shared.NewValidationError("Product unit cannot be empty")
	}
	return name, unit, nil
}

// UpdateDetails replaces name, unit and returnability. Price and stock
// have their own operations.
func (p *Product) UpdateDetails(name, unit string, returnable bool) error {
	name, unit, err := validateDetails(name, unit)
	if err != nil {
		return err
	}
	if name == p.Name && unit == p.Unit && returnable == p.Returnable {
		return nil
	}
	p.Name = name
	p.Unit = unit
	p.Returnable = returnable
	p.Touch()
	p.AddDomainEvent(NewProductUpdatedEvent(p))
	return nil
}

// Remove marks the product for deletion. Only a product that never moved
// stock can go: movement log entries and order lines keep referring to it.
func (p *Product) Remove(movements int64) error {
	if p.Stock != 0 || movements > 0 {
		return shared.ErrProductInUse.
			WithDetail("productId", p.ID.String()).
			WithDetail("stock", p.Stock).
			WithDetail("movements", movements)
	}
	p.AddDomainEvent(NewProductDeletedEvent(p))
	return nil
}

// UpdatePrice changes the unit price used for future sales.
// A zero price is allowed and makes the product unsellable.
func (p *Product) UpdatePrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewValidationError("Product price cannot be negative")
	}
	old := p.Price
	p.Price = price
	p.Touch()
	p.AddDomainEvent(NewProductPriceChangedEvent(p, old))
	return nil
}

// CanSell returns INVALID_PRICE when the product has no positive price
func (p *Product) CanSell() error {
	if !p.Price.IsPositive() {
		return shared.ErrInvalidPrice.
			WithDetail("productId", p.ID.String()).
			WithDetail("productName", p.Name).
			WithDetail("price", p.Price.Int64())
	}
	return nil
}

// HasStock reports whether qty units can be taken out
func (p *Product) HasStock(qty int64) bool {
	return p.Stock >= qty
}

// IncreaseStock adds qty units
func (p *Product) IncreaseStock(qty int64) error {
	if qty <= 0 {
		return shared.NewValidationError("Quantity must be positive")
	}
	stock, err := shared.AddInt64(p.Stock, qty)
	if err != nil {
		return err
	}
	before := p.Stock
	p.Stock = stock
	p.Touch()
	p.AddDomainEvent(NewStockChangedEvent(p, before))
	return nil
}

// DecreaseStock removes qty units, failing with INSUFFICIENT_STOCK if that
// would take stock below zero. Stock is left unchanged on failure.
func (p *Product) DecreaseStock(qty int64) error {
	if qty <= 0 {
		return shared.NewValidationError("Quantity must be positive")
	}
	if !p.HasStock(qty) {
		return p.InsufficientStockError(qty)
	}
	before := p.Stock
	p.Stock -= qty
	p.Touch()
	p.AddDomainEvent(NewStockChangedEvent(p, before))
	return nil
}

// InsufficientStockError builds the rejection for a request of qty units
func (p *Product) InsufficientStockError(qty int64) *shared.DomainError {
	return shared.NewDomainErrorWithDetails(shared.CodeInsufficientStock,
		"Insufficient stock for "+p.Name,
		map[string]any{
			"productId":         p.ID.String(),
			"productName":       p.Name,
			"requestedQuantity": qty,
			"availableStock":    p.Stock,
		})
}

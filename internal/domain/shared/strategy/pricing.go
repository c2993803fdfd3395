package strategy

import (
	"context"

	"github.com/aquaflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricingLine is one order line as seen by a pricing strategy
type PricingLine struct {
	ProductID uuid.UUID
	Quantity  int64
	UnitPrice valueobject.Money
}

// LineTotal returns quantity × unit price
func (l PricingLine) LineTotal() (valueobject.Money, error) {
	return l.UnitPrice.Times(l.Quantity)
}

// PricingContext provides context for pricing calculation
type PricingContext struct {
	CustomerID     uuid.UUID
	Classification string
	Lines          []PricingLine
}

// Subtotal returns the undiscounted sum of line totals
func (c PricingContext) Subtotal() (valueobject.Money, error) {
	var total valueobject.Money
	for _, l := range c.Lines {
		line, err := l.LineTotal()
		if err != nil {
			return 0, err
		}
		if total, err = total.Add(line); err != nil {
			return 0, err
		}
	}
	return total, nil
}

// PricingResult contains the result of pricing calculation
type PricingResult struct {
	Strategy        string
	Subtotal        valueobject.Money
	DiscountPercent decimal.Decimal
	DiscountAmount  valueobject.Money
	Total           valueobject.Money
	AppliedRules    []string
}

// PricingStrategy prices a whole order for a customer classification
type PricingStrategy interface {
	Strategy
	// CalculatePrice calculates the order total for a given pricing context
	CalculatePrice(ctx context.Context, pricingCtx PricingContext) (PricingResult, error)
}

// PricingStrategySelector resolves the strategy that applies to a customer classification
type PricingStrategySelector interface {
	ForClassification(classification string) PricingStrategy
}

package pricing

import (
	"context"

	"github.com/aquaflow/backend/internal/domain/shared/strategy"
	"github.com/shopspring/decimal"
)

// StandardStrategyName is the registry name of the list-price strategy
const StandardStrategyName = "standard"

// StandardPricingStrategy charges list price with no discount
type StandardPricingStrategy struct {
	strategy.BaseStrategy
}

// NewStandardPricingStrategy creates a new standard pricing strategy
func NewStandardPricingStrategy() *StandardPricingStrategy {
	return &StandardPricingStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			StandardStrategyName,
			strategy.StrategyTypePricing,
			"List price without discounts",
		),
	}
}

// CalculatePrice returns the subtotal as the total
func (s *StandardPricingStrategy) CalculatePrice(
	ctx context.Context,
	pricingCtx strategy.PricingContext,
) (strategy.PricingResult, error) {
	subtotal, err := pricingCtx.Subtotal()
	if err != nil {
		return strategy.PricingResult{}, err
	}
	return strategy.PricingResult{
		Strategy:        s.Name(),
		Subtotal:        subtotal,
		DiscountPercent: decimal.Zero,
		Total:           subtotal,
		AppliedRules:    []string{},
	}, nil
}

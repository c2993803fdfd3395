package pricing

import (
	"context"

	"github.com/aquaflow/backend/internal/domain/partner"
	"github.com/aquaflow/backend/internal/domain/shared/strategy"
	"github.com/shopspring/decimal"
)

// AgencyDiscountStrategyName is the registry name of the agency strategy
const AgencyDiscountStrategyName = "agency_discount"

// AgencyDiscountStrategy takes a percentage off the whole order for agency
// customers. The discount is rounded to the nearest đồng, half away from zero.
type AgencyDiscountStrategy struct {
	strategy.BaseStrategy
	discounts map[string]decimal.Decimal
}

// NewAgencyDiscountStrategy creates the strategy with discount percentages
// keyed by customer classification
func NewAgencyDiscountStrategy(discounts map[string]decimal.Decimal) *AgencyDiscountStrategy {
	copied := make(map[string]decimal.Decimal, len(discounts))
	for k, v := range discounts {
		copied[k] = v
	}
	return &AgencyDiscountStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			AgencyDiscountStrategyName,
			strategy.StrategyTypePricing,
			"Order-level percentage discount for agencies",
		),
		discounts: copied,
	}
}

// DefaultAgencyDiscounts gives level-2 agencies 10% off
func DefaultAgencyDiscounts() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		partner.ClassificationAgency2: decimal.NewFromInt(10),
	}
}

// DiscountFor returns the percentage for a classification, zero if none
func (s *AgencyDiscountStrategy) DiscountFor(classification string) decimal.Decimal {
	if d, ok := s.discounts[classification]; ok {
		return d
	}
	return decimal.Zero
}

// Classifications lists the classifications that receive a discount
func (s *AgencyDiscountStrategy) Classifications() []string {
	out := make([]string, 0, len(s.discounts))
	for k, v := range s.discounts {
		if v.IsPositive() {
			out = append(out, k)
		}
	}
	return out
}

// CalculatePrice applies the classification's percentage to the subtotal
func (s *AgencyDiscountStrategy) CalculatePrice(
	ctx context.Context,
	pricingCtx strategy.PricingContext,
) (strategy.PricingResult, error) {
	subtotal, err := pricingCtx.Subtotal()
	if err != nil {
		return strategy.PricingResult{}, err
	}
	percent := s.DiscountFor(pricingCtx.Classification)
	discount := subtotal.PercentOf(percent)
	if discount > subtotal {
		discount = subtotal
	}

	appliedRules := []string{}
	if discount > 0 {
		appliedRules = append(appliedRules, "agency_discount:"+percent.String()+"%")
	}

	return strategy.PricingResult{
		Strategy:        s.Name(),
		Subtotal:        subtotal,
		DiscountPercent: percent,
		DiscountAmount:  discount,
		Total:           subtotal - discount,
		AppliedRules:    appliedRules,
	}, nil
}

package strategy

import (
	"github.com/aquaflow/backend/internal/infrastructure/strategy/pricing"
	"github.com/shopspring/decimal"
)

// NewRegistryWithDefaults creates a registry with the standard and agency
// discount strategies. Every classification with a positive discount is
// routed to the agency strategy; everything else gets list price.
// A nil discounts map uses pricing.DefaultAgencyDiscounts.
func NewRegistryWithDefaults(discounts map[string]decimal.Decimal) (*StrategyRegistry, error) {
	if discounts == nil {
		discounts = pricing.DefaultAgencyDiscounts()
	}
	r := NewStrategyRegistry()

	standard := pricing.NewStandardPricingStrategy()
	if err := r.RegisterPricingStrategy(standard); err != nil {
		return nil, err
	}
	agency := pricing.NewAgencyDiscountStrategy(discounts)
	if err := r.RegisterPricingStrategy(agency); err != nil {
		return nil, err
	}
	if err := r.SetDefaultPricing(standard.Name()); err != nil {
		return nil, err
	}
	for _, classification := range agency.Classifications() {
		if err := r.MapClassification(classification, agency.Name()); err != nil {
			return nil, err
		}
	}
	return r, nil
}

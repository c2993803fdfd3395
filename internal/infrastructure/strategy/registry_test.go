package strategy

import (
	"errors"
	"testing"

	"github.com/aquaflow/backend/internal/domain/partner"
	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/infrastructure/strategy/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryWithDefaults(t *testing.T) {
	r, err := NewRegistryWithDefaults(nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"agency_discount", "standard"}, r.ListPricingStrategies())
	assert.Equal(t, "standard", r.ForClassification(partner.ClassificationRetail).Name())
	assert.Equal(t, "standard", r.ForClassification(partner.ClassificationAgency1).Name())
	assert.Equal(t, "agency_discount", r.ForClassification(partner.ClassificationAgency2).Name())
	assert.Equal(t, "standard", r.ForClassification("unknown").Name())
}

func TestNewRegistryWithDefaults_ConfiguredDiscounts(t *testing.T) {
	r, err := NewRegistryWithDefaults(map[string]decimal.Decimal{
		partner.ClassificationAgency1: decimal.NewFromInt(5),
		partner.ClassificationAgency2: decimal.NewFromInt(12),
	})
	require.NoError(t, err)
	assert.Equal(t, "agency_discount", r.ForClassification(partner.ClassificationAgency1).Name())
	assert.Equal(t, "agency_discount", r.ForClassification(partner.ClassificationAgency2).Name())
}

func TestStrategyRegistry(t *testing.T) {
	r := NewStrategyRegistry()

	_, err := r.GetPricingStrategy("")
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	require.NoError(t, r.RegisterPricingStrategy(pricing.NewStandardPricingStrategy()))
	err = r.RegisterPricingStrategy(pricing.NewStandardPricingStrategy())
	assert.True(t, errors.Is(err, shared.ErrAlreadyExists))

	assert.True(t, errors.Is(r.SetDefaultPricing("missing"), shared.ErrNotFound))
	assert.True(t, errors.Is(r.MapClassification("agency-2", "missing"), shared.ErrNotFound))

	require.NoError(t, r.SetDefaultPricing("standard"))
	s, err := r.GetPricingStrategy("")
	require.NoError(t, err)
	assert.Equal(t, "standard", s.Name())
}

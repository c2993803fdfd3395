package strategy

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/aquaflow/backend/internal/domain/shared/strategy"
)

// StrategyRegistry manages pricing strategy registrations and the mapping
// from customer classification to strategy
type StrategyRegistry struct {
	mu                sync.RWMutex
	pricingStrategies map[string]strategy.PricingStrategy
	byClassification  map[string]string
	defaultPricing    string
}

// NewStrategyRegistry creates a new strategy registry
func NewStrategyRegistry() *StrategyRegistry {
	return &StrategyRegistry{
		pricingStrategies: make(map[string]strategy.PricingStrategy),
		byClassification:  make(map[string]string),
	}
}

// RegisterPricingStrategy registers a pricing strategy
func (r *StrategyRegistry) RegisterPricingStrategy(s strategy.PricingStrategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := s.Name()
	if _, exists := r.pricingStrategies[name]; exists {
		return fmt.Errorf("%w: pricing strategy '%s' already registered", shared.ErrAlreadyExists, name)
	}
	r.pricingStrategies[name] = s
	return nil
}

// GetPricingStrategy returns a pricing strategy by name, or the default if name is empty
func (r *StrategyRegistry) GetPricingStrategy(name string) (strategy.PricingStrategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		name = r.defaultPricing
		if name == "" {
			return nil, fmt.Errorf("%w: no default pricing strategy set", shared.ErrNotFound)
		}
	}

	s, exists := r.pricingStrategies[name]
	if !exists {
		return nil, fmt.Errorf("%w: pricing strategy '%s' not found", shared.ErrNotFound, name)
	}
	return s, nil
}

// ListPricingStrategies returns all registered pricing strategy names
func (r *StrategyRegistry) ListPricingStrategies() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.pricingStrategies))
	for name := range r.pricingStrategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetDefaultPricing sets the strategy used for unmapped classifications
func (r *StrategyRegistry) SetDefaultPricing(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.pricingStrategies[name]; !exists {
		return fmt.Errorf("%w: pricing strategy '%s' not found", shared.ErrNotFound, name)
	}
	r.defaultPricing = name
	return nil
}

// MapClassification routes a customer classification to a strategy
func (r *StrategyRegistry) MapClassification(classification, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.pricingStrategies[name]; !exists {
		return fmt.Errorf("%w: pricing strategy '%s' not found", shared.ErrNotFound, name)
	}
	r.byClassification[classification] = name
	return nil
}

// ForClassification returns the strategy mapped to the classification,
// falling back to the default strategy
func (r *StrategyRegistry) ForClassification(classification string) strategy.PricingStrategy {
	r.mu.RLock()
	name := r.byClassification[classification]
	r.mu.RUnlock()
	s, err := r.GetPricingStrategy(name)
	if err != nil {
		s, _ = r.GetPricingStrategy("")
	}
	return s
}

var _ strategy.PricingStrategySelector = (*StrategyRegistry)(nil)

// Package strategy defines the pluggable pricing rules applied when an
// order is placed. The registry picks one per customer classification.
package strategy

// StrategyType groups strategies in the registry
type StrategyType string

// StrategyTypePricing prices a whole order
const StrategyTypePricing StrategyType = "pricing"

func (t StrategyType) String() string { return string(t) }

// Strategy is the identity every registered rule exposes. Name is what an
// order stores as its pricing strategy.
type Strategy interface {
	Name() string
	Type() StrategyType
	Description() string
}

// BaseStrategy implements Strategy for embedding
type BaseStrategy struct {
	name         string
	strategyType StrategyType
	description  string
}

func NewBaseStrategy(name string, strategyType StrategyType, description string) BaseStrategy {
	return BaseStrategy{name: name, strategyType: strategyType, description: description}
}

func (s BaseStrategy) Name() string        { return s.name }
func (s BaseStrategy) Type() StrategyType  { return s.strategyType }
func (s BaseStrategy) Description() string { return s.description }

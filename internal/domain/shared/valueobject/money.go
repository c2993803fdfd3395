package valueobject

import (
	"fmt"

	"github.com/aquaflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Money is an amount in the smallest currency unit (đồng).
// Ledger arithmetic stays in integers; decimal is only used at the edges
// for percentage math and for accepting amounts from callers.
type Money int64

const (
	// Zero is the zero amount
	Zero Money = 0
	// MaxAmount bounds a single amount accepted from callers
	MaxAmount Money = 1_000_000_000_000_000
)

var maxAmountDecimal = decimal.NewFromInt(int64(MaxAmount))

// NewMoneyFromDecimal converts a decimal amount to Money.
// Fractional amounts and amounts beyond ±MaxAmount are rejected since the
// currency has no sub-unit and ledger sums must stay within int64.
func NewMoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if !d.IsInteger() {
		return 0, shared.NewValidationError(fmt.Sprintf("Amount %s has a fractional part", d.String()))
	}
	if d.Abs().GreaterThan(maxAmountDecimal) {
		return 0, shared.ErrOutOfRange.
			WithDetail("amount", d.String()).
			WithDetail("max", MaxAmount.Int64())
	}
	return Money(d.IntPart()), nil
}

// Decimal returns the amount as a decimal
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(m))
}

// Int64 returns the raw minor-unit value
func (m Money) Int64() int64 {
	return int64(m)
}

// Add returns m + o, failing with VALIDATION_ERROR on overflow
func (m Money) Add(o Money) (Money, error) {
	v, err := shared.AddInt64(int64(m), int64(o))
	return Money(v), err
}

// Sub returns m - o, failing with VALIDATION_ERROR on overflow
func (m Money) Sub(o Money) (Money, error) {
	v, err := shared.SubInt64(int64(m), int64(o))
	return Money(v), err
}

// Times multiplies the amount by a quantity, failing with VALIDATION_ERROR
// on overflow
func (m Money) Times(qty int64) (Money, error) {
	v, err := shared.MulInt64(int64(m), qty)
	return Money(v), err
}

// IsPositive returns true if the amount is greater than zero
func (m Money) IsPositive() bool {
	return m > 0
}

// IsNegative returns true if the amount is below zero
func (m Money) IsNegative() bool {
	return m < 0
}

// PercentOf returns percent% of m rounded to the nearest whole unit,
// halves rounded away from zero.
func (m Money) PercentOf(percent decimal.Decimal) Money {
	v := m.Decimal().Mul(percent).Div(decimal.NewFromInt(100)).Round(0)
	return Money(v.IntPart())
}

// String returns the amount as a plain integer string
func (m Money) String() string {
	return fmt.Sprintf("%d", int64(m))
}

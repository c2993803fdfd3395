package shared

import "math"

// ErrOutOfRange is returned when ledger arithmetic would leave the int64 range
var ErrOutOfRange = NewDomainError(CodeValidation, "Value is outside the supported range")

// AddInt64 returns a + b, or ErrOutOfRange when the sum overflows
func AddInt64(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, outOfRange("+", a, b)
	}
	return a + b, nil
}

// SubInt64 returns a - b, or ErrOutOfRange when the difference overflows
func SubInt64(a, b int64) (int64, error) {
	if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
		return 0, outOfRange("-", a, b)
	}
	return a - b, nil
}

// MulInt64 returns a × b, or ErrOutOfRange when the product overflows
func MulInt64(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, outOfRange("*", a, b)
	}
	p := a * b
	if p/b != a {
		return 0, outOfRange("*", a, b)
	}
	return p, nil
}

func outOfRange(op string, a, b int64) *DomainError {
	return ErrOutOfRange.
		WithDetail("operation", op).
		WithDetail("left", a).
		WithDetail("right", b)
}

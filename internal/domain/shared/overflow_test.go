package shared

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckedArithmetic(t *testing.T) {
	tests := []struct {
		name string
		fn   func(a, b int64) (int64, error)
		a, b int64
		want int64
		ok   bool
	}{
		{"add", AddInt64, 40, 2, 42, true},
		{"add negative", AddInt64, -40, -2, -42, true},
		{"add at max", AddInt64, math.MaxInt64 - 1, 1, math.MaxInt64, true},
		{"add overflow", AddInt64, math.MaxInt64, 1, 0, false},
		{"add underflow", AddInt64, math.MinInt64, -1, 0, false},
		{"sub", SubInt64, 40, 42, -2, true},
		{"sub overflow", SubInt64, math.MaxInt64, -1, 0, false},
		{"sub underflow", SubInt64, math.MinInt64, 1, 0, false},
		{"mul", MulInt64, 6, 7, 42, true},
		{"mul by zero", MulInt64, math.MaxInt64, 0, 0, true},
		{"mul overflow", MulInt64, math.MaxInt64 - 5, 3, 0, false},
		{"mul min by minus one", MulInt64, math.MinInt64, -1, 0, false},
		{"mul negative overflow", MulInt64, math.MinInt64 / 2, 3, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.a, tt.b)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			assert.True(t, errors.Is(err, ErrValidation), "got %v", err)
			assert.True(t, errors.Is(err, ErrOutOfRange))
		})
	}
}

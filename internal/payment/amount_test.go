package payment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   int64
		ok     bool
	}{
		{"whole rupees", 500, 50000, true},
		{"two decimals", 19.99, 1999, true},
		{"half-up at the boundary", 19.995, 2000, true},
		{"just below half", 19.994, 1999, true},
		{"one paisa", 0.01, 1, true},
		{"float noise", 29.985000000000003, 2999, true},
		{"zero", 0, 0, false},
		{"negative", -10, 0, false},
		{"nan", math.NaN(), 0, false},
		{"inf", math.Inf(1), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToMinorUnits(tt.amount)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

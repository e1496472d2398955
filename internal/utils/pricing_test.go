package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		shipping float64
		tax      float64
		total    float64
	}{
		{
			name:     "free shipping above threshold",
			subtotal: 4998,
			shipping: 0,
			tax:      899.64,
			total:    5897.64,
		},
		{
			name:     "flat fee at threshold",
			subtotal: 500,
			shipping: 50,
			tax:      90,
			total:    640,
		},
		{
			name:     "free shipping just above threshold",
			subtotal: 500.01,
			shipping: 0,
			tax:      90,
			total:    590.01,
		},
		{
			name:     "small order pays flat fee",
			subtotal: 100,
			shipping: 50,
			tax:      18,
			total:    168,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := ComputeTotals(tt.subtotal)
			assert.Equal(t, tt.subtotal, totals.Subtotal)
			assert.Equal(t, tt.shipping, totals.Shipping)
			assert.InDelta(t, tt.tax, totals.Tax, 0.001)
			assert.InDelta(t, tt.total, totals.Total, 0.001)
		})
	}
}

func TestComputeTotalsIdentity(t *testing.T) {
	for _, subtotal := range []float64{0, 49.5, 499.99, 500, 501, 1234.56, 99999} {
		totals := ComputeTotals(subtotal)
		assert.InDelta(t, totals.Subtotal+totals.Shipping+totals.Tax, totals.Total, 0.005,
			"total must equal subtotal + shipping + tax for %v", subtotal)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 899.64, Round2(899.64))
	assert.Equal(t, 899.64, Round2(899.644))
	assert.Equal(t, 899.65, Round2(899.646))
	assert.Equal(t, 1.24, Round2(1.2449))
}

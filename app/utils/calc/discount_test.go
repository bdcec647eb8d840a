package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestDiscountPercent(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		original *decimal.Decimal
		want     int
	}{
		{"twenty percent off", "80", decPtr("100"), 20},
		{"rounds to nearest", "66.67", decPtr("100"), 33},
		{"no original price", "80", nil, 0},
		{"original below price", "100", decPtr("80"), 0},
		{"original equals price", "100", decPtr("100"), 0},
		{"zero original", "100", decPtr("0"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiscountPercent(dec(tt.price), tt.original))
		})
	}
}

func TestDiscountAmount(t *testing.T) {
	assert.True(t, dec("20").Equal(DiscountAmount(dec("80"), decPtr("100"))))
	assert.True(t, decimal.Zero.Equal(DiscountAmount(dec("80"), nil)))
	assert.True(t, decimal.Zero.Equal(DiscountAmount(dec("100"), decPtr("80"))))
}

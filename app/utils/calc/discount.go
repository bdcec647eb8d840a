package calc

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// DiscountPercent returns the rounded percentage saved against the original
// price. Zero when there is no original price or it does not exceed the
// current price.
func DiscountPercent(price decimal.Decimal, originalPrice *decimal.Decimal) int {
	if originalPrice == nil || originalPrice.LessThanOrEqual(price) {
		return 0
	}
	pct := originalPrice.Sub(price).Div(*originalPrice).Mul(hundred)
	return int(pct.Round(0).IntPart())
}

// DiscountAmount returns how much cheaper the product is than its original
// price, never negative.
func DiscountAmount(price decimal.Decimal, originalPrice *decimal.Decimal) decimal.Decimal {
	if originalPrice == nil || originalPrice.LessThanOrEqual(price) {
		return decimal.Zero
	}
	return originalPrice.Sub(price)
}

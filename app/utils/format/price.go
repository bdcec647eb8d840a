package format

import (
	"time"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var try = accounting.Accounting{Symbol: "₺", Precision: 2, Thousand: ".", Decimal: ","}

// Price renders a decimal amount in Turkish lira, e.g. "₺12.500,00".
func Price(amount decimal.Decimal) string {
	return try.FormatMoneyDecimal(amount)
}

func PricePtr(amount *decimal.Decimal) string {
	if amount == nil {
		return ""
	}
	return Price(*amount)
}

// Date renders timestamps the way the admin tables show them.
func Date(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

func ShortDate(t time.Time) string {
	return t.Format("02.01.2006")
}

func Truncate(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength]) + "..."
}

package pricing

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Sum adds up one derived field over a set of lines
func Sum[L any](lines []L, field func(L) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(field(l))
	}
	return total
}

// CurrencyPrefix is prepended to formatted amounts
const CurrencyPrefix = "KES"

// FormatKES renders an amount with thousands separators, e.g. "KES 12,000"
func FormatKES(amount decimal.Decimal) string {
	if amount.Equal(amount.Truncate(0)) {
		return CurrencyPrefix + " " + humanize.Comma(amount.IntPart())
	}
	f, _ := amount.Round(2).Float64()
	return CurrencyPrefix + " " + humanize.CommafWithDigits(f, 2)
}

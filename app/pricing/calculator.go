package pricing

import (
	"github.com/shopspring/decimal"
)

// DefaultCommissionRate applies when a sale line has no other rate
var DefaultCommissionRate = decimal.NewFromFloat(0.10)

var half = decimal.NewFromFloat(0.5)

// Values holds the derived money fields of a single line item
type Values struct {
	CostValue    decimal.Decimal `json:"cost_value"`
	SellingValue decimal.Decimal `json:"selling_value"`
	Profit       decimal.Decimal `json:"profit"`
	Commission   decimal.Decimal `json:"commission"`
}

// LineValues computes cost, selling value, profit and commission for a quantity
// of one product. A negative quantity counts as zero.
func LineValues(unitCost, unitSelling decimal.Decimal, quantity int, rate decimal.Decimal) Values {
	if quantity < 0 {
		quantity = 0
	}
	q := decimal.NewFromInt(int64(quantity))

	cost := unitCost.Mul(q)
	selling := unitSelling.Mul(q)
	profit := selling.Sub(cost)

	return Values{
		CostValue:    cost,
		SellingValue: selling,
		Profit:       profit,
		Commission:   RoundHalfUp(profit.Mul(rate)),
	}
}

// RoundHalfUp rounds to the nearest whole currency unit, halves towards +inf
func RoundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}

// RateFromPercent converts a percentage (10 = 10%) to a fraction
func RateFromPercent(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(decimal.NewFromInt(100))
}

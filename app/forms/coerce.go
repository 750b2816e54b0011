package forms

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money parses a non-negative decimal amount
func Money(values Values, name, label string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(values[name])
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, Invalid(name, "%s must be a number", label)
	}
	if d.IsNegative() {
		return decimal.Zero, Invalid(name, "%s cannot be negative", label)
	}
	return d, nil
}

// Count parses a non-negative whole number
func Count(values Values, name, label string) (int, error) {
	raw := strings.TrimSpace(values[name])
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, Invalid(name, "%s must be a whole number", label)
	}
	if n < 0 {
		return 0, Invalid(name, "%s cannot be negative", label)
	}
	return n, nil
}

// Text returns the trimmed value of a field
func Text(values Values, name string) string {
	return strings.TrimSpace(values[name])
}

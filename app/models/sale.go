package models

import (
	"sort"
	"strings"

	"SalesDashboard/app/pricing"

	"github.com/shopspring/decimal"
)

// SaleStatus is the lifecycle state of a sale
type SaleStatus string

const (
	SaleCompleted SaleStatus = "completed"
	SalePending   SaleStatus = "pending"
	SaleCancelled SaleStatus = "cancelled"
)

// Valid reports whether s is a known status
func (s SaleStatus) Valid() bool {
	return s == SaleCompleted || s == SalePending || s == SaleCancelled
}

// SaleProduct is one line item of a sale. The money fields are derived and
// always recomputed from the product prices, quantity and commission rate.
type SaleProduct struct {
	ProductID    int             `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	CostValue    decimal.Decimal `json:"cost_value"`
	SellingValue decimal.Decimal `json:"selling_value"`
	Profit       decimal.Decimal `json:"profit"`
	Commission   decimal.Decimal `json:"commission"`
}

// NewSaleProduct prices quantity units of p at the given commission rate
func NewSaleProduct(p Product, quantity int, rate decimal.Decimal) SaleProduct {
	v := pricing.LineValues(p.CostPrice, p.SellingPrice, quantity, rate)
	return SaleProduct{
		ProductID:    p.ID,
		ProductName:  p.Name,
		Quantity:     quantity,
		CostValue:    v.CostValue,
		SellingValue: v.SellingValue,
		Profit:       v.Profit,
		Commission:   v.Commission,
	}
}

// BlankSaleProduct is an unselected line with quantity one
func BlankSaleProduct() SaleProduct {
	return SaleProduct{
		Quantity:     1,
		CostValue:    decimal.Zero,
		SellingValue: decimal.Zero,
		Profit:       decimal.Zero,
		Commission:   decimal.Zero,
	}
}

// Sale is a recorded sale made by one employee. Names are denormalised at
// creation time and the record is immutable afterwards.
type Sale struct {
	ID           int           `json:"id"`
	EmployeeID   int           `json:"employee_id"`
	EmployeeName string        `json:"employee_name"`
	Products     []SaleProduct `json:"products"`
	Date         Date          `json:"date"`
	Status       SaleStatus    `json:"status"`
}

// RecordID implements store.Record
func (s Sale) RecordID() int { return s.ID }

// Total is the sum of selling values over all lines
func (s Sale) Total() decimal.Decimal {
	return pricing.Sum(s.Products, func(p SaleProduct) decimal.Decimal { return p.SellingValue })
}

// TotalCommission is the sum of commission over all lines
func (s Sale) TotalCommission() decimal.Decimal {
	return pricing.Sum(s.Products, func(p SaleProduct) decimal.Decimal { return p.Commission })
}

// TotalProfit is the sum of profit over all lines
func (s Sale) TotalProfit() decimal.Decimal {
	return pricing.Sum(s.Products, func(p SaleProduct) decimal.Decimal { return p.Profit })
}

// TotalSales sums sale totals over a set of sales
func TotalSales(sales []Sale) decimal.Decimal {
	return pricing.Sum(sales, Sale.Total)
}

// TotalCommission sums commission over a set of sales
func TotalCommission(sales []Sale) decimal.Decimal {
	return pricing.Sum(sales, Sale.TotalCommission)
}

// RecentSales returns up to n sales, newest date first
func RecentSales(sales []Sale, n int) []Sale {
	sorted := make([]Sale, len(sales))
	copy(sorted, sales)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Time().After(sorted[j].Date.Time())
	})
	if n < 0 {
		n = 0
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// MatchSale searches sales by employee name or status
func MatchSale(s Sale, term string) bool {
	lower := strings.ToLower(term)
	return strings.Contains(strings.ToLower(s.EmployeeName), lower) ||
		strings.Contains(string(s.Status), lower)
}

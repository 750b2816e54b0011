package models

import (
	"strings"

	"SalesDashboard/app/forms"

	"github.com/shopspring/decimal"
)

// ProductStatus is the stock state of a product
type ProductStatus string

const (
	ProductInStock    ProductStatus = "in-stock"
	ProductLowStock   ProductStatus = "low-stock"
	ProductOutOfStock ProductStatus = "out-of-stock"
)

// ProductStatuses lists the accepted product statuses in display order
var ProductStatuses = []ProductStatus{ProductInStock, ProductLowStock, ProductOutOfStock}

// Valid reports whether s is a known status
func (s ProductStatus) Valid() bool {
	for _, known := range ProductStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Product represents an item the business sells
type Product struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Quantity     int             `json:"quantity"`
	Status       ProductStatus   `json:"status"`
}

// RecordID implements store.Record
func (p Product) RecordID() int { return p.ID }

// ProductFields is the create/edit form of a product
var ProductFields = []forms.Field{
	{Name: "name", Label: "Product Name", Type: "text", Required: true},
	{Name: "costPrice", Label: "Cost Price", Type: "number", Required: true},
	{Name: "sellingPrice", Label: "Selling Price", Type: "number", Required: true},
	{Name: "quantity", Label: "Quantity", Type: "number", Required: true},
	{Name: "status", Label: "Status", Type: "select", Required: true, Options: productStatusOptions()},
}

func productStatusOptions() []string {
	out := make([]string, len(ProductStatuses))
	for i, s := range ProductStatuses {
		out[i] = string(s)
	}
	return out
}

// ProductInput is the editable part of a product
type ProductInput struct {
	Name         string
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	Quantity     int
	Status       ProductStatus
}

// ProductFromForm coerces a submitted product form
func ProductFromForm(v forms.Values) (ProductInput, error) {
	cost, err := forms.Money(v, "costPrice", "Cost Price")
	if err != nil {
		return ProductInput{}, err
	}
	selling, err := forms.Money(v, "sellingPrice", "Selling Price")
	if err != nil {
		return ProductInput{}, err
	}
	qty, err := forms.Count(v, "quantity", "Quantity")
	if err != nil {
		return ProductInput{}, err
	}
	status := ProductStatus(strings.ToLower(forms.Text(v, "status")))
	if !status.Valid() {
		return ProductInput{}, forms.Invalid("status", "Status must be one of %s", strings.Join(productStatusOptions(), ", "))
	}
	return ProductInput{
		Name:         forms.Text(v, "name"),
		CostPrice:    cost,
		SellingPrice: selling,
		Quantity:     qty,
		Status:       status,
	}, nil
}

// NewProduct builds a product from form input
func NewProduct(id int, in ProductInput) Product {
	p := Product{ID: id}
	in.ApplyTo(&p)
	return p
}

// ApplyTo copies the editable fields onto p
func (in ProductInput) ApplyTo(p *Product) {
	p.Name = in.Name
	p.CostPrice = in.CostPrice
	p.SellingPrice = in.SellingPrice
	p.Quantity = in.Quantity
	p.Status = in.Status
}

// FormData returns the edit-form seed for a product
func (p Product) FormData() map[string]any {
	return map[string]any{
		"name":         p.Name,
		"costPrice":    p.CostPrice.String(),
		"sellingPrice": p.SellingPrice.String(),
		"quantity":     p.Quantity,
		"status":       string(p.Status),
	}
}

// MatchProduct searches products by name
func MatchProduct(p Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(term))
}

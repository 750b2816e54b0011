package services

import (
	"sync"

	"SalesDashboard/app/forms"
	"SalesDashboard/app/models"
	"SalesDashboard/app/pricing"

	"github.com/shopspring/decimal"
)

// BuilderState is the phase of a selection-driven builder
type BuilderState string

const (
	BuilderEmpty     BuilderState = "empty"
	BuilderPopulated BuilderState = "populated"
)

// SaleDraft is a snapshot of a sale being built
type SaleDraft struct {
	State           BuilderState         `json:"state"`
	EmployeeID      int                  `json:"employee_id"`
	EmployeeName    string               `json:"employee_name"`
	Lines           []models.SaleProduct `json:"lines"`
	Total           decimal.Decimal      `json:"total"`
	TotalCommission decimal.Decimal      `json:"total_commission"`
	TotalProfit     decimal.Decimal      `json:"total_profit"`
}

// SaleBuilder composes a sale from a selected employee and a list of
// product lines. Each line edit recomputes that line only.
type SaleBuilder struct {
	mu       sync.Mutex
	sales    *SalesService
	employee *models.Employee
	lines    []models.SaleProduct
}

// NewSaleBuilder returns an empty builder bound to this service
func (s *SalesService) NewSaleBuilder() *SaleBuilder {
	return &SaleBuilder{sales: s}
}

// State returns a snapshot of the draft
func (b *SaleBuilder) State() SaleDraft {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot()
}

func (b *SaleBuilder) snapshot() SaleDraft {
	lines := make([]models.SaleProduct, len(b.lines))
	copy(lines, b.lines)

	draft := SaleDraft{
		State:           BuilderEmpty,
		Lines:           lines,
		Total:           pricing.Sum(lines, func(l models.SaleProduct) decimal.Decimal { return l.SellingValue }),
		TotalCommission: pricing.Sum(lines, func(l models.SaleProduct) decimal.Decimal { return l.Commission }),
		TotalProfit:     pricing.Sum(lines, func(l models.SaleProduct) decimal.Decimal { return l.Profit }),
	}
	if b.employee != nil {
		draft.State = BuilderPopulated
		draft.EmployeeID = b.employee.ID
		draft.EmployeeName = b.employee.Name
	}
	return draft
}

// SelectEmployee picks the seller and starts a fresh, empty line list
func (b *SaleBuilder) SelectEmployee(id int) (SaleDraft, error) {
	employee, ok := b.sales.employees.Get(id)
	if !ok {
		return b.State(), b.sales.fail(0, notFound("Employee", id))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.employee = &employee
	b.lines = nil
	return b.snapshot(), nil
}

// AddLine appends a blank line with quantity one
func (b *SaleBuilder) AddLine() (SaleDraft, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.employee == nil {
		return b.snapshot(), b.sales.fail(0, forms.Invalid("employee_id", "Employee is required"))
	}
	b.lines = append(b.lines, models.BlankSaleProduct())
	return b.snapshot(), nil
}

// RemoveLine drops the line at index
func (b *SaleBuilder) RemoveLine(index int) (SaleDraft, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkIndex(index); err != nil {
		return b.snapshot(), b.sales.fail(0, err)
	}
	b.lines = append(b.lines[:index:index], b.lines[index+1:]...)
	return b.snapshot(), nil
}

// SetLineProduct changes the product of one line and recomputes it
func (b *SaleBuilder) SetLineProduct(index, productID int) (SaleDraft, error) {
	b.mu.Lock()
	quantity := 0
	if index >= 0 && index < len(b.lines) {
		quantity = b.lines[index].Quantity
	}
	b.mu.Unlock()

	return b.SetLine(index, productID, quantity)
}

// SetLineQuantity changes the quantity of one line and recomputes it
func (b *SaleBuilder) SetLineQuantity(index, quantity int) (SaleDraft, error) {
	b.mu.Lock()
	productID := 0
	if index >= 0 && index < len(b.lines) {
		productID = b.lines[index].ProductID
	}
	b.mu.Unlock()

	return b.SetLine(index, productID, quantity)
}

// SetLine sets product and quantity of one line and recomputes its derived
// values. Other lines are left untouched.
func (b *SaleBuilder) SetLine(index, productID, quantity int) (SaleDraft, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkIndex(index); err != nil {
		return b.snapshot(), b.sales.fail(0, err)
	}
	if quantity < 0 {
		return b.snapshot(), b.sales.fail(0, forms.Invalid("quantity", "Quantity cannot be negative"))
	}

	if productID == 0 {
		line := models.BlankSaleProduct()
		line.Quantity = quantity
		b.lines[index] = line
		return b.snapshot(), nil
	}

	product, ok := b.sales.products.Get(productID)
	if !ok {
		return b.snapshot(), b.sales.fail(0, notFound("Product", productID))
	}
	b.lines[index] = models.NewSaleProduct(product, quantity, b.rate())
	return b.snapshot(), nil
}

// Save validates the draft, records the sale and empties the builder. The
// employee and every line are re-read so the sale carries current prices.
// On a validation error the draft is kept.
func (b *SaleBuilder) Save() (models.Sale, Outcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.employee == nil || len(b.lines) == 0 {
		return models.Sale{}, Outcome{}, b.sales.fail(0, forms.Invalid("employee_id", "Employee and products are required"))
	}
	employee, ok := b.sales.employees.Get(b.employee.ID)
	if !ok {
		return models.Sale{}, Outcome{}, b.sales.fail(0, forms.Invalid("employee_id", "Employee is required"))
	}
	b.employee = &employee

	lines := make([]models.SaleProduct, len(b.lines))
	for i, line := range b.lines {
		if line.ProductID == 0 {
			return models.Sale{}, Outcome{}, b.sales.fail(0, forms.Invalid("lines", "Every line needs a product"))
		}
		product, ok := b.sales.products.Get(line.ProductID)
		if !ok {
			return models.Sale{}, Outcome{}, b.sales.fail(0,
				forms.Invalid("lines", "%s is no longer available", line.ProductName))
		}
		lines[i] = models.NewSaleProduct(product, line.Quantity, b.rate())
	}

	sale, outcome := b.sales.recordSale(models.Sale{
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		Products:     lines,
		Date:         models.Today(),
		Status:       models.SaleCompleted,
	})
	b.reset()
	return sale, outcome, nil
}

// Reset discards the draft
func (b *SaleBuilder) Reset() SaleDraft {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.reset()
	return b.snapshot()
}

func (b *SaleBuilder) reset() {
	b.employee = nil
	b.lines = nil
}

func (b *SaleBuilder) checkIndex(index int) error {
	if index < 0 || index >= len(b.lines) {
		return forms.Invalid("lines", "No sale line at position %d", index)
	}
	return nil
}

// rate is the commission rate for lines of the selected employee
func (b *SaleBuilder) rate() decimal.Decimal {
	cfg := b.sales.commission
	if cfg.UseEmployeeRate && b.employee != nil {
		return pricing.RateFromPercent(b.employee.CommissionRate)
	}
	if cfg.DefaultRate.IsZero() {
		return pricing.DefaultCommissionRate
	}
	return cfg.DefaultRate
}

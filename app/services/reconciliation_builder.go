package services

import (
	"sync"

	"SalesDashboard/app/forms"
	"SalesDashboard/app/models"
)

// ReconciliationDraft is a snapshot of a reconciliation being built
type ReconciliationDraft struct {
	State        BuilderState          `json:"state"`
	SaleID       int                   `json:"sale_id"`
	EmployeeName string                `json:"employee_name"`
	Lines        []ReconciliationLine  `json:"lines"`
	Reason       models.ReturnReason   `json:"reason"`
	Reasons      []models.ReturnReason `json:"reasons"`
}

// ReconciliationLine is one returnable line with the quantity originally sold
type ReconciliationLine struct {
	models.ReturnedProduct
	QuantitySold int `json:"quantity_sold"`
}

// ReconciliationBuilder records returns against a selected sale. The line
// set is fixed to the sale's products.
type ReconciliationBuilder struct {
	mu     sync.Mutex
	recs   *ReconciliationService
	sale   *models.Sale
	lines  []ReconciliationLine
	reason models.ReturnReason
}

// NewReconciliationBuilder returns an empty builder bound to this service
func (s *ReconciliationService) NewReconciliationBuilder() *ReconciliationBuilder {
	return &ReconciliationBuilder{recs: s, reason: models.ReasonCustomerReturn}
}

// State returns a snapshot of the draft
func (b *ReconciliationBuilder) State() ReconciliationDraft {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot()
}

func (b *ReconciliationBuilder) snapshot() ReconciliationDraft {
	lines := make([]ReconciliationLine, len(b.lines))
	copy(lines, b.lines)

	draft := ReconciliationDraft{
		State:   BuilderEmpty,
		Lines:   lines,
		Reason:  b.reason,
		Reasons: models.ReturnReasons,
	}
	if b.sale != nil {
		draft.State = BuilderPopulated
		draft.SaleID = b.sale.ID
		draft.EmployeeName = b.sale.EmployeeName
	}
	return draft
}

// SelectSale picks the sale being reconciled and pre-fills one line per
// sale product with nothing returned
func (b *ReconciliationBuilder) SelectSale(id int) (ReconciliationDraft, error) {
	sale, ok := b.recs.sales.Get(id)
	if !ok {
		return b.State(), b.recs.fail(0, notFound("Sale", id))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.sale = &sale
	b.lines = make([]ReconciliationLine, len(sale.Products))
	for i, p := range sale.Products {
		b.lines[i] = ReconciliationLine{
			ReturnedProduct: models.ReturnedProduct{
				ProductID:   p.ProductID,
				ProductName: p.ProductName,
			},
			QuantitySold: p.Quantity,
		}
	}
	return b.snapshot(), nil
}

// SetReturnedQuantity sets how many units of one line came back, between
// zero and the quantity sold
func (b *ReconciliationBuilder) SetReturnedQuantity(index, quantity int) (ReconciliationDraft, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if index < 0 || index >= len(b.lines) {
		return b.snapshot(), b.recs.fail(0, forms.Invalid("lines", "No sale line at position %d", index))
	}
	line := &b.lines[index]
	if quantity < 0 {
		return b.snapshot(), b.recs.fail(0, forms.Invalid("quantity_returned", "Returned quantity cannot be negative"))
	}
	if quantity > line.QuantitySold {
		return b.snapshot(), b.recs.fail(0, forms.Invalid("quantity_returned",
			"Cannot return %d of %s, only %d sold", quantity, line.ProductName, line.QuantitySold))
	}
	line.QuantityReturned = quantity
	return b.snapshot(), nil
}

// SetReason sets the return reason
func (b *ReconciliationBuilder) SetReason(reason models.ReturnReason) (ReconciliationDraft, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !reason.Valid() {
		return b.snapshot(), b.recs.fail(0, forms.Invalid("reason", "Unknown return reason %q", reason))
	}
	b.reason = reason
	return b.snapshot(), nil
}

// Save validates the draft and records a pending reconciliation holding only
// the lines with returned units. On a validation error the draft is kept.
func (b *ReconciliationBuilder) Save() (models.SaleReconciliation, Outcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sale == nil {
		return models.SaleReconciliation{}, Outcome{}, b.recs.fail(0, forms.Invalid("sale_id", "Sale is required"))
	}
	if _, ok := b.recs.sales.Get(b.sale.ID); !ok {
		return models.SaleReconciliation{}, Outcome{}, b.recs.fail(0, forms.Invalid("sale_id", "Sale is required"))
	}

	var returned []models.ReturnedProduct
	for _, line := range b.lines {
		if line.QuantityReturned > 0 {
			returned = append(returned, line.ReturnedProduct)
		}
	}
	if len(returned) == 0 {
		return models.SaleReconciliation{}, Outcome{}, b.recs.fail(0,
			forms.Invalid("returned_products", "Returned quantity must be greater than zero"))
	}

	rec, outcome := b.recs.recordReconciliation(models.SaleReconciliation{
		SaleID:           b.sale.ID,
		EmployeeID:       b.sale.EmployeeID,
		EmployeeName:     b.sale.EmployeeName,
		ReturnedProducts: returned,
		Reason:           b.reason,
		Date:             models.Today(),
		Status:           models.ReconciliationPending,
	})
	b.reset()
	return rec, outcome, nil
}

// Reset discards the draft
func (b *ReconciliationBuilder) Reset() ReconciliationDraft {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.reset()
	return b.snapshot()
}

func (b *ReconciliationBuilder) reset() {
	b.sale = nil
	b.lines = nil
	b.reason = models.ReasonCustomerReturn
}

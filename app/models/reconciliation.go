package models

import (
	"strings"
)

// ReturnReason explains why goods came back
type ReturnReason string

const (
	ReasonDamaged        ReturnReason = "damaged"
	ReasonCustomerReturn ReturnReason = "customer-return"
	ReasonWrongItem      ReturnReason = "wrong-item"
	ReasonOther          ReturnReason = "other"
)

// ReturnReasons lists the accepted reasons in display order
var ReturnReasons = []ReturnReason{ReasonDamaged, ReasonCustomerReturn, ReasonWrongItem, ReasonOther}

// Valid reports whether r is a known reason
func (r ReturnReason) Valid() bool {
	for _, known := range ReturnReasons {
		if r == known {
			return true
		}
	}
	return false
}

// ReconciliationStatus is the approval state of a reconciliation
type ReconciliationStatus string

const (
	ReconciliationPending  ReconciliationStatus = "pending"
	ReconciliationApproved ReconciliationStatus = "approved"
	ReconciliationRejected ReconciliationStatus = "rejected"
)

// Valid reports whether s is a known status
func (s ReconciliationStatus) Valid() bool {
	return s == ReconciliationPending || s == ReconciliationApproved || s == ReconciliationRejected
}

// ReturnedProduct is the quantity of one sale line that was returned
type ReturnedProduct struct {
	ProductID        int    `json:"product_id"`
	ProductName      string `json:"product_name"`
	QuantityReturned int    `json:"quantity_returned"`
}

// SaleReconciliation records goods returned against an existing sale
type SaleReconciliation struct {
	ID               int                  `json:"id"`
	SaleID           int                  `json:"sale_id"`
	EmployeeID       int                  `json:"employee_id"`
	EmployeeName     string               `json:"employee_name"`
	ReturnedProducts []ReturnedProduct    `json:"returned_products"`
	Reason           ReturnReason         `json:"reason"`
	Date             Date                 `json:"date"`
	Status           ReconciliationStatus `json:"status"`
}

// RecordID implements store.Record
func (r SaleReconciliation) RecordID() int { return r.ID }

// TotalReturned is the number of units returned over all lines
func (r SaleReconciliation) TotalReturned() int {
	total := 0
	for _, p := range r.ReturnedProducts {
		total += p.QuantityReturned
	}
	return total
}

// MatchReconciliation searches reconciliations by employee name or status
func MatchReconciliation(r SaleReconciliation, term string) bool {
	lower := strings.ToLower(term)
	return strings.Contains(strings.ToLower(r.EmployeeName), lower) ||
		strings.Contains(string(r.Status), lower)
}

package models

import (
	"strings"

	"SalesDashboard/app/forms"

	"github.com/shopspring/decimal"
)

// EmployeeStatus is the employment state of a sales employee
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
)

// Valid reports whether s is a known status
func (s EmployeeStatus) Valid() bool {
	return s == EmployeeActive || s == EmployeeInactive
}

// Employee represents a sales employee earning commission
type Employee struct {
	ID                 int             `json:"id"`
	Name               string          `json:"name"`
	Email              string          `json:"email"`
	Phone              string          `json:"phone"`
	CommissionRate     decimal.Decimal `json:"commission_rate"` // Percentage, 10 = 10%
	TotalGoodsAssigned decimal.Decimal `json:"total_goods_assigned"`
	TotalSales         decimal.Decimal `json:"total_sales"`
	CommissionEarned   decimal.Decimal `json:"commission_earned"`
	Status             EmployeeStatus  `json:"status"`
	JoinedDate         Date            `json:"joined_date"`
}

// RecordID implements store.Record
func (e Employee) RecordID() int { return e.ID }

// EmployeeFields is the create/edit form of an employee
var EmployeeFields = []forms.Field{
	{Name: "name", Label: "Full Name", Type: "text", Required: true},
	{Name: "email", Label: "Email Address", Type: "email", Required: true},
	{Name: "phone", Label: "Phone Number", Type: "text", Required: true},
	{Name: "commissionRate", Label: "Commission Rate (%)", Type: "number", Required: true},
}

// EmployeeInput is the editable part of an employee
type EmployeeInput struct {
	Name           string
	Email          string
	Phone          string
	CommissionRate decimal.Decimal
}

// EmployeeFromForm coerces a submitted employee form
func EmployeeFromForm(v forms.Values) (EmployeeInput, error) {
	rate, err := forms.Money(v, "commissionRate", "Commission Rate (%)")
	if err != nil {
		return EmployeeInput{}, err
	}
	return EmployeeInput{
		Name:           forms.Text(v, "name"),
		Email:          forms.Text(v, "email"),
		Phone:          forms.Text(v, "phone"),
		CommissionRate: rate,
	}, nil
}

// NewEmployee builds a freshly hired employee with zeroed totals
func NewEmployee(id int, in EmployeeInput) Employee {
	e := Employee{
		ID:                 id,
		TotalGoodsAssigned: decimal.Zero,
		TotalSales:         decimal.Zero,
		CommissionEarned:   decimal.Zero,
		Status:             EmployeeActive,
		JoinedDate:         Today(),
	}
	in.ApplyTo(&e)
	return e
}

// ApplyTo copies the editable fields onto e. Totals, status and join date are untouched.
func (in EmployeeInput) ApplyTo(e *Employee) {
	e.Name = in.Name
	e.Email = in.Email
	e.Phone = in.Phone
	e.CommissionRate = in.CommissionRate
}

// FormData returns the edit-form seed for an employee
func (e Employee) FormData() map[string]any {
	return map[string]any{
		"name":           e.Name,
		"email":          e.Email,
		"phone":          e.Phone,
		"commissionRate": e.CommissionRate.String(),
	}
}

// MatchEmployee is the employee search: name and email ignore case, phone is a plain substring
func MatchEmployee(e Employee, term string) bool {
	lower := strings.ToLower(term)
	return strings.Contains(strings.ToLower(e.Name), lower) ||
		strings.Contains(strings.ToLower(e.Email), lower) ||
		strings.Contains(e.Phone, term)
}

package models

import (
	"testing"
	"time"

	"SalesDashboard/app/forms"

	"github.com/shopspring/decimal"
)

func fixClock(t *testing.T, day string) {
	t.Helper()
	prev := Now
	fixed, _ := time.Parse(DateLayout, day)
	Now = func() time.Time { return fixed }
	t.Cleanup(func() { Now = prev })
}

func TestNewEmployeeDefaults(t *testing.T) {
	fixClock(t, "2026-10-16")

	in, err := EmployeeFromForm(forms.Values{
		"name": "Ana", "email": "ana@example.com", "phone": "0700", "commissionRate": "10",
	})
	if err != nil {
		t.Fatal(err)
	}
	e := NewEmployee(3, in)

	if e.ID != 3 || e.Name != "Ana" || !e.CommissionRate.Equal(decimal.NewFromInt(10)) {
		t.Errorf("unexpected employee %+v", e)
	}
	if !e.CommissionEarned.IsZero() || !e.TotalSales.IsZero() || !e.TotalGoodsAssigned.IsZero() {
		t.Error("totals must start at zero")
	}
	if e.Status != EmployeeActive || e.JoinedDate != "2026-10-16" {
		t.Errorf("status=%s joined=%s", e.Status, e.JoinedDate)
	}
}

func TestEmployeeFromFormRejectsBadRate(t *testing.T) {
	for _, rate := range []string{"ten", "-1"} {
		_, err := EmployeeFromForm(forms.Values{"name": "Ana", "commissionRate": rate})
		if ve, ok := forms.AsValidation(err); !ok || ve.Field != "commissionRate" {
			t.Errorf("rate %q: err = %v", rate, err)
		}
	}
}

func TestEmployeeInputPreservesTotals(t *testing.T) {
	e := SeedEmployees()[0]
	EmployeeInput{Name: "J. Webb", Email: "j@x.io", Phone: "1", CommissionRate: decimal.NewFromInt(12)}.ApplyTo(&e)

	if e.Name != "J. Webb" || !e.TotalSales.Equal(decimal.NewFromInt(12000)) || e.JoinedDate != "2024-01-10" {
		t.Errorf("unexpected %+v", e)
	}
}

func TestProductFromForm(t *testing.T) {
	in, err := ProductFromForm(forms.Values{
		"name": "Widget", "costPrice": "10.5", "sellingPrice": "12", "quantity": "7", "status": "Low-Stock",
	})
	if err != nil {
		t.Fatal(err)
	}
	if in.Status != ProductLowStock || in.Quantity != 7 || !in.CostPrice.Equal(decimal.RequireFromString("10.5")) {
		t.Errorf("unexpected %+v", in)
	}

	bad := []forms.Values{
		{"costPrice": "x", "sellingPrice": "1", "quantity": "1", "status": "in-stock"},
		{"costPrice": "1", "sellingPrice": "1", "quantity": "1.5", "status": "in-stock"},
		{"costPrice": "1", "sellingPrice": "1", "quantity": "1", "status": "discontinued"},
	}
	for _, v := range bad {
		if _, err := ProductFromForm(v); err == nil {
			t.Errorf("expected error for %v", v)
		}
	}
}

func TestMatchers(t *testing.T) {
	e := SeedEmployees()[1]
	for term, want := range map[string]bool{"sarah": true, "SARAH@EX": true, "0798": true, "zzz": false, "": true} {
		if got := MatchEmployee(e, term); got != want {
			t.Errorf("MatchEmployee(%q) = %v", term, got)
		}
	}
	if !MatchProduct(SeedProducts()[0], "product a") || MatchProduct(SeedProducts()[0], "b") {
		t.Error("product match")
	}
	s := SeedSales()[0]
	if !MatchSale(s, "JAMES") || !MatchSale(s, "Completed") || MatchSale(s, "sarah") {
		t.Error("sale match")
	}
}

func TestSaleTotals(t *testing.T) {
	s := SeedSales()[0]
	if !s.Total().Equal(decimal.NewFromInt(2600)) {
		t.Errorf("total = %s", s.Total())
	}
	if !s.TotalCommission().Equal(decimal.NewFromInt(55)) {
		t.Errorf("commission = %s", s.TotalCommission())
	}

	reordered := s
	reordered.Products = []SaleProduct{s.Products[1], s.Products[0]}
	if !reordered.Total().Equal(s.Total()) {
		t.Error("total depends on line order")
	}

	if got := TotalSales([]Sale{s, s}); !got.Equal(decimal.NewFromInt(5200)) {
		t.Errorf("TotalSales = %s", got)
	}
}

func TestNewSaleProduct(t *testing.T) {
	line := NewSaleProduct(SeedProducts()[0], 2, decimal.NewFromFloat(0.10))
	want := map[string]decimal.Decimal{
		"cost": line.CostValue, "selling": line.SellingValue, "profit": line.Profit, "commission": line.Commission,
	}
	expect := map[string]int64{"cost": 2000, "selling": 2400, "profit": 400, "commission": 40}
	for k, v := range expect {
		if !want[k].Equal(decimal.NewFromInt(v)) {
			t.Errorf("%s = %s, want %d", k, want[k], v)
		}
	}
	if line.ProductName != "Product A" || line.Quantity != 2 {
		t.Errorf("unexpected %+v", line)
	}
}

func TestRecentSales(t *testing.T) {
	sales := []Sale{{ID: 1, Date: "2026-01-01"}, {ID: 2, Date: "2026-03-01"}, {ID: 3, Date: "2026-02-01"}}
	got := RecentSales(sales, 2)
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Errorf("got %+v", got)
	}
	if sales[0].ID != 1 {
		t.Error("input reordered")
	}
	if got := RecentSales(sales, -1); len(got) != 0 {
		t.Errorf("negative limit = %+v", got)
	}
}

func TestDate(t *testing.T) {
	if !Date("2024-02-29").Valid() || Date("2024-13-01").Valid() {
		t.Error("date validation")
	}
}

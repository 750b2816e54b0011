package app

import (
	"context"
	"testing"

	"SalesDashboard/app/config"
	"SalesDashboard/app/forms"
	"SalesDashboard/app/services"

	"go.uber.org/zap"
)

func testConfig(t *testing.T, seed bool) *config.AppConfig {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Activity.DSN = "file:" + t.Name() + "?mode=memory&cache=shared"
	cfg.SeedData = seed
	return cfg
}

func newApp(t *testing.T, seed bool) *App {
	t.Helper()
	a, err := New(testConfig(t, seed), services.NewLoggerServiceFrom(zap.NewNop()))
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestNewSeedsCollections(t *testing.T) {
	a := newApp(t, true)
	defer a.Shutdown(context.Background())

	if a.Employees.Len() != 2 || a.Products.Len() != 2 || a.Sales.Len() != 1 || a.Reconciliations.Len() != 0 {
		t.Errorf("seeded sizes = %d %d %d %d", a.Employees.Len(), a.Products.Len(), a.Sales.Len(), a.Reconciliations.Len())
	}

	empty := newApp(t, false)
	defer empty.Shutdown(context.Background())
	if empty.Employees.Len() != 0 || empty.DashboardService.GetDashboardStats().TotalEmployees != 0 {
		t.Error("collections seeded without seed data")
	}
}

func TestOutcomesReachJournal(t *testing.T) {
	a := newApp(t, true)
	defer a.Shutdown(context.Background())

	if _, _, err := a.ProductService.CreateProduct(forms.Values{
		"name": "Cable", "costPrice": "50", "sellingPrice": "80", "quantity": "10", "status": "in-stock",
	}); err != nil {
		t.Fatal(err)
	}

	entries, err := a.ActivityService.GetRecentActivity("product", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Message != "Product added successfully" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestStartupAndShutdown(t *testing.T) {
	a := newApp(t, true)

	if err := a.Startup(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := a.Startup(context.Background()); err == nil {
		t.Error("second startup should fail")
	}
	if err := a.Shutdown(context.Background()); err != nil {
		t.Fatal(err)
	}
}

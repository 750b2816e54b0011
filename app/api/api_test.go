package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"SalesDashboard/app/config"
	"SalesDashboard/app/models"
	"SalesDashboard/app/services"
	"SalesDashboard/app/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type envelope struct {
	Type    services.OutcomeType `json:"type"`
	Message string               `json:"message"`
	Field   string               `json:"field"`
	Data    json.RawMessage      `json:"data"`
}

func newRouter(t *testing.T, rate string) *gin.Engine {
	t.Helper()

	employees := store.New(models.MatchEmployee, models.SeedEmployees()...)
	products := store.New(models.MatchProduct, models.SeedProducts()...)
	sales := store.New(models.MatchSale, models.SeedSales()...)
	recs := store.New[models.SaleReconciliation](models.MatchReconciliation)

	log := zap.NewNop()
	out := &services.OutcomeRecorder{}
	dashboard := services.NewDashboardService(employees, products, sales, recs)
	h := &Handlers{
		Employees:       services.NewEmployeeService(employees, out, log),
		Products:        services.NewProductService(products, out, log),
		Sales:           services.NewSalesService(sales, employees, products, config.CommissionConfig{DefaultRate: decimal.NewFromFloat(0.10)}, out, log),
		Reconciliations: services.NewReconciliationService(recs, sales, out, log),
		Dashboard:       dashboard,
		Sheets:          services.NewGoogleSheetsService(config.SheetsConfig{}, dashboard, log),
	}

	r, err := NewRouter(h, Options{RateLimit: rate, Debug: true}, log)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func call(t *testing.T, r http.Handler, method, path string, body interface{}) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: %v", method, path, err)
		}
	}
	return w.Code, env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("data %s: %v", env.Data, err)
	}
}

func TestHealth(t *testing.T) {
	r := newRouter(t, "100-M")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("health = %d %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"connections":[]`) {
		t.Errorf("health without clients = %s", w.Body.String())
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("missing request id")
	}
}

func TestEmployeeEndpoints(t *testing.T) {
	r := newRouter(t, "100-M")

	code, env := call(t, r, http.MethodGet, "/api/employees?q=sarah", nil)
	var view struct {
		Items []models.Employee `json:"items"`
		Shown int               `json:"shown"`
		Total int               `json:"total"`
	}
	decodeData(t, env, &view)
	if code != http.StatusOK || view.Shown != 1 || view.Total != 2 || view.Items[0].Name != "Sarah Johnson" {
		t.Errorf("search = %d %+v", code, view)
	}

	code, env = call(t, r, http.MethodPost, "/api/employees", map[string]interface{}{"name": "Ana"})
	if code != http.StatusUnprocessableEntity || env.Field != "email" || env.Message != "Email Address is required" {
		t.Errorf("missing email = %d %+v", code, env)
	}

	code, env = call(t, r, http.MethodPost, "/api/employees", map[string]interface{}{
		"name": "Ana", "email": "ana@example.com", "phone": "0700111222", "commissionRate": 12,
	})
	if code != http.StatusCreated || env.Type != services.OutcomeSuccess || env.Message != "Employee added successfully" {
		t.Fatalf("create = %d %+v", code, env)
	}
	var created models.Employee
	decodeData(t, env, &created)
	if created.ID != 3 || !created.CommissionRate.Equal(decimal.NewFromInt(12)) {
		t.Errorf("created = %+v", created)
	}

	code, env = call(t, r, http.MethodDelete, "/api/employees/3", nil)
	if code != http.StatusOK || env.Message != "Ana deleted successfully" {
		t.Errorf("delete = %d %+v", code, env)
	}

	code, env = call(t, r, http.MethodDelete, "/api/employees/3", nil)
	if code != http.StatusNotFound || env.Message != "Employee not found" {
		t.Errorf("second delete = %d %+v", code, env)
	}

	code, _ = call(t, r, http.MethodGet, "/api/employees/abc", nil)
	if code != http.StatusBadRequest {
		t.Errorf("bad id = %d", code)
	}
}

func TestFormSchema(t *testing.T) {
	r := newRouter(t, "100-M")

	code, env := call(t, r, http.MethodGet, "/api/forms/products?id=1", nil)
	var form struct {
		Schema struct {
			SubmitLabel string `json:"submit_label"`
		} `json:"schema"`
		Draft map[string]string `json:"draft"`
	}
	decodeData(t, env, &form)
	if code != http.StatusOK || form.Draft["name"] != "Product A" {
		t.Errorf("edit form = %d %+v", code, form)
	}

	code, _ = call(t, r, http.MethodGet, "/api/forms/widgets", nil)
	if code != http.StatusNotFound {
		t.Errorf("unknown form = %d", code)
	}
}

func TestSaleBuilderEndpoints(t *testing.T) {
	r := newRouter(t, "100-M")

	code, env := call(t, r, http.MethodPost, "/api/sales/builder/save", nil)
	if code != http.StatusUnprocessableEntity || env.Message != "Employee and products are required" {
		t.Errorf("empty save = %d %+v", code, env)
	}

	if code, env = call(t, r, http.MethodPost, "/api/sales/builder/employee", map[string]int{"employee_id": 1}); code != http.StatusOK {
		t.Fatalf("select = %d %+v", code, env)
	}
	if code, env = call(t, r, http.MethodPost, "/api/sales/builder/lines", nil); code != http.StatusOK {
		t.Fatalf("add line = %d %+v", code, env)
	}

	code, env = call(t, r, http.MethodPut, "/api/sales/builder/lines/0", map[string]int{"product_id": 1, "quantity": 2})
	var draft services.SaleDraft
	decodeData(t, env, &draft)
	if code != http.StatusOK || !draft.Total.Equal(decimal.NewFromInt(2400)) || !draft.TotalCommission.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("set line = %d %+v", code, draft)
	}

	code, env = call(t, r, http.MethodPut, "/api/sales/builder/lines/0", map[string]int{"quantity": -1})
	if code != http.StatusUnprocessableEntity || env.Field != "quantity" {
		t.Errorf("negative quantity = %d %+v", code, env)
	}

	code, env = call(t, r, http.MethodPost, "/api/sales/builder/save", nil)
	if code != http.StatusCreated || env.Message != "Sale recorded successfully" {
		t.Fatalf("save = %d %+v", code, env)
	}
	var sale models.Sale
	decodeData(t, env, &sale)
	if sale.ID != 2 || sale.EmployeeName != "James Webb" || len(sale.Products) != 1 {
		t.Errorf("sale = %+v", sale)
	}

	_, env = call(t, r, http.MethodGet, "/api/sales/builder", nil)
	decodeData(t, env, &draft)
	if draft.State != services.BuilderEmpty {
		t.Errorf("builder state after save = %s", draft.State)
	}

	code, _ = call(t, r, http.MethodGet, "/api/sales/2", nil)
	if code != http.StatusOK {
		t.Errorf("get sale = %d", code)
	}
}

func TestReconciliationEndpoints(t *testing.T) {
	r := newRouter(t, "100-M")

	code, env := call(t, r, http.MethodPost, "/api/reconciliations/builder/sale", map[string]int{"sale_id": 99})
	if code != http.StatusNotFound {
		t.Errorf("unknown sale = %d %+v", code, env)
	}

	call(t, r, http.MethodPost, "/api/reconciliations/builder/sale", map[string]int{"sale_id": 1})

	code, env = call(t, r, http.MethodPut, "/api/reconciliations/builder/lines/1", map[string]int{"quantity_returned": 9})
	if code != http.StatusUnprocessableEntity {
		t.Errorf("over-return = %d %+v", code, env)
	}
	call(t, r, http.MethodPut, "/api/reconciliations/builder/lines/1", map[string]int{"quantity_returned": 2})
	call(t, r, http.MethodPut, "/api/reconciliations/builder/reason", map[string]string{"reason": "damaged"})

	code, env = call(t, r, http.MethodPost, "/api/reconciliations/builder/save", nil)
	if code != http.StatusCreated || env.Message != "Sales reconciliation created" {
		t.Fatalf("save = %d %+v", code, env)
	}
	var rec models.SaleReconciliation
	decodeData(t, env, &rec)
	if rec.Reason != models.ReasonDamaged || len(rec.ReturnedProducts) != 1 || rec.Status != models.ReconciliationPending {
		t.Errorf("reconciliation = %+v", rec)
	}

	code, env = call(t, r, http.MethodPost, "/api/reconciliations/1/review", map[string]string{"status": "approved"})
	if code != http.StatusOK || env.Message != "Reconciliation approved" {
		t.Errorf("review = %d %+v", code, env)
	}
	code, _ = call(t, r, http.MethodPost, "/api/reconciliations/1/review", map[string]string{"status": "rejected"})
	if code != http.StatusUnprocessableEntity {
		t.Errorf("second review = %d", code)
	}
}

func TestDashboardEndpoints(t *testing.T) {
	r := newRouter(t, "100-M")

	code, env := call(t, r, http.MethodGet, "/api/dashboard", nil)
	var stats services.DashboardStats
	decodeData(t, env, &stats)
	if code != http.StatusOK || stats.TotalEmployees != 2 || stats.TotalSalesLabel != "KES 2,600" {
		t.Errorf("stats = %d %+v", code, stats)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/qr", nil))
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" || !bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")) {
		t.Errorf("qr = %d %s", w.Code, w.Header().Get("Content-Type"))
	}

	code, _ = call(t, r, http.MethodPost, "/api/dashboard/export", nil)
	if code != http.StatusServiceUnavailable {
		t.Errorf("export without sheets = %d", code)
	}

	code, _ = call(t, r, http.MethodGet, "/api/activity", nil)
	if code != http.StatusServiceUnavailable {
		t.Errorf("activity without journal = %d", code)
	}
}

func TestMetricsAndCORS(t *testing.T) {
	r := newRouter(t, "100-M")
	call(t, r, http.MethodGet, "/api/products", nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/products", nil))
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("preflight = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(w.Body.String(), `http_requests_total{method="GET",path="/api/products",service="sales_dashboard",status="200"} 1`) {
		t.Errorf("metrics missing request counter:\n%s", w.Body.String())
	}
}

func TestRateLimit(t *testing.T) {
	r := newRouter(t, "2-M")

	for i := 0; i < 2; i++ {
		if code, _ := call(t, r, http.MethodGet, "/api/products", nil); code != http.StatusOK {
			t.Fatalf("request %d = %d", i, code)
		}
	}
	if code, _ := call(t, r, http.MethodGet, "/api/products", nil); code != http.StatusTooManyRequests {
		t.Errorf("third request = %d", code)
	}
}

func TestInvalidRateLimit(t *testing.T) {
	if _, err := NewRouter(&Handlers{}, Options{RateLimit: "lots"}, zap.NewNop()); err == nil {
		t.Error("expected error")
	}
}

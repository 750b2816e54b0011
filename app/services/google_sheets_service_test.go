package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"SalesDashboard/app/config"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// fakeSheet is an in-memory stand-in for the Sheets values API
type fakeSheet struct {
	mu      sync.Mutex
	rows    [][]interface{}
	updates []string
	appends int
}

func (f *fakeSheet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.Path
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(path, "!A1:H1"):
		resp := sheets.ValueRange{}
		if len(f.rows) > 0 {
			resp.Values = f.rows[:1]
		}
		json.NewEncoder(w).Encode(resp)

	case r.Method == http.MethodGet && strings.HasSuffix(path, "!A:A"):
		resp := sheets.ValueRange{}
		for _, row := range f.rows {
			resp.Values = append(resp.Values, row[:1])
		}
		json.NewEncoder(w).Encode(resp)

	case r.Method == http.MethodPut:
		var body sheets.ValueRange
		json.NewDecoder(r.Body).Decode(&body)
		target := path[strings.LastIndex(path, "!")+1:]
		f.updates = append(f.updates, target)
		if target == "A1:H1" {
			if len(f.rows) == 0 {
				f.rows = append(f.rows, body.Values[0])
			} else {
				f.rows[0] = body.Values[0]
			}
		}
		json.NewEncoder(w).Encode(sheets.UpdateValuesResponse{})

	case r.Method == http.MethodPost && strings.HasSuffix(path, ":append"):
		var body sheets.ValueRange
		json.NewDecoder(r.Body).Decode(&body)
		f.rows = append(f.rows, body.Values...)
		f.appends++
		json.NewEncoder(w).Encode(sheets.AppendValuesResponse{})

	default:
		http.Error(w, `{"error":{"code":404,"message":"unexpected call"}}`, http.StatusNotFound)
	}
}

func TestSheetsExportUpsertsTodayRow(t *testing.T) {
	f := newFixture(t, defaultCommission())
	fake := &fakeSheet{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	svc := NewGoogleSheetsService(config.SheetsConfig{SpreadsheetID: "sheet-1"}, f.dashboard, zap.NewNop()).
		WithClientOptions(option.WithEndpoint(srv.URL+"/"), option.WithoutAuthentication())

	if !svc.Enabled() {
		t.Fatal("service with client options should be enabled")
	}

	report, err := svc.SyncNow(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.Date != "2026-10-16" || report.TotalSales != "2600" || report.Sales != 1 {
		t.Errorf("report = %+v", report)
	}
	if fake.appends != 1 || len(fake.rows) != 2 || fake.rows[0][0] != "date" {
		t.Fatalf("rows = %v appends = %d", fake.rows, fake.appends)
	}

	if _, err := svc.SyncNow(context.Background()); err != nil {
		t.Fatal(err)
	}
	if fake.appends != 1 {
		t.Errorf("second sync appended instead of updating")
	}
	if last := fake.updates[len(fake.updates)-1]; last != "A2:H2" {
		t.Errorf("last update = %s", last)
	}
}

func TestSheetsExportNotConfigured(t *testing.T) {
	f := newFixture(t, defaultCommission())
	svc := NewGoogleSheetsService(config.SheetsConfig{}, f.dashboard, zap.NewNop())

	if svc.Enabled() {
		t.Error("unconfigured export reports enabled")
	}
	if _, err := svc.SyncNow(context.Background()); err == nil {
		t.Error("expected error")
	}
}

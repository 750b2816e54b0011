package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"SalesDashboard/app/config"
	"SalesDashboard/app/models"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var sheetHeaders = []interface{}{
	"date",
	"employees",
	"products",
	"sales",
	"total_sales",
	"total_commission",
	"pending_reconciliations",
	"top_items",
}

// GoogleSheetsService exports the dashboard summary to a spreadsheet, one row per day
type GoogleSheetsService struct {
	cfg       config.SheetsConfig
	dashboard *DashboardService
	log       *zap.Logger

	// options replaces the service account credentials when set
	options []option.ClientOption
}

// NewGoogleSheetsService creates a new export service
func NewGoogleSheetsService(cfg config.SheetsConfig, dashboard *DashboardService, log *zap.Logger) *GoogleSheetsService {
	if cfg.SheetName == "" {
		cfg.SheetName = "Dashboard"
	}
	return &GoogleSheetsService{cfg: cfg, dashboard: dashboard, log: log.Named("sheets")}
}

// WithClientOptions makes the service connect with opts instead of the credentials file
func (s *GoogleSheetsService) WithClientOptions(opts ...option.ClientOption) *GoogleSheetsService {
	s.options = opts
	return s
}

// Enabled reports whether an export target is configured
func (s *GoogleSheetsService) Enabled() bool {
	return s.options != nil || s.cfg.Enabled()
}

// ReportData is one exported row
type ReportData struct {
	Date                   models.Date      `json:"date"`
	Employees              int              `json:"employees"`
	Products               int              `json:"products"`
	Sales                  int              `json:"sales"`
	TotalSales             string           `json:"total_sales"`
	TotalCommission        string           `json:"total_commission"`
	PendingReconciliations int              `json:"pending_reconciliations"`
	TopItems               []TopSellingItem `json:"top_items"`
}

// GenerateReport snapshots the dashboard for today
func (s *GoogleSheetsService) GenerateReport() ReportData {
	stats := s.dashboard.GetDashboardStats()
	return ReportData{
		Date:                   models.Today(),
		Employees:              stats.TotalEmployees,
		Products:               stats.TotalProducts,
		Sales:                  s.dashboard.sales.Len(),
		TotalSales:             stats.TotalSales.String(),
		TotalCommission:        stats.TotalCommission.String(),
		PendingReconciliations: stats.PendingReconciliations,
		TopItems:               stats.TopSellingItems,
	}
}

func (s *GoogleSheetsService) newService(ctx context.Context) (*sheets.Service, error) {
	if s.options != nil {
		return sheets.NewService(ctx, s.options...)
	}
	if !s.cfg.Enabled() {
		return nil, fmt.Errorf("Google Sheets export is not configured")
	}

	key, err := os.ReadFile(s.cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, key, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("invalid service account credentials: %w", err)
	}
	srv, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return srv, nil
}

// TestConnection checks that the spreadsheet is reachable
func (s *GoogleSheetsService) TestConnection(ctx context.Context) error {
	srv, err := s.newService(ctx)
	if err != nil {
		return err
	}
	if _, err := srv.Spreadsheets.Get(s.cfg.SpreadsheetID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to access spreadsheet: %w", err)
	}
	return nil
}

// SyncNow exports today's report, replacing today's row if it already exists
func (s *GoogleSheetsService) SyncNow(ctx context.Context) (ReportData, error) {
	report := s.GenerateReport()
	if err := s.SendReport(ctx, report); err != nil {
		s.log.Error("Sheets export failed", zap.Error(err))
		return report, err
	}
	s.log.Info("Sheets export completed", zap.String("date", string(report.Date)))
	return report, nil
}

// SendReport writes report to the sheet
func (s *GoogleSheetsService) SendReport(ctx context.Context, report ReportData) error {
	srv, err := s.newService(ctx)
	if err != nil {
		return err
	}

	if err := s.ensureHeaders(ctx, srv); err != nil {
		return fmt.Errorf("failed to ensure headers: %w", err)
	}

	itemsJSON, err := json.Marshal(report.TopItems)
	if err != nil {
		return fmt.Errorf("failed to marshal top items: %w", err)
	}

	row := []interface{}{
		string(report.Date),
		report.Employees,
		report.Products,
		report.Sales,
		report.TotalSales,
		report.TotalCommission,
		report.PendingReconciliations,
		string(itemsJSON),
	}
	valueRange := &sheets.ValueRange{Values: [][]interface{}{row}}

	rowIndex, err := s.findExistingRowIndex(ctx, srv, string(report.Date))
	if err != nil {
		return fmt.Errorf("failed to check existing row: %w", err)
	}

	if rowIndex > 0 {
		sheetRange := fmt.Sprintf("%s!A%d:H%d", s.cfg.SheetName, rowIndex, rowIndex)
		_, err = srv.Spreadsheets.Values.Update(s.cfg.SpreadsheetID, sheetRange, valueRange).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("unable to update data: %w", err)
		}
		return nil
	}

	sheetRange := fmt.Sprintf("%s!A:H", s.cfg.SheetName)
	_, err = srv.Spreadsheets.Values.Append(s.cfg.SpreadsheetID, sheetRange, valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("unable to append data: %w", err)
	}
	return nil
}

// findExistingRowIndex returns the 1-based row holding date, or -1
func (s *GoogleSheetsService) findExistingRowIndex(ctx context.Context, srv *sheets.Service, date string) (int, error) {
	sheetRange := fmt.Sprintf("%s!A:A", s.cfg.SheetName)
	resp, err := srv.Spreadsheets.Values.Get(s.cfg.SpreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return -1, err
	}

	for i, row := range resp.Values {
		if len(row) > 0 {
			if value, ok := row[0].(string); ok && value == date {
				return i + 1, nil
			}
		}
	}
	return -1, nil
}

func (s *GoogleSheetsService) ensureHeaders(ctx context.Context, srv *sheets.Service) error {
	sheetRange := fmt.Sprintf("%s!A1:H1", s.cfg.SheetName)
	resp, err := srv.Spreadsheets.Values.Get(s.cfg.SpreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return err
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) >= len(sheetHeaders) {
		return nil
	}

	valueRange := &sheets.ValueRange{Values: [][]interface{}{sheetHeaders}}
	_, err = srv.Spreadsheets.Values.Update(s.cfg.SpreadsheetID, sheetRange, valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	return err
}

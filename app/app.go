package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"SalesDashboard/app/api"
	"SalesDashboard/app/config"
	"SalesDashboard/app/database"
	"SalesDashboard/app/models"
	"SalesDashboard/app/services"
	"SalesDashboard/app/store"
	"SalesDashboard/app/websocket"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App owns one collection per entity type and every service built on them
type App struct {
	cfg *config.AppConfig
	db  *gorm.DB

	LoggerService *services.LoggerService

	Employees       *store.Collection[models.Employee]
	Products        *store.Collection[models.Product]
	Sales           *store.Collection[models.Sale]
	Reconciliations *store.Collection[models.SaleReconciliation]

	EmployeeService        *services.EmployeeService
	ProductService         *services.ProductService
	SalesService           *services.SalesService
	ReconciliationService  *services.ReconciliationService
	DashboardService       *services.DashboardService
	ActivityService        *services.ActivityService
	GoogleSheetsService    *services.GoogleSheetsService
	ReportSchedulerService *services.ReportSchedulerService
	DiscoveryService       *services.DiscoveryService
	Hub                    *websocket.Hub

	server  *api.Server
	cancel  context.CancelFunc
	hubDone chan struct{}
	errs    chan error
	mu      sync.Mutex
}

// New wires the application. The activity database is opened and migrated
// here so a bad DSN fails before anything is served.
func New(cfg *config.AppConfig, logger *services.LoggerService) (*App, error) {
	db, err := database.Open(cfg.Activity)
	if err != nil {
		return nil, fmt.Errorf("failed to open activity database: %w", err)
	}

	a := &App{
		cfg:           cfg,
		db:            db,
		LoggerService: logger,
		errs:          make(chan error, 1),
	}
	a.seed(cfg.SeedData)

	log := logger.Logger()
	a.Hub = websocket.NewHub(log)
	a.ActivityService = services.NewActivityService(db, log)
	out := services.Notifiers{a.Hub, a.ActivityService}

	a.EmployeeService = services.NewEmployeeService(a.Employees, out, log)
	a.ProductService = services.NewProductService(a.Products, out, log)
	a.SalesService = services.NewSalesService(a.Sales, a.Employees, a.Products, cfg.Commission, out, log)
	a.ReconciliationService = services.NewReconciliationService(a.Reconciliations, a.Sales, out, log)
	a.DashboardService = services.NewDashboardService(a.Employees, a.Products, a.Sales, a.Reconciliations)
	a.GoogleSheetsService = services.NewGoogleSheetsService(cfg.Sheets, a.DashboardService, log)
	a.ReportSchedulerService = services.NewReportSchedulerService(cfg.Sheets, a.GoogleSheetsService, log)
	a.DiscoveryService = services.NewDiscoveryService(cfg.Discovery, cfg.Server.Port, log)

	return a, nil
}

// seed creates the collections, with the demo records when requested
func (a *App) seed(withData bool) {
	var (
		employees []models.Employee
		products  []models.Product
		sales     []models.Sale
	)
	if withData {
		employees = models.SeedEmployees()
		products = models.SeedProducts()
		sales = models.SeedSales()
	}

	a.Employees = store.New(models.MatchEmployee, employees...)
	a.Products = store.New(models.MatchProduct, products...)
	a.Sales = store.New(models.MatchSale, sales...)
	a.Reconciliations = store.New[models.SaleReconciliation](models.MatchReconciliation)
}

// Handlers returns the HTTP handler set backed by this app
func (a *App) Handlers() *api.Handlers {
	return &api.Handlers{
		Employees:       a.EmployeeService,
		Products:        a.ProductService,
		Sales:           a.SalesService,
		Reconciliations: a.ReconciliationService,
		Dashboard:       a.DashboardService,
		Activity:        a.ActivityService,
		Sheets:          a.GoogleSheetsService,
		Discovery:       a.DiscoveryService,
		Hub:             a.Hub,
	}
}

// Startup starts the hub, the report scheduler, the HTTP server and the
// mDNS announcement
func (a *App) Startup(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancel != nil {
		return errors.New("application already started")
	}

	router, err := api.NewRouter(a.Handlers(), api.Options{
		RateLimit: a.cfg.RateLimit,
		Debug:     !a.cfg.IsProduction(),
	}, a.LoggerService.Logger())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	a.hubDone = make(chan struct{})
	go func() {
		defer close(a.hubDone)
		defer a.LoggerService.RecoverPanic()
		a.Hub.Run(ctx)
	}()

	if err := a.ReportSchedulerService.Start(ctx); err != nil {
		a.LoggerService.LogWarning("Report scheduler start error", zap.Error(err))
	}

	a.server = api.NewServer(a.cfg.Address(), router, a.LoggerService.Logger())
	go func() {
		defer a.LoggerService.RecoverPanic()
		if err := a.server.Start(); err != nil {
			a.errs <- err
		}
	}()

	if err := a.DiscoveryService.Start(); err != nil {
		a.LoggerService.LogWarning("mDNS announcement failed", zap.Error(err))
	}

	a.LoggerService.LogInfo("Application started",
		zap.String("addr", a.cfg.Address()),
		zap.String("dashboard", a.DiscoveryService.DashboardURL()),
	)
	return nil
}

// Errors reports fatal server errors after Startup
func (a *App) Errors() <-chan error {
	return a.errs
}

// Run starts the application and blocks until ctx is cancelled or the
// server fails, then shuts down
func (a *App) Run(ctx context.Context) error {
	if err := a.Startup(ctx); err != nil {
		return err
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-a.errs:
		a.LoggerService.LogError("Server failed", runErr)
	}

	if err := a.Shutdown(context.Background()); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// Shutdown stops everything Startup started, in reverse order, then sends a
// final report and closes the database
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.LoggerService.LogInfo("Application closing")

	var errs []error
	a.DiscoveryService.Stop()

	if a.server != nil {
		if err := a.server.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop api server: %w", err))
		}
		a.server = nil
	}

	a.ReportSchedulerService.Stop()

	if a.cancel != nil {
		a.cancel()
		<-a.hubDone
		a.cancel = nil
	}

	if a.GoogleSheetsService.Enabled() {
		a.LoggerService.LogInfo("Sending final report to Google Sheets")
		if _, err := a.GoogleSheetsService.SyncNow(ctx); err != nil {
			a.LoggerService.LogWarning("Failed to send final report to Google Sheets", zap.Error(err))
		}
	}

	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}

	a.LoggerService.LogInfo("Application shutdown complete")
	return errors.Join(errs...)
}

// Close releases the activity database. Commands that never called Startup
// use it instead of Shutdown.
func (a *App) Close() error {
	if err := database.Close(a.db); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	a.LoggerService.LogInfo("Database connection closed successfully")
	return nil
}

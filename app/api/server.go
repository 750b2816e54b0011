package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"SalesDashboard/app/services"
	"SalesDashboard/app/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups the services the HTTP API exposes
type Handlers struct {
	Employees       *services.EmployeeService
	Products        *services.ProductService
	Sales           *services.SalesService
	Reconciliations *services.ReconciliationService
	Dashboard       *services.DashboardService
	Activity        *services.ActivityService
	Sheets          *services.GoogleSheetsService
	Discovery       *services.DiscoveryService
	Hub             *websocket.Hub
}

// Options tunes the router
type Options struct {
	RateLimit string
	Debug     bool
}

// Server serves the dashboard API
type Server struct {
	server *http.Server
	addr   string
	log    *zap.Logger
}

// NewServer creates a new API server for addr
func NewServer(addr string, handler http.Handler, log *zap.Logger) *Server {
	return &Server{
		addr: addr,
		log:  log.Named("api"),
		server: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

// Start listens until Stop is called
func (s *Server) Start() error {
	s.log.Info("Server starting", zap.String("addr", s.addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server error: %w", err)
	}
	return nil
}

// Stop stops the API server
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	s.log.Info("Server stopping")
	return s.server.Shutdown(ctx)
}

// NewRouter builds the gin engine with every dashboard route
func NewRouter(h *Handlers, opts Options, log *zap.Logger) (*gin.Engine, error) {
	limit, err := RateLimit(opts.RateLimit)
	if err != nil {
		return nil, err
	}
	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	metrics := NewHTTPMetrics("sales_dashboard")

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger(log.Named("http")), metrics.Middleware(), CORS())

	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	if h.Hub != nil {
		r.GET("/ws", gin.WrapH(h.Hub))
	}

	api := r.Group("/api", limit)
	{
		api.GET("/forms/:entity", h.formSchema)

		employees := api.Group("/employees")
		employees.GET("", h.listEmployees)
		employees.POST("", h.createEmployee)
		employees.GET("/:id", h.getEmployee)
		employees.PUT("/:id", h.updateEmployee)
		employees.DELETE("/:id", h.deleteEmployee)

		products := api.Group("/products")
		products.GET("", h.listProducts)
		products.POST("", h.createProduct)
		products.GET("/:id", h.getProduct)
		products.PUT("/:id", h.updateProduct)
		products.DELETE("/:id", h.deleteProduct)

		sales := api.Group("/sales")
		sales.GET("", h.listSales)
		sales.GET("/builder", h.saleDraft)
		sales.DELETE("/builder", h.resetSale)
		sales.POST("/builder/employee", h.selectSaleEmployee)
		sales.POST("/builder/lines", h.addSaleLine)
		sales.PUT("/builder/lines/:index", h.setSaleLine)
		sales.DELETE("/builder/lines/:index", h.removeSaleLine)
		sales.POST("/builder/save", h.saveSale)
		sales.GET("/:id", h.getSale)

		recs := api.Group("/reconciliations")
		recs.GET("", h.listReconciliations)
		recs.GET("/builder", h.reconciliationDraft)
		recs.DELETE("/builder", h.resetReconciliation)
		recs.POST("/builder/sale", h.selectReconciliationSale)
		recs.PUT("/builder/lines/:index", h.setReturnedQuantity)
		recs.PUT("/builder/reason", h.setReturnReason)
		recs.POST("/builder/save", h.saveReconciliation)
		recs.GET("/:id", h.getReconciliation)
		recs.POST("/:id/review", h.reviewReconciliation)

		dashboard := api.Group("/dashboard")
		dashboard.GET("", h.dashboardStats)
		dashboard.GET("/employees", h.employeePerformance)
		dashboard.GET("/qr", h.dashboardQR)
		dashboard.POST("/export", h.exportSheets)

		api.GET("/activity", h.recentActivity)
	}

	return r, nil
}

func (h *Handlers) health(c *gin.Context) {
	connections := []websocket.ClientInfo{}
	if h.Hub != nil {
		connections = h.Hub.Clients()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"clients":     len(connections),
		"connections": connections,
		"timestamp":   time.Now().Format(time.RFC3339),
	})
}

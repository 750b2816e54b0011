package services

import (
	"SalesDashboard/app/config"
	"SalesDashboard/app/models"
	"SalesDashboard/app/store"

	"go.uber.org/zap"
)

// SalesService handles recorded sales. Sales are immutable once saved.
type SalesService struct {
	notifier
	sales      *store.Collection[models.Sale]
	employees  *store.Collection[models.Employee]
	products   *store.Collection[models.Product]
	commission config.CommissionConfig
	builder    *SaleBuilder
	log        *zap.Logger
}

// NewSalesService creates a new sales service. Employees and products are
// read to resolve builder selections and are never modified.
func NewSalesService(
	sales *store.Collection[models.Sale],
	employees *store.Collection[models.Employee],
	products *store.Collection[models.Product],
	commission config.CommissionConfig,
	out Notifier,
	log *zap.Logger,
) *SalesService {
	s := &SalesService{
		notifier:   notifier{entity: "sale", out: out},
		sales:      sales,
		employees:  employees,
		products:   products,
		commission: commission,
		log:        log.Named("sales"),
	}
	s.builder = s.NewSaleBuilder()
	return s
}

// GetSales gets the sales matching term by employee name or status
func (s *SalesService) GetSales(term string) store.View[models.Sale] {
	return s.sales.View(term)
}

// GetSale gets a sale by ID
func (s *SalesService) GetSale(id int) (models.Sale, error) {
	sale, ok := s.sales.Get(id)
	if !ok {
		return models.Sale{}, notFound("Sale", id)
	}
	return sale, nil
}

// AllSales returns every sale in display order
func (s *SalesService) AllSales() []models.Sale {
	return s.sales.All()
}

// Builder returns the shared sale builder used by the dashboard
func (s *SalesService) Builder() *SaleBuilder {
	return s.builder
}

// recordSale assigns an id and puts the sale first
func (s *SalesService) recordSale(sale models.Sale) (models.Sale, Outcome) {
	created := s.sales.Add(func(id int) models.Sale {
		sale.ID = id
		return sale
	})

	s.log.Info("Sale recorded",
		zap.Int("id", created.ID),
		zap.Int("employee_id", created.EmployeeID),
		zap.Int("lines", len(created.Products)),
		zap.String("total", created.Total().String()),
	)
	return created, s.succeed(ActionCreated, created.ID, "Sale recorded successfully")
}

package services

import (
	"sort"

	"SalesDashboard/app/models"
	"SalesDashboard/app/pricing"
	"SalesDashboard/app/store"

	"github.com/shopspring/decimal"
)

// RecentSalesLimit is how many sales the dashboard lists
const RecentSalesLimit = 5

// DashboardService computes dashboard statistics. It only reads the collections.
type DashboardService struct {
	employees       *store.Collection[models.Employee]
	products        *store.Collection[models.Product]
	sales           *store.Collection[models.Sale]
	reconciliations *store.Collection[models.SaleReconciliation]
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	employees *store.Collection[models.Employee],
	products *store.Collection[models.Product],
	sales *store.Collection[models.Sale],
	reconciliations *store.Collection[models.SaleReconciliation],
) *DashboardService {
	return &DashboardService{
		employees:       employees,
		products:        products,
		sales:           sales,
		reconciliations: reconciliations,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalEmployees  int             `json:"total_employees"`
	TotalProducts   int             `json:"total_products"`
	TotalSales      decimal.Decimal `json:"total_sales"`
	TotalCommission decimal.Decimal `json:"total_commission"`

	// Formatted for display, e.g. "KES 12,000"
	TotalSalesLabel      string `json:"total_sales_label"`
	TotalCommissionLabel string `json:"total_commission_label"`

	RecentSales []RecentSale `json:"recent_sales"`

	// Additional stats
	LowStockProducts       int              `json:"low_stock_products"`
	PendingReconciliations int              `json:"pending_reconciliations"`
	TopSellingItems        []TopSellingItem `json:"top_selling_items"`
}

// RecentSale is one row of the recent sales table
type RecentSale struct {
	ID           int               `json:"id"`
	EmployeeName string            `json:"employee_name"`
	Date         models.Date       `json:"date"`
	Status       models.SaleStatus `json:"status"`
	Total        decimal.Decimal   `json:"total"`
	Commission   decimal.Decimal   `json:"commission"`
}

// TopSellingItem represents a top selling product
type TopSellingItem struct {
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	TotalSales  decimal.Decimal `json:"total_sales"`
}

// EmployeePerformance summarises the recorded sales of one employee
type EmployeePerformance struct {
	EmployeeID      int             `json:"employee_id"`
	EmployeeName    string          `json:"employee_name"`
	SalesCount      int             `json:"sales_count"`
	TotalSales      decimal.Decimal `json:"total_sales"`
	TotalCommission decimal.Decimal `json:"total_commission"`
	TotalProfit     decimal.Decimal `json:"total_profit"`
}

// GetDashboardStats retrieves all dashboard statistics
func (s *DashboardService) GetDashboardStats() DashboardStats {
	sales := s.sales.All()

	stats := DashboardStats{
		TotalEmployees:  s.employees.Len(),
		TotalProducts:   s.products.Len(),
		TotalSales:      models.TotalSales(sales),
		TotalCommission: models.TotalCommission(sales),
		TopSellingItems: topSellingItems(sales, 5),
	}
	stats.TotalSalesLabel = pricing.FormatKES(stats.TotalSales)
	stats.TotalCommissionLabel = pricing.FormatKES(stats.TotalCommission)

	for _, sale := range models.RecentSales(sales, RecentSalesLimit) {
		stats.RecentSales = append(stats.RecentSales, RecentSale{
			ID:           sale.ID,
			EmployeeName: sale.EmployeeName,
			Date:         sale.Date,
			Status:       sale.Status,
			Total:        sale.Total(),
			Commission:   sale.TotalCommission(),
		})
	}

	for _, p := range s.products.All() {
		if p.Status == models.ProductLowStock {
			stats.LowStockProducts++
		}
	}
	for _, r := range s.reconciliations.All() {
		if r.Status == models.ReconciliationPending {
			stats.PendingReconciliations++
		}
	}
	return stats
}

// GetEmployeePerformance derives per-employee totals from the recorded sales,
// best seller first. Employees without sales are listed with zero totals.
func (s *DashboardService) GetEmployeePerformance() []EmployeePerformance {
	byEmployee := make(map[int]*EmployeePerformance)
	var order []int

	entry := func(id int, name string) *EmployeePerformance {
		if p, ok := byEmployee[id]; ok {
			return p
		}
		p := &EmployeePerformance{
			EmployeeID:      id,
			EmployeeName:    name,
			TotalSales:      decimal.Zero,
			TotalCommission: decimal.Zero,
			TotalProfit:     decimal.Zero,
		}
		byEmployee[id] = p
		order = append(order, id)
		return p
	}

	for _, e := range s.employees.All() {
		entry(e.ID, e.Name)
	}
	for _, sale := range s.sales.All() {
		p := entry(sale.EmployeeID, sale.EmployeeName)
		p.SalesCount++
		p.TotalSales = p.TotalSales.Add(sale.Total())
		p.TotalCommission = p.TotalCommission.Add(sale.TotalCommission())
		p.TotalProfit = p.TotalProfit.Add(sale.TotalProfit())
	}

	out := make([]EmployeePerformance, 0, len(order))
	for _, id := range order {
		out = append(out, *byEmployee[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalSales.GreaterThan(out[j].TotalSales)
	})
	return out
}

// topSellingItems ranks products by units sold
func topSellingItems(sales []models.Sale, limit int) []TopSellingItem {
	byProduct := make(map[int]*TopSellingItem)
	var order []int

	for _, sale := range sales {
		for _, line := range sale.Products {
			item, ok := byProduct[line.ProductID]
			if !ok {
				item = &TopSellingItem{ProductID: line.ProductID, ProductName: line.ProductName, TotalSales: decimal.Zero}
				byProduct[line.ProductID] = item
				order = append(order, line.ProductID)
			}
			item.Quantity += line.Quantity
			item.TotalSales = item.TotalSales.Add(line.SellingValue)
		}
	}

	items := make([]TopSellingItem, 0, len(order))
	for _, id := range order {
		items = append(items, *byProduct[id])
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Quantity > items[j].Quantity
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

package models

import (
	"github.com/shopspring/decimal"
)

// SeedEmployees returns the demo employees loaded at startup
func SeedEmployees() []Employee {
	return []Employee{
		{
			ID:                 1,
			Name:               "James Webb",
			Email:              "james@example.com",
			Phone:              "0712345678",
			CommissionRate:     decimal.NewFromInt(10),
			TotalGoodsAssigned: decimal.NewFromInt(10000),
			TotalSales:         decimal.NewFromInt(12000),
			CommissionEarned:   decimal.NewFromInt(200),
			Status:             EmployeeActive,
			JoinedDate:         "2024-01-10",
		},
		{
			ID:                 2,
			Name:               "Sarah Johnson",
			Email:              "sarah@example.com",
			Phone:              "0798765432",
			CommissionRate:     decimal.NewFromInt(8),
			TotalGoodsAssigned: decimal.NewFromInt(8000),
			TotalSales:         decimal.NewFromInt(9500),
			CommissionEarned:   decimal.NewFromInt(120),
			Status:             EmployeeActive,
			JoinedDate:         "2024-02-05",
		},
	}
}

// SeedProducts returns the demo products loaded at startup
func SeedProducts() []Product {
	return []Product{
		{ID: 1, Name: "Product A", CostPrice: decimal.NewFromInt(1000), SellingPrice: decimal.NewFromInt(1200), Quantity: 50, Status: ProductInStock},
		{ID: 2, Name: "Product B", CostPrice: decimal.NewFromInt(500), SellingPrice: decimal.NewFromInt(750), Quantity: 5, Status: ProductLowStock},
	}
}

// SeedSales returns the demo sales loaded at startup
func SeedSales() []Sale {
	return []Sale{
		{
			ID:           1,
			EmployeeID:   1,
			EmployeeName: "James Webb",
			Products: []SaleProduct{
				{
					ProductID:    1,
					ProductName:  "Laptop",
					Quantity:     2,
					CostValue:    decimal.NewFromInt(2000),
					SellingValue: decimal.NewFromInt(2500),
					Profit:       decimal.NewFromInt(500),
					Commission:   decimal.NewFromInt(50),
				},
				{
					ProductID:    2,
					ProductName:  "Mouse",
					Quantity:     5,
					CostValue:    decimal.NewFromInt(50),
					SellingValue: decimal.NewFromInt(100),
					Profit:       decimal.NewFromInt(50),
					Commission:   decimal.NewFromInt(5),
				},
			},
			Date:   "2026-02-02",
			Status: SaleCompleted,
		},
	}
}

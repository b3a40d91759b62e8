package dto

import "github.com/shopspring/decimal"

// StockStatsDTO resumen del inventario para el dashboard.
type StockStatsDTO struct {
	TotalProducts   int64           `json:"total_products"`
	TotalValue      decimal.Decimal `json:"total_value"`
	LowStockItems   int64           `json:"low_stock_items"`
	OutOfStockItems int64           `json:"out_of_stock_items"`
	RecentMovements int64           `json:"recent_movements"`
}

// DashboardResponse respuesta de GET /api/dashboard/stats.
type DashboardResponse struct {
	Stats    StockStatsDTO     `json:"stats"`
	LowStock []ProductResponse `json:"low_stock"`
}

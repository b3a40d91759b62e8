package entity

import "github.com/shopspring/decimal"

// StockStats resume el estado del inventario para el dashboard.
type StockStats struct {
	TotalProducts   int64
	TotalValue      decimal.Decimal // sum(current_stock * unit_price)
	LowStockItems   int64           // 0 < current_stock <= min_stock
	OutOfStockItems int64           // current_stock == 0
	RecentMovements int64           // movimientos en la ventana consultada
}

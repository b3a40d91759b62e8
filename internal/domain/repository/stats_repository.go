package repository

import (
	"time"

	"github.com/jhoicas/stock-analyzer-api/internal/domain/entity"
)

// StatsRepository define consultas read-only de agregados para el dashboard.
type StatsRepository interface {
	// GetStockStats calcula los agregados del inventario; movementsSince acota
	// la ventana del contador de movimientos recientes.
	GetStockStats(movementsSince time.Time) (*entity.StockStats, error)
	// ListLowStock devuelve los productos con saldo en o bajo su mínimo.
	ListLowStock(limit int) ([]*entity.Product, error)
}

package analytics

import (
	"time"

	"github.com/jhoicas/stock-analyzer-api/internal/application/dto"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/repository"
)

// recentWindow ventana del contador de movimientos recientes.
const recentWindow = 7 * 24 * time.Hour

// defaultLowStockLimit tope de productos con saldo bajo incluidos en la
// respuesta del dashboard.
const defaultLowStockLimit = 10

// DashboardUseCase arma el resumen del inventario para el dashboard.
type DashboardUseCase struct {
	statsRepo repository.StatsRepository
	now       func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(statsRepo repository.StatsRepository) *DashboardUseCase {
	return &DashboardUseCase{statsRepo: statsRepo, now: time.Now}
}

// GetStats devuelve los agregados del inventario y los productos con saldo
// en o bajo su mínimo.
func (uc *DashboardUseCase) GetStats() (*dto.DashboardResponse, error) {
	since := uc.now().Add(-recentWindow)
	stats, err := uc.statsRepo.GetStockStats(since)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.statsRepo.ListLowStock(defaultLowStockLimit)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		Stats: dto.StockStatsDTO{
			TotalProducts:   stats.TotalProducts,
			TotalValue:      stats.TotalValue,
			LowStockItems:   stats.LowStockItems,
			OutOfStockItems: stats.OutOfStockItems,
			RecentMovements: stats.RecentMovements,
		},
		LowStock: make([]dto.ProductResponse, 0, len(lowStock)),
	}
	for _, p := range lowStock {
		resp.LowStock = append(resp.LowStock, dto.ProductResponse{
			ID:           p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			CategoryName: p.CategoryName,
			UnitPrice:    p.UnitPrice,
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStock,
			Unit:         p.Unit,
			Location:     p.Location,
			CreatedAt:    p.CreatedAt,
			UpdatedAt:    p.UpdatedAt,
		})
	}
	return resp, nil
}

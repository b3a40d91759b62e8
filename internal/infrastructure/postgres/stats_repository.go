package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-analyzer-api/internal/domain/entity"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas read-only de agregados para el dashboard.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// GetStockStats calcula los agregados del inventario en una sola consulta
// sobre products más un conteo de movimientos recientes.
func (r *StatsRepo) GetStockStats(movementsSince time.Time) (*entity.StockStats, error) {
	var stats entity.StockStats
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(current_stock * unit_price), 0),
			COUNT(*) FILTER (WHERE current_stock > 0 AND current_stock <= min_stock),
			COUNT(*) FILTER (WHERE current_stock = 0)
		FROM products`
	err := r.q.QueryRow(context.Background(), query).Scan(
		&stats.TotalProducts, &stats.TotalValue, &stats.LowStockItems, &stats.OutOfStockItems,
	)
	if err != nil {
		return nil, fmt.Errorf("stock stats: %w", err)
	}

	err = r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM movements WHERE created_at >= $1`, movementsSince).
		Scan(&stats.RecentMovements)
	if err != nil {
		return nil, fmt.Errorf("recent movements: %w", err)
	}
	return &stats, nil
}

// ListLowStock devuelve los productos con saldo en o bajo su mínimo, los más
// críticos primero (menor saldo relativo al mínimo).
func (r *StatsRepo) ListLowStock(limit int) ([]*entity.Product, error) {
	query := `
		SELECT p.id, p.sku, p.name, p.description, p.category_id, p.supplier_id, p.unit_price,
			p.current_stock, p.min_stock, p.max_stock, p.unit, p.location, p.barcode, p.expiry_date,
			p.created_at, p.updated_at, c.name, s.name
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		LEFT JOIN suppliers s ON p.supplier_id = s.id
		WHERE p.current_stock <= p.min_stock
		ORDER BY p.current_stock, p.name
		LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var categoryID, supplierID, categoryName, supplierName *string
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Name, &p.Description, &categoryID, &supplierID, &p.UnitPrice,
			&p.CurrentStock, &p.MinStock, &p.MaxStock, &p.Unit, &p.Location, &p.Barcode,
			&p.ExpiryDate, &p.CreatedAt, &p.UpdatedAt, &categoryName, &supplierName,
		); err != nil {
			return nil, fmt.Errorf("scan low stock product: %w", err)
		}
		p.CategoryID = deref(categoryID)
		p.SupplierID = deref(supplierID)
		p.CategoryName = deref(categoryName)
		p.SupplierName = deref(supplierName)
		list = append(list, &p)
	}
	return list, rows.Err()
}

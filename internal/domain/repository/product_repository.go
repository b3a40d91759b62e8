package repository

import "github.com/jhoicas/stock-analyzer-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// AdjustStock solo debe invocarse dentro de la transacción que bloquea la
// fila del producto (GetForUpdate) y persiste el movimiento asociado.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Product, error)
	AdjustStock(id string, delta int64) error
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
}

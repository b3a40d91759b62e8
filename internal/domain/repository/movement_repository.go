package repository

import "github.com/jhoicas/stock-analyzer-api/internal/domain/entity"

// MovementRepository define el puerto de persistencia para el libro de
// movimientos. No existe Update ni Delete: el libro es append-only.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	List(limit, offset int) ([]*entity.Movement, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error)
	// NetQuantity devuelve la suma neta (entradas - salidas) del producto.
	NetQuantity(productID string) (int64, error)
}

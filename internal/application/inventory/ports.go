package inventory

import (
	"context"

	"github.com/jhoicas/stock-analyzer-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el asiento en el libro y el
// ajuste del saldo se confirman juntos o se revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-analyzer-api/internal/application/dto"
	"github.com/jhoicas/stock-analyzer-api/internal/domain"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/entity"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/repository"
)

// PostMovementUseCase registra movimientos de stock de forma transaccional:
// bloquea la fila del producto (SELECT FOR UPDATE), inserta el asiento en el
// libro y ajusta el saldo, con Commit o Rollback. Es la única frontera por la
// que cambia products.current_stock, de modo que el invariante
// saldo == suma neta de movimientos se sostiene en un solo lugar.
type PostMovementUseCase struct {
	txRunner TxRunner
}

// NewPostMovementUseCase construye el caso de uso.
func NewPostMovementUseCase(txRunner TxRunner) *PostMovementUseCase {
	return &PostMovementUseCase{txRunner: txRunner}
}

// PostMovement valida la entrada, inicia la transacción y registra el
// movimiento. Stock insuficiente en una salida es un rechazo duro
// (ErrInsufficientStock), nunca un recorte a cero.
func (uc *PostMovementUseCase) PostMovement(ctx context.Context, in dto.PostMovementRequest) (*entity.Movement, error) {
	if in.ProductID == "" || in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.MovementTypeIn && in.Type != entity.MovementTypeOut {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	mov := &entity.Movement{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Reference: in.Reference,
		Notes:     in.Notes,
		CreatedBy: in.CreatedBy,
		CreatedAt: time.Now(),
	}

	// Inicia transacción; Commit si todo ok, Rollback si algo falla
	// (TxRunner.Run lo hace).
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto para serializar registros concurrentes
		// sobre el mismo saldo.
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if mov.Type == entity.MovementTypeOut && product.CurrentStock < mov.Quantity {
			return domain.ErrInsufficientStock
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		return productRepo.AdjustStock(product.ID, mov.Delta())
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

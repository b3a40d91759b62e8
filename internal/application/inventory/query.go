package inventory

import (
	"github.com/jhoicas/stock-analyzer-api/internal/domain/entity"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/repository"
)

// QueryUseCase lecturas del libro de movimientos (repos atados al pool, sin
// transacción).
type QueryUseCase struct {
	movRepo repository.MovementRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(movRepo repository.MovementRepository) *QueryUseCase {
	return &QueryUseCase{movRepo: movRepo}
}

// List lista movimientos paginados, del más reciente al más antiguo.
func (uc *QueryUseCase) List(limit, offset int) ([]*entity.Movement, error) {
	return uc.movRepo.List(limit, offset)
}

// ListByProduct lista los movimientos de un producto.
func (uc *QueryUseCase) ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error) {
	return uc.movRepo.ListByProduct(productID, limit, offset)
}

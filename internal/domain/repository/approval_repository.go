package repository

import "github.com/jhoicas/stock-analyzer-api/internal/domain/entity"

// ApprovalRepository define el puerto de persistencia para decisiones de
// aprobación. Como el libro de movimientos, es append-only: la decisión
// original nunca se sobrescribe.
type ApprovalRepository interface {
	Create(approval *entity.Approval) error
	GetByRequestID(requestID string) (*entity.Approval, error)
	List(limit, offset int) ([]*entity.Approval, error)
}

package repository

import "github.com/jhoicas/stock-analyzer-api/internal/domain/entity"

// BudgetRequestRepository define el puerto de persistencia para solicitudes
// de presupuesto.
type BudgetRequestRepository interface {
	Create(request *entity.BudgetRequest) error
	GetByID(id string) (*entity.BudgetRequest, error)
	// GetForUpdate obtiene la solicitud bloqueando su fila (SELECT FOR UPDATE)
	// para serializar decisiones concurrentes.
	GetForUpdate(id string) (*entity.BudgetRequest, error)
	List(limit, offset int) ([]*entity.BudgetRequest, error)
	UpdateStatus(id, status string) error
}

package budget

import (
	"context"

	"github.com/jhoicas/stock-analyzer-api/internal/domain/entity"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los repos
// del flujo de presupuesto atados a esa tx. Sostiene dos garantías: el número
// de solicitud sale del contador en la misma transacción que inserta la
// solicitud, y la decisión inserta el Approval y cambia el estado como una
// sola unidad.
type TxRunner interface {
	RunBudget(ctx context.Context, fn func(
		requestRepo repository.BudgetRequestRepository,
		approvalRepo repository.ApprovalRepository,
		counterRepo repository.RequestCounterRepository,
	) error) error
}

// RequestPDFGenerator genera el documento imprimible de una solicitud.
// approval es nil mientras la solicitud siga en PENDING.
type RequestPDFGenerator interface {
	GenerateRequestPDF(ctx context.Context, request *entity.BudgetRequest, approval *entity.Approval) ([]byte, error)
}

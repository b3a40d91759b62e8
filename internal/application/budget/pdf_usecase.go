package budget

import (
	"context"

	"github.com/jhoicas/stock-analyzer-api/internal/domain"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/repository"
)

// PDFUseCase genera el documento imprimible de una solicitud de presupuesto
// (antes un formulario HTML impreso desde el navegador).
type PDFUseCase struct {
	requestRepo  repository.BudgetRequestRepository
	approvalRepo repository.ApprovalRepository
	generator    RequestPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	requestRepo repository.BudgetRequestRepository,
	approvalRepo repository.ApprovalRepository,
	generator RequestPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		requestRepo:  requestRepo,
		approvalRepo: approvalRepo,
		generator:    generator,
	}
}

// GetRequestPDF carga la solicitud (y su decisión, si existe) y genera el PDF.
func (uc *PDFUseCase) GetRequestPDF(ctx context.Context, requestID string) ([]byte, error) {
	request, err := uc.requestRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, domain.ErrNotFound
	}
	approval, err := uc.approvalRepo.GetByRequestID(requestID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateRequestPDF(ctx, request, approval)
}

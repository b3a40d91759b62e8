package budget

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/stock-analyzer-api/internal/application/dto"
	"github.com/jhoicas/stock-analyzer-api/internal/domain"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/entity"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/repository"
)

// UseCase implementa el flujo de solicitudes de presupuesto: creación con
// numeración anual atómica y la máquina de estados de aprobación
// (PENDING → APPROVED | REJECTED, ambos terminales).
type UseCase struct {
	txRunner        TxRunner
	requestRepo     repository.BudgetRequestRepository
	approvalRepo    repository.ApprovalRepository
	accountCodeRepo repository.AccountCodeRepository

	// now se inyecta en tests; en producción es time.Now.
	now func() time.Time
}

// NewUseCase construye el caso de uso. Los repos sueltos (atados al pool) se
// usan para lecturas; los escritos pasan por txRunner.
func NewUseCase(
	txRunner TxRunner,
	requestRepo repository.BudgetRequestRepository,
	approvalRepo repository.ApprovalRepository,
	accountCodeRepo repository.AccountCodeRepository,
) *UseCase {
	return &UseCase{
		txRunner:        txRunner,
		requestRepo:     requestRepo,
		approvalRepo:    approvalRepo,
		accountCodeRepo: accountCodeRepo,
		now:             time.Now,
	}
}

// CreateRequest crea una solicitud en estado PENDING. El número BR-<año>-<seq>
// sale del contador por año dentro de la misma transacción que inserta la
// fila: dos creaciones concurrentes nunca comparten número y la secuencia
// reinicia sola al cambiar el año.
func (uc *UseCase) CreateRequest(ctx context.Context, in dto.CreateBudgetRequestRequest) (*entity.BudgetRequest, error) {
	if in.Requester == "" || in.AccountCode == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.MaterialList {
		if item.Item == "" {
			return nil, domain.ErrInvalidInput
		}
	}

	accountName := in.AccountName
	if code, err := uc.accountCodeRepo.GetByCode(in.AccountCode); err == nil && code != nil {
		accountName = code.Name
	}

	now := uc.now()
	requestDate := now
	if in.RequestDate != nil {
		requestDate = *in.RequestDate
	}

	req := &entity.BudgetRequest{
		ID:           uuid.New().String(),
		Requester:    in.Requester,
		RequestDate:  requestDate,
		AccountCode:  in.AccountCode,
		AccountName:  accountName,
		Amount:       in.Amount,
		Note:         in.Note,
		MaterialList: in.MaterialList,
		Status:       entity.BudgetStatusPending,
		CreatedAt:    now,
	}

	err := uc.txRunner.RunBudget(ctx, func(
		requestRepo repository.BudgetRequestRepository,
		_ repository.ApprovalRepository,
		counterRepo repository.RequestCounterRepository,
	) error {
		seq, err := counterRepo.Next(now.Year())
		if err != nil {
			return err
		}
		req.RequestNo = entity.FormatRequestNo(now.Year(), seq)
		return requestRepo.Create(req)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Decide ejecuta la única transición de la máquina de estados: bloquea la
// fila de la solicitud, exige estado PENDING, inserta exactamente un Approval
// y actualiza el estado, todo en una transacción. Una solicitud ya decidida
// devuelve ErrAlreadyDecided sin efecto alguno.
func (uc *UseCase) Decide(ctx context.Context, requestID, decision, approverName, remark string) (*entity.BudgetRequest, *entity.Approval, error) {
	if requestID == "" || approverName == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	if decision != entity.DecisionApproved && decision != entity.DecisionRejected {
		return nil, nil, domain.ErrInvalidInput
	}

	var decided *entity.BudgetRequest
	approval := &entity.Approval{
		ID:           uuid.New().String(),
		RequestID:    requestID,
		Decision:     decision,
		Remark:       remark,
		ApproverName: approverName,
		CreatedAt:    uc.now(),
	}

	err := uc.txRunner.RunBudget(ctx, func(
		requestRepo repository.BudgetRequestRepository,
		approvalRepo repository.ApprovalRepository,
		_ repository.RequestCounterRepository,
	) error {
		req, err := requestRepo.GetForUpdate(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if !req.CanTransitionTo(decision) {
			return domain.ErrAlreadyDecided
		}
		if err := approvalRepo.Create(approval); err != nil {
			return err
		}
		if err := requestRepo.UpdateStatus(requestID, decision); err != nil {
			return err
		}
		req.Status = decision
		decided = req
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return decided, approval, nil
}

// GetRequest obtiene una solicitud por ID.
func (uc *UseCase) GetRequest(id string) (*entity.BudgetRequest, error) {
	return uc.requestRepo.GetByID(id)
}

// ListRequests lista solicitudes paginadas, de la más reciente a la más antigua.
func (uc *UseCase) ListRequests(limit, offset int) ([]*entity.BudgetRequest, error) {
	return uc.requestRepo.List(limit, offset)
}

// ListApprovals lista decisiones paginadas, de la más reciente a la más antigua.
func (uc *UseCase) ListApprovals(limit, offset int) ([]*entity.Approval, error) {
	return uc.approvalRepo.List(limit, offset)
}

// ListAccountCodes lista los rubros presupuestales disponibles.
func (uc *UseCase) ListAccountCodes() ([]*entity.AccountCode, error) {
	return uc.accountCodeRepo.List()
}

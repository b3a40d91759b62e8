package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-analyzer-api/internal/domain"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/entity"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/repository"
)

var _ repository.ApprovalRepository = (*ApprovalRepo)(nil)

// ApprovalRepo implementación de ApprovalRepository sobre PostgreSQL (usable
// con pool o tx). El constraint único sobre request_id respalda en el
// almacenamiento la regla de una sola decisión por solicitud.
type ApprovalRepo struct {
	q Querier
}

// NewApprovalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewApprovalRepository(q Querier) *ApprovalRepo {
	return &ApprovalRepo{q: q}
}

// Create persiste la decisión sobre una solicitud.
func (r *ApprovalRepo) Create(approval *entity.Approval) error {
	if approval.ID == "" {
		approval.ID = uuid.New().String()
	}
	query := `
		INSERT INTO approvals (id, request_id, decision, remark, approver_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		approval.ID, approval.RequestID, approval.Decision, approval.Remark,
		approval.ApproverName, approval.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyDecided
		}
		return fmt.Errorf("create approval: %w", err)
	}
	return nil
}

// GetByRequestID obtiene la decisión de una solicitud, si existe.
func (r *ApprovalRepo) GetByRequestID(requestID string) (*entity.Approval, error) {
	query := `
		SELECT id, request_id, decision, remark, approver_name, created_at
		FROM approvals WHERE request_id = $1`
	var a entity.Approval
	err := r.q.QueryRow(context.Background(), query, requestID).Scan(
		&a.ID, &a.RequestID, &a.Decision, &a.Remark, &a.ApproverName, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get approval: %w", err)
	}
	return &a, nil
}

// List lista decisiones con el número de solicitud (JOIN), de la más reciente
// a la más antigua.
func (r *ApprovalRepo) List(limit, offset int) ([]*entity.Approval, error) {
	query := `
		SELECT a.id, a.request_id, a.decision, a.remark, a.approver_name, a.created_at, br.request_no
		FROM approvals a
		LEFT JOIN budget_requests br ON a.request_id = br.id
		ORDER BY a.created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list approvals: %w", err)
	}
	defer rows.Close()

	var list []*entity.Approval
	for rows.Next() {
		var a entity.Approval
		var requestNo *string
		if err := rows.Scan(&a.ID, &a.RequestID, &a.Decision, &a.Remark,
			&a.ApproverName, &a.CreatedAt, &requestNo); err != nil {
			return nil, fmt.Errorf("scan approval: %w", err)
		}
		a.RequestNo = deref(requestNo)
		list = append(list, &a)
	}
	return list, rows.Err()
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-analyzer-api/internal/domain"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/entity"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/repository"
)

var _ repository.BudgetRequestRepository = (*BudgetRequestRepo)(nil)

// BudgetRequestRepo implementación de BudgetRequestRepository sobre PostgreSQL
// (usable con pool o tx). La lista de materiales se guarda como JSONB.
type BudgetRequestRepo struct {
	q Querier
}

// NewBudgetRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBudgetRequestRepository(q Querier) *BudgetRequestRepo {
	return &BudgetRequestRepo{q: q}
}

const budgetRequestColumns = `id, request_no, requester, request_date, account_code, account_name,
		amount, note, material_list, status, created_at`

// Create persiste una solicitud de presupuesto.
func (r *BudgetRequestRepo) Create(request *entity.BudgetRequest) error {
	materials, err := json.Marshal(request.MaterialList)
	if err != nil {
		return fmt.Errorf("marshal material list: %w", err)
	}
	query := `
		INSERT INTO budget_requests (id, request_no, requester, request_date, account_code, account_name,
			amount, note, material_list, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(context.Background(), query,
		request.ID, request.RequestNo, request.Requester, request.RequestDate,
		request.AccountCode, request.AccountName, request.Amount, request.Note,
		materials, request.Status, request.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert budget request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID.
func (r *BudgetRequestRepo) GetByID(id string) (*entity.BudgetRequest, error) {
	query := `SELECT ` + budgetRequestColumns + ` FROM budget_requests WHERE id = $1`
	return scanBudgetRequest(r.q.QueryRow(context.Background(), query, id), "get budget request")
}

// GetForUpdate obtiene la solicitud y bloquea su fila (SELECT FOR UPDATE).
// Serializa decisiones concurrentes sobre la misma solicitud; debe llamarse
// dentro de una transacción.
func (r *BudgetRequestRepo) GetForUpdate(id string) (*entity.BudgetRequest, error) {
	query := `SELECT ` + budgetRequestColumns + ` FROM budget_requests WHERE id = $1 FOR UPDATE`
	return scanBudgetRequest(r.q.QueryRow(context.Background(), query, id), "get budget request for update")
}

// List lista solicitudes de la más reciente a la más antigua.
func (r *BudgetRequestRepo) List(limit, offset int) ([]*entity.BudgetRequest, error) {
	query := `SELECT ` + budgetRequestColumns + ` FROM budget_requests ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list budget requests: %w", err)
	}
	defer rows.Close()

	var list []*entity.BudgetRequest
	for rows.Next() {
		req, err := scanBudgetRequest(rows, "scan budget request")
		if err != nil {
			return nil, err
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la solicitud. El caso de uso garantiza que
// solo se invoca tras validar la transición bajo el bloqueo de fila.
func (r *BudgetRequestRepo) UpdateStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE budget_requests SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update budget request status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanBudgetRequest(row pgx.Row, op string) (*entity.BudgetRequest, error) {
	var req entity.BudgetRequest
	var materials []byte
	err := row.Scan(
		&req.ID, &req.RequestNo, &req.Requester, &req.RequestDate, &req.AccountCode,
		&req.AccountName, &req.Amount, &req.Note, &materials, &req.Status, &req.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(materials) > 0 {
		if err := json.Unmarshal(materials, &req.MaterialList); err != nil {
			return nil, fmt.Errorf("unmarshal material list: %w", err)
		}
	}
	return &req, nil
}

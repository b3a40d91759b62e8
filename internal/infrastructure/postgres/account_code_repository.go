package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/entity"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/repository"
)

var _ repository.AccountCodeRepository = (*AccountCodeRepo)(nil)

// AccountCodeRepo implementación read-only de AccountCodeRepository sobre
// PostgreSQL. Los rubros se cargan por migración/seed, no por la API.
type AccountCodeRepo struct {
	q Querier
}

// NewAccountCodeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountCodeRepository(q Querier) *AccountCodeRepo {
	return &AccountCodeRepo{q: q}
}

// List lista los rubros ordenados por código.
func (r *AccountCodeRepo) List() ([]*entity.AccountCode, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, code, name FROM account_codes ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list account codes: %w", err)
	}
	defer rows.Close()

	var list []*entity.AccountCode
	for rows.Next() {
		var a entity.AccountCode
		if err := rows.Scan(&a.ID, &a.Code, &a.Name); err != nil {
			return nil, fmt.Errorf("scan account code: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// GetByCode obtiene un rubro por su código.
func (r *AccountCodeRepo) GetByCode(code string) (*entity.AccountCode, error) {
	var a entity.AccountCode
	err := r.q.QueryRow(context.Background(),
		`SELECT id, code, name FROM account_codes WHERE code = $1`, code).
		Scan(&a.ID, &a.Code, &a.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account code: %w", err)
	}
	return &a, nil
}

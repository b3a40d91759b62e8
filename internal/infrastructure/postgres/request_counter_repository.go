package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-analyzer-api/internal/domain/repository"
)

var _ repository.RequestCounterRepository = (*RequestCounterRepo)(nil)

// RequestCounterRepo asigna secuencias de numeración por año sobre la tabla
// request_counters. El upsert con RETURNING es atómico a nivel de fila, así
// que dos creaciones concurrentes en el mismo año nunca reciben la misma
// secuencia.
type RequestCounterRepo struct {
	q Querier
}

// NewRequestCounterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRequestCounterRepository(q Querier) *RequestCounterRepo {
	return &RequestCounterRepo{q: q}
}

// Next incrementa y devuelve la siguiente secuencia del año. El primer
// movimiento de un año nuevo inserta la fila con secuencia 1.
func (r *RequestCounterRepo) Next(year int) (int64, error) {
	query := `
		INSERT INTO request_counters (year, last_seq)
		VALUES ($1, 1)
		ON CONFLICT (year)
		DO UPDATE SET last_seq = request_counters.last_seq + 1
		RETURNING last_seq`
	var seq int64
	if err := r.q.QueryRow(context.Background(), query, year).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next request sequence: %w", err)
	}
	return seq, nil
}

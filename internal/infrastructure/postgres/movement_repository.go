package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/entity"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo inserta y lee: el libro es append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, product_id, type, quantity, reason, reference, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.Reason, movement.Reference, movement.Notes, createdBy, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `
		SELECT id, product_id, type, quantity, reason, reference, notes, created_by, created_at
		FROM movements WHERE id = $1`
	var m entity.Movement
	var createdBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Reason, &m.Reference,
		&m.Notes, &createdBy, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}

// List lista movimientos con nombre y SKU del producto (JOIN), del más
// reciente al más antiguo.
func (r *MovementRepo) List(limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT m.id, m.product_id, m.type, m.quantity, m.reason, m.reference, m.notes,
			m.created_by, m.created_at, p.name, p.sku
		FROM movements m
		LEFT JOIN products p ON m.product_id = p.id
		ORDER BY m.created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByProduct lista los movimientos de un producto, del más reciente al más antiguo.
func (r *MovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT m.id, m.product_id, m.type, m.quantity, m.reason, m.reference, m.notes,
			m.created_by, m.created_at, p.name, p.sku
		FROM movements m
		LEFT JOIN products p ON m.product_id = p.id
		WHERE m.product_id = $1
		ORDER BY m.created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// NetQuantity devuelve la suma neta (entradas - salidas) registrada en el
// libro para un producto. Es la fuente de verdad contra la que debe coincidir
// products.current_stock.
func (r *MovementRepo) NetQuantity(productID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'in' THEN quantity ELSE -quantity END), 0)
		FROM movements WHERE product_id = $1`
	var net int64
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&net); err != nil {
		return 0, fmt.Errorf("net quantity: %w", err)
	}
	return net, nil
}

func scanMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var createdBy, productName, productSKU *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Reason,
			&m.Reference, &m.Notes, &createdBy, &m.CreatedAt, &productName, &productSKU); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		m.ProductName = deref(productName)
		m.ProductSKU = deref(productSKU)
		list = append(list, &m)
	}
	return list, rows.Err()
}

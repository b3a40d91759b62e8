package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/stock-analyzer-api/internal/application/budget"
	"github.com/jhoicas/stock-analyzer-api/internal/application/inventory"
	"github.com/jhoicas/stock-analyzer-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ budget.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos de inventario atados a la
// tx y hace Commit o Rollback. Es la única vía por la que el saldo de un
// producto y su libro de movimientos cambian juntos.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewMovementRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(movRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBudget inicia una transacción con los repos del flujo de presupuesto:
// solicitudes, aprobaciones y el contador de numeración anual.
func (r *TxRunner) RunBudget(ctx context.Context, fn func(
	requestRepo repository.BudgetRequestRepository,
	approvalRepo repository.ApprovalRepository,
	counterRepo repository.RequestCounterRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	requestRepo := NewBudgetRequestRepository(tx)
	approvalRepo := NewApprovalRepository(tx)
	counterRepo := NewRequestCounterRepository(tx)

	if err := fn(requestRepo, approvalRepo, counterRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

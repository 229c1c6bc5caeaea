package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmedinae/stock-hospitalario/internal/application/stock"
	"github.com/jmedinae/stock-hospitalario/internal/application/transfer"
	"github.com/jmedinae/stock-hospitalario/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner and transfer.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)
var _ transfer.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Los fallos
// de serialización y deadlock salen como ErrConcurrencyConflict.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	balanceRepo repository.InventoryBalanceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewStockMovementRepository(tx)
	balanceRepo := NewInventoryBalanceRepository(tx)

	if err := fn(movRepo, balanceRepo); err != nil {
		return mapConcurrencyError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapConcurrencyError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// RunTransfer inicia una transacción con los repos del libro, el saldo y los
// traslados (para aprobar, cancelar y finalizar traslados en una sola unidad).
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	balanceRepo repository.InventoryBalanceRepository,
	transferRepo repository.TransferRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewStockMovementRepository(tx)
	balanceRepo := NewInventoryBalanceRepository(tx)
	transferRepo := NewTransferRepository(tx)

	if err := fn(movRepo, balanceRepo, transferRepo); err != nil {
		return mapConcurrencyError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapConcurrencyError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

package stock

import (
	"context"

	"github.com/jmedinae/stock-hospitalario/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad movimiento + saldo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.InventoryBalanceRepository,
	) error) error
}

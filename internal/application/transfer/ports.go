package transfer

import (
	"context"

	"github.com/jmedinae/stock-hospitalario/internal/domain/repository"
)

// TxRunner para el flujo de traslados: además de los repositorios del libro y
// el saldo, la tx incluye el repositorio de traslados. La finalización toca
// dos filas de saldo y la fila del traslado en una sola unidad atómica.
type TxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.InventoryBalanceRepository,
		transferRepo repository.TransferRepository,
	) error) error
}

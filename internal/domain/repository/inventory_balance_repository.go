package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jmedinae/stock-hospitalario/internal/domain/entity"
)

// InventoryBalanceRepository define el puerto para consultar/actualizar el
// saldo materializado por (producto, centro). Las escrituras solo ocurren
// dentro de la transacción que también anexa el movimiento.
type InventoryBalanceRepository interface {
	// Get devuelve nil, nil si el par nunca fue inicializado ni movido.
	Get(productID, centerID string) (*entity.InventoryBalance, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Si el par nunca se
	// movió la materializa con línea base cero dentro de la transacción del
	// caller antes de bloquearla; nunca devuelve nil. La creación concurrente
	// de la misma fila serializa sobre la clave primaria.
	GetForUpdate(productID, centerID string) (*entity.InventoryBalance, error)
	Upsert(balance *entity.InventoryBalance) error
	UpdateThresholds(productID, centerID string, min, max *decimal.Decimal) error
	ListByCenter(centerID string, limit, offset int) ([]*entity.InventoryBalance, error)
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryBalance es la vista materializada del stock actual de un producto
// en un centro. Invariantes: CurrentQuantity == suma de los movimientos del
// par (producto, centro) y CurrentQuantity >= 0 tras cada escritura confirmada.
// Solo la ruta compartida de registro de movimientos puede escribirla.
type InventoryBalance struct {
	ProductID        string
	HospitalCenterID string
	CurrentQuantity  decimal.Decimal
	MinimumThreshold *decimal.Decimal
	MaximumThreshold *decimal.Decimal
	LastMovementDate time.Time
	UpdatedAt        time.Time
}

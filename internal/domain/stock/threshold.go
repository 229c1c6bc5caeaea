package stock

import (
	"github.com/shopspring/decimal"

	"github.com/jmedinae/stock-hospitalario/internal/domain/entity"
)

// Severidades de alerta derivadas del saldo actual y sus umbrales.
const (
	SeverityCritical  = "CRITICAL"
	SeverityLow       = "LOW"
	SeverityOverstock = "OVERSTOCK"
	SeverityNormal    = "NORMAL"
)

// Severity clasifica un saldo según sus umbrales. Función pura: no persiste
// estado de alerta, siempre se recalcula sobre el saldo vigente.
// CRITICAL si qty <= 0; LOW si 0 < qty <= mínimo; OVERSTOCK si hay máximo
// y qty >= máximo; NORMAL en el resto.
func Severity(b *entity.InventoryBalance) string {
	qty := b.CurrentQuantity
	if qty.LessThanOrEqual(decimal.Zero) {
		return SeverityCritical
	}
	if b.MinimumThreshold != nil && qty.LessThanOrEqual(*b.MinimumThreshold) {
		return SeverityLow
	}
	if b.MaximumThreshold != nil && qty.GreaterThanOrEqual(*b.MaximumThreshold) {
		return SeverityOverstock
	}
	return SeverityNormal
}

// SeverityRank ordena severidades de más a menos urgente (para dashboards).
func SeverityRank(severity string) int {
	switch severity {
	case SeverityCritical:
		return 0
	case SeverityLow:
		return 1
	case SeverityOverstock:
		return 2
	default:
		return 3
	}
}

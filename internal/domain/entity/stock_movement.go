package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeINITIAL    = "INITIAL"    // carga inicial del saldo
	MovementTypeENTRY      = "ENTRY"      // entrada (compra, importación)
	MovementTypeSALE       = "SALE"       // venta
	MovementTypeTRANSFER   = "TRANSFER"   // traslado entre centros (débito o crédito)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste manual, exige nota
	MovementTypeCARE       = "CARE"       // consumo por atención/cuidado
)

// StockMovement representa un movimiento inmutable del libro de stock.
// Nunca se actualiza ni se borra una vez escrito; las correcciones son
// nuevos movimientos de ajuste con signo contrario.
type StockMovement struct {
	ID               string
	ProductID        string
	HospitalCenterID string
	Type             string
	Quantity         decimal.Decimal // positivo = entrada, negativo = salida
	ReferenceType    string          // "Sale", "Transfer", "CareService", ... (opcional)
	ReferenceID      string          // id del registro origen (opcional)
	Notes            string          // obligatorio en ADJUSTMENT
	MovementDate     time.Time
	CreatedAt        time.Time
	CreatedBy        string
}

// ValidMovementType verifica que el tipo pertenezca al conjunto conocido.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeINITIAL, MovementTypeENTRY, MovementTypeSALE,
		MovementTypeTRANSFER, MovementTypeADJUSTMENT, MovementTypeCARE:
		return true
	}
	return false
}

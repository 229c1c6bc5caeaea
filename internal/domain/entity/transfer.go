package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un traslado entre centros.
const (
	TransferStatusREQUESTED = "REQUESTED"
	TransferStatusAPPROVED  = "APPROVED"
	TransferStatusREJECTED  = "REJECTED"
	TransferStatusCOMPLETED = "COMPLETED"
	TransferStatusCANCELLED = "CANCELLED"
)

// transferTransitions define la máquina de estados:
// REQUESTED → APPROVED | REJECTED | CANCELLED; APPROVED → COMPLETED | CANCELLED.
// REJECTED, COMPLETED y CANCELLED son terminales.
var transferTransitions = map[string][]string{
	TransferStatusREQUESTED: {TransferStatusAPPROVED, TransferStatusREJECTED, TransferStatusCANCELLED},
	TransferStatusAPPROVED:  {TransferStatusCOMPLETED, TransferStatusCANCELLED},
}

// CanTransition indica si el cambio de estado from → to está permitido.
func CanTransition(from, to string) bool {
	for _, next := range transferTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transfer representa un traslado de stock de un centro a otro bajo flujo de
// aprobación. Nunca se borra: los estados terminales quedan como historial.
type Transfer struct {
	ID               string
	ProductID        string
	FromCenterID     string
	ToCenterID       string
	Quantity         decimal.Decimal // siempre positiva
	Status           string
	RequestedBy      string
	RequestDate      time.Time
	ApprovedBy       string
	ApprovedDate     *time.Time
	CompletedDate    *time.Time
	Reason           string
	ApprovalComments string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsTerminal indica si el traslado ya no admite más transiciones.
func (t *Transfer) IsTerminal() bool {
	return len(transferTransitions[t.Status]) == 0
}

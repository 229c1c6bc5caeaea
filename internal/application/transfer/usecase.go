package transfer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmedinae/stock-hospitalario/internal/application/stock"
	"github.com/jmedinae/stock-hospitalario/internal/domain"
	"github.com/jmedinae/stock-hospitalario/internal/domain/entity"
	"github.com/jmedinae/stock-hospitalario/internal/domain/repository"
)

// maxCompleteRetries reintentos de la finalización cuando dos traslados en
// sentidos opuestos se bloquean entre sí (deadlock detectado por la BD).
const maxCompleteRetries = 3

// referenceTypeTransfer valor de reference_type en las dos patas del libro.
const referenceTypeTransfer = "Transfer"

// WorkflowUseCase orquesta el ciclo de vida de un traslado entre centros:
// REQUESTED → APPROVED → COMPLETED, con REJECTED y CANCELLED como salidas.
// Política optimista: no se reserva stock entre solicitud/aprobación y
// finalización; la disponibilidad se revalida al ejecutar.
type WorkflowUseCase struct {
	txRunner     TxRunner
	ledger       *stock.LedgerUseCase
	transferRepo repository.TransferRepository
	balanceRepo  repository.InventoryBalanceRepository
	productRepo  repository.ProductRepository
	centerRepo   repository.HospitalCenterRepository
}

// NewWorkflowUseCase construye el caso de uso. transferRepo y balanceRepo
// atados al pool se usan para lecturas fuera de transacción (listados y
// chequeo blando de disponibilidad).
func NewWorkflowUseCase(
	txRunner TxRunner,
	ledger *stock.LedgerUseCase,
	transferRepo repository.TransferRepository,
	balanceRepo repository.InventoryBalanceRepository,
	productRepo repository.ProductRepository,
	centerRepo repository.HospitalCenterRepository,
) *WorkflowUseCase {
	return &WorkflowUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		transferRepo: transferRepo,
		balanceRepo:  balanceRepo,
		productRepo:  productRepo,
		centerRepo:   centerRepo,
	}
}

// RequestResult traslado creado más advertencia no vinculante de disponibilidad.
type RequestResult struct {
	Transfer *entity.Transfer
	Warning  string
}

// Request crea la solicitud de traslado en estado REQUESTED. Hace un chequeo
// blando de disponibilidad en el centro origen solo para informar al usuario;
// no reserva ni bloquea stock, y la solicitud se crea aunque hoy no alcance.
func (uc *WorkflowUseCase) Request(
	ctx context.Context,
	actor domain.Actor,
	productID, fromCenterID, toCenterID string,
	quantity decimal.Decimal,
	reason string,
) (*RequestResult, error) {
	if !actor.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if productID == "" || fromCenterID == "" || toCenterID == "" {
		return nil, domain.ErrInvalidInput
	}
	if fromCenterID == toCenterID {
		return nil, domain.ErrInvalidInput
	}
	if !quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkRefs(productID, fromCenterID, toCenterID); err != nil {
		return nil, err
	}

	// Chequeo blando: lectura del saldo actual en origen, sin reserva.
	warning := ""
	balance, err := uc.balanceRepo.Get(productID, fromCenterID)
	if err != nil {
		return nil, err
	}
	if balance == nil || balance.CurrentQuantity.LessThan(quantity) {
		warning = "el stock actual en el centro origen es menor a la cantidad solicitada"
	}

	now := time.Now()
	t := &entity.Transfer{
		ID:           uuid.New().String(),
		ProductID:    productID,
		FromCenterID: fromCenterID,
		ToCenterID:   toCenterID,
		Quantity:     quantity,
		Status:       entity.TransferStatusREQUESTED,
		RequestedBy:  actor.ID,
		RequestDate:  now,
		Reason:       reason,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.transferRepo.Create(t); err != nil {
		return nil, err
	}
	return &RequestResult{Transfer: t, Warning: warning}, nil
}

// Approve transición REQUESTED → APPROVED. Registra aprobador, fecha y
// comentarios. No toca el libro de stock.
func (uc *WorkflowUseCase) Approve(ctx context.Context, actor domain.Actor, transferID, comments string) error {
	if !actor.Valid() {
		return domain.ErrInvalidInput
	}
	return uc.transition(ctx, transferID, entity.TransferStatusAPPROVED, func(t *entity.Transfer, now time.Time) {
		t.ApprovedBy = actor.ID
		t.ApprovedDate = &now
		t.ApprovalComments = comments
	})
}

// Reject transición REQUESTED → REJECTED (terminal). El motivo queda en los
// comentarios de aprobación.
func (uc *WorkflowUseCase) Reject(ctx context.Context, actor domain.Actor, transferID, reason string) error {
	if !actor.Valid() {
		return domain.ErrInvalidInput
	}
	if strings.TrimSpace(reason) == "" {
		return domain.ErrInvalidInput
	}
	return uc.transition(ctx, transferID, entity.TransferStatusREJECTED, func(t *entity.Transfer, now time.Time) {
		t.ApprovedBy = actor.ID
		t.ApprovedDate = &now
		t.ApprovalComments = reason
	})
}

// Cancel transición REQUESTED|APPROVED → CANCELLED (terminal). Sin efecto en
// el libro: nunca hubo reserva que liberar.
func (uc *WorkflowUseCase) Cancel(ctx context.Context, actor domain.Actor, transferID, reason string) error {
	if !actor.Valid() {
		return domain.ErrInvalidInput
	}
	return uc.transition(ctx, transferID, entity.TransferStatusCANCELLED, func(t *entity.Transfer, now time.Time) {
		if reason != "" {
			t.ApprovalComments = reason
		}
	})
}

// transition carga el traslado con bloqueo de fila, valida la máquina de
// estados y aplica la mutación en una transacción.
func (uc *WorkflowUseCase) transition(ctx context.Context, transferID, to string, apply func(*entity.Transfer, time.Time)) error {
	if transferID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunTransfer(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.InventoryBalanceRepository,
		transferRepo repository.TransferRepository,
	) error {
		t, err := transferRepo.GetForUpdate(transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrTransferNotFound
		}
		if !entity.CanTransition(t.Status, to) {
			return domain.ErrInvalidTransition
		}
		now := time.Now()
		apply(t, now)
		t.Status = to
		t.UpdatedAt = now
		return transferRepo.Update(t)
	})
}

// Complete transición APPROVED → COMPLETED. Revalida disponibilidad en origen
// al momento de ejecutar (el saldo pudo cambiar desde la aprobación) y escribe
// las dos patas por la ruta compartida del libro dentro de una sola tx:
// débito en origen y crédito en destino, ambas con referencia al traslado.
// Si no alcanza el stock, la tx se revierte y el traslado QUEDA en APPROVED
// para reintentar o cancelar explícitamente. Deadlocks contra traslados en
// sentido contrario se reintentan de forma acotada.
func (uc *WorkflowUseCase) Complete(ctx context.Context, actor domain.Actor, transferID string) error {
	if !actor.Valid() || transferID == "" {
		return domain.ErrInvalidInput
	}
	var err error
	for attempt := 0; attempt <= maxCompleteRetries; attempt++ {
		err = uc.completeOnce(ctx, actor, transferID)
		if !errors.Is(err, domain.ErrConcurrencyConflict) {
			break
		}
	}
	return err
}

func (uc *WorkflowUseCase) completeOnce(ctx context.Context, actor domain.Actor, transferID string) error {
	return uc.txRunner.RunTransfer(ctx, func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.InventoryBalanceRepository,
		transferRepo repository.TransferRepository,
	) error {
		t, err := transferRepo.GetForUpdate(transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrTransferNotFound
		}
		if !entity.CanTransition(t.Status, entity.TransferStatusCOMPLETED) {
			return domain.ErrInvalidTransition
		}

		now := time.Now()
		debit := stock.MovementInput{
			ProductID:     t.ProductID,
			CenterID:      t.FromCenterID,
			Type:          entity.MovementTypeTRANSFER,
			Quantity:      t.Quantity.Neg(),
			ReferenceType: referenceTypeTransfer,
			ReferenceID:   t.ID,
		}
		if _, err := uc.ledger.RecordInTx(movRepo, balanceRepo, actor, debit, now); err != nil {
			return err
		}
		credit := stock.MovementInput{
			ProductID:     t.ProductID,
			CenterID:      t.ToCenterID,
			Type:          entity.MovementTypeTRANSFER,
			Quantity:      t.Quantity,
			ReferenceType: referenceTypeTransfer,
			ReferenceID:   t.ID,
		}
		if _, err := uc.ledger.RecordInTx(movRepo, balanceRepo, actor, credit, now); err != nil {
			return err
		}

		t.Status = entity.TransferStatusCOMPLETED
		t.CompletedDate = &now
		t.UpdatedAt = now
		return transferRepo.Update(t)
	})
}

// Get devuelve un traslado por id.
func (uc *WorkflowUseCase) Get(ctx context.Context, transferID string) (*entity.Transfer, error) {
	if transferID == "" {
		return nil, domain.ErrInvalidInput
	}
	t, err := uc.transferRepo.GetByID(transferID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTransferNotFound
	}
	return t, nil
}

// List traslados filtrados por centro (origen o destino) y/o estado.
func (uc *WorkflowUseCase) List(ctx context.Context, centerID, status string, limit, offset int) ([]*entity.Transfer, error) {
	return uc.transferRepo.List(centerID, status, limit, offset)
}

func (uc *WorkflowUseCase) checkRefs(productID, fromCenterID, toCenterID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	for _, centerID := range []string{fromCenterID, toCenterID} {
		center, err := uc.centerRepo.GetByID(centerID)
		if err != nil {
			return err
		}
		if center == nil {
			return domain.ErrCenterNotFound
		}
	}
	return nil
}

package stock

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmedinae/stock-hospitalario/internal/domain"
	"github.com/jmedinae/stock-hospitalario/internal/domain/entity"
	"github.com/jmedinae/stock-hospitalario/internal/domain/repository"
)

// maxBalanceRetries reintentos locales cuando la escritura pierde una carrera
// sobre la fila de saldo (serialización/deadlock), con relectura fresca.
const maxBalanceRetries = 3

// LedgerUseCase registra movimientos de stock de forma transaccional: anexa la
// fila inmutable al libro y actualiza la vista de saldo en la misma tx, con
// bloqueo de fila (SELECT FOR UPDATE). Es la única ruta de escritura del saldo;
// ventas, consumos de atención, importaciones, ajustes y traslados pasan por aquí.
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	centerRepo  repository.HospitalCenterRepository
	balanceRepo repository.InventoryBalanceRepository
	movRepo     repository.StockMovementRepository
}

// NewLedgerUseCase construye el caso de uso. balanceRepo y movRepo atados al
// pool se usan solo para lecturas fuera de transacción.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	centerRepo repository.HospitalCenterRepository,
	balanceRepo repository.InventoryBalanceRepository,
	movRepo repository.StockMovementRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		centerRepo:  centerRepo,
		balanceRepo: balanceRepo,
		movRepo:     movRepo,
	}
}

// MovementInput entrada para registrar un movimiento de stock.
type MovementInput struct {
	ProductID     string
	CenterID      string
	Type          string
	Quantity      decimal.Decimal
	ReferenceType string
	ReferenceID   string
	Notes         string
}

// validate aplica las reglas de signo por tipo. INITIAL/ENTRY no negativos,
// SALE/CARE no positivos, TRANSFER cualquier signo (cada pata lleva el suyo),
// ADJUSTMENT cualquier signo pero con nota obligatoria. Cantidad cero solo se
// admite en INITIAL (inicialización con umbrales sin existencias).
func (in MovementInput) validate() error {
	if in.ProductID == "" || in.CenterID == "" {
		return domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.Type) {
		return domain.ErrInvalidInput
	}
	if in.Quantity.IsZero() && in.Type != entity.MovementTypeINITIAL {
		return domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.MovementTypeINITIAL, entity.MovementTypeENTRY:
		if in.Quantity.IsNegative() {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeSALE, entity.MovementTypeCARE:
		if in.Quantity.IsPositive() {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeADJUSTMENT:
		if strings.TrimSpace(in.Notes) == "" {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// RecordMovement valida la entrada, verifica que producto y centro existan e
// inicia la transacción que anexa el movimiento y actualiza el saldo. Si el
// saldo resultante fuera negativo, falla con ErrInsufficientStock y no se
// confirma nada. Reintenta ante ErrConcurrencyConflict un número acotado de
// veces con relectura del saldo vigente.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, actor domain.Actor, in MovementInput) (*entity.InventoryBalance, error) {
	if !actor.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := uc.checkRefs(in.ProductID, in.CenterID); err != nil {
		return nil, err
	}

	now := time.Now()
	var balance *entity.InventoryBalance
	var err error
	for attempt := 0; attempt <= maxBalanceRetries; attempt++ {
		err = uc.txRunner.Run(ctx, func(
			movRepo repository.StockMovementRepository,
			balanceRepo repository.InventoryBalanceRepository,
		) error {
			b, txErr := uc.RecordInTx(movRepo, balanceRepo, actor, in, now)
			if txErr != nil {
				return txErr
			}
			balance = b
			return nil
		})
		if !errors.Is(err, domain.ErrConcurrencyConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return balance, nil
}

// RecordInTx ejecuta la ruta compartida de escritura usando los repositorios
// de la transacción del caller: bloquea la fila de saldo, verifica que el
// resultado no quede negativo, materializa el nuevo saldo y anexa el
// movimiento. La usa también el flujo de traslados para sus dos patas.
func (uc *LedgerUseCase) RecordInTx(
	movRepo repository.StockMovementRepository,
	balanceRepo repository.InventoryBalanceRepository,
	actor domain.Actor,
	in MovementInput,
	now time.Time,
) (*entity.InventoryBalance, error) {
	balance, err := balanceRepo.GetForUpdate(in.ProductID, in.CenterID)
	if err != nil {
		return nil, err
	}
	newQty := balance.CurrentQuantity.Add(in.Quantity)
	if newQty.IsNegative() {
		return nil, domain.ErrInsufficientStock
	}
	balance.CurrentQuantity = newQty
	balance.LastMovementDate = now
	balance.UpdatedAt = now
	if err := balanceRepo.Upsert(balance); err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ID:               uuid.New().String(),
		ProductID:        in.ProductID,
		HospitalCenterID: in.CenterID,
		Type:             in.Type,
		Quantity:         in.Quantity,
		ReferenceType:    in.ReferenceType,
		ReferenceID:      in.ReferenceID,
		Notes:            in.Notes,
		MovementDate:     now,
		CreatedAt:        now,
		CreatedBy:        actor.ID,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return balance, nil
}

// GetBalance lectura pura del saldo materializado. nil si el par nunca se movió.
func (uc *LedgerUseCase) GetBalance(ctx context.Context, productID, centerID string) (*entity.InventoryBalance, error) {
	if productID == "" || centerID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.balanceRepo.Get(productID, centerID)
}

// ListMovements historial del libro para reportes. productID vacío lista todo
// el centro; centerID es obligatorio cuando productID está vacío.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, productID, centerID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	switch {
	case productID != "":
		return uc.movRepo.ListByProduct(productID, centerID, from, to, limit, offset)
	case centerID != "":
		return uc.movRepo.ListByCenter(centerID, from, to, limit, offset)
	default:
		return nil, domain.ErrInvalidInput
	}
}

// checkRefs valida existencia de producto y centro con errores diferenciados.
func (uc *LedgerUseCase) checkRefs(productID, centerID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	center, err := uc.centerRepo.GetByID(centerID)
	if err != nil {
		return err
	}
	if center == nil {
		return domain.ErrCenterNotFound
	}
	return nil
}

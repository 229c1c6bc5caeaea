package stock

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmedinae/stock-hospitalario/internal/domain"
	"github.com/jmedinae/stock-hospitalario/internal/domain/entity"
	"github.com/jmedinae/stock-hospitalario/internal/domain/repository"
)

// InitializeBalance crea el saldo de (producto, centro) con su carga inicial y
// umbrales. Solo válido si el par no tiene movimientos todavía; escribe un
// único movimiento INITIAL (cantidad cero permitida para fijar solo umbrales).
// La verificación corre dentro de la transacción, con la fila de saldo ya
// bloqueada.
func (uc *LedgerUseCase) InitializeBalance(
	ctx context.Context,
	actor domain.Actor,
	productID, centerID string,
	initialQuantity decimal.Decimal,
	minThreshold, maxThreshold *decimal.Decimal,
) (*entity.InventoryBalance, error) {
	if !actor.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if initialQuantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := validateThresholds(minThreshold, maxThreshold); err != nil {
		return nil, err
	}
	if err := uc.checkRefs(productID, centerID); err != nil {
		return nil, err
	}

	in := MovementInput{
		ProductID: productID,
		CenterID:  centerID,
		Type:      entity.MovementTypeINITIAL,
		Quantity:  initialQuantity,
	}
	var balance *entity.InventoryBalance
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.InventoryBalanceRepository,
	) error {
		// Bloquea la fila del par antes de decidir: dos inicializaciones
		// concurrentes serializan aquí y la segunda ve el INITIAL de la
		// primera en el libro.
		if _, err := balanceRepo.GetForUpdate(productID, centerID); err != nil {
			return err
		}
		prior, err := movRepo.ListByProduct(productID, centerID, nil, nil, 1, 0)
		if err != nil {
			return err
		}
		if len(prior) > 0 {
			return domain.ErrBalanceExists
		}
		b, err := uc.RecordInTx(movRepo, balanceRepo, actor, in, time.Now())
		if err != nil {
			return err
		}
		b.MinimumThreshold = minThreshold
		b.MaximumThreshold = maxThreshold
		if err := balanceRepo.UpdateThresholds(productID, centerID, minThreshold, maxThreshold); err != nil {
			return err
		}
		balance = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return balance, nil
}

// AdjustStock corrección manual privilegiada. Exige motivo no vacío y pasa por
// la ruta compartida como ADJUSTMENT, heredando todos los invariantes (no
// puede dejar el saldo en negativo).
func (uc *LedgerUseCase) AdjustStock(
	ctx context.Context,
	actor domain.Actor,
	productID, centerID string,
	delta decimal.Decimal,
	reason string,
) (*entity.InventoryBalance, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.RecordMovement(ctx, actor, MovementInput{
		ProductID: productID,
		CenterID:  centerID,
		Type:      entity.MovementTypeADJUSTMENT,
		Quantity:  delta,
		Notes:     reason,
	})
}

// UpdateThresholds cambia los umbrales de alerta de un saldo ya inicializado.
func (uc *LedgerUseCase) UpdateThresholds(
	ctx context.Context,
	productID, centerID string,
	minThreshold, maxThreshold *decimal.Decimal,
) error {
	if productID == "" || centerID == "" {
		return domain.ErrInvalidInput
	}
	if err := validateThresholds(minThreshold, maxThreshold); err != nil {
		return err
	}
	existing, err := uc.balanceRepo.Get(productID, centerID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrProductNotFound
	}
	return uc.balanceRepo.UpdateThresholds(productID, centerID, minThreshold, maxThreshold)
}

// validateThresholds: mínimos y máximos no negativos, máximo mayor al mínimo.
func validateThresholds(min, max *decimal.Decimal) error {
	if min != nil && min.IsNegative() {
		return domain.ErrInvalidInput
	}
	if max != nil && max.IsNegative() {
		return domain.ErrInvalidInput
	}
	if min != nil && max != nil && !max.GreaterThan(*min) {
		return domain.ErrInvalidInput
	}
	return nil
}

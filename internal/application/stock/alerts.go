package stock

import (
	"context"
	"sort"

	"github.com/jmedinae/stock-hospitalario/internal/application/dto"
	"github.com/jmedinae/stock-hospitalario/internal/domain"
	"github.com/jmedinae/stock-hospitalario/internal/domain/repository"
	domainstock "github.com/jmedinae/stock-hospitalario/internal/domain/stock"
)

// AlertsUseCase clasifica los saldos de un centro según sus umbrales para el
// dashboard. Sin estado persistido: las severidades se recalculan siempre
// sobre la vista de saldos vigente.
type AlertsUseCase struct {
	balanceRepo repository.InventoryBalanceRepository
}

// NewAlertsUseCase construye el caso de uso de alertas.
func NewAlertsUseCase(balanceRepo repository.InventoryBalanceRepository) *AlertsUseCase {
	return &AlertsUseCase{balanceRepo: balanceRepo}
}

// ListAlerts devuelve los saldos con severidad distinta de NORMAL del centro,
// ordenados por urgencia y luego por cantidad ascendente.
func (uc *AlertsUseCase) ListAlerts(ctx context.Context, centerID string, limit, offset int) ([]dto.StockAlertDTO, error) {
	if centerID == "" {
		return nil, domain.ErrInvalidInput
	}
	balances, err := uc.balanceRepo.ListByCenter(centerID, limit, offset)
	if err != nil {
		return nil, err
	}

	alerts := make([]dto.StockAlertDTO, 0, len(balances))
	for _, b := range balances {
		severity := domainstock.Severity(b)
		if severity == domainstock.SeverityNormal {
			continue
		}
		alerts = append(alerts, dto.StockAlertDTO{
			ProductID:        b.ProductID,
			CenterID:         b.HospitalCenterID,
			CurrentQuantity:  b.CurrentQuantity,
			MinimumThreshold: b.MinimumThreshold,
			MaximumThreshold: b.MaximumThreshold,
			Severity:         severity,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		ri, rj := domainstock.SeverityRank(alerts[i].Severity), domainstock.SeverityRank(alerts[j].Severity)
		if ri != rj {
			return ri < rj
		}
		return alerts[i].CurrentQuantity.LessThan(alerts[j].CurrentQuantity)
	})
	return alerts, nil
}

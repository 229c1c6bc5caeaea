package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmedinae/stock-hospitalario/internal/application/stock"
	"github.com/jmedinae/stock-hospitalario/internal/domain"
	"github.com/jmedinae/stock-hospitalario/internal/domain/entity"
	domainstock "github.com/jmedinae/stock-hospitalario/internal/domain/stock"
)

func TestListAlerts_FiltraYOrdena(t *testing.T) {
	s := newMemStore()
	s.balances[balanceKey("prod-critico", "centro-a")] = &entity.InventoryBalance{
		ProductID: "prod-critico", HospitalCenterID: "centro-a", CurrentQuantity: dec(0), MinimumThreshold: decPtr(10),
	}
	s.balances[balanceKey("prod-bajo", "centro-a")] = &entity.InventoryBalance{
		ProductID: "prod-bajo", HospitalCenterID: "centro-a", CurrentQuantity: dec(4), MinimumThreshold: decPtr(10),
	}
	s.balances[balanceKey("prod-normal", "centro-a")] = &entity.InventoryBalance{
		ProductID: "prod-normal", HospitalCenterID: "centro-a", CurrentQuantity: dec(50), MinimumThreshold: decPtr(10),
	}
	s.balances[balanceKey("prod-exceso", "centro-a")] = &entity.InventoryBalance{
		ProductID: "prod-exceso", HospitalCenterID: "centro-a", CurrentQuantity: dec(900), MaximumThreshold: decPtr(500),
	}
	s.balances[balanceKey("prod-otro-centro", "centro-b")] = &entity.InventoryBalance{
		ProductID: "prod-otro-centro", HospitalCenterID: "centro-b", CurrentQuantity: dec(0),
	}

	uc := stock.NewAlertsUseCase(&memBalanceRepo{s})
	alerts, err := uc.ListAlerts(context.Background(), "centro-a", 100, 0)
	require.NoError(t, err)

	require.Len(t, alerts, 3, "NORMAL no genera alerta y otros centros quedan fuera")
	assert.Equal(t, "prod-critico", alerts[0].ProductID)
	assert.Equal(t, domainstock.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, "prod-bajo", alerts[1].ProductID)
	assert.Equal(t, domainstock.SeverityLow, alerts[1].Severity)
	assert.Equal(t, "prod-exceso", alerts[2].ProductID)
	assert.Equal(t, domainstock.SeverityOverstock, alerts[2].Severity)
}

func TestListAlerts_CentroObligatorio(t *testing.T) {
	uc := stock.NewAlertsUseCase(&memBalanceRepo{newMemStore()})
	_, err := uc.ListAlerts(context.Background(), "", 100, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

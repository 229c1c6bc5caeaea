package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/stock/movements.
type RecordMovementRequest struct {
	ProductID     string          `json:"product_id"`
	CenterID      string          `json:"center_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// InitializeBalanceRequest body para POST /api/stock/balances.
type InitializeBalanceRequest struct {
	ProductID        string           `json:"product_id"`
	CenterID         string           `json:"center_id"`
	InitialQuantity  decimal.Decimal  `json:"initial_quantity"`
	MinimumThreshold *decimal.Decimal `json:"minimum_threshold,omitempty"`
	MaximumThreshold *decimal.Decimal `json:"maximum_threshold,omitempty"`
}

// AdjustStockRequest body para POST /api/stock/adjustments.
type AdjustStockRequest struct {
	ProductID string          `json:"product_id"`
	CenterID  string          `json:"center_id"`
	Delta     decimal.Decimal `json:"delta"`
	Reason    string          `json:"reason"`
}

// UpdateThresholdsRequest body para PUT /api/stock/thresholds.
type UpdateThresholdsRequest struct {
	ProductID        string           `json:"product_id"`
	CenterID         string           `json:"center_id"`
	MinimumThreshold *decimal.Decimal `json:"minimum_threshold,omitempty"`
	MaximumThreshold *decimal.Decimal `json:"maximum_threshold,omitempty"`
}

// BalanceResponse respuesta con el saldo materializado de (producto, centro).
type BalanceResponse struct {
	ProductID        string           `json:"product_id"`
	CenterID         string           `json:"center_id"`
	CurrentQuantity  decimal.Decimal  `json:"current_quantity"`
	MinimumThreshold *decimal.Decimal `json:"minimum_threshold,omitempty"`
	MaximumThreshold *decimal.Decimal `json:"maximum_threshold,omitempty"`
	LastMovementDate time.Time        `json:"last_movement_date"`
}

// MovementResponse un movimiento del libro de stock (solo lectura).
type MovementResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	CenterID      string          `json:"center_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	MovementDate  time.Time       `json:"movement_date"`
	CreatedBy     string          `json:"created_by"`
}

// StockAlertDTO una alerta derivada del saldo actual y sus umbrales.
type StockAlertDTO struct {
	ProductID        string           `json:"product_id"`
	CenterID         string           `json:"center_id"`
	CurrentQuantity  decimal.Decimal  `json:"current_quantity"`
	MinimumThreshold *decimal.Decimal `json:"minimum_threshold,omitempty"`
	MaximumThreshold *decimal.Decimal `json:"maximum_threshold,omitempty"`
	Severity         string           `json:"severity"`
}

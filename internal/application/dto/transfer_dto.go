package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestTransferRequest body para POST /api/transfers.
type RequestTransferRequest struct {
	ProductID    string          `json:"product_id"`
	FromCenterID string          `json:"from_center_id"`
	ToCenterID   string          `json:"to_center_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Reason       string          `json:"reason"`
}

// RequestTransferResponse id del traslado creado más advertencia no vinculante
// si el stock actual en origen no alcanza (chequeo blando, no reserva).
type RequestTransferResponse struct {
	TransferID string `json:"transfer_id"`
	Status     string `json:"status"`
	Warning    string `json:"warning,omitempty"`
}

// TransferDecisionRequest body para approve/reject/cancel.
type TransferDecisionRequest struct {
	Comments string `json:"comments,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// TransferResponse representación de un traslado para la UI.
type TransferResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	FromCenterID     string          `json:"from_center_id"`
	ToCenterID       string          `json:"to_center_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	Status           string          `json:"status"`
	RequestedBy      string          `json:"requested_by"`
	RequestDate      time.Time       `json:"request_date"`
	ApprovedBy       string          `json:"approved_by,omitempty"`
	ApprovedDate     *time.Time      `json:"approved_date,omitempty"`
	CompletedDate    *time.Time      `json:"completed_date,omitempty"`
	Reason           string          `json:"reason"`
	ApprovalComments string          `json:"approval_comments,omitempty"`
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmedinae/stock-hospitalario/internal/application/dto"
	"github.com/jmedinae/stock-hospitalario/internal/application/transfer"
	"github.com/jmedinae/stock-hospitalario/internal/domain/entity"
)

// TransferHandler maneja las peticiones HTTP del flujo de traslados.
type TransferHandler struct {
	workflow *transfer.WorkflowUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(workflow *transfer.WorkflowUseCase) *TransferHandler {
	return &TransferHandler{workflow: workflow}
}

// Request godoc
// @Summary      Solicitar traslado entre centros
// @Description  Crea la solicitud en REQUESTED. El chequeo de disponibilidad es
//               blando: solo advierte, no reserva stock.
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RequestTransferRequest  true  "product_id, from_center_id, to_center_id, quantity, reason"
// @Success      201   {object}  dto.RequestTransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Request(c *fiber.Ctx) error {
	var in dto.RequestTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.workflow.Request(c.Context(), GetActor(c), in.ProductID, in.FromCenterID, in.ToCenterID, in.Quantity, in.Reason)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RequestTransferResponse{
		TransferID: result.Transfer.ID,
		Status:     result.Transfer.Status,
		Warning:    result.Warning,
	})
}

// Approve godoc
// @Summary      Aprobar traslado (REQUESTED → APPROVED)
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Transfer ID"
// @Param        body  body  dto.TransferDecisionRequest  false  "comentarios"
// @Success      200   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/approve [post]
func (h *TransferHandler) Approve(c *fiber.Ctx) error {
	var in dto.TransferDecisionRequest
	_ = c.BodyParser(&in)
	if err := h.workflow.Approve(c.Context(), GetActor(c), c.Params("id"), in.Comments); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "traslado aprobado"})
}

// Reject godoc
// @Summary      Rechazar traslado (REQUESTED → REJECTED, terminal)
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Transfer ID"
// @Param        body  body  dto.TransferDecisionRequest  true  "motivo obligatorio"
// @Success      200   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/reject [post]
func (h *TransferHandler) Reject(c *fiber.Ctx) error {
	var in dto.TransferDecisionRequest
	_ = c.BodyParser(&in)
	if err := h.workflow.Reject(c.Context(), GetActor(c), c.Params("id"), in.Reason); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "traslado rechazado"})
}

// Complete godoc
// @Summary      Ejecutar traslado aprobado (APPROVED → COMPLETED)
// @Description  Revalida disponibilidad en origen al ejecutar. Si no alcanza,
//               responde 409 y el traslado permanece en APPROVED para reintentar.
// @Tags         transfers
// @Produce      json
// @Param        id  path  string  true  "Transfer ID"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/complete [post]
func (h *TransferHandler) Complete(c *fiber.Ctx) error {
	if err := h.workflow.Complete(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "traslado completado"})
}

// Cancel godoc
// @Summary      Cancelar traslado (REQUESTED|APPROVED → CANCELLED, terminal)
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Transfer ID"
// @Param        body  body  dto.TransferDecisionRequest  false  "motivo"
// @Success      200   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/cancel [post]
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	var in dto.TransferDecisionRequest
	_ = c.BodyParser(&in)
	if err := h.workflow.Cancel(c.Context(), GetActor(c), c.Params("id"), in.Reason); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "traslado cancelado"})
}

// GetByID godoc
// @Summary      Consultar traslado
// @Tags         transfers
// @Produce      json
// @Param        id  path  string  true  "Transfer ID"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	t, err := h.workflow.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toTransferResponse(t))
}

// List godoc
// @Summary      Listar traslados
// @Tags         transfers
// @Produce      json
// @Param        center_id  query  string  false  "Centro origen o destino"
// @Param        status     query  string  false  "REQUESTED|APPROVED|REJECTED|COMPLETED|CANCELLED"
// @Success      200  {array}  dto.TransferResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	transfers, err := h.workflow.List(c.Context(), c.Query("center_id"), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		out = append(out, toTransferResponse(t))
	}
	return c.JSON(fiber.Map{"total": len(out), "transfers": out})
}

func toTransferResponse(t *entity.Transfer) dto.TransferResponse {
	return dto.TransferResponse{
		ID:               t.ID,
		ProductID:        t.ProductID,
		FromCenterID:     t.FromCenterID,
		ToCenterID:       t.ToCenterID,
		Quantity:         t.Quantity,
		Status:           t.Status,
		RequestedBy:      t.RequestedBy,
		RequestDate:      t.RequestDate,
		ApprovedBy:       t.ApprovedBy,
		ApprovedDate:     t.ApprovedDate,
		CompletedDate:    t.CompletedDate,
		Reason:           t.Reason,
		ApprovalComments: t.ApprovalComments,
	}
}

package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jmedinae/stock-hospitalario/internal/application/dto"
	"github.com/jmedinae/stock-hospitalario/internal/application/stock"
	"github.com/jmedinae/stock-hospitalario/internal/domain/entity"
)

// StockHandler maneja las peticiones HTTP del libro de stock y sus saldos.
type StockHandler struct {
	ledger *stock.LedgerUseCase
	alerts *stock.AlertsUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *stock.LedgerUseCase, alerts *stock.AlertsUseCase) *StockHandler {
	return &StockHandler{ledger: ledger, alerts: alerts}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "product_id, center_id, type, quantity (con signo), reference_*, notes"
// @Success      201   {object}  dto.BalanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	balance, err := h.ledger.RecordMovement(c.Context(), GetActor(c), stock.MovementInput{
		ProductID:     in.ProductID,
		CenterID:      in.CenterID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		Notes:         in.Notes,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBalanceResponse(balance))
}

// GetBalance godoc
// @Summary      Saldo actual de (producto, centro)
// @Tags         stock
// @Produce      json
// @Param        product_id  query  string  true  "Producto (UUID)"
// @Param        center_id   query  string  true  "Centro (UUID)"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/balance [get]
func (h *StockHandler) GetBalance(c *fiber.Ctx) error {
	balance, err := h.ledger.GetBalance(c.Context(), c.Query("product_id"), c.Query("center_id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	if balance == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "BALANCE_NOT_FOUND", Message: "sin saldo para el par producto/centro"})
	}
	return c.JSON(toBalanceResponse(balance))
}

// ListMovements godoc
// @Summary      Historial de movimientos (reportes)
// @Tags         stock
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        center_id   query  string  false  "Filtrar por centro"
// @Param        from        query  string  false  "Fecha desde (RFC3339)"
// @Param        to          query  string  false  "Fecha hasta (RFC3339)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()

	from, err := parseDate(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "fecha 'from' inválida"})
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "fecha 'to' inválida"})
	}

	movements, err := h.ledger.ListMovements(c.Context(), c.Query("product_id"), c.Query("center_id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// InitializeBalance godoc
// @Summary      Inicializar saldo de (producto, centro)
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InitializeBalanceRequest  true  "carga inicial y umbrales"
// @Success      201   {object}  dto.BalanceResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/balances [post]
func (h *StockHandler) InitializeBalance(c *fiber.Ctx) error {
	var in dto.InitializeBalanceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	balance, err := h.ledger.InitializeBalance(c.Context(), GetActor(c), in.ProductID, in.CenterID,
		in.InitialQuantity, in.MinimumThreshold, in.MaximumThreshold)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBalanceResponse(balance))
}

// AdjustStock godoc
// @Summary      Ajuste manual de stock (requiere motivo)
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "delta con signo y motivo obligatorio"
// @Success      201   {object}  dto.BalanceResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *StockHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	balance, err := h.ledger.AdjustStock(c.Context(), GetActor(c), in.ProductID, in.CenterID, in.Delta, in.Reason)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBalanceResponse(balance))
}

// UpdateThresholds godoc
// @Summary      Actualizar umbrales de alerta
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateThresholdsRequest  true  "umbrales mínimo/máximo"
// @Success      200   {object}  map[string]string
// @Router       /api/stock/thresholds [put]
func (h *StockHandler) UpdateThresholds(c *fiber.Ctx) error {
	var in dto.UpdateThresholdsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.ledger.UpdateThresholds(c.Context(), in.ProductID, in.CenterID, in.MinimumThreshold, in.MaximumThreshold); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "umbrales actualizados"})
}

// ListAlerts godoc
// @Summary      Alertas de stock del centro (derivadas, sin estado)
// @Tags         stock
// @Produce      json
// @Param        center_id  query  string  true  "Centro (UUID)"
// @Success      200  {array}  dto.StockAlertDTO
// @Router       /api/stock/alerts [get]
func (h *StockHandler) ListAlerts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	page.DefaultPage()
	alerts, err := h.alerts.ListAlerts(c.Context(), c.Query("center_id"), page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(alerts), "alerts": alerts})
}

func toBalanceResponse(b *entity.InventoryBalance) dto.BalanceResponse {
	return dto.BalanceResponse{
		ProductID:        b.ProductID,
		CenterID:         b.HospitalCenterID,
		CurrentQuantity:  b.CurrentQuantity,
		MinimumThreshold: b.MinimumThreshold,
		MaximumThreshold: b.MaximumThreshold,
		LastMovementDate: b.LastMovementDate,
	}
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		CenterID:      m.HospitalCenterID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		Notes:         m.Notes,
		MovementDate:  m.MovementDate,
		CreatedBy:     m.CreatedBy,
	}
}

// parseDate RFC3339 o fecha corta AAAA-MM-DD; nil si viene vacío.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return nil, err
		}
	}
	return &t, nil
}

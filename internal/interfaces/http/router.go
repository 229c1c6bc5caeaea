package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmedinae/stock-hospitalario/internal/application/stock"
	"github.com/jmedinae/stock-hospitalario/internal/application/transfer"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger   *stock.LedgerUseCase
	Alerts   *stock.AlertsUseCase
	Workflow *transfer.WorkflowUseCase
}

// Router registra las rutas de la API. Todas requieren contexto de actor
// (headers del gateway); la autenticación vive fuera de este servicio.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", ActorMiddleware())

	stockGroup := api.Group("/stock")
	stockHandler := NewStockHandler(deps.Ledger, deps.Alerts)
	stockGroup.Post("/movements", stockHandler.RecordMovement)
	stockGroup.Get("/movements", stockHandler.ListMovements)
	stockGroup.Get("/balance", stockHandler.GetBalance)
	stockGroup.Post("/balances", stockHandler.InitializeBalance)
	stockGroup.Post("/adjustments", stockHandler.AdjustStock)
	stockGroup.Put("/thresholds", stockHandler.UpdateThresholds)
	stockGroup.Get("/alerts", stockHandler.ListAlerts)

	transfers := api.Group("/transfers")
	transferHandler := NewTransferHandler(deps.Workflow)
	transfers.Post("/", transferHandler.Request)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/approve", transferHandler.Approve)
	transfers.Post("/:id/reject", transferHandler.Reject)
	transfers.Post("/:id/complete", transferHandler.Complete)
	transfers.Post("/:id/cancel", transferHandler.Cancel)
}

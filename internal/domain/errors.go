package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrProductNotFound  = errors.New("producto no encontrado")
	ErrCenterNotFound   = errors.New("centro hospitalario no encontrado")
	ErrTransferNotFound = errors.New("traslado no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")

	// ErrInsufficientStock: el movimiento dejaría el saldo en negativo.
	ErrInsufficientStock = errors.New("stock insuficiente")

	// ErrInvalidTransition: cambio de estado no permitido por el ciclo de vida del traslado.
	ErrInvalidTransition = errors.New("transición de estado inválida")

	// ErrConcurrencyConflict: la escritura perdió una carrera sobre la fila de saldo
	// (serialización o deadlock en BD). El caso de uso reintenta un número acotado de veces.
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia sobre el saldo")

	// ErrBalanceExists: ya existe saldo inicializado para (producto, centro).
	ErrBalanceExists = errors.New("el saldo ya fue inicializado")
)

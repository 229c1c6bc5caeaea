package repository

import "github.com/jmedinae/stock-hospitalario/internal/domain/entity"

// TransferRepository define el puerto de persistencia de traslados.
// No hay Delete: los estados terminales son historial permanente.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	// GetForUpdate bloquea la fila del traslado para validar y cambiar estado
	// sin carreras entre aprobadores. Devuelve nil, nil si no existe.
	GetForUpdate(id string) (*entity.Transfer, error)
	Update(transfer *entity.Transfer) error
	List(centerID, status string, limit, offset int) ([]*entity.Transfer, error)
}

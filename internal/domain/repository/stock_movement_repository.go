package repository

import (
	"time"

	"github.com/jmedinae/stock-hospitalario/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del libro de stock.
// El libro es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByProduct(productID, centerID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByCenter(centerID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByReference(referenceType, referenceID string) ([]*entity.StockMovement, error)
}

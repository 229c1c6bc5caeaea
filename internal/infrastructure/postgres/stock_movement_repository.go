package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jmedinae/stock-hospitalario/internal/domain/entity"
	"github.com/jmedinae/stock-hospitalario/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, hospital_center_id, type, quantity,
		reference_type, reference_id, notes, movement_date, created_at, created_by`

// StockMovementRepo implementación del libro de stock sobre PostgreSQL
// (usable con pool o tx). Solo inserta y lee: el libro es append-only.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create anexa un movimiento al libro.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, hospital_center_id, type, quantity,
			reference_type, reference_id, notes, movement_date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.HospitalCenterID, movement.Type,
		movement.Quantity, nullable(movement.ReferenceType), nullable(movement.ReferenceID),
		nullable(movement.Notes), movement.MovementDate, movement.CreatedAt, movement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. nil, nil si no existe.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByProduct lista movimientos de un producto, opcionalmente acotados a un
// centro y a un rango de fechas, del más reciente al más antiguo.
func (r *StockMovementRepo) ListByProduct(productID, centerID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if centerID != "" {
		query += fmt.Sprintf(" AND hospital_center_id = $%d", pos)
		args = append(args, centerID)
		pos++
	}
	query, args, pos = appendDateRange(query, args, pos, from, to)
	query += fmt.Sprintf(" ORDER BY movement_date DESC, created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.list(query, args)
}

// ListByCenter lista movimientos de un centro en un rango de fechas.
func (r *StockMovementRepo) ListByCenter(centerID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE hospital_center_id = $1`
	args := []any{centerID}
	pos := 2
	query, args, pos = appendDateRange(query, args, pos, from, to)
	query += fmt.Sprintf(" ORDER BY movement_date DESC, created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.list(query, args)
}

// ListByReference lista los movimientos ligados a una operación origen
// (ej. las dos patas de un traslado).
func (r *StockMovementRepo) ListByReference(referenceType, referenceID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + `
		FROM stock_movements WHERE reference_type = $1 AND reference_id = $2
		ORDER BY created_at ASC`
	return r.list(query, []any{referenceType, referenceID})
}

func (r *StockMovementRepo) list(query string, args []any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var refType, refID, notes *string
	if err := row.Scan(&m.ID, &m.ProductID, &m.HospitalCenterID, &m.Type, &m.Quantity,
		&refType, &refID, &notes, &m.MovementDate, &m.CreatedAt, &m.CreatedBy); err != nil {
		return nil, err
	}
	if refType != nil {
		m.ReferenceType = *refType
	}
	if refID != nil {
		m.ReferenceID = *refID
	}
	if notes != nil {
		m.Notes = *notes
	}
	return &m, nil
}

func appendDateRange(query string, args []any, pos int, from, to *time.Time) (string, []any, int) {
	if from != nil {
		query += fmt.Sprintf(" AND movement_date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND movement_date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	return query, args, pos
}

// nullable convierte cadena vacía en NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jmedinae/stock-hospitalario/internal/domain/entity"
	"github.com/jmedinae/stock-hospitalario/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

const transferColumns = `id, product_id, from_center_id, to_center_id, quantity, status,
		requested_by, request_date, approved_by, approved_date, completed_date,
		reason, approval_comments, created_at, updated_at`

// TransferRepo implementación del repositorio de traslados sobre PostgreSQL
// (usable con pool o tx). Sin Delete: los terminales son historial.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create persiste una solicitud de traslado.
func (r *TransferRepo) Create(t *entity.Transfer) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transfers (id, product_id, from_center_id, to_center_id, quantity, status,
			requested_by, request_date, approved_by, approved_date, completed_date,
			reason, approval_comments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.ProductID, t.FromCenterID, t.ToCenterID, t.Quantity, t.Status,
		t.RequestedBy, t.RequestDate, nullable(t.ApprovedBy), t.ApprovedDate, t.CompletedDate,
		t.Reason, nullable(t.ApprovalComments), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID. nil, nil si no existe.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1`
	return r.get(query, id)
}

// GetForUpdate obtiene el traslado y bloquea su fila (SELECT FOR UPDATE) para
// validar y cambiar estado sin carreras entre aprobadores.
func (r *TransferRepo) GetForUpdate(id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1 FOR UPDATE`
	return r.get(query, id)
}

func (r *TransferRepo) get(query, id string) (*entity.Transfer, error) {
	t, err := scanTransfer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return t, nil
}

// Update persiste estado, decisión y fechas de un traslado existente.
func (r *TransferRepo) Update(t *entity.Transfer) error {
	query := `
		UPDATE transfers
		SET status = $2, approved_by = $3, approved_date = $4, completed_date = $5,
			approval_comments = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		t.ID, t.Status, nullable(t.ApprovedBy), t.ApprovedDate, t.CompletedDate,
		nullable(t.ApprovalComments), t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update transfer: no existe %s", t.ID)
	}
	return nil
}

// List traslados filtrados por centro (origen o destino) y/o estado,
// del más reciente al más antiguo.
func (r *TransferRepo) List(centerID, status string, limit, offset int) ([]*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE 1=1`
	args := []any{}
	pos := 1
	if centerID != "" {
		query += fmt.Sprintf(" AND (from_center_id = $%d OR to_center_id = $%d)", pos, pos)
		args = append(args, centerID)
		pos++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY request_date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	var approvedBy, comments *string
	if err := row.Scan(&t.ID, &t.ProductID, &t.FromCenterID, &t.ToCenterID, &t.Quantity,
		&t.Status, &t.RequestedBy, &t.RequestDate, &approvedBy, &t.ApprovedDate,
		&t.CompletedDate, &t.Reason, &comments, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if approvedBy != nil {
		t.ApprovedBy = *approvedBy
	}
	if comments != nil {
		t.ApprovalComments = *comments
	}
	return &t, nil
}

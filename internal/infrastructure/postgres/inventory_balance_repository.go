package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jmedinae/stock-hospitalario/internal/domain/entity"
	"github.com/jmedinae/stock-hospitalario/internal/domain/repository"
)

var _ repository.InventoryBalanceRepository = (*InventoryBalanceRepo)(nil)

const balanceColumns = `product_id, hospital_center_id, current_quantity,
		minimum_threshold, maximum_threshold, last_movement_date, updated_at`

// InventoryBalanceRepo implementación de la vista de saldos sobre PostgreSQL
// (usable con pool o tx).
type InventoryBalanceRepo struct {
	q Querier
}

// NewInventoryBalanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryBalanceRepository(q Querier) *InventoryBalanceRepo {
	return &InventoryBalanceRepo{q: q}
}

// Get obtiene el saldo actual de (producto, centro). nil, nil si no existe.
func (r *InventoryBalanceRepo) Get(productID, centerID string) (*entity.InventoryBalance, error) {
	query := `SELECT ` + balanceColumns + `
		FROM inventory_balances WHERE product_id = $1 AND hospital_center_id = $2`
	b, err := scanBalance(r.q.QueryRow(context.Background(), query, productID, centerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return b, nil
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE). Si el
// par nunca se movió, primero materializa la fila con línea base cero: dos
// primeros movimientos concurrentes serializan sobre la PK en el INSERT, y el
// FOR UPDATE siempre encuentra fila que bloquear. La fila creada desaparece
// con el rollback de la transacción que la pidió.
func (r *InventoryBalanceRepo) GetForUpdate(productID, centerID string) (*entity.InventoryBalance, error) {
	ensure := `
		INSERT INTO inventory_balances (product_id, hospital_center_id, current_quantity, last_movement_date, updated_at)
		VALUES ($1, $2, 0, now(), now())
		ON CONFLICT (product_id, hospital_center_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), ensure, productID, centerID); err != nil {
		return nil, fmt.Errorf("ensure balance row: %w", err)
	}
	query := `SELECT ` + balanceColumns + `
		FROM inventory_balances WHERE product_id = $1 AND hospital_center_id = $2
		FOR UPDATE`
	b, err := scanBalance(r.q.QueryRow(context.Background(), query, productID, centerID))
	if err != nil {
		return nil, fmt.Errorf("get balance for update: %w", err)
	}
	return b, nil
}

// Upsert inserta o actualiza el saldo materializado del par (producto, centro).
func (r *InventoryBalanceRepo) Upsert(balance *entity.InventoryBalance) error {
	query := `
		INSERT INTO inventory_balances (product_id, hospital_center_id, current_quantity,
			minimum_threshold, maximum_threshold, last_movement_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (product_id, hospital_center_id)
		DO UPDATE SET current_quantity = EXCLUDED.current_quantity,
			last_movement_date = EXCLUDED.last_movement_date,
			updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		balance.ProductID, balance.HospitalCenterID, balance.CurrentQuantity,
		balance.MinimumThreshold, balance.MaximumThreshold, balance.LastMovementDate,
	)
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}
	return nil
}

// UpdateThresholds actualiza solo los umbrales de alerta del par.
func (r *InventoryBalanceRepo) UpdateThresholds(productID, centerID string, min, max *decimal.Decimal) error {
	query := `
		UPDATE inventory_balances
		SET minimum_threshold = $3, maximum_threshold = $4, updated_at = now()
		WHERE product_id = $1 AND hospital_center_id = $2`
	tag, err := r.q.Exec(context.Background(), query, productID, centerID, min, max)
	if err != nil {
		return fmt.Errorf("update thresholds: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update thresholds: saldo inexistente para %s en %s", productID, centerID)
	}
	return nil
}

// ListByCenter lista los saldos de un centro ordenados por producto.
func (r *InventoryBalanceRepo) ListByCenter(centerID string, limit, offset int) ([]*entity.InventoryBalance, error) {
	query := `SELECT ` + balanceColumns + `
		FROM inventory_balances WHERE hospital_center_id = $1
		ORDER BY product_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, centerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryBalance
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func scanBalance(row pgx.Row) (*entity.InventoryBalance, error) {
	var b entity.InventoryBalance
	if err := row.Scan(&b.ProductID, &b.HospitalCenterID, &b.CurrentQuantity,
		&b.MinimumThreshold, &b.MaximumThreshold, &b.LastMovementDate, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jmedinae/stock-hospitalario/internal/domain/entity"
	"github.com/jmedinae/stock-hospitalario/internal/domain/repository"
)

var _ repository.HospitalCenterRepository = (*HospitalCenterRepo)(nil)

// HospitalCenterRepo lectura de centros hospitalarios sobre PostgreSQL.
type HospitalCenterRepo struct {
	q Querier
}

// NewHospitalCenterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewHospitalCenterRepository(q Querier) *HospitalCenterRepo {
	return &HospitalCenterRepo{q: q}
}

// GetByID obtiene un centro por ID. nil, nil si no existe.
func (r *HospitalCenterRepo) GetByID(id string) (*entity.HospitalCenter, error) {
	query := `
		SELECT id, name, city, active, created_at, updated_at
		FROM hospital_centers WHERE id = $1`
	var c entity.HospitalCenter
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.City, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get center: %w", err)
	}
	return &c, nil
}

// List lista los centros de la organización.
func (r *HospitalCenterRepo) List(limit, offset int) ([]*entity.HospitalCenter, error) {
	query := `
		SELECT id, name, city, active, created_at, updated_at
		FROM hospital_centers ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list centers: %w", err)
	}
	defer rows.Close()
	var list []*entity.HospitalCenter
	for rows.Next() {
		var c entity.HospitalCenter
		if err := rows.Scan(&c.ID, &c.Name, &c.City, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan center: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jmedinae/stock-hospitalario/internal/domain"
)

// Querier abstrae pool o tx de pgx; los repositorios funcionan con ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// mapConcurrencyError traduce fallos de serialización (40001) y deadlocks
// (40P01) a ErrConcurrencyConflict para que los casos de uso reintenten.
func mapConcurrencyError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return domain.ErrConcurrencyConflict
		}
	}
	return err
}

package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmedinae/stock-hospitalario/internal/domain"
	"github.com/jmedinae/stock-hospitalario/internal/domain/entity"
)

func setupTransferRepo(t *testing.T) (*TransferRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewTransferRepository(mock), mock
}

func sampleTransfer() *entity.Transfer {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return &entity.Transfer{
		ID:           "tr-001",
		ProductID:    "prod-001",
		FromCenterID: "centro-001",
		ToCenterID:   "centro-002",
		Quantity:     decimal.RequireFromString("30"),
		Status:       entity.TransferStatusREQUESTED,
		RequestedBy:  "user-001",
		RequestDate:  now,
		Reason:       "reposicion urgencias",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func transferTestColumns() []string {
	return []string{
		"id", "product_id", "from_center_id", "to_center_id", "quantity", "status",
		"requested_by", "request_date", "approved_by", "approved_date", "completed_date",
		"reason", "approval_comments", "created_at", "updated_at",
	}
}

func transferRow(tr *entity.Transfer) *pgxmock.Rows {
	var approvedBy, comments *string
	if tr.ApprovedBy != "" {
		approvedBy = &tr.ApprovedBy
	}
	if tr.ApprovalComments != "" {
		comments = &tr.ApprovalComments
	}
	return pgxmock.NewRows(transferTestColumns()).
		AddRow(tr.ID, tr.ProductID, tr.FromCenterID, tr.ToCenterID, tr.Quantity, tr.Status,
			tr.RequestedBy, tr.RequestDate, approvedBy, tr.ApprovedDate, tr.CompletedDate,
			tr.Reason, comments, tr.CreatedAt, tr.UpdatedAt)
}

func TestTransferRepo_Create(t *testing.T) {
	repo, mock := setupTransferRepo(t)
	defer mock.Close()

	tr := sampleTransfer()
	mock.ExpectExec("INSERT INTO transfers").
		WithArgs(tr.ID, tr.ProductID, tr.FromCenterID, tr.ToCenterID, tr.Quantity, tr.Status,
			tr.RequestedBy, tr.RequestDate, (*string)(nil), (*time.Time)(nil), (*time.Time)(nil),
			tr.Reason, (*string)(nil), tr.CreatedAt, tr.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(tr)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepo_Create_GeneraID(t *testing.T) {
	repo, mock := setupTransferRepo(t)
	defer mock.Close()

	tr := sampleTransfer()
	tr.ID = ""
	mock.ExpectExec("INSERT INTO transfers").
		WithArgs(pgxmock.AnyArg(), tr.ProductID, tr.FromCenterID, tr.ToCenterID, tr.Quantity, tr.Status,
			tr.RequestedBy, tr.RequestDate, (*string)(nil), (*time.Time)(nil), (*time.Time)(nil),
			tr.Reason, (*string)(nil), tr.CreatedAt, tr.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(tr)
	assert.NoError(t, err)
	assert.NotEmpty(t, tr.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepo_GetByID(t *testing.T) {
	repo, mock := setupTransferRepo(t)
	defer mock.Close()

	tr := sampleTransfer()
	tr.Status = entity.TransferStatusAPPROVED
	tr.ApprovedBy = "user-002"
	approvedAt := tr.RequestDate.Add(time.Hour)
	tr.ApprovedDate = &approvedAt
	tr.ApprovalComments = "ok"

	mock.ExpectQuery("SELECT .+ FROM transfers WHERE id").
		WithArgs(tr.ID).
		WillReturnRows(transferRow(tr))

	got, err := repo.GetByID(tr.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.TransferStatusAPPROVED, got.Status)
	assert.Equal(t, "user-002", got.ApprovedBy)
	assert.Equal(t, "ok", got.ApprovalComments)
	assert.True(t, got.Quantity.Equal(tr.Quantity))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepo_GetByID_NoExiste(t *testing.T) {
	repo, mock := setupTransferRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM transfers WHERE id").
		WithArgs("tr-x").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID("tr-x")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepo_Update(t *testing.T) {
	repo, mock := setupTransferRepo(t)
	defer mock.Close()

	tr := sampleTransfer()
	tr.Status = entity.TransferStatusREJECTED
	tr.ApprovedBy = "user-002"
	tr.ApprovalComments = "sin presupuesto"

	mock.ExpectExec("UPDATE transfers").
		WithArgs(tr.ID, tr.Status, &tr.ApprovedBy, (*time.Time)(nil), (*time.Time)(nil),
			&tr.ApprovalComments, tr.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Update(tr)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepo_Update_SinFila(t *testing.T) {
	repo, mock := setupTransferRepo(t)
	defer mock.Close()

	tr := sampleTransfer()
	mock.ExpectExec("UPDATE transfers").
		WithArgs(tr.ID, tr.Status, (*string)(nil), (*time.Time)(nil), (*time.Time)(nil),
			(*string)(nil), tr.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(tr)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepo_List_Filtros(t *testing.T) {
	repo, mock := setupTransferRepo(t)
	defer mock.Close()

	tr := sampleTransfer()
	mock.ExpectQuery("SELECT .+ FROM transfers WHERE 1=1 AND \\(from_center_id = .+ OR to_center_id = .+\\) AND status").
		WithArgs("centro-001", entity.TransferStatusREQUESTED, 50, 0).
		WillReturnRows(transferRow(tr))

	list, err := repo.List("centro-001", entity.TransferStatusREQUESTED, 50, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, tr.ID, list[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepo_List_SinFiltros(t *testing.T) {
	repo, mock := setupTransferRepo(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM transfers WHERE 1=1 ORDER BY request_date").
		WithArgs(20, 0).
		WillReturnRows(pgxmock.NewRows(transferTestColumns()))

	list, err := repo.List("", "", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapConcurrencyError(t *testing.T) {
	assert.NoError(t, mapConcurrencyError(nil))

	serialization := &pgconn.PgError{Code: "40001"}
	assert.ErrorIs(t, mapConcurrencyError(serialization), domain.ErrConcurrencyConflict)

	deadlock := &pgconn.PgError{Code: "40P01"}
	assert.ErrorIs(t, mapConcurrencyError(deadlock), domain.ErrConcurrencyConflict)

	other := errors.New("connection refused")
	assert.Equal(t, other, mapConcurrencyError(other))
}

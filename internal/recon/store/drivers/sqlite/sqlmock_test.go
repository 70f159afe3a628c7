package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"

	"github.com/aussiebroadwan/recon/internal/recon/domain"
	"github.com/aussiebroadwan/recon/internal/recon/store"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewStoreFromDB(sqlx.NewDb(db, "sqlite")), mock
}

func TestMock_GetUserByEmailNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`FROM users WHERE email = \?`).
		WithArgs("ada@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := s.Users().GetUserByEmail(context.Background(), "ada@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestMock_CreateUserUniqueViolation(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"))

	err := s.Users().CreateUser(context.Background(), domain.User{ID: "1", Email: "ada@example.com"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestMock_DriverErrorPassesThrough(t *testing.T) {
	s, mock := newMockStore(t)
	diskIO := errors.New("disk I/O error")

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM scans`).WillReturnError(diskIO)

	_, err := s.Scans().CountScans(context.Background())
	require.ErrorIs(t, err, diskIO)
}

func TestMock_ConsumeOTPMissingUser(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE users SET otp_hash = NULL`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Users().ConsumeOTP(context.Background(), "missing", time.Now())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestMock_WithTxRollsBackOnInsertFailure(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()
	insertErr := errors.New("FOREIGN KEY constraint failed")

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO scans`).WillReturnError(insertErr)
	mock.ExpectRollback()

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Scans().CreateScan(ctx, domain.ScanRecord{ID: "1", UserID: "gone"}); err != nil {
			return err
		}
		return tx.Logs().CreateLog(ctx, domain.LogEntry{ID: "2", Action: "never"})
	})
	require.ErrorIs(t, err, insertErr)
}

func TestMock_WithTxCommits(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO scans`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO logs`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Scans().CreateScan(ctx, domain.ScanRecord{ID: "1", UserID: "u"}); err != nil {
			return err
		}
		return tx.Logs().CreateLog(ctx, domain.LogEntry{ID: "2", Action: "crawl scan: x"})
	})
	require.NoError(t, err)
}

func TestMock_ListScansBuildsFilter(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "url_or_ip", "scan_type", "scan_category", "scan_results", "user_id", "created_at"}).
		AddRow("1", "1.2.3.4", "active", "shodan", `{"ip":"1.2.3.4"}`, "u", int64(1_700_000_000_000))

	mock.ExpectQuery(`FROM scans WHERE scan_category = \? ORDER BY created_at DESC`).
		WithArgs("shodan").
		WillReturnRows(rows)

	cat := domain.CategoryShodan
	got, err := s.Scans().ListScans(context.Background(), domain.ScanFilter{ScanCategory: &cat})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, domain.CategoryShodan, got[0].ScanCategory)
	require.Equal(t, int64(1_700_000_000_000), got[0].CreatedAt.UnixMilli())
}

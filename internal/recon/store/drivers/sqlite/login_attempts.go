package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/recon/internal/recon/domain"
)

type loginAttemptRow struct {
	Email          string        `db:"email"`
	FailedAttempts int           `db:"failed_attempts"`
	BlockedUntil   sql.NullInt64 `db:"blocked_until"`
	UpdatedAt      int64         `db:"updated_at"`
}

type loginAttemptsRepo struct {
	q querier
}

func (r *loginAttemptsRepo) GetLoginAttempt(ctx context.Context, email string) (domain.LoginAttempt, error) {
	var row loginAttemptRow
	err := r.q.GetContext(ctx, &row,
		`SELECT email, failed_attempts, blocked_until, updated_at FROM login_attempts WHERE email = ?`, email)
	if err != nil {
		return domain.LoginAttempt{}, mapNotFound(err)
	}
	return domain.LoginAttempt{
		Email:          row.Email,
		FailedAttempts: row.FailedAttempts,
		BlockedUntil:   fromNullMillis(row.BlockedUntil),
		UpdatedAt:      fromMillis(row.UpdatedAt),
	}, nil
}

func (r *loginAttemptsRepo) UpsertLoginAttempt(ctx context.Context, a domain.LoginAttempt) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO login_attempts (email, failed_attempts, blocked_until, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (email) DO UPDATE SET
		     failed_attempts = excluded.failed_attempts,
		     blocked_until   = excluded.blocked_until,
		     updated_at      = excluded.updated_at`,
		a.Email, a.FailedAttempts, toNullMillis(a.BlockedUntil), toMillis(a.UpdatedAt),
	)
	return err
}

func (r *loginAttemptsRepo) DeleteLoginAttempt(ctx context.Context, email string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM login_attempts WHERE email = ?`, email)
	return err
}

func (r *loginAttemptsRepo) DeleteExpiredLoginAttempts(ctx context.Context, now, staleBefore time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM login_attempts
		 WHERE (blocked_until IS NOT NULL AND blocked_until <= ?)
		    OR (blocked_until IS NULL AND updated_at < ?)`,
		toMillis(now), toMillis(staleBefore),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/recon/internal/recon/domain"
)

type userRow struct {
	ID            string         `db:"id"`
	Username      string         `db:"username"`
	Email         string         `db:"email"`
	PasswordHash  string         `db:"password_hash"`
	OTPHash       sql.NullString `db:"otp_hash"`
	OTPExpiry     sql.NullInt64  `db:"otp_expiry"`
	OTPVerifiedAt sql.NullInt64  `db:"otp_verified_at"`
	CreatedAt     int64          `db:"created_at"`
	UpdatedAt     int64          `db:"updated_at"`
}

func (r userRow) domain() domain.User {
	return domain.User{
		ID:            r.ID,
		Username:      r.Username,
		Email:         r.Email,
		PasswordHash:  r.PasswordHash,
		OTPHash:       fromNullString(r.OTPHash),
		OTPExpiry:     fromNullMillis(r.OTPExpiry),
		OTPVerifiedAt: fromNullMillis(r.OTPVerifiedAt),
		CreatedAt:     fromMillis(r.CreatedAt),
		UpdatedAt:     fromMillis(r.UpdatedAt),
	}
}

const userColumns = `id, username, email, password_hash, otp_hash, otp_expiry, otp_verified_at, created_at, updated_at`

type usersRepo struct {
	q querier
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, otp_hash, otp_expiry, otp_verified_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash,
		toNullString(u.OTPHash), toNullMillis(u.OTPExpiry), toNullMillis(u.OTPVerifiedAt),
		toMillis(u.CreatedAt), toMillis(u.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	var row userRow
	if err := r.q.GetContext(ctx, &row, `SELECT `+userColumns+` FROM users WHERE id = ?`, id); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return row.domain(), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var row userRow
	if err := r.q.GetContext(ctx, &row, `SELECT `+userColumns+` FROM users WHERE email = ?`, email); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return row.domain(), nil
}

func (r *usersRepo) SetOTP(ctx context.Context, userID, otpHash string, expiry time.Time) error {
	return r.update(ctx,
		`UPDATE users SET otp_hash = ?, otp_expiry = ?, otp_verified_at = NULL, updated_at = ? WHERE id = ?`,
		otpHash, toMillis(expiry), toMillis(time.Now()), userID,
	)
}

func (r *usersRepo) ConsumeOTP(ctx context.Context, userID string, verifiedAt time.Time) error {
	return r.update(ctx,
		`UPDATE users SET otp_hash = NULL, otp_expiry = NULL, otp_verified_at = ?, updated_at = ? WHERE id = ?`,
		toMillis(verifiedAt), toMillis(time.Now()), userID,
	)
}

func (r *usersRepo) ClearOTPVerification(ctx context.Context, userID string) error {
	return r.update(ctx,
		`UPDATE users SET otp_verified_at = NULL, updated_at = ? WHERE id = ?`,
		toMillis(time.Now()), userID,
	)
}

func (r *usersRepo) DeleteExpiredOTPs(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET otp_hash = NULL, updated_at = ?
		 WHERE otp_hash IS NOT NULL AND otp_expiry < ?`,
		toMillis(now), toMillis(now),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// update runs a single-row UPDATE and reports ErrNotFound when no row matched.
func (r *usersRepo) update(ctx context.Context, query string, args ...any) error {
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/recon/internal/recon/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it and
// expose sub-repositories so a transaction can hand out the same repos bound
// to the open tx.
type Store interface {
	Users() Users
	LoginAttempts() LoginAttempts
	Scans() Scans
	Logs() Logs

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user. Duplicate e-mail or username returns
	// ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// SetOTP stores the fingerprint of a freshly issued OTP, replacing any
	// pending one, and clears the verification marker.
	SetOTP(ctx context.Context, userID, otpHash string, expiry time.Time) error

	// ConsumeOTP clears the pending OTP and records verifiedAt.
	ConsumeOTP(ctx context.Context, userID string, verifiedAt time.Time) error

	// ClearOTPVerification removes the verification marker once it has been
	// used for a login.
	ClearOTPVerification(ctx context.Context, userID string) error

	// DeleteExpiredOTPs clears the fingerprint of OTPs whose expiry is before
	// now. The expiry itself is kept so a late code is still reported as
	// expired.
	DeleteExpiredOTPs(ctx context.Context, now time.Time) (int64, error)
}

type LoginAttempts interface {
	// GetLoginAttempt returns ErrNotFound when the e-mail has no failures.
	GetLoginAttempt(ctx context.Context, email string) (domain.LoginAttempt, error)

	// UpsertLoginAttempt writes the row for a.Email.
	UpsertLoginAttempt(ctx context.Context, a domain.LoginAttempt) error

	DeleteLoginAttempt(ctx context.Context, email string) error

	// DeleteExpiredLoginAttempts removes rows whose block ended before now,
	// and rows without a block not touched since staleBefore.
	DeleteExpiredLoginAttempts(ctx context.Context, now, staleBefore time.Time) (int64, error)
}

type Scans interface {
	CreateScan(ctx context.Context, s domain.ScanRecord) error
	GetScan(ctx context.Context, id string) (domain.ScanRecord, error)

	// ListScans returns matching records, newest first.
	ListScans(ctx context.Context, f domain.ScanFilter) ([]domain.ScanRecord, error)

	CountScans(ctx context.Context) (int64, error)
}

type Logs interface {
	CreateLog(ctx context.Context, e domain.LogEntry) error

	// ListLogs returns matching entries, newest first.
	ListLogs(ctx context.Context, f domain.LogFilter) ([]domain.LogEntry, error)
}

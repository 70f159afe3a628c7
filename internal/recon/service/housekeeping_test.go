package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/recon/internal/recon/domain"
	"github.com/aussiebroadwan/recon/internal/recon/store"
)

func TestHousekeeping_Cleanup(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	u := f.register(t, "ada", "ada@example.com", "correct horse")

	require.NoError(t, f.store.Users().SetOTP(ctx, u.ID, "fp", t0.Add(-time.Minute)))

	expired := t0.Add(-time.Second)
	attempts := f.store.LoginAttempts()
	require.NoError(t, attempts.UpsertLoginAttempt(ctx, domain.LoginAttempt{
		Email: "blocked@example.com", FailedAttempts: 3, BlockedUntil: &expired, UpdatedAt: t0.Add(-5 * time.Minute),
	}))
	require.NoError(t, attempts.UpsertLoginAttempt(ctx, domain.LoginAttempt{
		Email: "stale@example.com", FailedAttempts: 1, UpdatedAt: t0.Add(-48 * time.Hour),
	}))
	active := t0.Add(time.Minute)
	require.NoError(t, attempts.UpsertLoginAttempt(ctx, domain.LoginAttempt{
		Email: "active@example.com", FailedAttempts: 3, BlockedUntil: &active, UpdatedAt: t0,
	}))

	hk := NewHousekeepingService(f.store, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Hour)
	hk.Now = f.clock.Now
	hk.Cleanup(ctx)

	got, err := f.store.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, got.OTPHash)

	_, err = attempts.GetLoginAttempt(ctx, "blocked@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = attempts.GetLoginAttempt(ctx, "stale@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = attempts.GetLoginAttempt(ctx, "active@example.com")
	require.NoError(t, err)
}

func TestHousekeeping_StartStop(t *testing.T) {
	st := newTestStore(t)
	hk := NewHousekeepingService(st, slog.New(slog.NewTextHandler(io.Discard, nil)), 0)
	assert.Equal(t, time.Hour, hk.Interval)

	hk.Start()
	hk.Stop()
	hk.Stop()
}

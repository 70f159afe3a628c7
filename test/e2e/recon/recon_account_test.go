//go:build e2e

package recon_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/recon/pkg/lockout"
	"github.com/aussiebroadwan/recon/pkg/reconsdk"
)

// TestRegisterAndLogin walks the basic account flow.
func TestRegisterAndLogin(t *testing.T) {
	c := setupReconContainer(t, nil)
	client := c.client()

	session := registerAndLogin(t, client, "ada@example.com")
	require.False(t, session.ExpiresAt().IsZero())

	_, err := client.Register(t.Context(), reconsdk.RegisterRequest{
		Username: "other", Email: "ada@example.com", Password: testPassword,
	})
	require.ErrorIs(t, err, reconsdk.ErrAlreadyExists)
}

// TestLoginLockout verifies the third wrong password blocks the address
// even for the right password.
func TestLoginLockout(t *testing.T) {
	c := setupReconContainer(t, nil)
	client := c.client()
	registerAndLogin(t, client, "ada@example.com")

	for range 2 {
		_, err := client.Login(t.Context(), "ada@example.com", "wrong-password")
		require.ErrorIs(t, err, reconsdk.ErrInvalidCredentials)
	}

	_, err := client.Login(t.Context(), "ada@example.com", "wrong-password")
	var locked *lockout.LockedOutError
	require.ErrorAs(t, err, &locked)
	require.Greater(t, locked.Remaining.Minutes(), 4.0)

	_, err = client.Login(t.Context(), "ada@example.com", testPassword)
	require.ErrorIs(t, err, lockout.ErrLockedOut)

	// Other addresses are unaffected.
	registerAndLogin(t, client, "grace@example.com")
}

// TestDeviceGuard verifies a client-side guard blocks before the server is
// contacted and mirrors the server's lockout.
func TestDeviceGuard(t *testing.T) {
	c := setupReconContainer(t, nil)
	client := c.client()
	registerAndLogin(t, client, "ada@example.com")

	client.Guard = lockout.NewGuard(lockout.DefaultPolicy, &lockout.MemoryStore{})
	for range 3 {
		_, _ = client.Login(t.Context(), "ada@example.com", "wrong-password")
	}

	v, err := client.Guard.Check(t.Context())
	require.NoError(t, err)
	require.True(t, v.Blocked)
}

// TestOTPFlow verifies a logged code is accepted once.
func TestOTPFlow(t *testing.T) {
	c := setupReconContainer(t, nil)
	client := c.client()
	registerAndLogin(t, client, "ada@example.com")

	require.NoError(t, client.SendOTP(t.Context(), "ada@example.com"))
	code := c.latestOTP(t, "ada@example.com")

	err := client.VerifyOTP(t.Context(), "ada@example.com", "000000")
	if code != "000000" {
		require.ErrorIs(t, err, reconsdk.ErrOTPMismatch)
	}

	require.NoError(t, client.VerifyOTP(t.Context(), "ada@example.com", code))

	// Codes are single use.
	require.Error(t, client.VerifyOTP(t.Context(), "ada@example.com", code))
}

// TestLoginRequiresOTP verifies the second factor when it is switched on.
func TestLoginRequiresOTP(t *testing.T) {
	c := setupReconContainer(t, map[string]string{"RECON_REQUIRE_OTP": "true"})
	client := c.client()

	_, err := client.Register(t.Context(), reconsdk.RegisterRequest{
		Username: testUsername, Email: "ada@example.com", Password: testPassword,
	})
	require.NoError(t, err)

	_, err = client.Login(t.Context(), "ada@example.com", testPassword)
	require.ErrorIs(t, err, reconsdk.ErrOTPRequired)

	code := c.latestOTP(t, "ada@example.com")
	require.NoError(t, client.VerifyOTP(t.Context(), "ada@example.com", code))

	session, err := client.Login(t.Context(), "ada@example.com", testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, session.Token())
}

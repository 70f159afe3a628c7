package reconctl

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.toml")
	expires := time.UnixMilli(1_700_000_000_000).UTC()

	in := savedSession{Server: "http://recon", Email: "a@example.com", Token: "tok", ExpiresAt: expires}
	require.NoError(t, saveSession(path, in))

	out, err := loadSession(path)
	require.NoError(t, err)
	assert.Equal(t, in.Server, out.Server)
	assert.Equal(t, in.Email, out.Email)
	assert.Equal(t, in.Token, out.Token)
	assert.True(t, out.ExpiresAt.Equal(expires))
}

func TestSession_Missing(t *testing.T) {
	_, err := loadSession(filepath.Join(t.TempDir(), "session.toml"))
	require.ErrorIs(t, err, errNotLoggedIn)
}

func TestSession_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, saveSession(path, savedSession{Token: "tok"}))

	require.NoError(t, clearSession(path))
	require.NoError(t, clearSession(path))

	_, err := loadSession(path)
	require.ErrorIs(t, err, errNotLoggedIn)
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()

	assert.False(t, savedSession{}.expired(now))
	assert.False(t, savedSession{ExpiresAt: now.Add(time.Minute)}.expired(now))
	assert.True(t, savedSession{ExpiresAt: now}.expired(now))
}

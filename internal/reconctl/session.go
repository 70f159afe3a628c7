package reconctl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

var errNotLoggedIn = errors.New("not logged in, run `reconctl login` first")

// savedSession is the token kept between invocations.
type savedSession struct {
	Server    string    `toml:"server"`
	Email     string    `toml:"email"`
	Token     string    `toml:"token"`
	ExpiresAt time.Time `toml:"expires_at,omitempty"`
}

func (s savedSession) expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

func loadSession(path string) (savedSession, error) {
	var s savedSession
	if _, err := toml.DecodeFile(path, &s); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return savedSession{}, errNotLoggedIn
		}
		return savedSession{}, fmt.Errorf("read session: %w", err)
	}
	if s.Token == "" {
		return savedSession{}, errNotLoggedIn
	}
	return s, nil
}

func saveSession(path string, s savedSession) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(s); err != nil {
		_ = f.Close()
		return fmt.Errorf("write session: %w", err)
	}
	return f.Close()
}

func clearSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

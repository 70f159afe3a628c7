package lockout

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// Store persists a single lockout State.
type Store interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, s State) error
}

// MemoryStore keeps the state in memory. It does not survive restarts and is
// mostly useful in tests.
type MemoryStore struct {
	mu    sync.Mutex
	state State
}

func (m *MemoryStore) Load(context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, nil
}

func (m *MemoryStore) Save(_ context.Context, s State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
	return nil
}

// FileStore keeps the state in a small TOML file:
//
//	blockedUntil = "1700000300000"
//	failedAttempts = 3
//
// blockedUntil is epoch milliseconds as a string. A missing file is the zero
// state; saving the zero state removes the file.
type FileStore struct {
	Path string
}

type fileState struct {
	BlockedUntil   string `toml:"blockedUntil,omitempty"`
	FailedAttempts int    `toml:"failedAttempts,omitempty"`
}

func (f *FileStore) Load(context.Context) (State, error) {
	var fs fileState
	if _, err := toml.DecodeFile(f.Path, &fs); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("lockout: read %s: %w", f.Path, err)
	}

	s := State{FailedAttempts: fs.FailedAttempts}
	if fs.BlockedUntil != "" {
		ms, err := strconv.ParseInt(fs.BlockedUntil, 10, 64)
		if err != nil {
			return State{}, fmt.Errorf("lockout: invalid blockedUntil %q: %w", fs.BlockedUntil, err)
		}
		s.BlockedUntil = time.UnixMilli(ms)
	}
	return s, nil
}

func (f *FileStore) Save(_ context.Context, s State) error {
	if s.IsZero() {
		if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("lockout: clear %s: %w", f.Path, err)
		}
		return nil
	}

	fs := fileState{FailedAttempts: s.FailedAttempts}
	if !s.BlockedUntil.IsZero() {
		fs.BlockedUntil = strconv.FormatInt(s.BlockedUntil.UnixMilli(), 10)
	}

	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("lockout: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.Path), ".lockout-*")
	if err != nil {
		return fmt.Errorf("lockout: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(fs); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("lockout: encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("lockout: write: %w", err)
	}
	return os.Rename(tmp.Name(), f.Path)
}

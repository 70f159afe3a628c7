package lockout

import (
	"context"
	"sync"
	"time"
)

// Guard applies a Policy to a persisted State.
type Guard struct {
	Policy Policy
	Store  Store
	Now    func() time.Time

	mu sync.Mutex
}

// NewGuard returns a Guard using the wall clock.
func NewGuard(p Policy, s Store) *Guard {
	return &Guard{Policy: p, Store: s, Now: time.Now}
}

// Check evaluates the stored state. An expired block is cleared from the
// store as a side effect, so repeated checks are idempotent.
func (g *Guard) Check(ctx context.Context) (Verdict, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.check(ctx)
}

// Allow returns a *LockedOutError while blocked.
func (g *Guard) Allow(ctx context.Context) error {
	v, err := g.Check(ctx)
	if err != nil {
		return err
	}
	if v.Blocked {
		return &LockedOutError{Remaining: v.Remaining}
	}
	return nil
}

// RecordFailure counts a failed attempt and returns the resulting verdict.
func (g *Guard) RecordFailure(ctx context.Context) (Verdict, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s, err := g.Store.Load(ctx)
	if err != nil {
		return Verdict{}, err
	}

	now := g.now()
	next := g.Policy.Apply(s, Failure, now)
	if err := g.Store.Save(ctx, next); err != nil {
		return Verdict{}, err
	}
	return g.Policy.Evaluate(next, now), nil
}

// RecordSuccess clears all lockout state.
func (g *Guard) RecordSuccess(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.Store.Save(ctx, g.Policy.Apply(State{}, Success, g.now()))
}

// BlockUntil records a block decided elsewhere, e.g. by the server. An
// existing later deadline is kept.
func (g *Guard) BlockUntil(ctx context.Context, until time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	s, err := g.Store.Load(ctx)
	if err != nil {
		return err
	}
	if until.After(s.BlockedUntil) {
		s.BlockedUntil = until
		s.FailedAttempts = max(s.FailedAttempts, g.Policy.maxAttempts())
	}
	return g.Store.Save(ctx, s)
}

// BlockFor records a block lasting d from now.
func (g *Guard) BlockFor(ctx context.Context, d time.Duration) error {
	return g.BlockUntil(ctx, g.now().Add(d))
}

func (g *Guard) check(ctx context.Context) (Verdict, error) {
	s, err := g.Store.Load(ctx)
	if err != nil {
		return Verdict{}, err
	}

	v := g.Policy.Evaluate(s, g.now())
	if v.State != s {
		if err := g.Store.Save(ctx, v.State); err != nil {
			return Verdict{}, err
		}
	}
	return v, nil
}

func (g *Guard) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

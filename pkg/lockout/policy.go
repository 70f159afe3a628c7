package lockout

import (
	"errors"
	"fmt"
	"time"
)

const (
	// MaxAttempts is the number of consecutive failures that triggers a block.
	MaxAttempts = 3

	// BlockDuration is how long a block lasts (300 000 ms).
	BlockDuration = 5 * time.Minute
)

// DefaultPolicy blocks for BlockDuration after MaxAttempts failures.
var DefaultPolicy = Policy{MaxAttempts: MaxAttempts, BlockDuration: BlockDuration}

// ErrLockedOut matches any *LockedOutError via errors.Is.
var ErrLockedOut = errors.New("lockout: too many failed attempts")

// Policy holds the lockout thresholds. Zero fields fall back to
// MaxAttempts and BlockDuration.
type Policy struct {
	MaxAttempts   int
	BlockDuration time.Duration
}

// State is the persisted lockout state. The zero value means "no failures".
type State struct {
	FailedAttempts int
	BlockedUntil   time.Time // zero when not blocked
}

// IsZero reports whether s carries no failures and no block.
func (s State) IsZero() bool {
	return s.FailedAttempts == 0 && s.BlockedUntil.IsZero()
}

// Event is something that happened to a login attempt.
type Event int

const (
	Failure Event = iota + 1
	Success
)

// Verdict is the outcome of evaluating a State at a point in time.
type Verdict struct {
	Blocked   bool
	Remaining time.Duration

	// State is the input with an expired block cleared. Callers persist it
	// when it differs from what they loaded.
	State State
}

// Evaluate reports whether s is blocked at now.
func (p Policy) Evaluate(s State, now time.Time) Verdict {
	s = p.expire(s, now)
	if s.BlockedUntil.IsZero() {
		return Verdict{State: s}
	}
	return Verdict{
		Blocked:   true,
		Remaining: s.BlockedUntil.Sub(now),
		State:     s,
	}
}

// Apply returns the state after ev happens at now. A failure while blocked
// leaves the block untouched.
func (p Policy) Apply(s State, ev Event, now time.Time) State {
	switch ev {
	case Success:
		return State{}
	case Failure:
		s = p.expire(s, now)
		if !s.BlockedUntil.IsZero() {
			return s
		}
		s.FailedAttempts++
		if s.FailedAttempts >= p.maxAttempts() {
			s.BlockedUntil = now.Add(p.blockDuration())
		}
		return s
	default:
		return s
	}
}

// expire clears a block whose deadline has passed. Reaching the deadline
// also resets the failure counter so the next failure starts a fresh run.
func (p Policy) expire(s State, now time.Time) State {
	if !s.BlockedUntil.IsZero() && !now.Before(s.BlockedUntil) {
		return State{}
	}
	return s
}

func (p Policy) blockDuration() time.Duration {
	if p.BlockDuration <= 0 {
		return BlockDuration
	}
	return p.BlockDuration
}

func (p Policy) maxAttempts() int {
	if p.MaxAttempts <= 0 {
		return MaxAttempts
	}
	return p.MaxAttempts
}

// LockedOutError is returned when an attempt is refused because of a block.
type LockedOutError struct {
	Remaining time.Duration
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("too many failed attempts, try again in %s", e.Remaining.Round(time.Second))
}

func (e *LockedOutError) Is(target error) bool { return target == ErrLockedOut }

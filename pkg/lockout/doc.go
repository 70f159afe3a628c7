/*
Package lockout implements the login lockout state machine shared by the
recon server and its clients.

A State records consecutive failed attempts and, once the threshold is hit,
the instant the block lifts. Every transition is a pure function of the
current state, the event and the current time:

	p := lockout.DefaultPolicy
	s := p.Apply(lockout.State{}, lockout.Failure, now) // 1 failure
	v := p.Evaluate(s, now)                            // v.Blocked == false

Remaining block time is always recomputed from the stored BlockedUntil
timestamp, never from a decrementing counter, so a process restart or a
paused countdown cannot drift.

A Guard binds a Policy to a Store (memory, TOML file, or a database-backed
adapter) and a clock. A Countdown ticks while a Guard is blocked and clears
the stored state when the block expires.
*/
package lockout

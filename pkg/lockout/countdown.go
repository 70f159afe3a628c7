package lockout

import (
	"context"
	"sync"
	"time"
)

// Countdown reports the remaining block time of a Guard on a fixed interval
// until the block lifts, the context is cancelled or Stop is called.
type Countdown struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once

	mu  sync.Mutex
	err error
}

// StartCountdown starts ticking immediately. onTick receives the remaining
// time recomputed from the stored deadline; its final call receives 0 when
// the block has expired, after which the stored state is already cleared.
func StartCountdown(ctx context.Context, g *Guard, interval time.Duration, onTick func(remaining time.Duration)) *Countdown {
	c := &Countdown{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go c.run(ctx, g, interval, onTick)
	return c
}

func (c *Countdown) run(ctx context.Context, g *Guard, interval time.Duration, onTick func(time.Duration)) {
	defer close(c.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		v, err := g.Check(ctx)
		if err != nil {
			c.mu.Lock()
			c.err = err
			c.mu.Unlock()
			return
		}
		if !v.Blocked {
			onTick(0)
			return
		}
		onTick(v.Remaining)

		select {
		case <-ticker.C:
		case <-c.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop halts the countdown and waits for the ticker to be released. It is
// safe to call more than once and after the countdown finished on its own.
func (c *Countdown) Stop() {
	c.once.Do(func() { close(c.stop) })
	<-c.done
}

// Done is closed once the countdown goroutine has exited.
func (c *Countdown) Done() <-chan struct{} { return c.done }

// Err returns the store error that ended the countdown, if any.
func (c *Countdown) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

package lockout

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdown_TicksUntilExpiry(t *testing.T) {
	ctx := context.Background()
	g, clk := newTestGuard(&MemoryStore{})
	require.NoError(t, g.BlockUntil(ctx, t0.Add(3*time.Second)))

	var (
		mu    sync.Mutex
		ticks []time.Duration
	)
	c := StartCountdown(ctx, g, time.Millisecond, func(r time.Duration) {
		mu.Lock()
		ticks = append(ticks, r)
		mu.Unlock()
		clk.Advance(time.Second)
	})

	select {
	case <-c.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("countdown did not finish")
	}
	require.NoError(t, c.Err())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []time.Duration{3 * time.Second, 2 * time.Second, time.Second, 0}, ticks)

	s, err := g.Store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, s.IsZero())
}

func TestCountdown_StopHaltsTicking(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGuard(&MemoryStore{})
	require.NoError(t, g.BlockUntil(ctx, t0.Add(time.Hour)))

	var (
		mu    sync.Mutex
		count int
	)
	c := StartCountdown(ctx, g, time.Millisecond, func(time.Duration) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	time.Sleep(20 * time.Millisecond)
	c.Stop()
	c.Stop()

	mu.Lock()
	after := count
	mu.Unlock()

	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, after, count, "no ticks after Stop")
	assert.Positive(t, after)
}

func TestCountdown_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	g, _ := newTestGuard(&MemoryStore{})
	require.NoError(t, g.BlockUntil(ctx, t0.Add(time.Hour)))

	c := StartCountdown(ctx, g, time.Hour, func(time.Duration) {})
	cancel()

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("countdown ignored cancellation")
	}
}

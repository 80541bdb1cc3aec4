package app

import (
	"sync"
	"testing"
	"time"
)

func TestCountdownTicksWithGeneration(t *testing.T) {
	c := NewCountdown(5 * time.Millisecond)
	ticks := make(chan uint64, 16)

	gen := c.Start(func(g uint64) { ticks <- g })
	defer c.Stop()

	select {
	case got := <-ticks:
		if got != gen {
			t.Fatalf("tick generation = %d, want %d", got, gen)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for tick")
	}
	if !c.Active(gen) {
		t.Fatalf("expected generation %d active", gen)
	}
}

func TestCountdownRestartRetiresPreviousTask(t *testing.T) {
	c := NewCountdown(time.Millisecond)
	var mu sync.Mutex
	seen := map[uint64]int{}
	onTick := func(g uint64) {
		mu.Lock()
		seen[g]++
		mu.Unlock()
	}

	first := c.Start(onTick)
	second := c.Start(onTick)
	if first == second {
		t.Fatalf("expected new generation on restart")
	}
	if c.Active(first) {
		t.Fatalf("first generation should be stale after restart")
	}
	if !c.Active(second) {
		t.Fatalf("second generation should be active")
	}

	c.Stop()
	if c.Running() || c.Active(second) {
		t.Fatalf("expected no running task after Stop")
	}
	waitFor(t, func() bool { return c.Goroutines() == 0 })
}

func TestCountdownStopFromTick(t *testing.T) {
	c := NewCountdown(time.Millisecond)
	done := make(chan struct{})
	var once sync.Once

	c.Start(func(uint64) {
		c.Stop()
		once.Do(func() { close(done) })
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for tick")
	}
	waitFor(t, func() bool { return c.Goroutines() == 0 })
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

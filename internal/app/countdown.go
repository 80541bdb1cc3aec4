package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Countdown runs at most one repeating tick task at a time. Every task gets a new
// generation number; ticks delivered by a cancelled task carry a stale generation
// and are rejected by Active.
type Countdown struct {
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64

	live atomic.Int32
}

func NewCountdown(interval time.Duration) *Countdown {
	if interval <= 0 {
		interval = time.Second
	}
	return &Countdown{interval: interval}
}

// Start cancels the running task, if any, and starts a new one calling onTick every interval.
func (c *Countdown) Start(onTick func(gen uint64)) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	c.gen++
	gen := c.gen
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.live.Add(1)
	go func() {
		defer c.live.Add(-1)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if ctx.Err() != nil {
					return
				}
				onTick(gen)
			}
		}
	}()
	return gen
}

// Stop cancels the running task. It does not wait for the goroutine to exit, so it
// is safe to call from inside onTick.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Countdown) stopLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Active reports whether gen belongs to the task that is currently running.
func (c *Countdown) Active(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil && gen == c.gen
}

// Running reports whether a task is running.
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

// Generation returns the generation of the most recently started task.
func (c *Countdown) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Goroutines returns the number of task goroutines that have not exited yet.
func (c *Countdown) Goroutines() int {
	return int(c.live.Load())
}

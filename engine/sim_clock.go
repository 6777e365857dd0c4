package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// SimClock is simulation time layered over a base Clock
// It stands still while paused; gestures keep using the base clock
type SimClock struct {
	mu sync.RWMutex

	base  Clock
	epoch time.Time // Base time at creation

	paused     atomic.Bool
	pauseStart time.Time     // Base time the current pause began
	pausedFor  time.Duration // Cumulative completed pauses
}

// NewSimClock starts simulation time at the current base time
func NewSimClock(base Clock) *SimClock {
	return &SimClock{base: base, epoch: base.Now()}
}

// Now returns simulation time
func (c *SimClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.base.Now()
	if c.paused.Load() {
		now = c.pauseStart
	}
	return c.epoch.Add(now.Sub(c.epoch) - c.pausedFor)
}

// Pause freezes simulation time
func (c *SimClock) Pause() {
	if c.paused.CompareAndSwap(false, true) {
		c.mu.Lock()
		c.pauseStart = c.base.Now()
		c.mu.Unlock()
	}
}

// Resume continues simulation time from where it froze
func (c *SimClock) Resume() {
	if c.paused.CompareAndSwap(true, false) {
		c.mu.Lock()
		c.pausedFor += c.base.Now().Sub(c.pauseStart)
		c.pauseStart = time.Time{}
		c.mu.Unlock()
	}
}

// Toggle flips the pause state and reports whether the clock is now paused
func (c *SimClock) Toggle() bool {
	if c.paused.Load() {
		c.Resume()
		return false
	}
	c.Pause()
	return true
}

func (c *SimClock) IsPaused() bool {
	return c.paused.Load()
}

// PausedFor returns cumulative pause time including the current pause
func (c *SimClock) PausedFor() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.pausedFor
	if c.paused.Load() {
		total += c.base.Now().Sub(c.pauseStart)
	}
	return total
}

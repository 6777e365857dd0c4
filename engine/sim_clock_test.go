package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSimClock_PauseFreezesTime(t *testing.T) {
	base := NewMockTimeProvider(time.Unix(100, 0))
	c := NewSimClock(base)
	start := c.Now()

	base.Advance(time.Second)
	assert.Equal(t, time.Second, c.Now().Sub(start))

	assert.True(t, c.Toggle())
	base.Advance(5 * time.Second)
	assert.Equal(t, time.Second, c.Now().Sub(start))
	assert.Equal(t, 5*time.Second, c.PausedFor())

	assert.False(t, c.Toggle())
	base.Advance(2 * time.Second)
	assert.Equal(t, 3*time.Second, c.Now().Sub(start))
	assert.Equal(t, 5*time.Second, c.PausedFor())
	assert.False(t, c.IsPaused())
}

func TestSimClock_RepeatedPauseIsIdempotent(t *testing.T) {
	base := NewMockTimeProvider(time.Unix(0, 0))
	c := NewSimClock(base)

	c.Pause()
	base.Advance(time.Second)
	c.Pause()
	base.Advance(time.Second)
	c.Resume()
	c.Resume()

	assert.Equal(t, 2*time.Second, c.PausedFor())
	assert.Equal(t, time.Duration(0), c.Now().Sub(time.Unix(0, 0)))
}

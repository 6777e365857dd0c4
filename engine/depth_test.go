package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/parameter"
)

func TestDepthSequencer_StrictlyIncreasing(t *testing.T) {
	s := NewDepthSequencer()
	prev := parameter.DepthFloor
	seen := make(map[float32]struct{})
	for i := 0; i < 10000; i++ {
		d := s.Next()
		require.Greater(t, d, prev, "call %d", i)
		_, dup := seen[d]
		require.False(t, dup)
		seen[d] = struct{}{}
		prev = d
	}
}

func TestDepthSequencer_PrecisionExhausted(t *testing.T) {
	s := NewDepthSequencer()
	// Large enough that adding DepthStep is lost to rounding
	s.bits.Store(0x4B800000) // 2^24
	a := s.Next()
	b := s.Next()
	assert.Greater(t, a, float32(1<<24))
	assert.Greater(t, b, a)
}

func TestDepthSequencer_Concurrent(t *testing.T) {
	s := NewDepthSequencer()
	const workers, per = 8, 500

	var mu sync.Mutex
	seen := make(map[float32]struct{}, workers*per)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]float32, 0, per)
			for i := 0; i < per; i++ {
				local = append(local, s.Next())
			}
			mu.Lock()
			for _, d := range local {
				seen[d] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, workers*per)
}

func TestDepthSequencer_Pos(t *testing.T) {
	s := NewDepthSequencer()
	p := s.Pos(core.Point{3, 4})
	assert.Equal(t, float32(3), p.X())
	assert.Equal(t, float32(4), p.Y())
	assert.Greater(t, p.Z(), parameter.DepthFloor)
	assert.Greater(t, s.Pos(core.Point{}).Z(), p.Z())
}

func TestDepthSequencer_Reset(t *testing.T) {
	s := NewDepthSequencer()
	first := s.Next()
	s.Next()
	s.Reset()
	assert.Equal(t, first, s.Next())
}

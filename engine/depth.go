package engine

import (
	"math"
	"sync/atomic"

	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/parameter"
)

// DepthSequencer issues strictly increasing stacking depths
// Later objects draw and pick in front of earlier ones
// Lock-free; safe for spawners on several goroutines
type DepthSequencer struct {
	bits atomic.Uint32 // float32 bits of the last issued depth
}

// NewDepthSequencer starts at parameter.DepthFloor; the first depth is above it
func NewDepthSequencer() *DepthSequencer {
	s := &DepthSequencer{}
	s.Reset()
	return s
}

// Reset rewinds to the floor, for scene reset only
func (s *DepthSequencer) Reset() {
	s.bits.Store(math.Float32bits(parameter.DepthFloor))
}

// Next returns a depth greater than every depth issued before
func (s *DepthSequencer) Next() float32 {
	for {
		old := s.bits.Load()
		last := math.Float32frombits(old)
		next := last + parameter.DepthStep
		if next <= last {
			// Step lost to precision; take the next representable value
			next = math.Float32frombits(old + 1)
		}
		if s.bits.CompareAndSwap(old, math.Float32bits(next)) {
			return next
		}
	}
}

// Pos lifts p onto a fresh depth
func (s *DepthSequencer) Pos(p core.Point) core.Point3 {
	return p.Vec3(s.Next())
}

package engine

import (
	"iter"
	"slices"

	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/physics"
)

// PickSequence yields the entities under a point, front to back
// The scene is queried once, on first use; Reset replays the same result
type PickSequence struct {
	query   physics.SceneQuery
	point   core.Point
	filter  physics.QueryFilter
	depthOf func(core.Entity) float32

	resolved bool
	entities []core.Entity
	cursor   int
}

// FindUnderPoint prepares a pick; no query runs until the sequence is read
func FindUnderPoint(query physics.SceneQuery, p core.Point, filter physics.QueryFilter, depthOf func(core.Entity) float32) *PickSequence {
	return &PickSequence{
		query:   query,
		point:   p,
		filter:  filter,
		depthOf: depthOf,
	}
}

func (s *PickSequence) resolve() {
	if s.resolved {
		return
	}
	s.resolved = true

	type ranked struct {
		e     core.Entity
		depth float32
	}
	var hits []ranked
	for e := range s.query.PointIntersections(s.point, s.filter) {
		hits = append(hits, ranked{e: e, depth: s.depthOf(e)})
	}

	// Depth descending, entity ascending on ties
	slices.SortFunc(hits, func(a, b ranked) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		case a.e < b.e:
			return -1
		case a.e > b.e:
			return 1
		}
		return 0
	})

	s.entities = make([]core.Entity, len(hits))
	for i, h := range hits {
		s.entities[i] = h.e
	}
}

// Next returns the next entity, or false when exhausted
func (s *PickSequence) Next() (core.Entity, bool) {
	s.resolve()
	if s.cursor >= len(s.entities) {
		return 0, false
	}
	e := s.entities[s.cursor]
	s.cursor++
	return e, true
}

// First returns the frontmost entity without moving the cursor
func (s *PickSequence) First() (core.Entity, bool) {
	s.resolve()
	if len(s.entities) == 0 {
		return 0, false
	}
	return s.entities[0], true
}

// Reset rewinds the cursor
func (s *PickSequence) Reset() {
	s.cursor = 0
}

// Len returns the number of entities under the point
func (s *PickSequence) Len() int {
	s.resolve()
	return len(s.entities)
}

// All iterates every entity from the front, independent of the cursor
func (s *PickSequence) All() iter.Seq[core.Entity] {
	return func(yield func(core.Entity) bool) {
		s.resolve()
		for _, e := range s.entities {
			if !yield(e) {
				return
			}
		}
	}
}

package engine

import (
	"github.com/lixenwraith/prism/core"
)

// Selection holds at most one selected entity
type Selection struct {
	entity core.Entity
}

// Select replaces the selection; zero clears it
func (s *Selection) Select(e core.Entity) {
	s.entity = e
}

func (s *Selection) Clear() {
	s.entity = 0
}

// Get returns the selected entity, if any
func (s *Selection) Get() (core.Entity, bool) {
	return s.entity, s.entity != 0
}

// Is reports whether e is the current selection
func (s *Selection) Is(e core.Entity) bool {
	return e != 0 && s.entity == e
}

package core

import (
	"github.com/pkg/errors"
)

// ResolveFrom walks parent links starting at e and returns the first value found
// parentOf reports false at the root; valueOf reports false when e has no value
// Fails with ErrNoValue if the chain ends without a value or loops back on itself
func ResolveFrom[T any](e Entity, parentOf func(Entity) (Entity, bool), valueOf func(Entity) (T, bool)) (T, error) {
	var zero T
	start := e
	visited := make(map[Entity]struct{}, 4)

	for {
		if v, ok := valueOf(e); ok {
			return v, nil
		}
		visited[e] = struct{}{}

		parent, ok := parentOf(e)
		if !ok {
			return zero, errors.Wrapf(ErrNoValue, "entity %d", start)
		}
		if _, seen := visited[parent]; seen {
			return zero, errors.Wrapf(ErrNoValue, "entity %d: parent cycle at %d", start, parent)
		}
		e = parent
	}
}

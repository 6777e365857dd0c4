package core

import (
	"github.com/pkg/errors"
)

var (
	// ErrStaleEntity is returned when a handle no longer refers to a live entity
	// Callers treat it as a recoverable miss
	ErrStaleEntity = errors.New("stale entity")

	// ErrNoValue is returned by ResolveFrom when no ancestor carries the value
	ErrNoValue = errors.New("no value in parent chain")
)

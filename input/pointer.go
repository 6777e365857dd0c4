package input

import (
	"github.com/lixenwraith/prism/core"
)

// Button identifies a pointer button
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight

	buttonCount
)

func (b Button) String() string {
	if b == ButtonRight {
		return "right"
	}
	return "left"
}

// Pointer is the pointer snapshot for one frame
type Pointer struct {
	Screen core.Point // Screen units, y up
	World  core.Point
	Down   [buttonCount]bool

	// UIWantsPointer suppresses new gestures while a panel owns the pointer
	UIWantsPointer bool
}

// Phase is the gesture phase of one button
type Phase uint8

const (
	PhaseIdle   Phase = iota // Not tracked
	PhaseArmed               // Pressed, waiting for long-or-moved or release
	PhaseActive              // Gesture payload initialized
)

func (p Phase) String() string {
	switch p {
	case PhaseArmed:
		return "armed"
	case PhaseActive:
		return "active"
	}
	return "idle"
}

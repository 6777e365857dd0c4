package parameter

import "time"

// Frame Loop
const (
	// FrameUpdateInterval is the sandbox frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameStep caps the physics step after a stall (suspend, debugger)
	MaxFrameStep = 100 * time.Millisecond
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023
)

// Stacking Depth
const (
	// DepthFloor is the lowest legal depth; the first issued depth is above it
	DepthFloor float32 = 0

	// DepthStep is the nominal increment between consecutive depths
	DepthStep float32 = 1.0 / 1024
)

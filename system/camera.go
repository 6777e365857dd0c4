package system

import (
	"github.com/lixenwraith/prism/engine"
	"github.com/lixenwraith/prism/event"
	"github.com/lixenwraith/prism/vmath"
)

// CameraSystem moves the camera for pan gestures
type CameraSystem struct{}

// NewCameraSystem creates the camera handler
func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// EventTypes returns events this system handles
func (s *CameraSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventPan}
}

// HandleEvent sets the camera to the panned position
func (s *CameraSystem) HandleEvent(ctx *engine.Context, ev event.Event) {
	if p, ok := ev.Payload.(event.PanPayload); ok && vmath.FiniteVec(p.CameraPos) {
		ctx.Camera.Position = p.CameraPos
	}
}

package input

import (
	"github.com/lixenwraith/prism/core"
)

// Tool is the kind of gesture a button performs
type Tool uint8

const (
	ToolMove Tool = iota
	ToolDrag
	ToolRotate
	ToolBox
	ToolCircle
	ToolSpring
	ToolThruster
	ToolFix
	ToolHinge
	ToolLaser
	ToolTracer
	ToolPan
	ToolZoom

	toolCount
)

var toolNames = [toolCount]string{
	ToolMove:     "move",
	ToolDrag:     "drag",
	ToolRotate:   "rotate",
	ToolBox:      "box",
	ToolCircle:   "circle",
	ToolSpring:   "spring",
	ToolThruster: "thruster",
	ToolFix:      "fix",
	ToolHinge:    "hinge",
	ToolLaser:    "laser",
	ToolTracer:   "tracer",
	ToolPan:      "pan",
	ToolZoom:     "zoom",
}

func (t Tool) String() string {
	if t < toolCount {
		return toolNames[t]
	}
	return "unknown"
}

// --- Gesture payloads ---

// MoveState keeps the body-to-pointer offset of a move gesture
type MoveState struct {
	Entity core.Entity // Frozen until the gesture ends
	Offset core.Point
}

// DragState keeps the grabbed body and grab point
type DragState struct {
	Entity     core.Entity
	OrigOffset core.Point // Pick point minus body position
}

// RotateState keeps what a rotate gesture needs to restore and draw
type RotateState struct {
	Entity       core.Entity // Frozen until the gesture ends
	OrigRotation float32
	Overlay      core.Entity
	Scale        float32
}

// PanState keeps the camera position at gesture start
type PanState struct {
	OrigCameraPos core.Point
}

// PreviewState keeps the transient entity shown while drawing a shape
type PreviewState struct {
	Entity core.Entity
}

// ToolState is a tool paired with its in-progress payload
// Payload-carrying variants are Active once their pointer is non-nil
type ToolState interface {
	Tool() Tool
	Active() bool
}

type (
	MoveTool     struct{ State *MoveState }
	DragTool     struct{ State *DragState }
	RotateTool   struct{ State *RotateState }
	BoxTool      struct{ Preview *PreviewState }
	CircleTool   struct{ Preview *PreviewState }
	SpringTool   struct{}
	ThrusterTool struct{}
	FixTool      struct{}
	HingeTool    struct{}
	LaserTool    struct{}
	TracerTool   struct{}
	PanTool      struct{ State *PanState }
	ZoomTool     struct{}
)

func (MoveTool) Tool() Tool     { return ToolMove }
func (DragTool) Tool() Tool     { return ToolDrag }
func (RotateTool) Tool() Tool   { return ToolRotate }
func (BoxTool) Tool() Tool      { return ToolBox }
func (CircleTool) Tool() Tool   { return ToolCircle }
func (SpringTool) Tool() Tool   { return ToolSpring }
func (ThrusterTool) Tool() Tool { return ToolThruster }
func (FixTool) Tool() Tool      { return ToolFix }
func (HingeTool) Tool() Tool    { return ToolHinge }
func (LaserTool) Tool() Tool    { return ToolLaser }
func (TracerTool) Tool() Tool   { return ToolTracer }
func (PanTool) Tool() Tool      { return ToolPan }
func (ZoomTool) Tool() Tool     { return ToolZoom }

func (t MoveTool) Active() bool   { return t.State != nil }
func (t DragTool) Active() bool   { return t.State != nil }
func (t RotateTool) Active() bool { return t.State != nil }
func (t BoxTool) Active() bool    { return t.Preview != nil }
func (t CircleTool) Active() bool { return t.Preview != nil }
func (SpringTool) Active() bool   { return false }
func (ThrusterTool) Active() bool { return false }
func (FixTool) Active() bool      { return false }
func (HingeTool) Active() bool    { return false }
func (LaserTool) Active() bool    { return false }
func (TracerTool) Active() bool   { return false }
func (t PanTool) Active() bool    { return t.State != nil }
func (ZoomTool) Active() bool     { return false }

// Empty returns t with no payload
func Empty(t Tool) ToolState {
	switch t {
	case ToolMove:
		return MoveTool{}
	case ToolDrag:
		return DragTool{}
	case ToolRotate:
		return RotateTool{}
	case ToolBox:
		return BoxTool{}
	case ToolCircle:
		return CircleTool{}
	case ToolSpring:
		return SpringTool{}
	case ToolThruster:
		return ThrusterTool{}
	case ToolFix:
		return FixTool{}
	case ToolHinge:
		return HingeTool{}
	case ToolLaser:
		return LaserTool{}
	case ToolTracer:
		return TracerTool{}
	case ToolPan:
		return PanTool{}
	case ToolZoom:
		return ZoomTool{}
	}
	return MoveTool{}
}

// selectionSensitive tools select what they pick
func selectionSensitive(t Tool) bool {
	return t == ToolMove || t == ToolRotate
}

// targeted tools pick under the press position once the gesture starts
func targeted(t Tool) bool {
	switch t {
	case ToolMove, ToolDrag, ToolRotate, ToolFix, ToolHinge, ToolTracer:
		return true
	}
	return false
}

package event

import (
	"github.com/lixenwraith/prism/core"
)

// AddBoxPayload spans a box from Corner by Size, both world units
// Size components may be negative when dragged up or left
type AddBoxPayload struct {
	Corner core.Point
	Size   core.Point
}

// AddCirclePayload places a circle
type AddCirclePayload struct {
	Center core.Point
	Radius float32
}

// AddJointPayload places a joint at a world point
type AddJointPayload struct {
	At core.Point
}

// AddLaserPayload places an emitter at a world point
type AddLaserPayload struct {
	At core.Point
}

// SelectPayload carries the selected entity, zero clears
type SelectPayload struct {
	Entity core.Entity
}

// SelectUnderPointerPayload asks for a pick at At
type SelectUnderPointerPayload struct {
	At          core.Point
	ContextMenu bool // Secondary button
}

// PanPayload is the absolute camera position
type PanPayload struct {
	CameraPos core.Point
}

// MovePayload is the absolute body position
type MovePayload struct {
	Entity   core.Entity
	Position core.Point
}

// RotatePayload carries the gesture; the consumer derives the angle
type RotatePayload struct {
	Entity       core.Entity
	OrigRotation float32
	ClickPos     core.Point
	CurrentPos   core.Point
	Scale        float32
}

// DragPayload pulls the grabbed body toward the pointer
// Offset is the grab point minus the body position when the drag started
type DragPayload struct {
	Entity core.Entity
	Offset core.Point
	Target core.Point
}

// EntityPayload targets one entity
type EntityPayload struct {
	Entity core.Entity
}

// NotImplementedPayload names the tool and the action
type NotImplementedPayload struct {
	Tool   string
	Action string
	Err    error
}

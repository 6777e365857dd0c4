package event

// EventType represents the type of sandbox event
type EventType int

const (
	EventNone EventType = iota

	// === Construction Intents ===

	// EventAddBox requests a dynamic box body
	// Trigger: Box tool release past the drag threshold
	// Consumer: BuildSystem | Payload: AddBoxPayload
	EventAddBox

	// EventAddCircle requests a dynamic circle body
	// Trigger: Circle tool release past the drag threshold
	// Consumer: BuildSystem | Payload: AddCirclePayload
	EventAddCircle

	// EventAddFixedJoint requests a weld at a point
	// Trigger: Fix tool release
	// Consumer: BuildSystem | Payload: AddJointPayload
	EventAddFixedJoint

	// EventAddHinge requests a revolute joint at a point
	// Trigger: Hinge tool release
	// Consumer: BuildSystem | Payload: AddJointPayload
	EventAddHinge

	// EventAddLaser requests a laser emitter at a point
	// Trigger: Laser tool release
	// Consumer: BuildSystem | Payload: AddLaserPayload
	EventAddLaser

	// EventDespawn removes a body with its children and joints
	// Trigger: Delete key on the selection
	// Consumer: BuildSystem | Payload: EntityPayload
	EventDespawn

	// === Selection ===

	// EventSelect announces the new selection (already applied to the context)
	// Trigger: tool machine pick on selection-sensitive tools
	// Consumer: SelectSystem | Payload: SelectPayload
	EventSelect

	// EventSelectUnderPointer requests a pick then select, optionally with context menu
	// Trigger: quick click, sensor pick-through on Fix/Hinge
	// Consumer: SelectSystem | Payload: SelectUnderPointerPayload
	EventSelectUnderPointer

	// === Manipulation ===

	// EventPan moves the camera to an absolute position
	// Trigger: active Pan gesture
	// Consumer: CameraSystem | Payload: PanPayload
	EventPan

	// EventMove teleports a body
	// Trigger: active Move gesture
	// Consumer: TransformSystem | Payload: MovePayload
	EventMove

	// EventRotate rotates a body around its position
	// Trigger: active Rotate gesture
	// Consumer: TransformSystem | Payload: RotatePayload
	EventRotate

	// EventDrag pulls a body point toward the pointer
	// Trigger: active Drag gesture
	// Consumer: TransformSystem | Payload: DragPayload
	EventDrag

	// EventFreeze switches a body to kinematic for the length of a gesture
	// Trigger: Move/Rotate gesture start
	// Consumer: TransformSystem | Payload: EntityPayload
	EventFreeze

	// EventUnfreeze restores dynamic simulation
	// Trigger: Move/Rotate release
	// Consumer: TransformSystem | Payload: EntityPayload
	EventUnfreeze

	// === Diagnostics ===

	// EventNotImplemented reports a tool action without support
	// Trigger: Spring, Thruster, Tracer release, Zoom gesture
	// Consumer: NoticeSystem | Payload: NotImplementedPayload
	EventNotImplemented
)

// Event is a typed intent with its payload
type Event struct {
	Type    EventType
	Payload any
	Frame   int64
}

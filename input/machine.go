package input

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/engine"
	"github.com/lixenwraith/prism/event"
	"github.com/lixenwraith/prism/physics"
	"github.com/lixenwraith/prism/vmath"
)

// ErrNotImplemented marks tool actions with no behavior yet
var ErrNotImplemented = errors.New("tool action not implemented")

// press is where and when a button went down
type press struct {
	at     time.Time
	world  core.Point
	screen core.Point
}

// buttonState is the gesture tracked for one button
type buttonState struct {
	press *press    // nil while idle
	state ToolState // Tool for the current gesture, payload once active
	fired bool      // Long-or-moved transition already ran
}

// Machine turns per-frame pointer snapshots into tool gestures
// Each button runs its own gesture; the first pressed button is the active one
type Machine struct {
	tools     [buttonCount]Tool
	buttons   [buttonCount]buttonState
	active    Button
	hasActive bool
	prevDown  [buttonCount]bool
}

// NewMachine creates a machine with Move on the left button and Pan on the right
func NewMachine() *Machine {
	m := &Machine{}
	m.tools[ButtonLeft] = ToolMove
	m.tools[ButtonRight] = ToolPan
	for b := range m.buttons {
		m.buttons[b].state = Empty(m.tools[b])
	}
	return m
}

// SetTool binds t to b, effective from the next press
func (m *Machine) SetTool(b Button, t Tool) {
	m.tools[b] = t
}

// ApplyIntent rebinds a button for tool intents and reports whether it consumed in
func (m *Machine) ApplyIntent(in Intent) bool {
	switch in.Type {
	case IntentTool, IntentRightTool:
		m.SetTool(in.Button, in.Tool)
		return true
	}
	return false
}

// Tool returns the tool bound to b
func (m *Machine) Tool(b Button) Tool {
	return m.tools[b]
}

// State returns the gesture state of b
func (m *Machine) State(b Button) ToolState {
	return m.buttons[b].state
}

// Phase reports where b is in its gesture
func (m *Machine) Phase(b Button) Phase {
	bs := &m.buttons[b]
	switch {
	case bs.press == nil:
		return PhaseIdle
	case bs.state.Active():
		return PhaseActive
	}
	return PhaseArmed
}

// Cancel drops every gesture without emitting release intents
// Transient entities are despawned and frozen bodies unfrozen
func (m *Machine) Cancel(ctx *engine.Context) {
	for b := range m.buttons {
		bs := &m.buttons[b]
		m.unfreeze(ctx, frozenBy(bs.state))
		m.dropTransient(ctx, bs.state)
		bs.press = nil
		bs.fired = false
		bs.state = Empty(m.tools[b])
	}
	m.hasActive = false
	ctx.Overlay.Clear()
}

// Update advances every button by one frame
func (m *Machine) Update(ctx *engine.Context, in Pointer) {
	for i := range m.buttons {
		b := Button(i)
		down, was := in.Down[b], m.prevDown[b]
		switch {
		case down && !was:
			m.arm(ctx, b, in)
		case down && was:
			m.hold(ctx, b, in)
		case !down && was:
			m.release(ctx, b, in)
		}
		m.prevDown[b] = down
	}
}

// --- Transitions ---

func (m *Machine) arm(ctx *engine.Context, b Button, in Pointer) {
	if in.UIWantsPointer {
		return
	}

	// A second button is forced unless the driving gesture is a pan
	tool := m.tools[b]
	if m.hasActive && m.active != b && m.buttons[m.active].state.Tool() != ToolPan {
		if b == ButtonLeft {
			tool = ToolPan
		} else {
			tool = ToolRotate
		}
	}

	bs := &m.buttons[b]
	bs.press = &press{at: ctx.Clock.Now(), world: in.World, screen: in.Screen}
	bs.state = Empty(tool)
	bs.fired = false

	if !m.hasActive {
		m.active = b
		m.hasActive = true
	}
}

func (m *Machine) hold(ctx *engine.Context, b Button, in Pointer) {
	bs := &m.buttons[b]
	if bs.press == nil {
		return
	}
	if !bs.fired {
		elapsed := ctx.Clock.Now().Sub(bs.press.at)
		moved := in.Screen.Sub(bs.press.screen).Len()
		if elapsed > ctx.Config.LongPress || moved > 0 {
			bs.fired = true
			m.longOrMoved(ctx, bs)
		}
	}
	m.continuous(ctx, bs, in)
}

// longOrMoved initializes the gesture payload
func (m *Machine) longOrMoved(ctx *engine.Context, bs *buttonState) {
	p := bs.press
	tool := bs.state.Tool()

	switch tool {
	case ToolPan:
		m.startPan(ctx, bs)
		return
	case ToolZoom:
		m.notImplemented(ctx, tool, "long press")
		return
	case ToolBox:
		bs.state = BoxTool{Preview: &PreviewState{Entity: ctx.World.CreateEntity()}}
		return
	case ToolCircle:
		bs.state = CircleTool{Preview: &PreviewState{Entity: ctx.World.CreateEntity()}}
		return
	}
	if !targeted(tool) {
		return
	}

	filter := physics.QueryFilter{ExcludeSensors: true, DynamicOnly: tool == ToolDrag}
	hit, ok := ctx.Pick(p.world, filter).First()
	if ok && selectionSensitive(tool) {
		m.selectEntity(ctx, hit)
	}

	switch {
	case tool == ToolDrag && ok:
		tr, err := ctx.World.Transform(hit)
		if err != nil {
			ctx.Log.Debug("drag target gone", zap.Uint64("entity", uint64(hit)), zap.Error(err))
			return
		}
		bs.state = DragTool{State: &DragState{Entity: hit, OrigOffset: p.world.Sub(tr.Position)}}

	case tool == ToolRotate && ok:
		tr, err := ctx.World.Transform(hit)
		if err != nil {
			ctx.Log.Debug("rotate target gone", zap.Uint64("entity", uint64(hit)), zap.Error(err))
			return
		}
		bs.state = RotateTool{State: &RotateState{
			Entity:       hit,
			OrigRotation: tr.Rotation,
			Overlay:      ctx.World.CreateEntity(),
			Scale:        ctx.Camera.Scale,
		}}
		ctx.Events.Emit(event.EventFreeze, event.EntityPayload{Entity: hit})

	case (tool == ToolMove || tool == ToolRotate) && !ok:
		bs.state = PanTool{}
		m.startPan(ctx, bs)

	case ok && ctx.Selection.Is(hit):
		tr, err := ctx.World.Transform(hit)
		if err != nil {
			ctx.Log.Debug("move target gone", zap.Uint64("entity", uint64(hit)), zap.Error(err))
			return
		}
		bs.state = MoveTool{State: &MoveState{Entity: hit, Offset: tr.Position.Sub(p.world)}}
		ctx.Events.Emit(event.EventFreeze, event.EntityPayload{Entity: hit})
	}
}

func (m *Machine) startPan(ctx *engine.Context, bs *buttonState) {
	bs.state = PanTool{State: &PanState{OrigCameraPos: ctx.Camera.Position}}
}

// continuous runs the per-frame update of an active gesture
func (m *Machine) continuous(ctx *engine.Context, bs *buttonState, in Pointer) {
	p := bs.press

	switch st := bs.state.(type) {
	case PanTool:
		if st.State == nil {
			return
		}
		pos := st.State.OrigCameraPos.Add(p.screen.Sub(in.Screen).Mul(ctx.Camera.Scale))
		ctx.Events.Emit(event.EventPan, event.PanPayload{CameraPos: pos})

	case MoveTool:
		if st.State == nil {
			return
		}
		sel, ok := ctx.Selection.Get()
		if !ok {
			m.unfreeze(ctx, st.State.Entity)
			bs.state = MoveTool{}
			return
		}
		ctx.Events.Emit(event.EventMove, event.MovePayload{Entity: sel, Position: in.World.Add(st.State.Offset)})

	case RotateTool:
		if st.State == nil {
			return
		}
		sel, ok := ctx.Selection.Get()
		if !ok {
			m.abandonRotate(ctx, bs, st)
			return
		}
		tr, err := ctx.World.Transform(sel)
		if err != nil {
			ctx.Log.Debug("rotate target gone", zap.Uint64("entity", uint64(sel)), zap.Error(err))
			m.abandonRotate(ctx, bs, st)
			return
		}
		ctx.Events.Emit(event.EventRotate, event.RotatePayload{
			Entity:       sel,
			OrigRotation: st.State.OrigRotation,
			ClickPos:     p.world,
			CurrentPos:   in.World,
			Scale:        st.State.Scale,
		})
		angle := vmath.RotationDelta(tr.Position, p.world, in.World,
			ctx.Config.RotateHelperRadius*st.State.Scale, ctx.Config.RotateSnap())
		ctx.Overlay.Set(engine.OverlayState{
			Target: st.State.Overlay,
			Anchor: tr.Position,
			Shape: engine.RotateShape{
				AngleSoFar:       angle,
				Scale:            st.State.Scale,
				OriginalRotation: st.State.OrigRotation,
				ClickPos:         p.world,
			},
		})

	case BoxTool:
		if st.Preview == nil {
			return
		}
		ctx.Overlay.Set(engine.OverlayState{
			Target: st.Preview.Entity,
			Anchor: p.world,
			Shape:  engine.RectangleShape{Extent: in.World.Sub(p.world)},
		})

	case CircleTool:
		if st.Preview == nil {
			return
		}
		ctx.Overlay.Set(engine.OverlayState{
			Target: st.Preview.Entity,
			Anchor: p.world,
			Shape:  engine.CircleShape{Radius: in.World.Sub(p.world).Len()},
		})

	case DragTool:
		if st.State == nil {
			return
		}
		if _, err := ctx.World.Transform(st.State.Entity); err != nil {
			ctx.Log.Debug("drag target gone", zap.Uint64("entity", uint64(st.State.Entity)), zap.Error(err))
			bs.state = DragTool{}
			return
		}
		ctx.Events.Emit(event.EventDrag, event.DragPayload{
			Entity: st.State.Entity,
			Offset: st.State.OrigOffset,
			Target: in.World,
		})
	}
}

func (m *Machine) abandonRotate(ctx *engine.Context, bs *buttonState, st RotateTool) {
	m.unfreeze(ctx, st.State.Entity)
	m.dropTransient(ctx, st)
	ctx.Overlay.Clear()
	bs.state = RotateTool{}
}

func (m *Machine) release(ctx *engine.Context, b Button, in Pointer) {
	bs := &m.buttons[b]
	if bs.press == nil {
		return
	}
	p := bs.press
	bs.press = nil
	if m.hasActive && m.active == b {
		// A button still held takes over as the driver
		other := Button(1 - b)
		m.active = other
		m.hasActive = m.buttons[other].press != nil
	}

	state := bs.state
	bs.state = Empty(m.tools[b])

	switch st := state.(type) {
	case MoveTool:
		if st.State != nil {
			m.unfreeze(ctx, st.State.Entity)
			return
		}

	case RotateTool:
		if st.State != nil {
			m.unfreeze(ctx, st.State.Entity)
			m.dropTransient(ctx, st)
			ctx.Overlay.Clear()
			return
		}

	case BoxTool:
		if st.Preview != nil {
			m.dropTransient(ctx, st)
			ctx.Overlay.Clear()
			if in.Screen.Sub(p.screen).Len() > ctx.Config.DragThresholdPx {
				ctx.Events.Emit(event.EventAddBox, event.AddBoxPayload{Corner: p.world, Size: in.World.Sub(p.world)})
			}
			return
		}

	case CircleTool:
		if st.Preview != nil {
			m.dropTransient(ctx, st)
			ctx.Overlay.Clear()
			if in.Screen.Sub(p.screen).Len() > ctx.Config.DragThresholdPx {
				ctx.Events.Emit(event.EventAddCircle, event.AddCirclePayload{Center: p.world, Radius: in.World.Sub(p.world).Len()})
			}
			return
		}

	case FixTool:
		m.placeJoint(ctx, b, in, event.EventAddFixedJoint)
		return

	case HingeTool:
		m.placeJoint(ctx, b, in, event.EventAddHinge)
		return

	case LaserTool:
		ctx.Events.Emit(event.EventAddLaser, event.AddLaserPayload{At: in.World})
		return

	case SpringTool, ThrusterTool, TracerTool:
		m.notImplemented(ctx, state.Tool(), "release")
		return
	}

	if !bs.fired {
		m.selectUnderPointer(ctx, b, in.World)
	}
}

// placeJoint emits a joint intent unless a sensor collider is on top
func (m *Machine) placeJoint(ctx *engine.Context, b Button, in Pointer, t event.EventType) {
	if top, ok := ctx.Pick(in.World, physics.QueryFilter{}).First(); ok && ctx.World.IsSensor(top) {
		m.selectUnderPointer(ctx, b, in.World)
		return
	}
	ctx.Events.Emit(t, event.AddJointPayload{At: in.World})
}

func (m *Machine) selectUnderPointer(ctx *engine.Context, b Button, at core.Point) {
	ctx.Events.Emit(event.EventSelectUnderPointer, event.SelectUnderPointerPayload{
		At:          at,
		ContextMenu: b == ButtonRight,
	})
}

func (m *Machine) selectEntity(ctx *engine.Context, e core.Entity) {
	ctx.Selection.Select(e)
	ctx.Events.Emit(event.EventSelect, event.SelectPayload{Entity: e})
}

// unfreeze hands a gesture's frozen body back to the simulation
func (m *Machine) unfreeze(ctx *engine.Context, e core.Entity) {
	if e != 0 {
		ctx.Events.Emit(event.EventUnfreeze, event.EntityPayload{Entity: e})
	}
}

// frozenBy returns the body a gesture state froze, or zero
func frozenBy(state ToolState) core.Entity {
	switch st := state.(type) {
	case MoveTool:
		if st.State != nil {
			return st.State.Entity
		}
	case RotateTool:
		if st.State != nil {
			return st.State.Entity
		}
	}
	return 0
}

// dropTransient despawns the helper entity owned by state, if any
func (m *Machine) dropTransient(ctx *engine.Context, state ToolState) {
	var e core.Entity
	switch st := state.(type) {
	case RotateTool:
		if st.State != nil {
			e = st.State.Overlay
		}
	case BoxTool:
		if st.Preview != nil {
			e = st.Preview.Entity
		}
	case CircleTool:
		if st.Preview != nil {
			e = st.Preview.Entity
		}
	}
	if e == 0 {
		return
	}
	if err := ctx.World.Despawn(e); err != nil {
		ctx.Log.Debug("transient already gone", zap.Uint64("entity", uint64(e)), zap.Error(err))
	}
}

func (m *Machine) notImplemented(ctx *engine.Context, t Tool, action string) {
	err := errors.Wrapf(ErrNotImplemented, "%s %s", t, action)
	ctx.Log.Warn("tool action unsupported", zap.Stringer("tool", t), zap.String("action", action))
	ctx.Events.Emit(event.EventNotImplemented, event.NotImplementedPayload{
		Tool:   t.String(),
		Action: action,
		Err:    err,
	})
}

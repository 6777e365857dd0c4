package input

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/prism/config"
	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/engine"
	"github.com/lixenwraith/prism/event"
	"github.com/lixenwraith/prism/physics"
)

type rig struct {
	w     *physics.World
	clock *engine.MockTimeProvider
	ctx   *engine.Context
	m     *Machine
}

func newRig() *rig {
	w := physics.NewWorld(0)
	clock := engine.NewMockTimeProvider(time.Unix(0, 0))
	return &rig{
		w:     w,
		clock: clock,
		ctx:   engine.NewContext(w, config.Default(), clock, nil),
		m:     NewMachine(),
	}
}

// at builds a pointer whose screen and world positions coincide
func at(x, y float32, down ...Button) Pointer {
	p := Pointer{Screen: core.Point{x, y}, World: core.Point{x, y}}
	for _, b := range down {
		p.Down[b] = true
	}
	return p
}

func (r *rig) frame(p Pointer) []event.Event {
	r.m.Update(r.ctx, p)
	return r.ctx.Events.Consume()
}

func (r *rig) circle(pos core.Point, radius float32) core.Entity {
	return r.w.Spawn(physics.BodyDef{
		Shape: physics.Circle{Radius: radius},
		Pose:  core.Transform{Position: pos},
		Depth: r.ctx.Depth.Next(),
	})
}

func types(evs []event.Event) []event.EventType {
	out := make([]event.EventType, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev.Type)
	}
	return out
}

func find(t *testing.T, evs []event.Event, et event.EventType) event.Event {
	t.Helper()
	for _, ev := range evs {
		if ev.Type == et {
			return ev
		}
	}
	require.Failf(t, "event missing", "no %s in %v", et, types(evs))
	return event.Event{}
}

func TestBox_ReleaseBelowThreshold(t *testing.T) {
	r := newRig()
	r.m.SetTool(ButtonLeft, ToolBox)

	assert.Empty(t, r.frame(at(0, 0, ButtonLeft)))
	assert.Equal(t, PhaseArmed, r.m.Phase(ButtonLeft))

	assert.Empty(t, r.frame(at(3, 3, ButtonLeft)))
	require.Equal(t, PhaseActive, r.m.Phase(ButtonLeft))
	preview := r.m.State(ButtonLeft).(BoxTool).Preview.Entity
	assert.True(t, r.w.Alive(preview))

	st, ok := r.ctx.Overlay.State()
	require.True(t, ok)
	assert.Equal(t, engine.RectangleShape{Extent: core.Point{3, 3}}, st.Shape)

	evs := r.frame(at(3, 3))
	assert.NotContains(t, types(evs), event.EventAddBox)
	assert.False(t, r.w.Alive(preview))
	_, ok = r.ctx.Overlay.State()
	assert.False(t, ok)
	assert.Equal(t, PhaseIdle, r.m.Phase(ButtonLeft))
}

func TestBox_ReleaseAboveThreshold(t *testing.T) {
	r := newRig()
	r.m.SetTool(ButtonLeft, ToolBox)

	r.frame(at(1, 1, ButtonLeft))
	r.frame(at(9, 5, ButtonLeft))
	evs := r.frame(at(9, 5))

	require.Equal(t, []event.EventType{event.EventAddBox}, types(evs))
	assert.Equal(t, event.AddBoxPayload{Corner: core.Point{1, 1}, Size: core.Point{8, 4}}, evs[0].Payload)
}

func TestCircle_ReleaseAboveThreshold(t *testing.T) {
	r := newRig()
	r.m.SetTool(ButtonLeft, ToolCircle)

	r.frame(at(0, 0, ButtonLeft))
	r.frame(at(10, 0, ButtonLeft))
	preview := r.m.State(ButtonLeft).(CircleTool).Preview.Entity

	st, ok := r.ctx.Overlay.State()
	require.True(t, ok)
	assert.Equal(t, engine.CircleShape{Radius: 10}, st.Shape)

	evs := r.frame(at(10, 0))
	require.Equal(t, []event.EventType{event.EventAddCircle}, types(evs))
	assert.Equal(t, event.AddCirclePayload{Center: core.Point{0, 0}, Radius: 10}, evs[0].Payload)
	assert.False(t, r.w.Alive(preview))
}

func TestQuickClick_SelectsUnderPointer(t *testing.T) {
	r := newRig()

	r.frame(at(2, 3, ButtonLeft))
	evs := r.frame(at(2, 3))
	require.Equal(t, []event.EventType{event.EventSelectUnderPointer}, types(evs))
	assert.Equal(t, event.SelectUnderPointerPayload{At: core.Point{2, 3}}, evs[0].Payload)

	r.frame(at(2, 3, ButtonRight))
	evs = r.frame(at(2, 3))
	require.Len(t, evs, 1)
	assert.Equal(t, event.SelectUnderPointerPayload{At: core.Point{2, 3}, ContextMenu: true}, evs[0].Payload)
}

func TestLongPress_FiresAfterThreshold(t *testing.T) {
	r := newRig()
	r.m.SetTool(ButtonLeft, ToolPan)
	r.ctx.Camera.Position = core.Point{4, 4}

	r.frame(at(0, 0, ButtonLeft))
	r.clock.Advance(150 * time.Millisecond)
	assert.Empty(t, r.frame(at(0, 0, ButtonLeft)))
	assert.Equal(t, PhaseArmed, r.m.Phase(ButtonLeft))

	r.clock.Advance(100 * time.Millisecond)
	evs := r.frame(at(0, 0, ButtonLeft))
	assert.Equal(t, PhaseActive, r.m.Phase(ButtonLeft))
	require.Equal(t, []event.EventType{event.EventPan}, types(evs))
	assert.Equal(t, event.PanPayload{CameraPos: core.Point{4, 4}}, evs[0].Payload)

	// A fired gesture never falls back to selection on release
	assert.Empty(t, r.frame(at(0, 0)))
}

func TestPan_TracksScreenDelta(t *testing.T) {
	r := newRig()
	r.m.SetTool(ButtonLeft, ToolPan)

	r.frame(at(10, 10, ButtonLeft))
	evs := r.frame(at(14, 6, ButtonLeft))

	ev := find(t, evs, event.EventPan)
	assert.Equal(t, event.PanPayload{CameraPos: core.Point{-1, 1}}, ev.Payload)
}

func TestUnimplementedTools_Signal(t *testing.T) {
	for _, tool := range []Tool{ToolSpring, ToolThruster, ToolTracer} {
		t.Run(tool.String(), func(t *testing.T) {
			r := newRig()
			r.m.SetTool(ButtonLeft, tool)

			r.frame(at(0, 0, ButtonLeft))
			evs := r.frame(at(0, 0))

			ev := find(t, evs, event.EventNotImplemented)
			p := ev.Payload.(event.NotImplementedPayload)
			assert.Equal(t, tool.String(), p.Tool)
			assert.True(t, errors.Is(p.Err, ErrNotImplemented))
		})
	}

	t.Run("zoom", func(t *testing.T) {
		r := newRig()
		r.m.SetTool(ButtonLeft, ToolZoom)

		r.frame(at(0, 0, ButtonLeft))
		evs := r.frame(at(5, 0, ButtonLeft))
		ev := find(t, evs, event.EventNotImplemented)
		assert.True(t, errors.Is(ev.Payload.(event.NotImplementedPayload).Err, ErrNotImplemented))
	})
}

func TestMove_EmptySpaceDegradesToPan(t *testing.T) {
	r := newRig()

	r.frame(at(0, 0, ButtonLeft))
	evs := r.frame(at(4, 0, ButtonLeft))

	assert.Equal(t, ToolPan, r.m.State(ButtonLeft).Tool())
	assert.True(t, r.m.State(ButtonLeft).Active())
	ev := find(t, evs, event.EventPan)
	assert.Equal(t, event.PanPayload{CameraPos: core.Point{-1, 0}}, ev.Payload)
}

func TestMove_FreezeMoveUnfreeze(t *testing.T) {
	r := newRig()
	body := r.circle(core.Point{5, 5}, 1)

	r.frame(at(5.5, 5, ButtonLeft))
	evs := r.frame(at(6.5, 5, ButtonLeft))

	require.Equal(t, []event.EventType{event.EventSelect, event.EventFreeze, event.EventMove}, types(evs))
	assert.Equal(t, event.SelectPayload{Entity: body}, evs[0].Payload)
	assert.Equal(t, event.EntityPayload{Entity: body}, evs[1].Payload)
	assert.Equal(t, event.MovePayload{Entity: body, Position: core.Point{6, 5}}, evs[2].Payload)
	assert.True(t, r.ctx.Selection.Is(body))

	evs = r.frame(at(6.5, 5))
	require.Equal(t, []event.EventType{event.EventUnfreeze}, types(evs))
	assert.Equal(t, event.EntityPayload{Entity: body}, evs[0].Payload)
}

func TestMove_AbandonUnfreezesBody(t *testing.T) {
	r := newRig()
	body := r.circle(core.Point{0, 0}, 1)

	r.frame(at(0, 0, ButtonLeft))
	r.frame(at(0.5, 0, ButtonLeft))
	require.True(t, r.m.State(ButtonLeft).Active())

	r.ctx.Selection.Clear()
	evs := r.frame(at(0.7, 0, ButtonLeft))
	require.Equal(t, []event.EventType{event.EventUnfreeze}, types(evs))
	assert.Equal(t, event.EntityPayload{Entity: body}, evs[0].Payload)
	assert.False(t, r.m.State(ButtonLeft).Active())
	assert.Empty(t, r.frame(at(0.7, 0)), "release after abandon emits nothing")
}

func TestRotate_ReleaseUnfreezesFrozenBody(t *testing.T) {
	r := newRig()
	r.m.SetTool(ButtonLeft, ToolRotate)
	body := r.circle(core.Point{0, 0}, 2)
	other := r.circle(core.Point{10, 0}, 1)

	r.frame(at(1, 0, ButtonLeft))
	r.frame(at(1, 1, ButtonLeft))

	// Selection moves elsewhere mid-gesture; the frozen body is still the one released
	r.ctx.Selection.Select(other)
	r.frame(at(1, 2, ButtonLeft))
	evs := r.frame(at(1, 2))
	require.Equal(t, []event.EventType{event.EventUnfreeze}, types(evs))
	assert.Equal(t, event.EntityPayload{Entity: body}, evs[0].Payload)
}

func TestRotate_AbandonUnfreezesBody(t *testing.T) {
	r := newRig()
	r.m.SetTool(ButtonLeft, ToolRotate)
	body := r.circle(core.Point{0, 0}, 2)

	r.frame(at(1, 0, ButtonLeft))
	r.frame(at(1, 1, ButtonLeft))

	r.ctx.Selection.Clear()
	evs := r.frame(at(1, 2, ButtonLeft))
	require.Equal(t, []event.EventType{event.EventUnfreeze}, types(evs))
	assert.Equal(t, event.EntityPayload{Entity: body}, evs[0].Payload)
	assert.Empty(t, r.frame(at(1, 2)))
}

func TestCancel_UnfreezesHeldBody(t *testing.T) {
	r := newRig()
	body := r.circle(core.Point{0, 0}, 1)

	r.frame(at(0, 0, ButtonLeft))
	r.frame(at(0.5, 0, ButtonLeft))

	r.m.Cancel(r.ctx)
	evs := r.ctx.Events.Consume()
	require.Equal(t, []event.EventType{event.EventUnfreeze}, types(evs))
	assert.Equal(t, event.EntityPayload{Entity: body}, evs[0].Payload)
}

func TestRotate_SnapsNearPivot(t *testing.T) {
	deg := float32(math32.Pi) / 180

	cases := []struct {
		name   string
		radius float32
		want   float32
	}{
		{"near pivot snaps", 1.5, 30 * deg},
		{"far from pivot is free", 3, 37 * deg},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRig()
			r.m.SetTool(ButtonLeft, ToolRotate)
			body := r.circle(core.Point{0, 0}, 2)

			r.frame(at(1, 0, ButtonLeft))
			cur := at(tc.radius*math32.Cos(37*deg), tc.radius*math32.Sin(37*deg), ButtonLeft)
			evs := r.frame(cur)

			require.Equal(t, []event.EventType{event.EventSelect, event.EventFreeze, event.EventRotate}, types(evs))
			rot := evs[2].Payload.(event.RotatePayload)
			assert.Equal(t, body, rot.Entity)
			assert.Equal(t, core.Point{1, 0}, rot.ClickPos)
			assert.Equal(t, r.ctx.Config.CameraScale, rot.Scale)

			st, ok := r.ctx.Overlay.State()
			require.True(t, ok)
			shape := st.Shape.(engine.RotateShape)
			assert.InDelta(t, tc.want, shape.AngleSoFar, 1e-4)

			overlay := r.m.State(ButtonLeft).(RotateTool).State.Overlay
			assert.True(t, r.w.Alive(overlay))

			evs = r.frame(at(0, 0))
			assert.Equal(t, []event.EventType{event.EventUnfreeze}, types(evs))
			assert.False(t, r.w.Alive(overlay))
			_, ok = r.ctx.Overlay.State()
			assert.False(t, ok)
		})
	}
}

func TestRotate_TargetDespawnedMidGesture(t *testing.T) {
	r := newRig()
	r.m.SetTool(ButtonLeft, ToolRotate)
	body := r.circle(core.Point{0, 0}, 2)

	r.frame(at(1, 0, ButtonLeft))
	r.frame(at(1, 1, ButtonLeft))
	require.True(t, r.m.State(ButtonLeft).Active())

	require.NoError(t, r.w.Despawn(body))
	assert.NotPanics(t, func() { r.frame(at(1, 2, ButtonLeft)) })
	assert.False(t, r.m.State(ButtonLeft).Active())
	_, ok := r.ctx.Overlay.State()
	assert.False(t, ok)
}

func TestDrag_GrabsDynamicBodies(t *testing.T) {
	r := newRig()
	r.m.SetTool(ButtonLeft, ToolDrag)
	body := r.circle(core.Point{0, 0}, 1)

	r.frame(at(0.5, 0, ButtonLeft))
	evs := r.frame(at(2, 0, ButtonLeft))

	ev := find(t, evs, event.EventDrag)
	assert.Equal(t, event.DragPayload{Entity: body, Offset: core.Point{0.5, 0}, Target: core.Point{2, 0}}, ev.Payload)
	assert.NotContains(t, types(evs), event.EventSelect)
}

func TestDrag_IgnoresFixedBodies(t *testing.T) {
	r := newRig()
	r.m.SetTool(ButtonLeft, ToolDrag)
	body := r.circle(core.Point{0, 0}, 1)
	require.NoError(t, r.w.SetBodyMode(body, core.BodyFixed))

	r.frame(at(0.5, 0, ButtonLeft))
	evs := r.frame(at(2, 0, ButtonLeft))
	assert.Empty(t, evs)
	assert.False(t, r.m.State(ButtonLeft).Active())
}

func TestJoints_PlaceAtRelease(t *testing.T) {
	cases := []struct {
		tool Tool
		want event.EventType
	}{
		{ToolFix, event.EventAddFixedJoint},
		{ToolHinge, event.EventAddHinge},
	}
	for _, tc := range cases {
		t.Run(tc.tool.String(), func(t *testing.T) {
			r := newRig()
			r.m.SetTool(ButtonLeft, tc.tool)
			r.circle(core.Point{0, 0}, 1)

			r.frame(at(0.2, 0, ButtonLeft))
			evs := r.frame(at(0.2, 0))
			require.Equal(t, []event.EventType{tc.want}, types(evs))
			assert.Equal(t, event.AddJointPayload{At: core.Point{0.2, 0}}, evs[0].Payload)
		})
	}
}

func TestHinge_SensorRedirectsToSelection(t *testing.T) {
	r := newRig()
	r.m.SetTool(ButtonLeft, ToolHinge)
	r.circle(core.Point{0, 0}, 1)
	r.w.Spawn(physics.BodyDef{
		Shape:  physics.Circle{Radius: 0.3},
		Sensor: true,
		Depth:  r.ctx.Depth.Next(),
	})

	r.frame(at(0, 0, ButtonLeft))
	evs := r.frame(at(0, 0))
	require.Equal(t, []event.EventType{event.EventSelectUnderPointer}, types(evs))
}

func TestLaser_PlacesAtRelease(t *testing.T) {
	r := newRig()
	r.m.SetTool(ButtonLeft, ToolLaser)

	r.frame(at(1, 2, ButtonLeft))
	evs := r.frame(at(3, 4))
	require.Len(t, evs, 1)
	assert.Equal(t, event.AddLaserPayload{At: core.Point{3, 4}}, evs[0].Payload)
}

func TestTwoButtons_SecondButtonIsForced(t *testing.T) {
	r := newRig()
	r.m.SetTool(ButtonRight, ToolBox)
	r.circle(core.Point{0, 0}, 1)

	// Left drives Move; Right is forced to Rotate
	r.frame(at(0, 0, ButtonLeft))
	r.frame(at(0, 0, ButtonLeft, ButtonRight))
	assert.Equal(t, ToolRotate, r.m.State(ButtonRight).Tool())

	r.frame(at(0, 0))
	assert.Equal(t, PhaseIdle, r.m.Phase(ButtonLeft))
	assert.Equal(t, PhaseIdle, r.m.Phase(ButtonRight))

	// Right drives Box; Left is forced to Pan
	r.frame(at(0, 0, ButtonRight))
	r.frame(at(0, 0, ButtonLeft, ButtonRight))
	assert.Equal(t, ToolPan, r.m.State(ButtonLeft).Tool())
}

func TestTwoButtons_HeldButtonTakesOver(t *testing.T) {
	r := newRig()
	r.m.SetTool(ButtonRight, ToolBox)

	r.frame(at(0, 0, ButtonLeft))
	r.frame(at(0, 0, ButtonLeft, ButtonRight))
	require.Equal(t, ToolRotate, r.m.State(ButtonRight).Tool())

	// Left lets go; the forced Rotate on Right now drives, so a new Left press is forced to Pan
	r.frame(at(0, 0, ButtonRight))
	r.frame(at(0, 0, ButtonLeft, ButtonRight))
	assert.Equal(t, ToolPan, r.m.State(ButtonLeft).Tool())

	// Both released: Left is back to its own tool
	r.frame(at(0, 0))
	r.frame(at(0, 0, ButtonLeft))
	assert.Equal(t, ToolMove, r.m.State(ButtonLeft).Tool())
}

func TestTwoButtons_PanDoesNotForce(t *testing.T) {
	r := newRig()

	r.frame(at(0, 0, ButtonRight))
	r.frame(at(0, 0, ButtonLeft, ButtonRight))
	assert.Equal(t, ToolMove, r.m.State(ButtonLeft).Tool())
}

func TestUIWantsPointer_SuppressesArming(t *testing.T) {
	r := newRig()

	p := at(0, 0, ButtonLeft)
	p.UIWantsPointer = true
	r.frame(p)
	assert.Equal(t, PhaseIdle, r.m.Phase(ButtonLeft))

	assert.Empty(t, r.frame(at(5, 5, ButtonLeft)))
	assert.Empty(t, r.frame(at(5, 5)))
}

func TestCancel_DropsTransients(t *testing.T) {
	r := newRig()
	r.m.SetTool(ButtonLeft, ToolCircle)

	r.frame(at(0, 0, ButtonLeft))
	r.frame(at(4, 0, ButtonLeft))
	preview := r.m.State(ButtonLeft).(CircleTool).Preview.Entity

	r.m.Cancel(r.ctx)
	assert.False(t, r.w.Alive(preview))
	assert.Equal(t, PhaseIdle, r.m.Phase(ButtonLeft))
	_, ok := r.ctx.Overlay.State()
	assert.False(t, ok)
}

func TestKeyTable_Lookup(t *testing.T) {
	kt := DefaultKeyTable()

	in, ok := kt.Lookup(Key{Kind: KeyRune, Rune: '4'})
	require.True(t, ok)
	assert.Equal(t, Intent{Type: IntentTool, Tool: ToolBox, Button: ButtonLeft}, in)

	in, ok = kt.Lookup(Key{Kind: KeyRune, Rune: '#'})
	require.True(t, ok)
	assert.Equal(t, Intent{Type: IntentRightTool, Tool: ToolRotate, Button: ButtonRight}, in)

	in, ok = kt.Lookup(Key{Kind: KeyCtrlC})
	require.True(t, ok)
	assert.Equal(t, IntentQuit, in.Type)

	_, ok = kt.Lookup(Key{Kind: KeyRune, Rune: 'w'})
	assert.False(t, ok)

	m := NewMachine()
	assert.True(t, m.ApplyIntent(Intent{Type: IntentTool, Tool: ToolLaser, Button: ButtonLeft}))
	assert.Equal(t, ToolLaser, m.Tool(ButtonLeft))
	assert.False(t, m.ApplyIntent(Intent{Type: IntentReset}))
}

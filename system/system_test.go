package system

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
	w         *physics.World
	ctx       *engine.Context
	router    *engine.EventRouter
	transform *TransformSystem
}

func newRig() *rig {
	w := physics.NewWorld(0)
	ctx := engine.NewContext(w, config.Default(), engine.NewMockTimeProvider(time.Unix(0, 0)), nil)
	r := &rig{w: w, ctx: ctx, router: engine.NewEventRouter(), transform: NewTransformSystem(nil)}
	r.router.Register(NewBuildSystem(nil))
	r.router.Register(r.transform)
	r.router.Register(NewCameraSystem())
	r.router.Register(NewSelectSystem(nil))
	r.router.Register(NewNoticeSystem(nil))
	return r
}

func (r *rig) emit(t event.EventType, payload any) {
	r.ctx.Events.Emit(t, payload)
	r.router.DispatchAll(r.ctx)
}

func (r *rig) circle(pos core.Point, radius float32) core.Entity {
	return r.w.Spawn(physics.BodyDef{
		Shape: physics.Circle{Radius: radius},
		Pose:  core.Transform{Position: pos},
		Depth: r.ctx.Depth.Next(),
	})
}

func TestBuild_Box(t *testing.T) {
	r := newRig()
	r.emit(event.EventAddBox, event.AddBoxPayload{Corner: core.Point{0, 0}, Size: core.Point{4, -2}})

	bodies := r.w.Bodies()
	require.Len(t, bodies, 1)
	b := bodies[0]
	assert.Equal(t, physics.Box{HalfExtents: core.Point{2, 1}}, b.Shape)
	assert.Equal(t, core.Point{2, -1}, b.Pose.Position)
	assert.Equal(t, core.BodyDynamic, b.Mode)
	assert.Greater(t, b.Depth, float32(0))

	info, err := r.w.OpticalInfo(b.Entity)
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), info.RefractiveIndex)
}

func TestBuild_DegenerateShapesDropped(t *testing.T) {
	r := newRig()
	r.emit(event.EventAddBox, event.AddBoxPayload{Size: core.Point{0, 3}})
	r.emit(event.EventAddCircle, event.AddCirclePayload{Radius: 0})
	r.emit(event.EventAddCircle, event.AddCirclePayload{Radius: math32.NaN()})

	assert.Empty(t, r.w.Bodies())
}

func TestBuild_CircleDepthsIncrease(t *testing.T) {
	r := newRig()
	r.emit(event.EventAddCircle, event.AddCirclePayload{Center: core.Point{1, 1}, Radius: 2})
	r.emit(event.EventAddCircle, event.AddCirclePayload{Center: core.Point{1, 1}, Radius: 1})

	bodies := r.w.Bodies()
	require.Len(t, bodies, 2)
	assert.Less(t, bodies[0].Depth, bodies[1].Depth)

	top, ok := r.ctx.Pick(core.Point{1, 1}, physics.QueryFilter{}).First()
	require.True(t, ok)
	assert.Equal(t, bodies[1].Entity, top)
}

func TestBuild_Laser(t *testing.T) {
	r := newRig()
	r.emit(event.EventAddLaser, event.AddLaserPayload{At: core.Point{3, 4}})

	lasers := r.w.Lasers()
	require.Len(t, lasers, 1)
	assert.Equal(t, core.BodyFixed, lasers[0].Mode)
	assert.Equal(t, core.Point{3, 4}, lasers[0].Pose.Position)
	assert.Equal(t, r.ctx.Config.DefaultFadeDistance, lasers[0].Laser.FadeDistance)
}

func TestBuild_HingeBetweenTopTwo(t *testing.T) {
	r := newRig()
	lower := r.circle(core.Point{0, 0}, 2)
	upper := r.circle(core.Point{2, 0}, 2)

	r.emit(event.EventAddHinge, event.AddJointPayload{At: core.Point{1, 0}})

	joints := r.w.Joints()
	require.Len(t, joints, 1)
	j := joints[0]
	assert.Equal(t, physics.JointRevolute, j.Kind)
	assert.Equal(t, upper, j.A)
	assert.Equal(t, lower, j.B)
	assert.InDelta(t, -1, j.AnchorA.X(), 1e-6)
	assert.InDelta(t, 1, j.AnchorB.X(), 1e-6)

	// Hinge hitbox is a sensor owned by the top body
	var sensors []physics.Body
	for _, b := range r.w.Bodies() {
		if b.Sensor {
			sensors = append(sensors, b)
		}
	}
	require.Len(t, sensors, 1)
	assert.Equal(t, upper, sensors[0].Parent)

	require.NoError(t, r.w.Despawn(upper))
	assert.Empty(t, r.w.Joints())
	assert.False(t, r.w.Alive(sensors[0].Entity))
}

func TestBuild_FixedJointToWorld(t *testing.T) {
	r := newRig()
	body := r.circle(core.Point{0, 0}, 1)

	r.emit(event.EventAddFixedJoint, event.AddJointPayload{At: core.Point{0.5, 0}})

	joints := r.w.Joints()
	require.Len(t, joints, 1)
	assert.Equal(t, physics.JointFixed, joints[0].Kind)
	assert.Equal(t, body, joints[0].A)
	assert.Zero(t, joints[0].B)
	assert.Equal(t, core.Point{0.5, 0}, joints[0].AnchorB)
}

func TestBuild_JointWithoutTarget(t *testing.T) {
	r := newRig()
	r.emit(event.EventAddFixedJoint, event.AddJointPayload{At: core.Point{9, 9}})

	assert.Empty(t, r.w.Joints())
	assert.Equal(t, []string{"nothing to attach here"}, r.ctx.Notices())
}

func TestBuild_DespawnClearsSelection(t *testing.T) {
	r := newRig()
	body := r.circle(core.Point{0, 0}, 1)
	r.ctx.Selection.Select(body)
	r.ctx.ContextMenu = body

	r.emit(event.EventDespawn, event.EntityPayload{Entity: body})
	assert.False(t, r.w.Alive(body))
	_, ok := r.ctx.Selection.Get()
	assert.False(t, ok)
	assert.Zero(t, r.ctx.ContextMenu)

	// Second despawn is a stale miss, not a crash
	assert.NotPanics(t, func() { r.emit(event.EventDespawn, event.EntityPayload{Entity: body}) })
}

func TestTransform_FreezeRestoresMode(t *testing.T) {
	r := newRig()
	fixed := r.circle(core.Point{0, 0}, 1)
	require.NoError(t, r.w.SetBodyMode(fixed, core.BodyFixed))
	dynamic := r.circle(core.Point{5, 0}, 1)

	r.emit(event.EventFreeze, event.EntityPayload{Entity: fixed})
	r.emit(event.EventFreeze, event.EntityPayload{Entity: dynamic})
	for _, e := range []core.Entity{fixed, dynamic} {
		mode, err := r.w.BodyMode(e)
		require.NoError(t, err)
		assert.Equal(t, core.BodyKinematic, mode)
	}

	r.emit(event.EventUnfreeze, event.EntityPayload{Entity: fixed})
	r.emit(event.EventUnfreeze, event.EntityPayload{Entity: dynamic})
	mode, _ := r.w.BodyMode(fixed)
	assert.Equal(t, core.BodyFixed, mode)
	mode, _ = r.w.BodyMode(dynamic)
	assert.Equal(t, core.BodyDynamic, mode)
}

func TestTransform_Move(t *testing.T) {
	r := newRig()
	body := r.circle(core.Point{0, 0}, 1)

	r.emit(event.EventMove, event.MovePayload{Entity: body, Position: core.Point{3, -2}})
	tr, err := r.w.Transform(body)
	require.NoError(t, err)
	assert.Equal(t, core.Point{3, -2}, tr.Position)

	require.NoError(t, r.w.Despawn(body))
	assert.NotPanics(t, func() {
		r.emit(event.EventMove, event.MovePayload{Entity: body, Position: core.Point{1, 1}})
	})
	_, err = r.w.Transform(body)
	assert.True(t, errors.Is(err, core.ErrStaleEntity))
}

func TestTransform_RotateSnaps(t *testing.T) {
	deg := float32(math32.Pi) / 180
	r := newRig()
	body := r.circle(core.Point{0, 0}, 2)

	r.emit(event.EventRotate, event.RotatePayload{
		Entity:       body,
		OrigRotation: 0.5,
		ClickPos:     core.Point{1, 0},
		CurrentPos:   core.Point{1.5 * math32.Cos(37*deg), 1.5 * math32.Sin(37*deg)},
		Scale:        r.ctx.Config.CameraScale,
	})

	tr, err := r.w.Transform(body)
	require.NoError(t, err)
	assert.InDelta(t, 0.5+30*deg, tr.Rotation, 1e-4)
}

func TestTransform_RotateWrapsPastPi(t *testing.T) {
	r := newRig()
	body := r.circle(core.Point{0, 0}, 2)

	// Far outside the snap ring: a free quarter turn from 3 rad
	r.emit(event.EventRotate, event.RotatePayload{
		Entity:       body,
		OrigRotation: 3,
		ClickPos:     core.Point{100, 0},
		CurrentPos:   core.Point{0, 100},
		Scale:        r.ctx.Config.CameraScale,
	})

	tr, err := r.w.Transform(body)
	require.NoError(t, err)
	assert.InDelta(t, 3+math32.Pi/2-2*math32.Pi, tr.Rotation, 1e-4)
}

func TestTransform_DragSetsVelocity(t *testing.T) {
	r := newRig()
	body := r.circle(core.Point{0, 0}, 1)

	r.emit(event.EventDrag, event.DragPayload{Entity: body, Offset: core.Point{0.5, 0}, Target: core.Point{1.5, 0}})

	v, _, err := r.w.Velocity(body)
	require.NoError(t, err)
	assert.InDelta(t, 12, v.X(), 1e-5)
	assert.InDelta(t, 0, v.Y(), 1e-5)
}

func TestTransform_ResetForgetsFrozen(t *testing.T) {
	r := newRig()
	body := r.circle(core.Point{0, 0}, 1)
	require.NoError(t, r.w.SetBodyMode(body, core.BodyFixed))

	r.emit(event.EventFreeze, event.EntityPayload{Entity: body})
	r.transform.Reset()
	r.emit(event.EventUnfreeze, event.EntityPayload{Entity: body})

	mode, _ := r.w.BodyMode(body)
	assert.Equal(t, core.BodyDynamic, mode)
}

func TestCamera_Pan(t *testing.T) {
	r := newRig()
	r.emit(event.EventPan, event.PanPayload{CameraPos: core.Point{-3, 7}})
	assert.Equal(t, core.Point{-3, 7}, r.ctx.Camera.Position)

	r.emit(event.EventPan, event.PanPayload{CameraPos: core.Point{math32.Inf(1), 0}})
	assert.Equal(t, core.Point{-3, 7}, r.ctx.Camera.Position)
}

func TestSelect_UnderPointer(t *testing.T) {
	r := newRig()
	body := r.circle(core.Point{0, 0}, 1)

	r.emit(event.EventSelectUnderPointer, event.SelectUnderPointerPayload{At: core.Point{0.2, 0}, ContextMenu: true})
	assert.True(t, r.ctx.Selection.Is(body))
	assert.Equal(t, body, r.ctx.ContextMenu)

	r.emit(event.EventSelectUnderPointer, event.SelectUnderPointerPayload{At: core.Point{5, 5}})
	_, ok := r.ctx.Selection.Get()
	assert.False(t, ok)
	assert.Zero(t, r.ctx.ContextMenu)
}

func TestSelect_SensorIsSelectable(t *testing.T) {
	r := newRig()
	r.circle(core.Point{0, 0}, 1)
	sensor := r.w.Spawn(physics.BodyDef{
		Shape:  physics.Circle{Radius: 0.3},
		Sensor: true,
		Depth:  r.ctx.Depth.Next(),
	})

	r.emit(event.EventSelectUnderPointer, event.SelectUnderPointerPayload{At: core.Point{0, 0}})
	assert.True(t, r.ctx.Selection.Is(sensor))
}

func TestNotice_NotImplemented(t *testing.T) {
	r := newRig()
	r.emit(event.EventNotImplemented, event.NotImplementedPayload{
		Tool:   "spring",
		Action: "release",
		Err:    errors.New("spring release: tool action not implemented"),
	})
	assert.Equal(t, []string{"spring release: tool action not implemented"}, r.ctx.Notices())
}

package system

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/engine"
	"github.com/lixenwraith/prism/event"
	"github.com/lixenwraith/prism/logging"
	"github.com/lixenwraith/prism/parameter"
	"github.com/lixenwraith/prism/physics"
	"github.com/lixenwraith/prism/vmath"
)

// BuildSystem spawns and removes bodies, joints and emitters
type BuildSystem struct {
	log     *zap.Logger
	spawned int
}

// NewBuildSystem creates the construction handler
func NewBuildSystem(log *zap.Logger) *BuildSystem {
	return &BuildSystem{log: logging.OrNop(log)}
}

// Reset restarts the spawn palette
func (s *BuildSystem) Reset() {
	s.spawned = 0
}

// EventTypes returns events this system handles
func (s *BuildSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventAddBox,
		event.EventAddCircle,
		event.EventAddFixedJoint,
		event.EventAddHinge,
		event.EventAddLaser,
		event.EventDespawn,
	}
}

// HandleEvent processes construction intents
func (s *BuildSystem) HandleEvent(ctx *engine.Context, ev event.Event) {
	switch p := ev.Payload.(type) {
	case event.AddBoxPayload:
		s.addBox(ctx, p)
	case event.AddCirclePayload:
		s.addCircle(ctx, p)
	case event.AddJointPayload:
		s.addJoint(ctx, p.At, ev.Type == event.EventAddHinge)
	case event.AddLaserPayload:
		s.addLaser(ctx, p.At)
	case event.EntityPayload:
		if ev.Type == event.EventDespawn {
			s.despawn(ctx, p.Entity)
		}
	}
}

// palette returns the optical data of the next spawned body
func (s *BuildSystem) palette() *physics.OpticalInfo {
	hue := float32(s.spawned) * parameter.SpawnHueStep
	s.spawned++
	return &physics.OpticalInfo{
		RefractiveIndex: parameter.DefaultRefractiveIndex,
		Color:           core.Hsva(hue, parameter.SpawnSaturation, parameter.SpawnValue, parameter.SpawnAlpha),
	}
}

func (s *BuildSystem) addBox(ctx *engine.Context, p event.AddBoxPayload) {
	half := core.Point{math32.Abs(p.Size.X()) / 2, math32.Abs(p.Size.Y()) / 2}
	if half.X() <= 0 || half.Y() <= 0 || !vmath.FiniteVec(p.Corner) || !vmath.FiniteVec(p.Size) {
		s.log.Debug("degenerate box dropped", zap.Any("size", p.Size))
		return
	}
	e := ctx.World.Spawn(physics.BodyDef{
		Shape:   physics.Box{HalfExtents: half},
		Pose:    core.Transform{Position: p.Corner.Add(p.Size.Mul(0.5))},
		Depth:   ctx.Depth.Next(),
		Optical: s.palette(),
	})
	s.log.Debug("box spawned", zap.Uint64("entity", uint64(e)))
}

func (s *BuildSystem) addCircle(ctx *engine.Context, p event.AddCirclePayload) {
	if p.Radius <= 0 || !vmath.Finite(p.Radius) || !vmath.FiniteVec(p.Center) {
		s.log.Debug("degenerate circle dropped", zap.Float32("radius", p.Radius))
		return
	}
	e := ctx.World.Spawn(physics.BodyDef{
		Shape:   physics.Circle{Radius: p.Radius},
		Pose:    core.Transform{Position: p.Center},
		Depth:   ctx.Depth.Next(),
		Optical: s.palette(),
	})
	s.log.Debug("circle spawned", zap.Uint64("entity", uint64(e)))
}

// addJoint links the top two dynamic bodies under at, or pins the top one to the world
func (s *BuildSystem) addJoint(ctx *engine.Context, at core.Point, hinge bool) {
	hits := ctx.Pick(at, physics.QueryFilter{DynamicOnly: true, ExcludeSensors: true})
	a, ok := hits.Next()
	if !ok {
		ctx.Notice("nothing to attach here")
		return
	}
	b, _ := hits.Next()

	anchorA, err := localAnchor(ctx.World, a, at)
	if err != nil {
		s.miss(ctx, "joint", a, err)
		return
	}
	anchorB := at
	if b != 0 {
		if anchorB, err = localAnchor(ctx.World, b, at); err != nil {
			s.miss(ctx, "joint", b, err)
			return
		}
	}

	var joint core.Entity
	if hinge {
		joint, err = ctx.World.CreateRevoluteJoint(a, b, anchorA, anchorB)
	} else {
		joint, err = ctx.World.CreateFixedJoint(a, b, anchorA, anchorB)
	}
	if err != nil {
		s.miss(ctx, "joint", a, err)
		return
	}

	if hinge {
		ctx.World.Spawn(physics.BodyDef{
			Shape:  physics.Circle{Radius: parameter.HingeHitboxRadius},
			Pose:   core.Transform{Position: at},
			Mode:   core.BodyKinematic,
			Sensor: true,
			Parent: a,
			Depth:  ctx.Depth.Next(),
		})
	}
	s.log.Debug("joint created",
		zap.Uint64("joint", uint64(joint)),
		zap.Uint64("a", uint64(a)),
		zap.Uint64("b", uint64(b)),
		zap.Bool("hinge", hinge))
}

func (s *BuildSystem) addLaser(ctx *engine.Context, at core.Point) {
	if !vmath.FiniteVec(at) {
		return
	}
	e := ctx.World.Spawn(physics.BodyDef{
		Shape: physics.Circle{Radius: parameter.LaserBodyRadius},
		Pose:  core.Transform{Position: at},
		Mode:  core.BodyFixed,
		Depth: ctx.Depth.Next(),
		Optical: &physics.OpticalInfo{
			RefractiveIndex: parameter.DefaultRefractiveIndex,
			Color:           core.Hsva(0, 0, 1, 1),
		},
		Laser: &physics.LaserSource{FadeDistance: ctx.Config.DefaultFadeDistance},
	})
	s.log.Debug("laser spawned", zap.Uint64("entity", uint64(e)))
}

func (s *BuildSystem) despawn(ctx *engine.Context, e core.Entity) {
	if err := ctx.World.Despawn(e); err != nil {
		s.miss(ctx, "despawn", e, err)
		return
	}
	if ctx.Selection.Is(e) {
		ctx.Selection.Clear()
	}
	if ctx.ContextMenu == e {
		ctx.ContextMenu = 0
	}
}

func (s *BuildSystem) miss(ctx *engine.Context, op string, e core.Entity, err error) {
	logMiss(ctx, s.log, op, e, err)
}

// localAnchor converts a world point to the body frame of e
func localAnchor(t physics.Transforms, e core.Entity, at core.Point) (core.Point, error) {
	tr, err := t.Transform(e)
	if err != nil {
		return core.Point{}, err
	}
	return vmath.Rotate(at.Sub(tr.Position), -tr.Rotation), nil
}

// logMiss logs stale targets quietly and anything else loudly
func logMiss(ctx *engine.Context, log *zap.Logger, op string, e core.Entity, err error) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.Uint64("entity", uint64(e)),
		zap.String("scene", ctx.ID),
		zap.Error(err),
	}
	if errors.Is(err, core.ErrStaleEntity) {
		log.Debug("stale target", fields...)
		return
	}
	log.Warn("scene update failed", fields...)
}

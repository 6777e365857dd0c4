package sandbox

import (
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/prism/config"
	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/engine"
	"github.com/lixenwraith/prism/event"
	"github.com/lixenwraith/prism/input"
	"github.com/lixenwraith/prism/logging"
	"github.com/lixenwraith/prism/optics"
	"github.com/lixenwraith/prism/parameter"
	"github.com/lixenwraith/prism/physics"
	"github.com/lixenwraith/prism/system"
)

// Frame is everything a renderer needs for one frame
type Frame struct {
	Number   int64
	Camera   engine.Camera
	Bodies   []physics.Body // Ascending depth
	Joints   []physics.Joint
	Segments []optics.Segment
	Overlay  []engine.Primitive
	Selected core.Entity
	Tools    [2]input.Tool
	Paused   bool
	Notices  []string
	Stats    optics.Stats
}

// Sandbox owns one running scene and the per-frame pipeline over it
type Sandbox struct {
	Ctx     *engine.Context
	Machine *input.Machine
	Router  *engine.EventRouter
	Lasers  *optics.System
	Keys    *input.KeyTable

	cfg       config.Config
	log       *zap.Logger
	world     *physics.World
	sim       *engine.SimClock
	lastStep  time.Time
	build     *system.BuildSystem
	transform *system.TransformSystem
}

// New creates a sandbox with an empty scene
func New(cfg config.Config, clock engine.Clock, log *zap.Logger) *Sandbox {
	log = logging.OrNop(log)
	if clock == nil {
		clock = engine.NewTimeProvider()
	}

	world := physics.NewWorld(cfg.Gravity)
	s := &Sandbox{
		Ctx:       engine.NewContext(world, cfg, clock, log),
		Machine:   input.NewMachine(),
		Router:    engine.NewEventRouter(),
		Keys:      input.DefaultKeyTable(),
		cfg:       cfg,
		log:       log,
		world:     world,
		sim:       engine.NewSimClock(clock),
		build:     system.NewBuildSystem(log),
		transform: system.NewTransformSystem(log),
	}
	s.Lasers = optics.NewSystem(world, cfg, log)
	s.lastStep = s.sim.Now()

	s.Router.Register(s.build)
	s.Router.Register(s.transform)
	s.Router.Register(system.NewCameraSystem())
	s.Router.Register(system.NewSelectSystem(log))
	s.Router.Register(system.NewNoticeSystem(log))

	s.Ctx.Log.Info("sandbox started")
	return s
}

// World returns the reference world of the current scene
func (s *Sandbox) World() *physics.World {
	return s.world
}

// Reset replaces the scene with an empty one
func (s *Sandbox) Reset() {
	s.Machine.Cancel(s.Ctx)
	s.world = physics.NewWorld(s.cfg.Gravity)
	s.Ctx.Reset(s.world)
	s.Lasers = optics.NewSystem(s.world, s.cfg, s.log)
	s.build.Reset()
	s.transform.Reset()
	s.lastStep = s.sim.Now()
	s.Ctx.Log.Info("scene reset")
}

// Pointer builds a pointer frame from screen coordinates through the camera
func (s *Sandbox) Pointer(screen, viewport core.Point, left, right, uiWantsPointer bool) input.Pointer {
	p := input.Pointer{
		Screen:         screen,
		World:          s.Ctx.Camera.ToWorld(screen, viewport),
		UIWantsPointer: uiWantsPointer,
	}
	p.Down[input.ButtonLeft] = left
	p.Down[input.ButtonRight] = right
	return p
}

// Key applies a keyboard press and reports whether the user asked to quit
func (s *Sandbox) Key(k input.Key) bool {
	in, ok := s.Keys.Lookup(k)
	if !ok {
		return false
	}

	switch in.Type {
	case input.IntentQuit:
		return true
	case input.IntentReset:
		s.Reset()
	case input.IntentEscape:
		s.Ctx.ContextMenu = 0
		s.Ctx.Selection.Clear()
	case input.IntentDelete:
		if sel, ok := s.Ctx.Selection.Get(); ok {
			s.Ctx.Events.Emit(event.EventDespawn, event.EntityPayload{Entity: sel})
		}
	case input.IntentPause:
		if s.sim.Toggle() {
			s.Ctx.Notice("paused")
		} else {
			s.Ctx.Notice("resumed")
		}
	default:
		if s.Machine.ApplyIntent(in) {
			s.Ctx.Notice(in.Button.String() + ": " + in.Tool.String())
		}
	}
	return false
}

// Frame runs one frame: gestures, intents, physics, overlay and optics
func (s *Sandbox) Frame(p input.Pointer) Frame {
	ctx := s.Ctx
	ctx.BeginFrame()

	s.Machine.Update(ctx, p)
	routed := s.Router.DispatchAll(ctx)

	now := s.sim.Now()
	dt := min(now.Sub(s.lastStep), parameter.MaxFrameStep)
	s.lastStep = now
	if dt > 0 {
		s.world.Step(dt)
	}

	segments, stats := s.Lasers.Trace(s.world)
	if stats.Rejected > 0 {
		ctx.Log.Warn("rays rejected", zap.Int("count", stats.Rejected), zap.Int64("frame", ctx.FrameNumber))
	}

	sel, _ := ctx.Selection.Get()
	f := Frame{
		Number:   ctx.FrameNumber,
		Camera:   ctx.Camera,
		Bodies:   s.world.Bodies(),
		Joints:   s.world.Joints(),
		Segments: segments,
		Overlay:  ctx.Overlay.Primitives(ctx.Config.RotateHelperRadius, parameter.RotateHelperSegments),
		Selected: sel,
		Tools:    [2]input.Tool{s.Machine.Tool(input.ButtonLeft), s.Machine.Tool(input.ButtonRight)},
		Paused:   s.sim.IsPaused(),
		Notices:  slices.Clone(ctx.Notices()),
		Stats:    stats,
	}
	ctx.Log.Debug("frame",
		zap.Int64("frame", f.Number),
		zap.Int("events", routed),
		zap.Int("bodies", len(f.Bodies)),
		zap.Int("rays", stats.Rays))
	return f
}

package engine

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/prism/config"
	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/event"
	"github.com/lixenwraith/prism/logging"
	"github.com/lixenwraith/prism/parameter"
	"github.com/lixenwraith/prism/physics"
)

// Camera maps screen units to world units
// Screen units grow right and up; the terminal adapter flips rows before input
type Camera struct {
	Position core.Point // World point at the viewport centre
	Scale    float32    // World units per screen unit
}

// ToWorld converts a screen point given the viewport size
func (c Camera) ToWorld(screen, viewport core.Point) core.Point {
	return c.Position.Add(screen.Sub(viewport.Mul(0.5)).Mul(c.Scale))
}

// ToScreen is the inverse of ToWorld
func (c Camera) ToScreen(world, viewport core.Point) core.Point {
	return world.Sub(c.Position).Mul(1 / c.Scale).Add(viewport.Mul(0.5))
}

// Context is the per-scene state shared by the frame-stepped systems
// One instance per running scene; Reset on scene reset
type Context struct {
	// ===== Immutable After Init =====

	World  physics.Scene
	Config config.Config
	Clock  Clock
	Events *event.EventQueue

	// ===== Main-Loop Exclusive =====

	ID          string
	Log         *zap.Logger
	Depth       *DepthSequencer
	Selection   Selection
	Overlay     Overlay
	Camera      Camera
	ContextMenu core.Entity // Entity whose context menu is open, zero when closed
	FrameNumber int64

	notices []string
	base    *zap.Logger
}

// NewContext creates a scene context over world
func NewContext(world physics.Scene, cfg config.Config, clock Clock, log *zap.Logger) *Context {
	if clock == nil {
		clock = NewTimeProvider()
	}
	c := &Context{
		World:  world,
		Config: cfg,
		Clock:  clock,
		Events: event.NewEventQueue(),
		Depth:  NewDepthSequencer(),
		base:   logging.OrNop(log),
	}
	c.Reset(world)
	return c
}

// Reset starts a fresh scene on world, dropping all transient state
func (c *Context) Reset(world physics.Scene) {
	c.World = world
	c.ID = uuid.NewString()
	c.Log = c.base.With(zap.String("scene", c.ID))
	c.Depth.Reset()
	c.Selection.Clear()
	c.Overlay.Clear()
	c.Camera = Camera{Scale: c.Config.CameraScale}
	c.ContextMenu = 0
	c.FrameNumber = 0
	c.notices = c.notices[:0]
	c.Events.Consume()
}

// BeginFrame advances the frame counter and stamps subsequent events
func (c *Context) BeginFrame() {
	c.FrameNumber++
	c.Events.SetFrame(c.FrameNumber)
}

// DepthOf returns the spawn depth of e, or the floor for unknown entities
func (c *Context) DepthOf(e core.Entity) float32 {
	if d, ok := c.World.Depth(e); ok {
		return d
	}
	return parameter.DepthFloor
}

// Pick prepares a front-to-back pick at p
func (c *Context) Pick(p core.Point, filter physics.QueryFilter) *PickSequence {
	return FindUnderPoint(c.World, p, filter, c.DepthOf)
}

// Notice records a short status message, keeping the newest few
func (c *Context) Notice(msg string) {
	c.notices = append(c.notices, msg)
	if n := len(c.notices) - parameter.NoticeCapacity; n > 0 {
		c.notices = c.notices[n:]
	}
}

// Notices returns recent messages, oldest first
func (c *Context) Notices() []string {
	return c.notices
}

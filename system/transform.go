package system

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/engine"
	"github.com/lixenwraith/prism/event"
	"github.com/lixenwraith/prism/logging"
	"github.com/lixenwraith/prism/parameter"
	"github.com/lixenwraith/prism/vmath"
)

// TransformSystem applies gesture results to body poses and modes
type TransformSystem struct {
	log    *zap.Logger
	frozen map[core.Entity]core.BodyMode // Mode to restore on unfreeze
}

// NewTransformSystem creates the manipulation handler
func NewTransformSystem(log *zap.Logger) *TransformSystem {
	return &TransformSystem{
		log:    logging.OrNop(log),
		frozen: make(map[core.Entity]core.BodyMode),
	}
}

// Reset forgets frozen bodies of the previous scene
func (s *TransformSystem) Reset() {
	clear(s.frozen)
}

// EventTypes returns events this system handles
func (s *TransformSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventMove,
		event.EventRotate,
		event.EventDrag,
		event.EventFreeze,
		event.EventUnfreeze,
	}
}

// HandleEvent processes manipulation intents
func (s *TransformSystem) HandleEvent(ctx *engine.Context, ev event.Event) {
	switch p := ev.Payload.(type) {
	case event.MovePayload:
		if err := ctx.World.SetPosition(p.Entity, p.Position); err != nil {
			logMiss(ctx, s.log, "move", p.Entity, err)
		}
	case event.RotatePayload:
		s.rotate(ctx, p)
	case event.DragPayload:
		s.drag(ctx, p)
	case event.EntityPayload:
		switch ev.Type {
		case event.EventFreeze:
			s.freeze(ctx, p.Entity)
		case event.EventUnfreeze:
			s.unfreeze(ctx, p.Entity)
		}
	}
}

// RotationFor returns the absolute rotation a rotate gesture asks for around pivot, in (-π, π]
func RotationFor(ctx *engine.Context, p event.RotatePayload, pivot core.Point) float32 {
	delta := vmath.RotationDelta(pivot, p.ClickPos, p.CurrentPos,
		ctx.Config.RotateHelperRadius*p.Scale, ctx.Config.RotateSnap())
	return vmath.WrapPi(p.OrigRotation + delta)
}

func (s *TransformSystem) rotate(ctx *engine.Context, p event.RotatePayload) {
	tr, err := ctx.World.Transform(p.Entity)
	if err != nil {
		logMiss(ctx, s.log, "rotate", p.Entity, err)
		return
	}
	if err := ctx.World.SetRotation(p.Entity, RotationFor(ctx, p, tr.Position)); err != nil {
		logMiss(ctx, s.log, "rotate", p.Entity, err)
	}
}

// drag sets the body velocity so the grab point follows the pointer
func (s *TransformSystem) drag(ctx *engine.Context, p event.DragPayload) {
	tr, err := ctx.World.Transform(p.Entity)
	if err != nil {
		logMiss(ctx, s.log, "drag", p.Entity, err)
		return
	}
	_, angular, err := ctx.World.Velocity(p.Entity)
	if err != nil {
		logMiss(ctx, s.log, "drag", p.Entity, err)
		return
	}
	grab := tr.Position.Add(p.Offset)
	v := p.Target.Sub(grab).Mul(parameter.DragStiffness)
	if err := ctx.World.SetVelocity(p.Entity, v, angular); err != nil {
		logMiss(ctx, s.log, "drag", p.Entity, err)
	}
}

func (s *TransformSystem) freeze(ctx *engine.Context, e core.Entity) {
	mode, err := ctx.World.BodyMode(e)
	if err != nil {
		logMiss(ctx, s.log, "freeze", e, err)
		return
	}
	if _, ok := s.frozen[e]; !ok {
		s.frozen[e] = mode
	}
	if err := ctx.World.SetBodyMode(e, core.BodyKinematic); err != nil {
		logMiss(ctx, s.log, "freeze", e, err)
	}
}

func (s *TransformSystem) unfreeze(ctx *engine.Context, e core.Entity) {
	mode, ok := s.frozen[e]
	if !ok {
		mode = core.BodyDynamic
	}
	delete(s.frozen, e)
	if err := ctx.World.SetBodyMode(e, mode); err != nil {
		logMiss(ctx, s.log, "unfreeze", e, err)
	}
}

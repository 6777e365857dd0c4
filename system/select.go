package system

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/prism/engine"
	"github.com/lixenwraith/prism/event"
	"github.com/lixenwraith/prism/logging"
	"github.com/lixenwraith/prism/physics"
)

// SelectSystem resolves selection requests
type SelectSystem struct {
	log *zap.Logger
}

// NewSelectSystem creates the selection handler
func NewSelectSystem(log *zap.Logger) *SelectSystem {
	return &SelectSystem{log: logging.OrNop(log)}
}

// EventTypes returns events this system handles
func (s *SelectSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventSelect, event.EventSelectUnderPointer}
}

// HandleEvent applies selection changes
// Select replaces the selection; SelectUnderPointer picks the topmost collider, sensors included
func (s *SelectSystem) HandleEvent(ctx *engine.Context, ev event.Event) {
	switch p := ev.Payload.(type) {
	case event.SelectPayload:
		ctx.Selection.Select(p.Entity)

	case event.SelectUnderPointerPayload:
		hit, ok := ctx.Pick(p.At, physics.QueryFilter{}).First()
		ctx.Selection.Select(hit)
		ctx.ContextMenu = 0
		if ok && p.ContextMenu {
			ctx.ContextMenu = hit
		}
		s.log.Debug("select under pointer",
			zap.Uint64("entity", uint64(hit)),
			zap.Bool("menu", p.ContextMenu),
			zap.String("scene", ctx.ID))
	}
}

package system

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/prism/engine"
	"github.com/lixenwraith/prism/event"
	"github.com/lixenwraith/prism/logging"
)

// NoticeSystem surfaces unsupported tool actions on the status line
type NoticeSystem struct {
	log *zap.Logger
}

func NewNoticeSystem(log *zap.Logger) *NoticeSystem {
	return &NoticeSystem{log: logging.OrNop(log)}
}

func (s *NoticeSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventNotImplemented}
}

func (s *NoticeSystem) HandleEvent(ctx *engine.Context, ev event.Event) {
	p, ok := ev.Payload.(event.NotImplementedPayload)
	if !ok {
		return
	}
	msg := p.Tool + " " + p.Action + ": not implemented"
	if p.Err != nil {
		msg = p.Err.Error()
	}
	ctx.Notice(msg)
	s.log.Info("notice", zap.String("text", msg), zap.Int64("frame", ev.Frame))
}

package engine

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/prism/event"
)

// EventHandler processes specific event types
// Systems implement this interface to receive routed events
type EventHandler interface {
	// HandleEvent processes a single event
	// Called synchronously during the dispatch phase, before the physics step
	HandleEvent(ctx *Context, ev event.Event)

	// EventTypes returns the event types this handler processes
	EventTypes() []event.EventType
}

// EventRouter dispatches queued events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch (no concurrency issues with world mutation)
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
type EventRouter struct {
	handlers map[event.EventType][]EventHandler
}

func NewEventRouter() *EventRouter {
	return &EventRouter{handlers: make(map[event.EventType][]EventHandler)}
}

// Register adds a handler for its declared event types
func (r *EventRouter) Register(handler EventHandler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// dispatchRounds bounds handler-emitted follow-up events within one frame
const dispatchRounds = 4

// DispatchAll consumes all pending events in FIFO order
// Events emitted by handlers are dispatched in the same call, up to dispatchRounds deep
// Returns the number of events routed
func (r *EventRouter) DispatchAll(ctx *Context) int {
	n := 0
	for round := 0; round < dispatchRounds; round++ {
		events := ctx.Events.Consume()
		if len(events) == 0 {
			return n
		}
		for _, ev := range events {
			handlers := r.handlers[ev.Type]
			if len(handlers) == 0 {
				ctx.Log.Debug("unrouted event", zap.Stringer("type", ev.Type))
			}
			for _, h := range handlers {
				h.HandleEvent(ctx, ev)
			}
			n++
		}
	}
	return n
}

// HandlerCount returns the number of handlers registered for the given type
func (r *EventRouter) HandlerCount(t event.EventType) int {
	return len(r.handlers[t])
}

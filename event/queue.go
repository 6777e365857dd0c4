package event

import (
	"sync/atomic"

	"github.com/lixenwraith/prism/parameter"
)

// EventQueue is a lock-free MPSC ring buffer for sandbox events
// Thread-Safety:
//   - Push: lock-free CAS, multiple producers OK
//   - Consume: single consumer (frame loop)
//   - Published flags prevent reading partial writes
//
// Overflow: oldest events overwritten when full
type EventQueue struct {
	events    [parameter.EventQueueSize]Event
	published [parameter.EventQueueSize]atomic.Bool
	head      atomic.Uint64 // Read index
	tail      atomic.Uint64 // Write index
	frame     atomic.Int64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// SetFrame stamps subsequently emitted events with frame
func (eq *EventQueue) SetFrame(frame int64) {
	eq.frame.Store(frame)
}

// Emit pushes a typed event stamped with the current frame
func (eq *EventQueue) Emit(t EventType, payload any) {
	eq.Push(Event{Type: t, Payload: payload, Frame: eq.frame.Load()})
}

// Push adds an event. Safe for concurrent producers
func (eq *EventQueue) Push(ev Event) {
	for {
		tail := eq.tail.Load()
		next := tail + 1
		if !eq.tail.CompareAndSwap(tail, next) {
			continue
		}

		idx := tail & parameter.EventBufferMask
		eq.events[idx] = ev
		eq.published[idx].Store(true) // After the write

		// Drop the oldest unread event when lapping the reader
		head := eq.head.Load()
		if next-head > parameter.EventQueueSize {
			eq.head.CompareAndSwap(head, next-parameter.EventQueueSize)
		}
		return
	}
}

// Consume returns all pending events in FIFO order and advances head
// Stops at the first slot a producer has claimed but not yet published
func (eq *EventQueue) Consume() []Event {
	for {
		head := eq.head.Load()
		tail := eq.tail.Load()
		if tail == head {
			return nil
		}

		n := tail - head
		if n > parameter.EventQueueSize {
			n = parameter.EventQueueSize
			head = tail - parameter.EventQueueSize
		}

		out := make([]Event, 0, n)
		for i := uint64(0); i < n; i++ {
			idx := (head + i) & parameter.EventBufferMask
			if !eq.published[idx].Load() {
				break
			}
			out = append(out, eq.events[idx])
			eq.published[idx].Store(false)
		}

		if eq.head.CompareAndSwap(head, head+uint64(len(out))) {
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}
}

// Len returns the approximate pending count
func (eq *EventQueue) Len() int {
	head := eq.head.Load()
	tail := eq.tail.Load()
	if tail <= head {
		return 0
	}
	return int(min(tail-head, parameter.EventQueueSize))
}

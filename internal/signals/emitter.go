package signals

import (
	"sync"
)

// HandlerID identifies one subscription on a Source. Zero is never issued.
type HandlerID uint64

// Handler is invoked with the signal's subject, usually the window the
// signal concerns. Subjects may be nil for signals without one.
type Handler func(subject any)

// Source is anything a handler can be connected to.
type Source interface {
	// Connect subscribes h to event and returns the subscription handle.
	Connect(event string, h Handler) HandlerID
	// Disconnect removes a subscription. It reports false for handles that
	// are unknown or were already disconnected.
	Disconnect(id HandlerID) bool
}

type subscription struct {
	id      HandlerID
	event   string
	handler Handler
}

// Emitter is a Source that dispatches signals synchronously in connection order.
type Emitter struct {
	mu     sync.Mutex
	nextID HandlerID
	subs   []subscription
}

// Connect subscribes h to event.
func (e *Emitter) Connect(event string, h Handler) HandlerID {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	e.subs = append(e.subs, subscription{id: e.nextID, event: event, handler: h})
	return e.nextID
}

// Disconnect removes the subscription with the given handle.
func (e *Emitter) Disconnect(id HandlerID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, s := range e.subs {
		if s.id == id {
			e.subs = append(e.subs[:i], e.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Emit calls every handler connected to event. Handlers connected or
// disconnected while emitting do not affect the current emission, except that
// a handler disconnected mid-emission is skipped.
func (e *Emitter) Emit(event string, subject any) {
	e.mu.Lock()
	var pending []subscription
	for _, s := range e.subs {
		if s.event == event {
			pending = append(pending, s)
		}
	}
	e.mu.Unlock()

	for _, s := range pending {
		if !e.connected(s.id) {
			continue
		}
		s.handler(subject)
	}
}

// HandlerCount returns the number of handlers connected to event.
// An empty event counts every handler.
func (e *Emitter) HandlerCount(event string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if event == "" {
		return len(e.subs)
	}
	n := 0
	for _, s := range e.subs {
		if s.event == event {
			n++
		}
	}
	return n
}

func (e *Emitter) connected(id HandlerID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, s := range e.subs {
		if s.id == id {
			return true
		}
	}
	return false
}

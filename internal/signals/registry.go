package signals

import (
	"log/slog"
)

// Slot is a host-owned default handler connected to some source.
// ID is reassigned when the handler is reconnected.
type Slot struct {
	ID      HandlerID
	Handler Handler
}

// SlotOwner exposes the named default-handler slots of a host object.
type SlotOwner interface {
	// Slot returns the named slot, or nil if the owner has no such slot.
	Slot(name string) *Slot
}

// Connection records one subscription made through a Registry.
type Connection struct {
	Source   Source
	Event    string
	Handler  Handler
	SlotName string
	ID       HandlerID

	// Original is the slot taken over by this connection, if any.
	Original *Slot
}

// Registry owns every Connection created while attentiond is enabled and is
// the only place subscriptions are torn down.
type Registry struct {
	owner  SlotOwner
	logger *slog.Logger
	conns  []*Connection
}

// NewRegistry creates a Registry. owner may be nil when no takeover is needed.
func NewRegistry(owner SlotOwner, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		owner:  owner,
		logger: logger,
	}
}

// Subscribe connects handler to event on source. If takeoverSlot names a slot
// of the registry's owner, that default handler is disconnected from source
// first and restored by TeardownAll.
func (r *Registry) Subscribe(source Source, event string, handler Handler, takeoverSlot string) *Connection {
	conn := &Connection{
		Source:   source,
		Event:    event,
		Handler:  handler,
		SlotName: takeoverSlot,
	}

	if takeoverSlot != "" && r.owner != nil {
		if slot := r.owner.Slot(takeoverSlot); slot != nil {
			if !source.Disconnect(slot.ID) {
				r.logger.Debug("default handler already disconnected", "slot", takeoverSlot, "event", event)
			}
			conn.Original = slot
		}
	}

	conn.ID = source.Connect(event, handler)
	r.conns = append(r.conns, conn)
	return conn
}

// UnsubscribeMatching disconnects and forgets every connection on source.
// When event is non-empty only connections to that event are removed.
func (r *Registry) UnsubscribeMatching(source Source, event string) int {
	removed := 0
	for i := len(r.conns) - 1; i >= 0; i-- {
		conn := r.conns[i]
		if conn.Source != source || (event != "" && conn.Event != event) {
			continue
		}
		r.disconnect(conn)
		r.conns = append(r.conns[:i], r.conns[i+1:]...)
		removed++
	}
	return removed
}

// TeardownAll disconnects every connection and reconnects any taken-over
// default handler to the source and event it was taken from. The registry is
// empty afterwards; calling it again has no effect.
func (r *Registry) TeardownAll() {
	for _, conn := range r.conns {
		r.disconnect(conn)
		if conn.Original != nil {
			conn.Original.ID = conn.Source.Connect(conn.Event, conn.Original.Handler)
			r.logger.Debug("restored default handler", "slot", conn.SlotName, "event", conn.Event)
		}
	}
	r.conns = nil
}

// Len returns the number of live connections.
func (r *Registry) Len() int {
	return len(r.conns)
}

func (r *Registry) disconnect(conn *Connection) {
	if !conn.Source.Disconnect(conn.ID) {
		r.logger.Debug("stale subscription handle", "event", conn.Event, "id", conn.ID)
	}
}

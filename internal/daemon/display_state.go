package daemon

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// DisplayStatus represents the status of a notification source on the server.
type DisplayStatus int

const (
	// DisplayStatusPending means the notification has not been accepted by the server yet.
	DisplayStatusPending DisplayStatus = iota
	// DisplayStatusActive means the notification is currently displayed.
	DisplayStatusActive
	// DisplayStatusDismissed means the user dismissed the notification.
	DisplayStatusDismissed
	// DisplayStatusClosed means the notification was withdrawn by attentiond.
	DisplayStatusClosed
)

// String returns the string representation of DisplayStatus.
func (s DisplayStatus) String() string {
	switch s {
	case DisplayStatusPending:
		return "pending"
	case DisplayStatusActive:
		return "active"
	case DisplayStatusDismissed:
		return "dismissed"
	case DisplayStatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// DisplayState tracks one source's notification on the server.
// This maps between the source ULID and the D-Bus notification ID.
type DisplayState struct {
	SourceID  ulid.ULID
	DBusID    uint32
	Status    DisplayStatus
	Source    *Source
	CreatedAt time.Time
	ClosedAt  time.Time
}

// SourceIndex maps source IDs to D-Bus notification IDs so server signals can
// be routed back to the source that sent the notification.
type SourceIndex struct {
	mu sync.RWMutex

	bySourceID map[ulid.ULID]*DisplayState
	byDBusID   map[uint32]ulid.ULID
}

// NewSourceIndex creates an empty SourceIndex.
func NewSourceIndex() *SourceIndex {
	return &SourceIndex{
		bySourceID: make(map[ulid.ULID]*DisplayState),
		byDBusID:   make(map[uint32]ulid.ULID),
	}
}

// Register records that src's notification has the given D-Bus ID. A source
// re-registering with a new D-Bus ID replaces its old mapping.
func (m *SourceIndex) Register(src *Source, dbusID uint32) *DisplayState {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, exists := m.bySourceID[src.ID()]; exists {
		delete(m.byDBusID, old.DBusID)
		old.DBusID = dbusID
		old.Status = DisplayStatusActive
		m.byDBusID[dbusID] = src.ID()
		return old
	}

	state := &DisplayState{
		SourceID:  src.ID(),
		DBusID:    dbusID,
		Status:    DisplayStatusActive,
		Source:    src,
		CreatedAt: time.Now(),
	}
	m.bySourceID[src.ID()] = state
	m.byDBusID[dbusID] = src.ID()
	return state
}

// GetByDBusID returns the display state for a D-Bus ID, or nil.
func (m *SourceIndex) GetByDBusID(dbusID uint32) *DisplayState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, exists := m.byDBusID[dbusID]
	if !exists {
		return nil
	}
	return m.bySourceID[id]
}

// GetBySourceID returns the display state for a source ID, or nil.
func (m *SourceIndex) GetBySourceID(id ulid.ULID) *DisplayState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bySourceID[id]
}

// SetStatus updates the status of a source's notification.
func (m *SourceIndex) SetStatus(id ulid.ULID, status DisplayStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, exists := m.bySourceID[id]
	if !exists {
		return
	}
	state.Status = status
	if status == DisplayStatusDismissed || status == DisplayStatusClosed {
		state.ClosedAt = time.Now()
	}
}

// Remove removes a source's entry.
func (m *SourceIndex) Remove(id ulid.ULID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, exists := m.bySourceID[id]
	if !exists {
		return
	}
	delete(m.byDBusID, state.DBusID)
	delete(m.bySourceID, id)
}

// Count returns the number of tracked sources.
func (m *SourceIndex) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bySourceID)
}

// ActiveCount returns the number of sources whose notification is showing.
func (m *SourceIndex) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, state := range m.bySourceID {
		if state.Status == DisplayStatusActive {
			count++
		}
	}
	return count
}

// Package window defines the window surface attentiond consumes and tracks
// which windows were just mapped.
package window

import (
	"github.com/jmylchreest/attentiond/internal/signals"
)

// Signal names emitted by hosts.
const (
	// Window manager signals.
	SignalMap = "map"

	// Per-window signals.
	SignalUnmanaged        = "unmanaged"
	SignalTitleChanged     = "title-changed"
	SignalAttentionChanged = "attention-changed"

	// Display signals.
	SignalDemandsAttention = "window-demands-attention"
	SignalMarkedUrgent     = "window-marked-urgent"
	SignalFocusChanged     = "focus-window-changed"
)

// Window is a managed top-level window. Implementations must be pointer-like:
// windows are compared by identity.
type Window interface {
	signals.Source

	ID() string
	Title() string
	HasFocus() bool
	IsSkipTaskbar() bool

	// DemandsAttention and Urgent are host-maintained flags.
	DemandsAttention() bool
	Urgent() bool
}

// FromSubject extracts the window carried by a signal, if any.
func FromSubject(subject any) (Window, bool) {
	w, ok := subject.(Window)
	if !ok || w == nil {
		return nil, false
	}
	return w, true
}

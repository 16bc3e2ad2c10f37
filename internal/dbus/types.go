package dbus

import (
	"strings"

	"github.com/godbus/dbus/v5"
)

// Urgency levels from the freedesktop.org notification specification.
const (
	UrgencyLow      byte = 0
	UrgencyNormal   byte = 1
	UrgencyCritical byte = 2
)

// DefaultActionKey is the action invoked when the notification body is clicked.
const DefaultActionKey = "default"

// CloseReason represents the reason for closing a notification.
// These values are defined by the freedesktop.org notification specification.
type CloseReason uint32

const (
	// CloseReasonExpired indicates the notification expired (timeout reached).
	CloseReasonExpired CloseReason = 1
	// CloseReasonDismissed indicates the user dismissed the notification.
	CloseReasonDismissed CloseReason = 2
	// CloseReasonClosed indicates the notification was closed via CloseNotification.
	CloseReasonClosed CloseReason = 3
	// CloseReasonUndefined is reserved/undefined per the spec.
	CloseReasonUndefined CloseReason = 4
)

// String returns the string representation of the close reason.
func (r CloseReason) String() string {
	switch r {
	case CloseReasonExpired:
		return "expired"
	case CloseReasonDismissed:
		return "dismissed"
	case CloseReasonClosed:
		return "closed"
	case CloseReasonUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// Action represents a notification action with key and label.
type Action struct {
	Key   string
	Label string
}

// Notification is an outgoing org.freedesktop.Notifications.Notify call.
type Notification struct {
	AppName       string
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Actions       []Action
	Hints         map[string]dbus.Variant
	ExpireTimeout int32 // -1 = server default, 0 = never expire
}

// FlatActions converts actions to the alternating key/label array D-Bus expects.
func (n *Notification) FlatActions() []string {
	out := make([]string, 0, len(n.Actions)*2)
	for _, a := range n.Actions {
		out = append(out, a.Key, a.Label)
	}
	return out
}

// SetHint sets a hint, allocating the map on first use.
func (n *Notification) SetHint(key string, value any) {
	if n.Hints == nil {
		n.Hints = make(map[string]dbus.Variant)
	}
	n.Hints[key] = dbus.MakeVariant(value)
}

// Urgency extracts the urgency hint from the notification.
// Returns UrgencyNormal if not specified.
func (n *Notification) Urgency() byte {
	if v, ok := n.Hints["urgency"]; ok {
		if b, ok := v.Value().(byte); ok {
			return b
		}
	}
	return UrgencyNormal
}

// DesktopEntry extracts the desktop-entry hint.
func (n *Notification) DesktopEntry() string {
	if v, ok := n.Hints["desktop-entry"]; ok {
		if s, ok := v.Value().(string); ok {
			return s
		}
	}
	return ""
}

// Resident returns true if the resident hint is set.
// Resident notifications should not be auto-removed after an action is invoked.
func (n *Notification) Resident() bool {
	return n.boolHint("resident")
}

// Transient returns true if the transient hint is set.
func (n *Notification) Transient() bool {
	return n.boolHint("transient")
}

func (n *Notification) boolHint(key string) bool {
	if v, ok := n.Hints[key]; ok {
		if b, ok := v.Value().(bool); ok {
			return b
		}
	}
	return false
}

// DesktopEntryHint strips the ".desktop" suffix from an application ID, as
// the desktop-entry hint expects the bare entry name.
func DesktopEntryHint(appID string) string {
	return strings.TrimSuffix(appID, ".desktop")
}

// LauncherURI returns the application:// URI docks use to key launcher entries.
func LauncherURI(appID string) string {
	if !strings.HasSuffix(appID, ".desktop") {
		appID += ".desktop"
	}
	return "application://" + appID
}

// ServerInfo contains information about the notification server.
type ServerInfo struct {
	Name        string
	Vendor      string
	Version     string
	SpecVersion string
}

package hypr

import (
	"strings"
)

// Event names consumed from the event socket.
const (
	EventOpenWindow   = "openwindow"
	EventCloseWindow  = "closewindow"
	EventActiveWindow = "activewindowv2"
	EventUrgent       = "urgent"
	EventWindowTitle  = "windowtitlev2"
)

// Event is one line from the event socket: NAME>>DATA.
type Event struct {
	Name string
	Data string
}

// ParseEvent splits an event socket line. It reports false for lines that
// are not events.
func ParseEvent(line string) (Event, bool) {
	name, data, ok := strings.Cut(strings.TrimRight(line, "\r\n"), ">>")
	if !ok || name == "" {
		return Event{}, false
	}
	return Event{Name: name, Data: data}, true
}

// Fields splits the event data on commas into at most n fields. The last
// field keeps any remaining commas, which matters for window titles.
func (e Event) Fields(n int) []string {
	return strings.SplitN(e.Data, ",", n)
}

// normalizeAddress returns a window address in the 0x-prefixed lowercase form
// hyprctl uses. Event payloads omit the prefix.
func normalizeAddress(addr string) string {
	addr = strings.ToLower(strings.TrimSpace(addr))
	if addr == "" {
		return ""
	}
	if !strings.HasPrefix(addr, "0x") {
		addr = "0x" + addr
	}
	return addr
}

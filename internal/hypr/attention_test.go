package hypr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/attentiond/internal/attention"
	"github.com/jmylchreest/attentiond/internal/daemon"
	"github.com/jmylchreest/attentiond/internal/dbus"
)

type recordingClient struct {
	sent []*dbus.Notification
}

func (c *recordingClient) Notify(n *dbus.Notification) (uint32, error) {
	c.sent = append(c.sent, n)
	return uint32(len(c.sent)), nil
}

func (c *recordingClient) CloseNotification(uint32) error { return nil }

// enabledHandler wires a synced Display to an enabled attention handler the
// way the daemon does.
func enabledHandler(t *testing.T) (*Display, *fakeCommander, *recordingClient) {
	t.Helper()
	isolateDataDirs(t)

	d, cmd := syncedDisplay(t)
	cmd.replies["dispatch focuswindow address:0xeee"] = "ok"
	client := &recordingClient{}
	apps := NewApps(d, nil)

	fallback := daemon.NewDefaultAttentionHandler(client, apps, daemon.NotifierOptions{}, nil)
	fallback.Attach(&d.Signals)

	h := attention.New(nil)
	h.Enable(attention.Host{
		Display:        &d.Signals,
		WindowManager:  &d.WM,
		DefaultHandler: fallback,
		Tracker:        apps,
		Notifier:       daemon.NewNotifier(client, daemon.NotifierOptions{AppName: "attentiond"}, nil),
		Activator:      d,
	})
	require.True(t, h.Enabled())
	t.Cleanup(h.Disable)
	return d, cmd, client
}

func TestAttention_FocusedNewWindowIsNotifiedLater(t *testing.T) {
	d, cmd, client := enabledHandler(t)

	d.Apply(Event{Name: EventOpenWindow, Data: "ddd,1,kitty,chat"})
	d.Apply(Event{Name: EventActiveWindow, Data: "ddd"})
	d.Apply(Event{Name: EventActiveWindow, Data: "aaa"})
	d.Apply(Event{Name: EventUrgent, Data: "ddd"})

	require.Len(t, client.sent, 1)
	assert.Equal(t, "kitty", client.sent[0].Summary)
	assert.NotContains(t, cmd.requests, "dispatch focuswindow address:0xddd")
}

func TestAttention_FocusAnnouncedBeforeOpenWindow(t *testing.T) {
	d, cmd, client := enabledHandler(t)

	d.Apply(Event{Name: EventActiveWindow, Data: "ddd"})
	d.Apply(Event{Name: EventOpenWindow, Data: "ddd,1,kitty,chat"})
	d.Apply(Event{Name: EventActiveWindow, Data: "aaa"})
	d.Apply(Event{Name: EventUrgent, Data: "ddd"})

	assert.Len(t, client.sent, 1)
	assert.NotContains(t, cmd.requests, "dispatch focuswindow address:0xddd")
}

func TestAttention_UnfocusedNewWindowIsFocused(t *testing.T) {
	d, cmd, client := enabledHandler(t)

	d.Apply(Event{Name: EventOpenWindow, Data: "eee,1,kitty,chat"})
	d.Apply(Event{Name: EventUrgent, Data: "eee"})

	assert.Contains(t, cmd.requests, "dispatch focuswindow address:0xeee")
	assert.Empty(t, client.sent)
}

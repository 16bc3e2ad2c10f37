package daemon

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jmylchreest/attentiond/internal/attention"
	"github.com/jmylchreest/attentiond/internal/dbus"
	"github.com/jmylchreest/attentiond/internal/signals"
	"github.com/jmylchreest/attentiond/internal/window"
)

// DefaultAttentionHandler is the host's own reaction to attention demands:
// a short-lived notification per demand, rate limited per window. It owns the
// slots the attention.Handler takes over while enabled.
type DefaultAttentionHandler struct {
	mu     sync.Mutex
	logger *slog.Logger

	client  NotificationClient
	tracker attention.AppTracker
	opts    NotifierOptions

	slots map[string]*signals.Slot

	// Rate limiting
	lastNotifyTime map[string]time.Time // window ID -> last notification time
	minInterval    time.Duration
}

var _ signals.SlotOwner = (*DefaultAttentionHandler)(nil)

// NewDefaultAttentionHandler creates a DefaultAttentionHandler.
func NewDefaultAttentionHandler(client NotificationClient, tracker attention.AppTracker, opts NotifierOptions, logger *slog.Logger) *DefaultAttentionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultAttentionHandler{
		logger:         logger,
		client:         client,
		tracker:        tracker,
		opts:           opts,
		slots:          make(map[string]*signals.Slot),
		lastNotifyTime: make(map[string]time.Time),
		minInterval:    5 * time.Second, // Don't repeat for the same window within 5 seconds
	}
}

// SetMinInterval sets the minimum interval between notifications for one window.
func (d *DefaultAttentionHandler) SetMinInterval(interval time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.minInterval = interval
}

// SetOptions changes how notifications look.
func (d *DefaultAttentionHandler) SetOptions(opts NotifierOptions) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.opts = opts
}

// Attach connects the handler to display's attention signals.
func (d *DefaultAttentionHandler) Attach(display signals.Source) {
	for _, name := range []string{attention.SlotDemandsAttention, attention.SlotMarkedUrgent} {
		slot := &signals.Slot{Handler: d.onDemand}
		slot.ID = display.Connect(name, slot.Handler)
		d.slots[name] = slot
	}
}

// Slot returns the named slot.
func (d *DefaultAttentionHandler) Slot(name string) *signals.Slot {
	return d.slots[name]
}

func (d *DefaultAttentionHandler) onDemand(subject any) {
	w, ok := window.FromSubject(subject)
	if !ok || w.HasFocus() {
		return
	}
	d.Notify(w)
}

// Notify sends a transient notification for w unless one was sent recently.
func (d *DefaultAttentionHandler) Notify(w window.Window) {
	now := time.Now()
	d.mu.Lock()
	// Entries past the interval no longer limit anything.
	for id, sent := range d.lastNotifyTime {
		if now.Sub(sent) >= d.minInterval {
			delete(d.lastNotifyTime, id)
		}
	}
	if _, ok := d.lastNotifyTime[w.ID()]; ok {
		d.mu.Unlock()
		d.logger.Debug("default attention notification rate-limited", "window", w.ID())
		return
	}
	d.lastNotifyTime[w.ID()] = now
	opts := d.opts
	d.mu.Unlock()

	summary := w.Title()
	entry := ""
	if app := d.tracker.WindowApp(w); app != nil {
		summary = app.Name()
		entry = dbus.DesktopEntryHint(app.ID())
	}

	n := &dbus.Notification{
		AppName:       opts.AppName,
		AppIcon:       opts.Icon,
		Summary:       summary,
		Body:          "“" + w.Title() + "” needs attention",
		ExpireTimeout: -1,
	}
	n.SetHint("urgency", dbus.UrgencyNormal)
	n.SetHint("transient", true)
	if entry != "" {
		n.SetHint("desktop-entry", entry)
	}

	if _, err := d.client.Notify(n); err != nil {
		d.logger.Warn("failed to send attention notification", "window", w.ID(), "error", err)
	}
}

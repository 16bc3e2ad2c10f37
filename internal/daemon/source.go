package daemon

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/attentiond/internal/attention"
	"github.com/jmylchreest/attentiond/internal/dbus"
	"github.com/jmylchreest/attentiond/internal/signals"
	"github.com/jmylchreest/attentiond/internal/window"
)

// NotificationClient is the part of dbus.Client a Notifier needs.
type NotificationClient interface {
	Notify(n *dbus.Notification) (uint32, error)
	CloseNotification(id uint32) error
}

// NotifierOptions controls how attention notifications look.
type NotifierOptions struct {
	AppName string
	Icon    string
}

// Notifier is the attention.Notifier backed by a freedesktop notification server.
type Notifier struct {
	client NotificationClient
	index  *SourceIndex
	opts   NotifierOptions
	logger *slog.Logger
}

var _ attention.Notifier = (*Notifier)(nil)

// NewNotifier creates a Notifier sending through client.
func NewNotifier(client NotificationClient, opts NotifierOptions, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		client: client,
		index:  NewSourceIndex(),
		opts:   opts,
		logger: logger,
	}
}

// SetOptions changes how notifications sent from now on look.
func (n *Notifier) SetOptions(opts NotifierOptions) {
	n.opts = opts
}

// Index returns the notifier's source index.
func (n *Notifier) Index() *SourceIndex {
	return n.index
}

// TitleAndBanner returns the application name and a one-line banner for w.
func (n *Notifier) TitleAndBanner(app attention.App, w window.Window) (string, string) {
	return app.Name(), fmt.Sprintf("“%s” is ready", w.Title())
}

// NewSource creates an unshown source for (app, w).
func (n *Notifier) NewSource(app attention.App, w window.Window) attention.NotificationSource {
	return &Source{
		id:        ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader),
		notifier:  n,
		app:       app,
		win:       w,
		createdAt: time.Now(),
	}
}

// HandleAction routes an ActionInvoked signal to its source.
func (n *Notifier) HandleAction(dbusID uint32, actionKey string) {
	state := n.index.GetByDBusID(dbusID)
	if state == nil {
		return
	}
	if actionKey == dbus.DefaultActionKey {
		state.Source.activate()
	}
}

// HandleClosed routes a NotificationClosed signal to its source. A source
// whose notification the user dismissed is destroyed. Otherwise the source
// stays alive and its next update shows a fresh notification.
func (n *Notifier) HandleClosed(dbusID uint32, reason dbus.CloseReason) {
	state := n.index.GetByDBusID(dbusID)
	if state == nil {
		return
	}
	if reason == dbus.CloseReasonDismissed {
		n.index.SetStatus(state.SourceID, DisplayStatusDismissed)
		state.Source.Destroy()
		return
	}
	n.index.SetStatus(state.SourceID, DisplayStatusClosed)
	n.logger.Debug("attention notification closed by server", "source", state.SourceID, "reason", reason.String())
}

type trackedSignal struct {
	source signals.Source
	id     signals.HandlerID
}

// Source is one persistent attention notification for a window.
type Source struct {
	id       ulid.ULID
	notifier *Notifier
	app      attention.App
	win      window.Window

	dbusID      uint32
	onActivated func()
	sync        func()
	tracked     []trackedSignal
	onDestroy   func()
	destroyed   bool
	createdAt   time.Time
}

var _ attention.NotificationSource = (*Source)(nil)

// ID returns the source's unique ID.
func (s *Source) ID() ulid.ULID { return s.id }

// DBusID returns the server-side notification ID, zero if never shown.
func (s *Source) DBusID() uint32 { return s.dbusID }

// Window returns the window the source is about.
func (s *Source) Window() window.Window { return s.win }

// Show sends the notification.
func (s *Source) Show(title, banner string, onActivated func()) {
	s.onActivated = onActivated
	s.send(title, banner)
}

// Update replaces the notification text in place.
func (s *Source) Update(title, banner string) {
	if s.destroyed {
		return
	}
	s.send(title, banner)
}

func (s *Source) send(title, banner string) {
	n := &dbus.Notification{
		AppName:       s.notifier.opts.AppName,
		ReplacesID:    s.dbusID,
		AppIcon:       s.notifier.opts.Icon,
		Summary:       title,
		Body:          banner,
		Actions:       []dbus.Action{{Key: dbus.DefaultActionKey, Label: "Activate"}},
		ExpireTimeout: 0,
	}
	n.SetHint("urgency", dbus.UrgencyNormal)
	n.SetHint("resident", true)
	n.SetHint("category", "im")
	if entry := dbus.DesktopEntryHint(s.app.ID()); entry != "" {
		n.SetHint("desktop-entry", entry)
	}

	id, err := s.notifier.client.Notify(n)
	if err != nil {
		s.notifier.logger.Warn("failed to send attention notification", "source", s.id, "window", s.win.ID(), "error", err)
		return
	}
	s.dbusID = id
	s.notifier.index.Register(s, id)
}

// SetSync installs the callback Sync runs.
func (s *Source) SetSync(sync func()) { s.sync = sync }

// Sync runs the sync callback.
func (s *Source) Sync() {
	if s.destroyed || s.sync == nil {
		return
	}
	s.sync()
}

// SetOnDestroy installs the callback Destroy runs last.
func (s *Source) SetOnDestroy(fn func()) { s.onDestroy = fn }

// Track takes ownership of a subscription; it is released by Destroy.
func (s *Source) Track(source signals.Source, id signals.HandlerID) {
	if s.destroyed {
		source.Disconnect(id)
		return
	}
	s.tracked = append(s.tracked, trackedSignal{source: source, id: id})
}

// Destroy releases every tracked subscription and withdraws the notification.
func (s *Source) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true

	for _, t := range s.tracked {
		t.source.Disconnect(t.id)
	}
	s.tracked = nil

	if state := s.notifier.index.GetBySourceID(s.id); state != nil && state.Status == DisplayStatusActive {
		if err := s.notifier.client.CloseNotification(s.dbusID); err != nil {
			s.notifier.logger.Debug("failed to close notification", "id", s.dbusID, "error", err)
		}
	}
	s.notifier.index.Remove(s.id)

	s.notifier.logger.Debug("attention source destroyed",
		"source", s.id, "window", s.win.ID(), "opened", humanize.Time(s.createdAt))

	if s.onDestroy != nil {
		s.onDestroy()
	}
}

// Destroyed reports whether Destroy has run.
func (s *Source) Destroyed() bool { return s.destroyed }

func (s *Source) activate() {
	if s.destroyed || s.onActivated == nil {
		return
	}
	s.onActivated()
}

package attention

import (
	"log/slog"

	"github.com/jmylchreest/attentiond/internal/set"
	"github.com/jmylchreest/attentiond/internal/signals"
	"github.com/jmylchreest/attentiond/internal/window"
)

// Handler arbitrates attention demands: freshly mapped windows are focused,
// every other demand becomes a notification plus a dock highlight.
//
// A Handler is not safe for concurrent use. The host delivers every signal
// from a single dispatch loop.
type Handler struct {
	logger *slog.Logger

	host     Host
	enabled  bool
	registry *signals.Registry
	windows  *window.Tracker

	highlights *set.Set[string]
	sources    map[window.Window]*liveSource
}

// liveSource is a notification source together with the application it
// highlights.
type liveSource struct {
	NotificationSource
	appID string
}

// New creates a disabled Handler.
func New(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:     logger,
		highlights: set.New[string](),
		sources:    make(map[window.Window]*liveSource),
	}
}

// Enable takes over the host's default attention handling.
func (h *Handler) Enable(host Host) {
	if h.enabled {
		return
	}
	h.host = host
	h.registry = signals.NewRegistry(host.DefaultHandler, h.logger)
	h.windows = window.NewTracker(h.registry, h.logger)

	h.registry.Subscribe(host.Display, window.SignalDemandsAttention, h.onDemand, SlotDemandsAttention)
	h.registry.Subscribe(host.Display, window.SignalMarkedUrgent, h.onDemand, SlotMarkedUrgent)
	h.registry.Subscribe(host.Display, window.SignalFocusChanged, h.onFocus, "")
	if host.WindowManager != nil {
		h.registry.Subscribe(host.WindowManager, window.SignalMap, func(subject any) {
			if w, ok := window.FromSubject(subject); ok {
				h.windows.OnWindowMapped(w)
			}
		}, "")
	}

	h.enabled = true
	h.logger.Info("attention handling enabled", "connections", h.registry.Len())
}

// Disable releases every subscription, restores the host default handler
// and withdraws all highlights and notifications. It is safe to call at any
// time, including more than once.
func (h *Handler) Disable() {
	if !h.enabled {
		return
	}
	h.registry.TeardownAll()

	for _, appID := range h.highlights.Items() {
		h.ClearUrgent(appID)
	}
	for _, src := range h.liveSources() {
		h.destroySource(src.NotificationSource)
	}
	h.windows.Reset()

	h.enabled = false
	h.logger.Info("attention handling disabled")
}

// Enabled reports whether the handler currently owns attention handling.
func (h *Handler) Enabled() bool {
	return h.enabled
}

func (h *Handler) onDemand(subject any) {
	w, ok := window.FromSubject(subject)
	if !ok {
		return
	}
	h.OnWindowDemandsAttention(w)
}

func (h *Handler) onFocus(subject any) {
	if w, ok := window.FromSubject(subject); ok && h.enabled {
		h.windows.OnWindowFocused(w)
	}
	h.OnFocusChanged()
}

// OnWindowDemandsAttention handles one attention demand for w.
func (h *Handler) OnWindowDemandsAttention(w window.Window) {
	if !h.enabled || w == nil || w.HasFocus() || w.IsSkipTaskbar() {
		return
	}

	if h.windows.ConsumeIfNew(w) {
		h.logger.Debug("focusing newly mapped window", "window", w.ID())
		h.host.Activator.ActivateWindow(w)
		return
	}

	app := h.host.Tracker.WindowApp(w)
	if app == nil || app.ID() == "" {
		h.logger.Debug("attention demand from window without application", "window", w.ID())
		return
	}
	appID := app.ID()

	src := h.notify(app, w)
	src.SetSync(func() { h.SyncNotification(appID, src) })
	h.highlight(appID)

	h.logger.Debug("window demands attention", "window", w.ID(), "app", appID)
}

// OnFocusChanged resynchronises live notifications and clears the focused
// application's highlight.
func (h *Handler) OnFocusChanged() {
	if !h.enabled {
		return
	}
	for _, src := range h.liveSources() {
		src.Sync()
	}

	app := h.host.Tracker.FocusApp()
	if app == nil {
		return
	}
	h.ClearUrgent(app.ID())
}

// notify returns the live source for w, refreshing its text, or creates and
// shows a new one.
func (h *Handler) notify(app App, w window.Window) NotificationSource {
	title, banner := h.host.Notifier.TitleAndBanner(app, w)

	if ls, ok := h.sources[w]; ok && !ls.Destroyed() {
		ls.Update(title, banner)
		return ls.NotificationSource
	}

	src := h.host.Notifier.NewSource(app, w)
	ls := &liveSource{NotificationSource: src, appID: app.ID()}
	h.sources[w] = ls
	src.SetOnDestroy(func() { h.sourceDestroyed(ls) })

	src.Show(title, banner, func() {
		h.host.Activator.ActivateWindow(w)
	})

	src.Track(w, w.Connect(window.SignalTitleChanged, func(any) {
		title, banner := h.host.Notifier.TitleAndBanner(app, w)
		src.Update(title, banner)
	}))
	src.Track(w, w.Connect(window.SignalAttentionChanged, func(any) {
		src.Sync()
	}))
	src.Track(w, w.Connect(window.SignalUnmanaged, func(any) {
		h.ClearUrgent(app.ID())
		h.destroySource(src)
	}))

	return src
}

func (h *Handler) destroySource(src NotificationSource) {
	if !src.Destroyed() {
		src.Destroy()
	}
	if w := src.Window(); w != nil {
		if ls, ok := h.sources[w]; ok && ls.NotificationSource == src {
			delete(h.sources, w)
		}
	}
}

// sourceDestroyed keeps the highlight in step with sources destroyed from
// outside the handler, e.g. dismissed by the user: the application stays
// highlighted only while another of its sources is live.
func (h *Handler) sourceDestroyed(ls *liveSource) {
	if w := ls.Window(); w != nil && h.sources[w] == ls {
		delete(h.sources, w)
	}
	for _, other := range h.liveSources() {
		if other.appID == ls.appID {
			return
		}
	}
	h.ClearUrgent(ls.appID)
}

// liveSources returns the sources still showing and drops any destroyed ones.
func (h *Handler) liveSources() []*liveSource {
	out := make([]*liveSource, 0, len(h.sources))
	for w, ls := range h.sources {
		if ls.Destroyed() {
			delete(h.sources, w)
			continue
		}
		out = append(out, ls)
	}
	return out
}

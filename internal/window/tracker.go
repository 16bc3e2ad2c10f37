package window

import (
	"log/slog"

	"github.com/jmylchreest/attentiond/internal/set"
	"github.com/jmylchreest/attentiond/internal/signals"
)

// Tracker remembers windows that were mapped but have not yet asked for
// attention. The host treats mapping a window as an attention demand, and
// this is the only way to tell the two apart.
type Tracker struct {
	registry *signals.Registry
	logger   *slog.Logger
	fresh    *set.Set[Window]
}

// NewTracker creates a Tracker that subscribes through registry.
func NewTracker(registry *signals.Registry, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		registry: registry,
		logger:   logger,
		fresh:    set.New[Window](),
	}
}

// OnWindowMapped marks w as new and watches for it being unmanaged.
func (t *Tracker) OnWindowMapped(w Window) {
	if w == nil {
		return
	}
	if !t.fresh.Add(w) {
		return
	}
	t.registry.Subscribe(w, SignalUnmanaged, func(subject any) {
		if uw, ok := FromSubject(subject); ok {
			t.OnWindowUnmanaged(uw)
			return
		}
		t.OnWindowUnmanaged(w)
	}, "")
	t.logger.Debug("window mapped", "window", w.ID())
}

// OnWindowUnmanaged forgets w and releases its unmanaged subscription.
func (t *Tracker) OnWindowUnmanaged(w Window) {
	t.fresh.Remove(w)
	t.registry.UnsubscribeMatching(w, "")
	t.logger.Debug("window unmanaged", "window", w.ID())
}

// OnWindowFocused forgets w. A window that has held focus has been seen, so
// its next demand is a real one even if the host never raised a demand at
// map time.
func (t *Tracker) OnWindowFocused(w Window) {
	if !t.fresh.Remove(w) {
		return
	}
	t.registry.UnsubscribeMatching(w, SignalUnmanaged)
	t.logger.Debug("new window focused", "window", w.ID())
}

// ConsumeIfNew reports whether w was newly mapped, removing it so that it is
// classified as new at most once. The caller is expected to focus it.
func (t *Tracker) ConsumeIfNew(w Window) bool {
	return t.fresh.Remove(w)
}

// IsNew reports whether w is waiting for its first attention demand.
func (t *Tracker) IsNew(w Window) bool {
	return t.fresh.Has(w)
}

// Len returns the number of tracked new windows.
func (t *Tracker) Len() int {
	return t.fresh.Len()
}

// Reset forgets every tracked window. Subscriptions are left to the registry.
func (t *Tracker) Reset() {
	t.fresh.Clear()
}

package attention

import (
	"github.com/jmylchreest/attentiond/internal/dock"
)

// highlight records appID as urgent and marks its dock icon. Repeated calls
// for the same application are no-ops.
func (h *Handler) highlight(appID string) {
	if !h.highlights.Add(appID) {
		return
	}
	icon := dock.FindIcon(h.host.dock(), appID)
	if icon == nil {
		h.logger.Debug("no dock icon for urgent app", "app", appID)
		return
	}
	icon.AddStyleClass(dock.UrgentStyle)
}

// ClearUrgent removes appID's highlight and its dock marker. It does nothing
// when appID is not highlighted.
func (h *Handler) ClearUrgent(appID string) {
	if !h.highlights.Remove(appID) {
		return
	}
	if icon := dock.FindIcon(h.host.dock(), appID); icon != nil {
		icon.RemoveStyleClass(dock.UrgentStyle)
	}
	h.logger.Debug("cleared urgent app", "app", appID)
}

// SyncNotification keeps src alive while its window still demands attention
// or is still urgent. Otherwise the highlight and the notification are
// withdrawn together.
func (h *Handler) SyncNotification(appID string, src NotificationSource) {
	if w := src.Window(); w != nil && (w.DemandsAttention() || w.Urgent()) {
		return
	}
	h.ClearUrgent(appID)
	h.destroySource(src)
}

// Highlighted reports whether appID is currently marked urgent.
func (h *Handler) Highlighted(appID string) bool {
	return h.highlights.Has(appID)
}

// LiveSources returns the number of notification sources being kept alive.
func (h *Handler) LiveSources() int {
	return len(h.liveSources())
}

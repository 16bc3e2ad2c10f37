package dock

import (
	"log/slog"
	"sync"

	"github.com/jmylchreest/attentiond/internal/set"
)

// LauncherUpdater publishes per-application launcher state, e.g. over the
// com.canonical.Unity.LauncherEntry D-Bus interface.
type LauncherUpdater interface {
	SetUrgent(appID string, urgent bool) error
}

// LauncherDock is an IconLister for docks that are driven by launcher entry
// updates rather than by direct widget access. Its icons are the currently
// running applications.
type LauncherDock struct {
	mu      sync.Mutex
	running func() []string
	updater LauncherUpdater
	logger  *slog.Logger
	styles  map[string]*set.Set[string]
}

// NewLauncherDock creates a dock whose icons are the app IDs returned by running.
func NewLauncherDock(running func() []string, updater LauncherUpdater, logger *slog.Logger) *LauncherDock {
	if logger == nil {
		logger = slog.Default()
	}
	return &LauncherDock{
		running: running,
		updater: updater,
		logger:  logger,
		styles:  make(map[string]*set.Set[string]),
	}
}

// AppIcons returns one icon per running application.
func (d *LauncherDock) AppIcons() []Icon {
	if d.running == nil {
		return nil
	}
	ids := d.running()
	icons := make([]Icon, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		icons = append(icons, &launcherIcon{dock: d, appID: id})
	}
	return icons
}

// HasStyle reports whether appID's icon carries the style class.
func (d *LauncherDock) HasStyle(appID, name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.styles[appID]
	return ok && s.Has(name)
}

func (d *LauncherDock) setStyle(appID, name string, on bool) {
	d.mu.Lock()
	s, ok := d.styles[appID]
	if !ok {
		s = set.New[string]()
		d.styles[appID] = s
	}
	var changed bool
	if on {
		changed = s.Add(name)
	} else {
		changed = s.Remove(name)
		if s.Len() == 0 {
			delete(d.styles, appID)
		}
	}
	d.mu.Unlock()

	if !changed || name != UrgentStyle || d.updater == nil {
		return
	}
	if err := d.updater.SetUrgent(appID, on); err != nil {
		d.logger.Warn("failed to update launcher entry", "app", appID, "urgent", on, "error", err)
	}
}

type launcherIcon struct {
	dock  *LauncherDock
	appID string
}

func (i *launcherIcon) AppID() string { return i.appID }

func (i *launcherIcon) AddStyleClass(name string) { i.dock.setStyle(i.appID, name, true) }

func (i *launcherIcon) RemoveStyleClass(name string) { i.dock.setStyle(i.appID, name, false) }

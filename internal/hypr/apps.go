package hypr

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/jmylchreest/attentiond/internal/attention"
	"github.com/jmylchreest/attentiond/internal/window"
)

// App is an application resolved from a window class.
type App struct {
	id   string
	name string
}

var _ attention.App = (*App)(nil)

// ID returns the desktop entry ID, e.g. "org.gnome.Nautilus.desktop", or the
// bare class when no desktop entry was found.
func (a *App) ID() string { return a.id }

// Name returns the desktop entry's Name, falling back to the class.
func (a *App) Name() string { return a.name }

// Apps resolves windows to applications through desktop entries in the XDG
// data directories. Lookups are cached per class.
type Apps struct {
	display *Display
	cache   map[string]*App
	logger  *slog.Logger
}

var _ attention.AppTracker = (*Apps)(nil)

// NewApps creates an application tracker over display.
func NewApps(display *Display, logger *slog.Logger) *Apps {
	if logger == nil {
		logger = slog.Default()
	}
	return &Apps{
		display: display,
		cache:   make(map[string]*App),
		logger:  logger,
	}
}

// WindowApp returns the application owning w, or nil for windows that are
// not Hyprland clients or carry no class.
func (a *Apps) WindowApp(w window.Window) attention.App {
	hw, ok := w.(*Window)
	if !ok || hw == nil || hw.class == "" {
		return nil
	}
	return a.lookup(hw.class)
}

// FocusApp returns the application of the active window, or nil.
func (a *Apps) FocusApp() attention.App {
	w := a.display.FocusedWindow()
	if w == nil {
		return nil
	}
	return a.WindowApp(w)
}

// RunningApps returns the IDs of applications with at least one window that
// shows in a task list, in window address order.
func (a *Apps) RunningApps() []string {
	var ids []string
	seen := make(map[string]bool)
	for _, w := range a.display.Windows() {
		if w.IsSkipTaskbar() {
			continue
		}
		id := a.lookup(w.class).ID()
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

func (a *Apps) lookup(class string) *App {
	if app, ok := a.cache[class]; ok {
		return app
	}

	app := &App{id: class, name: class}
	for _, candidate := range desktopCandidates(class) {
		path, err := xdg.SearchDataFile(filepath.Join("applications", candidate))
		if err != nil {
			continue
		}
		app.id = candidate
		if name := desktopName(path); name != "" {
			app.name = name
		}
		break
	}

	a.logger.Debug("resolved application", "class", class, "app", app.id)
	a.cache[class] = app
	return app
}

func desktopCandidates(class string) []string {
	candidates := []string{class + ".desktop"}
	if lower := strings.ToLower(class); lower != class {
		candidates = append(candidates, lower+".desktop")
	}
	return candidates
}

// desktopName reads Name= from the [Desktop Entry] group of a desktop file.
func desktopName(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer func() { _ = f.Close() }()

	inEntry := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			inEntry = line == "[Desktop Entry]"
			continue
		}
		if !inEntry {
			continue
		}
		if name, ok := strings.CutPrefix(line, "Name="); ok {
			return strings.TrimSpace(name)
		}
	}
	return ""
}

package hypr

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/jmylchreest/attentiond/internal/attention"
	"github.com/jmylchreest/attentiond/internal/signals"
	"github.com/jmylchreest/attentiond/internal/window"
)

// Commander sends requests on the Hyprland command socket.
type Commander interface {
	Command(ctx context.Context, request string) ([]byte, error)
}

// Display mirrors Hyprland's client list and replays its events as signals.
// Display signals (attention and focus) are emitted on Signals; window
// manager map signals on WM. Display is not safe for concurrent use: Apply
// and every signal handler run on the dispatch loop.
type Display struct {
	Signals signals.Emitter
	WM      signals.Emitter

	ipc     Commander
	windows map[string]*Window
	focused *Window
	logger  *slog.Logger

	// Hyprland focuses a new window before announcing it.
	pendingFocus string
}

var _ attention.Activator = (*Display)(nil)

// NewDisplay creates an empty Display. Call Sync to seed it.
func NewDisplay(ipc Commander, logger *slog.Logger) *Display {
	if logger == nil {
		logger = slog.Default()
	}
	return &Display{
		ipc:     ipc,
		windows: make(map[string]*Window),
		logger:  logger,
	}
}

// client is one entry of `hyprctl -j clients`.
type client struct {
	Address        string `json:"address"`
	Mapped         bool   `json:"mapped"`
	Hidden         bool   `json:"hidden"`
	Class          string `json:"class"`
	Title          string `json:"title"`
	FocusHistoryID int    `json:"focusHistoryID"`
	Workspace      struct {
		Name string `json:"name"`
	} `json:"workspace"`
}

// Sync seeds the window list from the compositor. Windows found here are
// treated as already mapped and emit no signals.
func (d *Display) Sync(ctx context.Context) error {
	reply, err := d.ipc.Command(ctx, "j/clients")
	if err != nil {
		return err
	}

	var clients []client
	if err := json.Unmarshal(reply, &clients); err != nil {
		return fmt.Errorf("failed to parse clients: %w", err)
	}

	for _, c := range clients {
		if !c.Mapped {
			continue
		}
		addr := normalizeAddress(c.Address)
		w, ok := d.windows[addr]
		if !ok {
			w = &Window{address: addr}
			d.windows[addr] = w
		}
		w.class = c.Class
		w.title = c.Title
		w.hidden = c.Hidden
		w.workspace = c.Workspace.Name
		if c.FocusHistoryID == 0 {
			d.setFocused(w)
		}
	}

	d.logger.Debug("synced hyprland clients", "windows", len(d.windows))
	return nil
}

// Apply updates state from one event and emits the matching signals.
func (d *Display) Apply(ev Event) {
	switch ev.Name {
	case EventOpenWindow:
		d.openWindow(ev)
	case EventCloseWindow:
		d.closeWindow(normalizeAddress(ev.Data))
	case EventUrgent:
		d.markUrgent(normalizeAddress(ev.Data))
	case EventActiveWindow:
		d.activate(normalizeAddress(ev.Data))
	case EventWindowTitle:
		d.retitle(ev)
	}
}

// openwindow>>ADDRESS,WORKSPACE,CLASS,TITLE
func (d *Display) openWindow(ev Event) {
	f := ev.Fields(4)
	if len(f) < 4 {
		d.logger.Debug("malformed openwindow event", "data", ev.Data)
		return
	}
	addr := normalizeAddress(f[0])
	w, ok := d.windows[addr]
	if !ok {
		w = &Window{address: addr}
		d.windows[addr] = w
	}
	w.workspace = f[1]
	w.class = f[2]
	w.title = f[3]

	d.logger.Debug("window mapped", "window", addr, "class", w.class)
	d.WM.Emit(window.SignalMap, w)

	if addr == d.pendingFocus {
		d.activate(addr)
	}
}

func (d *Display) closeWindow(addr string) {
	w, ok := d.windows[addr]
	if !ok {
		return
	}
	delete(d.windows, addr)
	if d.focused == w {
		d.focused = nil
	}
	w.focused = false

	d.logger.Debug("window unmanaged", "window", addr)
	w.Emit(window.SignalUnmanaged, w)
}

func (d *Display) markUrgent(addr string) {
	w, ok := d.windows[addr]
	if !ok {
		return
	}
	if !w.urgent {
		w.urgent = true
		w.Emit(window.SignalAttentionChanged, w)
	}
	d.Signals.Emit(window.SignalDemandsAttention, w)
}

// activewindowv2>>ADDRESS, with an empty address when nothing has focus.
func (d *Display) activate(addr string) {
	w := d.windows[addr]
	d.pendingFocus = ""
	if w == nil && addr != "" {
		d.pendingFocus = addr
	}
	if w == d.focused {
		return
	}
	d.setFocused(w)

	if w == nil {
		d.Signals.Emit(window.SignalFocusChanged, nil)
		return
	}
	if w.urgent {
		w.urgent = false
		w.Emit(window.SignalAttentionChanged, w)
	}
	d.Signals.Emit(window.SignalFocusChanged, w)
}

func (d *Display) setFocused(w *Window) {
	if d.focused != nil {
		d.focused.focused = false
	}
	d.focused = w
	if w != nil {
		w.focused = true
	}
}

// windowtitlev2>>ADDRESS,TITLE
func (d *Display) retitle(ev Event) {
	f := ev.Fields(2)
	if len(f) < 2 {
		return
	}
	w, ok := d.windows[normalizeAddress(f[0])]
	if !ok || w.title == f[1] {
		return
	}
	w.title = f[1]
	w.Emit(window.SignalTitleChanged, w)
}

// Window returns the window at addr, or nil.
func (d *Display) Window(addr string) *Window {
	return d.windows[normalizeAddress(addr)]
}

// Windows returns every known window ordered by address.
func (d *Display) Windows() []*Window {
	out := make([]*Window, 0, len(d.windows))
	for _, w := range d.windows {
		out = append(out, w)
	}
	slices.SortFunc(out, func(a, b *Window) int { return strings.Compare(a.address, b.address) })
	return out
}

// FocusedWindow returns the active window, or nil.
func (d *Display) FocusedWindow() *Window {
	return d.focused
}

// ActivateWindow asks the compositor to focus w.
func (d *Display) ActivateWindow(w window.Window) {
	if w == nil {
		return
	}
	if err := dispatch(context.Background(), d.ipc, "focuswindow address:"+w.ID()); err != nil {
		d.logger.Warn("failed to activate window", "window", w.ID(), "error", err)
	}
}

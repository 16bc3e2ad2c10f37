package hypr

import (
	"github.com/jmylchreest/attentiond/internal/signals"
	"github.com/jmylchreest/attentiond/internal/window"
)

// Window is a Hyprland client. Hyprland keeps a single urgency flag, so
// DemandsAttention and Urgent report the same state.
type Window struct {
	signals.Emitter

	address   string
	class     string
	title     string
	workspace string
	hidden    bool
	focused   bool
	urgent    bool
}

var _ window.Window = (*Window)(nil)

// ID returns the 0x-prefixed client address.
func (w *Window) ID() string { return w.address }

// Class returns the client class (the Wayland app_id or X11 WM_CLASS).
func (w *Window) Class() string { return w.class }

// Title returns the current window title.
func (w *Window) Title() string { return w.title }

// Workspace returns the name of the window's workspace.
func (w *Window) Workspace() string { return w.workspace }

// HasFocus reports whether the window is the active window.
func (w *Window) HasFocus() bool { return w.focused }

// IsSkipTaskbar reports whether the window would not appear in a task list:
// hidden clients and clients without a class.
func (w *Window) IsSkipTaskbar() bool { return w.hidden || w.class == "" }

func (w *Window) DemandsAttention() bool { return w.urgent }

func (w *Window) Urgent() bool { return w.urgent }

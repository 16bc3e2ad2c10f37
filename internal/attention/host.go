package attention

import (
	"github.com/jmylchreest/attentiond/internal/signals"
	"github.com/jmylchreest/attentiond/internal/window"
)

// Slot names of the host default attention handler that get taken over.
const (
	SlotDemandsAttention = "window-demands-attention"
	SlotMarkedUrgent     = "window-marked-urgent"
)

// App is an application known to the host's application tracker.
type App interface {
	ID() string
	Name() string
}

// AppTracker maps windows to their owning applications.
type AppTracker interface {
	// WindowApp returns the application owning w, or nil if unknown.
	WindowApp(w window.Window) App
	// FocusApp returns the application of the focused window, or nil.
	FocusApp() App
}

// NotificationSource is one live attention notification for a window.
type NotificationSource interface {
	Window() window.Window
	// Show displays the notification. onActivated runs when the user
	// activates it.
	Show(title, banner string, onActivated func())
	Update(title, banner string)
	// SetSync installs the callback run whenever the window's attention
	// flags may have changed.
	SetSync(sync func())
	// Sync runs the installed callback, if any.
	Sync()
	// Track hands a subscription to the source; it is released on Destroy.
	Track(source signals.Source, id signals.HandlerID)
	// SetOnDestroy installs a callback run once when the source is
	// destroyed, whoever destroys it.
	SetOnDestroy(fn func())
	Destroy()
	Destroyed() bool
}

// Notifier is the host notification surface.
type Notifier interface {
	NewSource(app App, w window.Window) NotificationSource
	TitleAndBanner(app App, w window.Window) (title, banner string)
}

// Activator raises and focuses windows.
type Activator interface {
	ActivateWindow(w window.Window)
}

// Host bundles the collaborators the Handler works against. Every field is
// supplied by the caller at Enable time.
type Host struct {
	Display        signals.Source
	WindowManager  signals.Source
	DefaultHandler signals.SlotOwner

	Tracker   AppTracker
	Notifier  Notifier
	Activator Activator

	// Dock returns the current dock, which may be nil or any shape accepted
	// by dock.FindIcon.
	Dock func() any
}

func (h Host) dock() any {
	if h.Dock == nil {
		return nil
	}
	return h.Dock()
}

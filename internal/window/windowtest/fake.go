// Package windowtest provides an in-memory window for tests.
package windowtest

import (
	"github.com/jmylchreest/attentiond/internal/signals"
	"github.com/jmylchreest/attentiond/internal/window"
)

// Window is a mutable window.Window backed by a signals.Emitter.
type Window struct {
	signals.Emitter

	Name        string
	Caption     string
	Focused     bool
	SkipTaskbar bool
	Demanding   bool
	IsUrgent    bool
}

var _ window.Window = (*Window)(nil)

// New creates a window with the given id and title.
func New(id, title string) *Window {
	return &Window{Name: id, Caption: title}
}

func (w *Window) ID() string             { return w.Name }
func (w *Window) Title() string          { return w.Caption }
func (w *Window) HasFocus() bool         { return w.Focused }
func (w *Window) IsSkipTaskbar() bool    { return w.SkipTaskbar }
func (w *Window) DemandsAttention() bool { return w.Demanding }
func (w *Window) Urgent() bool           { return w.IsUrgent }

// SetTitle changes the title and emits title-changed.
func (w *Window) SetTitle(title string) {
	w.Caption = title
	w.Emit(window.SignalTitleChanged, w)
}

// Settle clears both attention flags and emits attention-changed.
func (w *Window) Settle() {
	w.Demanding = false
	w.IsUrgent = false
	w.Emit(window.SignalAttentionChanged, w)
}

// Unmanage emits unmanaged.
func (w *Window) Unmanage() {
	w.Emit(window.SignalUnmanaged, w)
}

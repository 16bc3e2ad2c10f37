package dock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIcon struct {
	app     string
	classes map[string]bool
}

func newStubIcon(app string) *stubIcon {
	return &stubIcon{app: app, classes: make(map[string]bool)}
}

func (i *stubIcon) AppID() string                { return i.app }
func (i *stubIcon) AddStyleClass(name string)    { i.classes[name] = true }
func (i *stubIcon) RemoveStyleClass(name string) { delete(i.classes, name) }

type listerDock struct{ icons []Icon }

func (d listerDock) AppIcons() []Icon { return d.icons }

type stubItem struct {
	icon      Icon
	animating bool
}

func (i stubItem) Icon() Icon         { return i.icon }
func (i stubItem) AnimatingOut() bool { return i.animating }

type boxDock struct{ items []Item }

func (d boxDock) Children() []Item { return d.items }

// bothDock satisfies both variants; the lister must win.
type bothDock struct {
	listerDock
	boxDock
}

func TestAppIcons_Variants(t *testing.T) {
	firefox := newStubIcon("firefox.desktop")
	slack := newStubIcon("slack.desktop")
	leaving := newStubIcon("gone.desktop")

	tests := []struct {
		name string
		dock any
		want []Icon
	}{
		{name: "nil dock", dock: nil, want: nil},
		{name: "unknown shape", dock: struct{}{}, want: nil},
		{name: "lister", dock: listerDock{icons: []Icon{firefox, slack}}, want: []Icon{firefox, slack}},
		{
			name: "container filters decorations and animating items",
			dock: boxDock{items: []Item{
				stubItem{icon: firefox},
				stubItem{icon: nil},
				stubItem{icon: leaving, animating: true},
				nil,
				stubItem{icon: slack},
			}},
			want: []Icon{firefox, slack},
		},
		{
			name: "lister preferred over container",
			dock: bothDock{listerDock{icons: []Icon{slack}}, boxDock{items: []Item{stubItem{icon: firefox}}}},
			want: []Icon{slack},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AppIcons(tt.dock))
		})
	}
}

func TestFindIcon(t *testing.T) {
	firefox := newStubIcon("firefox.desktop")
	orphan := newStubIcon("")
	d := listerDock{icons: []Icon{orphan, firefox}}

	assert.Same(t, firefox, FindIcon(d, "firefox.desktop"))
	assert.Nil(t, FindIcon(d, "slack.desktop"))
	assert.Nil(t, FindIcon(d, ""))
	assert.Nil(t, FindIcon(nil, "firefox.desktop"))
}

type recordingUpdater struct {
	calls []string
	err   error
}

func (u *recordingUpdater) SetUrgent(appID string, urgent bool) error {
	state := "off"
	if urgent {
		state = "on"
	}
	u.calls = append(u.calls, appID+":"+state)
	return u.err
}

func TestLauncherDock_UrgentMarkerPublishesOnChange(t *testing.T) {
	u := &recordingUpdater{}
	d := NewLauncherDock(func() []string { return []string{"firefox", "slack"} }, u, nil)

	icon := FindIcon(d, "slack")
	require.NotNil(t, icon)

	icon.AddStyleClass(UrgentStyle)
	icon.AddStyleClass(UrgentStyle)
	assert.True(t, d.HasStyle("slack", UrgentStyle))

	icon.RemoveStyleClass(UrgentStyle)
	icon.RemoveStyleClass(UrgentStyle)
	assert.False(t, d.HasStyle("slack", UrgentStyle))

	assert.Equal(t, []string{"slack:on", "slack:off"}, u.calls)
}

func TestLauncherDock_OtherStylesAreLocal(t *testing.T) {
	u := &recordingUpdater{}
	d := NewLauncherDock(func() []string { return []string{"firefox"} }, u, nil)

	FindIcon(d, "firefox").AddStyleClass("running")

	assert.True(t, d.HasStyle("firefox", "running"))
	assert.Empty(t, u.calls)
}

func TestLauncherDock_UpdaterErrorIsSwallowed(t *testing.T) {
	u := &recordingUpdater{err: errors.New("bus gone")}
	d := NewLauncherDock(func() []string { return []string{"firefox"} }, u, nil)

	assert.NotPanics(t, func() { FindIcon(d, "firefox").AddStyleClass(UrgentStyle) })
	assert.True(t, d.HasStyle("firefox", UrgentStyle))
}

func TestLauncherDock_NoRunningApps(t *testing.T) {
	d := NewLauncherDock(nil, nil, nil)
	assert.Empty(t, d.AppIcons())
	assert.Nil(t, FindIcon(d, "firefox"))
}

package hypr

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/attentiond/internal/window/windowtest"
)

// isolateDataDirs points the XDG data directories at a temp dir and returns
// its applications directory.
func isolateDataDirs(t *testing.T) string {
	t.Helper()
	t.Cleanup(xdg.Reload)

	home := t.TempDir()
	t.Setenv("XDG_DATA_HOME", home)
	t.Setenv("XDG_DATA_DIRS", t.TempDir())
	xdg.Reload()

	apps := filepath.Join(home, "applications")
	require.NoError(t, os.MkdirAll(apps, 0o755))
	return apps
}

func writeDesktopFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestApps_ResolvesDesktopEntry(t *testing.T) {
	dir := isolateDataDirs(t)
	writeDesktopFile(t, dir, "org.gnome.Nautilus.desktop", `[Desktop Entry]
Type=Application
Name=Files
Exec=nautilus

[Desktop Action new-window]
Name=New Window
`)
	writeDesktopFile(t, dir, "firefox.desktop", "[Desktop Action x]\nName=Wrong\n[Desktop Entry]\nName=Firefox\n")

	d, _ := syncedDisplay(t)
	d.Apply(Event{Name: EventOpenWindow, Data: "ddd,1,org.gnome.Nautilus,Home"})
	d.Apply(Event{Name: EventOpenWindow, Data: "eee,1,Firefox,Start"})
	apps := NewApps(d, nil)

	nautilus := apps.WindowApp(d.Window("0xddd"))
	require.NotNil(t, nautilus)
	assert.Equal(t, "org.gnome.Nautilus.desktop", nautilus.ID())
	assert.Equal(t, "Files", nautilus.Name())

	firefox := apps.WindowApp(d.Window("0xeee"))
	require.NotNil(t, firefox)
	assert.Equal(t, "firefox.desktop", firefox.ID(), "lower-cased class is tried")
	assert.Equal(t, "Firefox", firefox.Name())
}

func TestApps_FallsBackToClass(t *testing.T) {
	isolateDataDirs(t)
	d, _ := syncedDisplay(t)
	apps := NewApps(d, nil)

	app := apps.WindowApp(d.Window("0xaaa"))
	require.NotNil(t, app)
	assert.Equal(t, "kitty", app.ID())
	assert.Equal(t, "kitty", app.Name())
}

func TestApps_UnknownWindows(t *testing.T) {
	isolateDataDirs(t)
	d, _ := syncedDisplay(t)
	apps := NewApps(d, nil)

	assert.Nil(t, apps.WindowApp(windowtest.New("x", "foreign")))
	assert.Nil(t, apps.WindowApp(&Window{address: "0x1"}))
}

func TestApps_FocusApp(t *testing.T) {
	isolateDataDirs(t)
	d, _ := syncedDisplay(t)
	apps := NewApps(d, nil)

	app := apps.FocusApp()
	require.NotNil(t, app)
	assert.Equal(t, "kitty", app.ID())

	d.Apply(Event{Name: EventActiveWindow, Data: ""})
	assert.Nil(t, apps.FocusApp())
}

func TestApps_RunningApps(t *testing.T) {
	isolateDataDirs(t)
	d, _ := syncedDisplay(t)
	d.Apply(Event{Name: EventOpenWindow, Data: "ddd,1,kitty,second shell"})
	d.Apply(Event{Name: EventOpenWindow, Data: "eee,1,,popup"})
	apps := NewApps(d, nil)

	assert.Equal(t, []string{"kitty", "firefox"}, apps.RunningApps())
}

package hypr

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shortTempDir keeps socket paths under the unix path length limit.
func shortTempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "hypr")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	return dir
}

func TestInstanceDir(t *testing.T) {
	t.Cleanup(xdg.Reload)
	runtime := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", runtime)
	xdg.Reload()

	dir := filepath.Join(runtime, "hypr", "sig123")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, eventSocket), nil, 0o600))

	got, err := InstanceDir("sig123")
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "sig123")
	got, err = InstanceDir("")
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	_, err = InstanceDir("missing")
	assert.Error(t, err)

	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "")
	_, err = InstanceDir("")
	assert.ErrorIs(t, err, ErrNoInstance)
}

func serveOnce(t *testing.T, path string, handle func(net.Conn)) {
	t.Helper()
	ln, err := net.Listen("unix", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer func() { _ = conn.Close() }()
		handle(conn)
	}()
}

func TestIPC_Command(t *testing.T) {
	dir := shortTempDir(t)
	received := make(chan string, 1)
	serveOnce(t, filepath.Join(dir, commandSocket), func(conn net.Conn) {
		buf := make([]byte, 256)
		n, _ := conn.Read(buf)
		received <- string(buf[:n])
		_, _ = conn.Write([]byte("ok"))
	})

	ipc := NewIPC(dir, time.Second, nil)
	require.NoError(t, ipc.Dispatch(context.Background(), "focuswindow address:0x1"))
	assert.Equal(t, "dispatch focuswindow address:0x1", <-received)
}

func TestIPC_DispatchRejected(t *testing.T) {
	dir := shortTempDir(t)
	serveOnce(t, filepath.Join(dir, commandSocket), func(conn net.Conn) {
		buf := make([]byte, 256)
		_, _ = conn.Read(buf)
		_, _ = conn.Write([]byte("No such window found"))
	})

	ipc := NewIPC(dir, time.Second, nil)
	err := ipc.Dispatch(context.Background(), "focuswindow address:0x2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No such window found")
}

func TestIPC_CommandWithoutSocket(t *testing.T) {
	ipc := NewIPC(shortTempDir(t), time.Second, nil)
	_, err := ipc.Command(context.Background(), "j/clients")
	assert.Error(t, err)
}

func TestIPC_Events(t *testing.T) {
	dir := shortTempDir(t)
	serveOnce(t, filepath.Join(dir, eventSocket), func(conn net.Conn) {
		_, _ = conn.Write([]byte("openwindow>>abc,1,kitty,shell\nnonsense\nurgent>>abc\n"))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := NewIPC(dir, 0, nil).Events(ctx)
	require.NoError(t, err)

	var got []Event
	for ev := range events {
		got = append(got, ev)
	}
	assert.Equal(t, []Event{
		{Name: EventOpenWindow, Data: "abc,1,kitty,shell"},
		{Name: EventUrgent, Data: "abc"},
	}, got)
}

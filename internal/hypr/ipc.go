package hypr

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

const (
	commandSocket = ".socket.sock"
	eventSocket   = ".socket2.sock"

	eventBufferSize = 64
)

// ErrNoInstance is returned when no Hyprland instance signature is known.
var ErrNoInstance = errors.New("HYPRLAND_INSTANCE_SIGNATURE is not set")

// InstanceDir locates the socket directory of a Hyprland instance. An empty
// signature falls back to $HYPRLAND_INSTANCE_SIGNATURE.
func InstanceDir(signature string) (string, error) {
	if signature == "" {
		signature = os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	}
	if signature == "" {
		return "", ErrNoInstance
	}

	candidates := []string{
		filepath.Join(xdg.RuntimeDir, "hypr", signature),
		filepath.Join(os.TempDir(), "hypr", signature),
	}
	for _, dir := range candidates {
		if _, err := os.Stat(filepath.Join(dir, eventSocket)); err == nil {
			return dir, nil
		}
	}
	return "", fmt.Errorf("no sockets found for hyprland instance %s", signature)
}

// IPC talks to one Hyprland instance.
type IPC struct {
	dir     string
	timeout time.Duration
	logger  *slog.Logger
}

// NewIPC creates an IPC for the socket directory dir. Commands time out
// after timeout; zero means no timeout.
func NewIPC(dir string, timeout time.Duration, logger *slog.Logger) *IPC {
	if logger == nil {
		logger = slog.Default()
	}
	return &IPC{
		dir:     dir,
		timeout: timeout,
		logger:  logger,
	}
}

// Dir returns the instance socket directory.
func (c *IPC) Dir() string {
	return c.dir
}

// Command sends a request on the command socket and returns the raw reply.
// Prefix the request with "j/" for JSON output.
func (c *IPC) Command(ctx context.Context, request string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", filepath.Join(c.dir, commandSocket))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to hyprland command socket: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if _, err := io.WriteString(conn, request); err != nil {
		return nil, fmt.Errorf("failed to send %q: %w", request, err)
	}
	reply, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to read reply to %q: %w", request, err)
	}
	return reply, nil
}

// Dispatch runs a hyprctl dispatcher, e.g. "focuswindow address:0x1234".
func (c *IPC) Dispatch(ctx context.Context, args string) error {
	return dispatch(ctx, c, args)
}

func dispatch(ctx context.Context, c Commander, args string) error {
	reply, err := c.Command(ctx, "dispatch "+args)
	if err != nil {
		return err
	}
	if got := strings.TrimSpace(string(reply)); got != "ok" {
		return fmt.Errorf("dispatch %q failed: %s", args, got)
	}
	return nil
}

// Events streams parsed events from the event socket until ctx is cancelled
// or Hyprland closes the socket. The channel is closed when streaming ends.
func (c *IPC) Events(ctx context.Context) (<-chan Event, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", filepath.Join(c.dir, eventSocket))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to hyprland event socket: %w", err)
	}

	events := make(chan Event, eventBufferSize)

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	go func() {
		defer close(events)
		defer func() { _ = conn.Close() }()

		scanner := bufio.NewScanner(conn)
		scanner.Buffer(make([]byte, 0, 4096), 1<<20)
		for scanner.Scan() {
			ev, ok := ParseEvent(scanner.Text())
			if !ok {
				continue
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			c.logger.Warn("hyprland event stream failed", "error", err)
		}
	}()

	c.logger.Debug("subscribed to hyprland events", "dir", c.dir)
	return events, nil
}

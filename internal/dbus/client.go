package dbus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	// DBusInterface is the notification interface name.
	DBusInterface = "org.freedesktop.Notifications"
	// DBusPath is the notification object path.
	DBusPath = "/org/freedesktop/Notifications"

	signalNotificationClosed = DBusInterface + ".NotificationClosed"
	signalActionInvoked      = DBusInterface + ".ActionInvoked"

	signalBufferSize = 16
)

// ActionHandler is called when the user invokes an action on a notification.
type ActionHandler func(id uint32, actionKey string)

// ClosedHandler is called when the server reports a notification closed.
type ClosedHandler func(id uint32, reason CloseReason)

// Client talks to whatever daemon owns org.freedesktop.Notifications and
// publishes launcher entry updates on the same session bus.
type Client struct {
	conn   *dbus.Conn
	logger *slog.Logger

	onAction ActionHandler
	onClosed ClosedHandler

	mu      sync.Mutex
	signals chan *dbus.Signal
	running bool
	doneCh  chan struct{}
}

// NewClient creates a new Client. Call Start before use.
func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		logger: logger,
	}
}

// SetActionHandler sets the handler called on ActionInvoked signals.
// Handlers run on the client's signal goroutine.
func (c *Client) SetActionHandler(handler ActionHandler) {
	c.onAction = handler
}

// SetClosedHandler sets the handler called on NotificationClosed signals.
func (c *Client) SetClosedHandler(handler ClosedHandler) {
	c.onClosed = handler
}

// Start connects to the session bus and subscribes to notification signals.
func (c *Client) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return fmt.Errorf("client already running")
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	c.conn = conn

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(DBusPath),
		dbus.WithMatchInterface(DBusInterface),
	); err != nil {
		return fmt.Errorf("failed to add signal match: %w", err)
	}

	c.signals = make(chan *dbus.Signal, signalBufferSize)
	c.doneCh = make(chan struct{})
	conn.Signal(c.signals)
	go c.processSignals(c.signals, c.doneCh)

	c.running = true
	c.logger.Info("connected to notification service", "interface", DBusInterface)
	return nil
}

// Stop unsubscribes from notification signals. The shared session bus
// connection is left open.
func (c *Client) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return nil
	}
	c.running = false

	c.conn.RemoveSignal(c.signals)
	close(c.signals)
	<-c.doneCh

	if err := c.conn.RemoveMatchSignal(
		dbus.WithMatchObjectPath(DBusPath),
		dbus.WithMatchInterface(DBusInterface),
	); err != nil {
		return fmt.Errorf("failed to remove signal match: %w", err)
	}
	return nil
}

// Notify sends a notification and returns the server-assigned ID.
// D-Bus method: Notify(susssasa{sv}i) -> u
func (c *Client) Notify(n *Notification) (uint32, error) {
	if c.conn == nil {
		return 0, fmt.Errorf("not connected to D-Bus")
	}

	obj := c.conn.Object(DBusInterface, DBusPath)
	call := obj.Call(DBusInterface+".Notify", 0,
		n.AppName,
		n.ReplacesID,
		n.AppIcon,
		n.Summary,
		n.Body,
		n.FlatActions(),
		n.Hints,
		n.ExpireTimeout,
	)
	if call.Err != nil {
		return 0, fmt.Errorf("failed to send notification: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("failed to read notification id: %w", err)
	}

	c.logger.Debug("notification sent", "id", id, "replaces_id", n.ReplacesID, "summary", n.Summary)
	return id, nil
}

// CloseNotification asks the server to withdraw a notification.
func (c *Client) CloseNotification(id uint32) error {
	if c.conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}

	obj := c.conn.Object(DBusInterface, DBusPath)
	if err := obj.Call(DBusInterface+".CloseNotification", 0, id).Err; err != nil {
		return fmt.Errorf("failed to close notification %d: %w", id, err)
	}
	return nil
}

// ServerInformation queries the notification server identity.
func (c *Client) ServerInformation() (ServerInfo, error) {
	var info ServerInfo
	if c.conn == nil {
		return info, fmt.Errorf("not connected to D-Bus")
	}

	obj := c.conn.Object(DBusInterface, DBusPath)
	err := obj.Call(DBusInterface+".GetServerInformation", 0).
		Store(&info.Name, &info.Vendor, &info.Version, &info.SpecVersion)
	if err != nil {
		return info, fmt.Errorf("failed to get server information: %w", err)
	}
	return info, nil
}

// Capabilities queries the optional features the notification server supports.
func (c *Client) Capabilities() ([]string, error) {
	if c.conn == nil {
		return nil, fmt.Errorf("not connected to D-Bus")
	}

	var caps []string
	obj := c.conn.Object(DBusInterface, DBusPath)
	if err := obj.Call(DBusInterface+".GetCapabilities", 0).Store(&caps); err != nil {
		return nil, fmt.Errorf("failed to get capabilities: %w", err)
	}
	return caps, nil
}

// processSignals dispatches notification signals until ch is closed.
func (c *Client) processSignals(ch <-chan *dbus.Signal, done chan<- struct{}) {
	defer close(done)
	for sig := range ch {
		c.handleSignal(sig)
	}
}

func (c *Client) handleSignal(sig *dbus.Signal) {
	switch sig.Name {
	case signalNotificationClosed:
		if len(sig.Body) < 2 {
			c.logger.Warn("malformed NotificationClosed signal", "body_len", len(sig.Body))
			return
		}
		id, ok1 := sig.Body[0].(uint32)
		reason, ok2 := sig.Body[1].(uint32)
		if !ok1 || !ok2 {
			c.logger.Warn("invalid NotificationClosed argument types")
			return
		}
		c.logger.Debug("notification closed", "id", id, "reason", CloseReason(reason).String())
		if c.onClosed != nil {
			c.onClosed(id, CloseReason(reason))
		}

	case signalActionInvoked:
		if len(sig.Body) < 2 {
			c.logger.Warn("malformed ActionInvoked signal", "body_len", len(sig.Body))
			return
		}
		id, ok1 := sig.Body[0].(uint32)
		key, ok2 := sig.Body[1].(string)
		if !ok1 || !ok2 {
			c.logger.Warn("invalid ActionInvoked argument types")
			return
		}
		c.logger.Debug("action invoked", "id", id, "action_key", key)
		if c.onAction != nil {
			c.onAction(id, key)
		}
	}
}

package dbus

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	// LauncherInterface is the launcher entry interface understood by most
	// docks and taskbars.
	LauncherInterface = "com.canonical.Unity.LauncherEntry"
	// LauncherPath is the object path launcher updates are emitted from.
	LauncherPath = "/io/github/jmylchreest/attentiond/launcher"
)

// EmitLauncherUpdate emits the LauncherEntry Update signal for appURI.
func (c *Client) EmitLauncherUpdate(appURI string, props map[string]dbus.Variant) error {
	if c.conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}

	err := c.conn.Emit(dbus.ObjectPath(LauncherPath), LauncherInterface+".Update", appURI, props)
	if err != nil {
		return fmt.Errorf("failed to emit launcher update: %w", err)
	}

	c.logger.Debug("emitted launcher update", "app_uri", appURI)
	return nil
}

// SetUrgent marks or unmarks appID's launcher entry as urgent.
func (c *Client) SetUrgent(appID string, urgent bool) error {
	return c.EmitLauncherUpdate(LauncherURI(appID), map[string]dbus.Variant{
		"urgent": dbus.MakeVariant(urgent),
	})
}

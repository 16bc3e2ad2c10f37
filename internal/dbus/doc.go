// Package dbus is a session-bus client for the org.freedesktop.Notifications
// interface. It sends and withdraws notifications, relays the server's
// ActionInvoked and NotificationClosed signals, and emits
// com.canonical.Unity.LauncherEntry updates so docks can flag urgent
// applications.
package dbus

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/attentiond/internal/attention"
	"github.com/jmylchreest/attentiond/internal/config"
	"github.com/jmylchreest/attentiond/internal/daemon"
	"github.com/jmylchreest/attentiond/internal/dbus"
	"github.com/jmylchreest/attentiond/internal/dock"
	"github.com/jmylchreest/attentiond/internal/hypr"
)

const loopCapacity = 256

var errEventStreamClosed = errors.New("hyprland event stream closed")

func runDaemon(cmd *cobra.Command, _ []string) error {
	logger.Info("starting attentiond", "version", version)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	dir, err := hypr.InstanceDir(cfg.Hyprland.Instance)
	if err != nil {
		return fmt.Errorf("failed to locate hyprland: %w", err)
	}
	ipc := hypr.NewIPC(dir, cfg.Hyprland.CommandTimeout.Duration(), logger)

	loop := daemon.NewLoop(loopCapacity, logger)

	opts := daemon.NotifierOptions{
		AppName: cfg.Notifications.AppName,
		Icon:    cfg.Notifications.Icon,
	}
	client := dbus.NewClient(logger)
	notifier := daemon.NewNotifier(client, opts, logger)

	// Server signals arrive on the client's goroutine
	client.SetActionHandler(func(id uint32, actionKey string) {
		loop.Post(func() { notifier.HandleAction(id, actionKey) })
	})
	client.SetClosedHandler(func(id uint32, reason dbus.CloseReason) {
		loop.Post(func() { notifier.HandleClosed(id, reason) })
	})
	if err := client.Start(); err != nil {
		return err
	}
	defer func() {
		if err := client.Stop(); err != nil {
			logger.Warn("error stopping D-Bus client", "error", err)
		}
	}()

	display := hypr.NewDisplay(ipc, logger)
	if err := display.Sync(ctx); err != nil {
		return fmt.Errorf("failed to read hyprland clients: %w", err)
	}
	apps := hypr.NewApps(display, logger)

	fallback := daemon.NewDefaultAttentionHandler(client, apps, opts, logger)
	fallback.SetMinInterval(cfg.Notifications.RateLimit.Duration())
	fallback.Attach(&display.Signals)

	var launcher *dock.LauncherDock
	if cfg.Dock.LauncherEntry {
		launcher = dock.NewLauncherDock(apps.RunningApps, client, logger)
	}

	host := attention.Host{
		Display:        &display.Signals,
		WindowManager:  &display.WM,
		DefaultHandler: fallback,
		Tracker:        apps,
		Notifier:       notifier,
		Activator:      display,
		Dock: func() any {
			if launcher == nil {
				return nil
			}
			return launcher
		},
	}
	handler := attention.New(logger)

	events, err := ipc.Events(ctx)
	if err != nil {
		return err
	}
	go func() {
		for ev := range events {
			if !loop.Post(func() { display.Apply(ev) }) {
				return
			}
		}
		if ctx.Err() == nil {
			cancel(errEventStreamClosed)
		}
	}()

	if watcher := watchConfig(loop, notifier, fallback); watcher != nil {
		defer func() { _ = watcher.Stop() }()
	}

	toggle := make(chan os.Signal, 1)
	signal.Notify(toggle, syscall.SIGUSR1)
	defer signal.Stop(toggle)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-toggle:
				loop.Post(func() { setEnabled(handler, host, !handler.Enabled()) })
			}
		}
	}()

	loop.Post(func() { setEnabled(handler, host, true) })
	logger.Info("attentiond ready", "hyprland", dir, "windows", len(display.Windows()))

	_ = loop.Run(ctx)
	loop.Drain()
	handler.Disable()

	if cause := context.Cause(ctx); errors.Is(cause, errEventStreamClosed) {
		return cause
	}
	logger.Info("attentiond stopped")
	return nil
}

func setEnabled(handler *attention.Handler, host attention.Host, enabled bool) {
	if enabled {
		handler.Enable(host)
	} else {
		handler.Disable()
	}
}

// watchConfig applies config file changes that do not need a restart.
func watchConfig(loop *daemon.Loop, notifier *daemon.Notifier, fallback *daemon.DefaultAttentionHandler) *config.Watcher {
	watcher, err := config.NewWatcher(globalOpts.configPath, logger)
	if err != nil {
		logger.Warn("config hot reload unavailable", "error", err)
		return nil
	}
	watcher.SetReloadCallback(func(next *config.Config) {
		loop.Post(func() { applyConfig(next, notifier, fallback) })
	})
	if err := watcher.Start(); err != nil {
		logger.Debug("config hot reload disabled", "error", err)
		_ = watcher.Stop()
		return nil
	}
	return watcher
}

func applyConfig(next *config.Config, notifier *daemon.Notifier, fallback *daemon.DefaultAttentionHandler) {
	if level, err := next.LogLevel(); err == nil && !globalOpts.verbose {
		logLevel.Set(level)
	}

	opts := daemon.NotifierOptions{
		AppName: next.Notifications.AppName,
		Icon:    next.Notifications.Icon,
	}
	notifier.SetOptions(opts)
	fallback.SetOptions(opts)
	fallback.SetMinInterval(next.Notifications.RateLimit.Duration())

	if next.Hyprland != cfg.Hyprland || next.Dock != cfg.Dock {
		logger.Info("hyprland and dock settings take effect after a restart")
	}
	logger.Info("configuration reloaded")
}

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/attentiond/internal/dbus"
	"github.com/jmylchreest/attentiond/internal/hypr"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the compositor and notification server",
	Long: `Check that attentiond can reach everything it needs:

  - the Hyprland instance and its current windows
  - the notification server, its identity and capabilities

Persistent notifications need the server to support "actions" and
should support "persistence".`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	out := cmd.OutOrStdout()

	dir, err := hypr.InstanceDir(cfg.Hyprland.Instance)
	if err != nil {
		return fmt.Errorf("failed to locate hyprland: %w", err)
	}
	ipc := hypr.NewIPC(dir, cfg.Hyprland.CommandTimeout.Duration(), logger)

	reply, err := ipc.Command(ctx, "version")
	if err != nil {
		return err
	}
	hyprVersion, _, _ := strings.Cut(strings.TrimSpace(string(reply)), "\n")

	display := hypr.NewDisplay(ipc, logger)
	if err := display.Sync(ctx); err != nil {
		return fmt.Errorf("failed to read hyprland clients: %w", err)
	}
	_, _ = fmt.Fprintf(out, "hyprland:     %s\n", hyprVersion)
	_, _ = fmt.Fprintf(out, "  sockets:    %s\n", dir)
	_, _ = fmt.Fprintf(out, "  windows:    %s\n", english.Plural(len(display.Windows()), "window", ""))

	client := dbus.NewClient(logger)
	if err := client.Start(); err != nil {
		return err
	}
	defer func() { _ = client.Stop() }()

	info, err := client.ServerInformation()
	if err != nil {
		return err
	}
	caps, err := client.Capabilities()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "notifications: %s %s (%s, spec %s)\n", info.Name, info.Version, info.Vendor, info.SpecVersion)
	_, _ = fmt.Fprintf(out, "  capabilities: %s\n", strings.Join(caps, ", "))

	for _, required := range missingCapabilities(caps) {
		_, _ = fmt.Fprintf(out, "  warning: server lacks %q\n", required)
	}
	return nil
}

// missingCapabilities lists the server capabilities persistent attention
// notifications rely on that caps does not advertise.
func missingCapabilities(caps []string) []string {
	have := make(map[string]bool, len(caps))
	for _, c := range caps {
		have[c] = true
	}
	var missing []string
	for _, want := range []string{"actions", "persistence", "body"} {
		if !have[want] {
			missing = append(missing, want)
		}
	}
	return missing
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/attentiond/internal/config"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
	}
	logger   *slog.Logger
	logLevel slog.LevelVar
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "attentiond",
	Short: "Persistent notifications for windows that demand attention",
	Long: `attentiond watches Hyprland for windows that demand attention and
turns each demand into a persistent desktop notification. Activating the
notification focuses the window. The owning application's launcher entry is
marked urgent until the application gains focus.

Send SIGUSR1 to toggle attentiond on and off. While off, the compositor's
own attention handling (a short transient notification) is restored.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			setupLogger(slog.LevelInfo)
			return fmt.Errorf("failed to load config: %w", err)
		}

		level, _ := cfg.LogLevel()
		setupLogger(level)
		return nil
	},
	RunE: runDaemon,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if logger == nil {
			setupLogger(slog.LevelInfo)
		}
		logger.Error("attentiond failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: $XDG_CONFIG_HOME/attentiond/attentiond.toml)")
}

// setupLogger configures the global slog logger. --verbose wins over the
// configured level.
func setupLogger(level slog.Level) {
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	logLevel.Set(level)

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &logLevel})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultLogLevel       = "info"
	DefaultAppName        = "attentiond"
	DefaultIcon           = "dialog-information"
	DefaultCommandTimeout = Duration(2 * time.Second)
	DefaultRateLimit      = Duration(5 * time.Second)
)

// Config is the attentiond configuration.
// Loaded from $XDG_CONFIG_HOME/attentiond/attentiond.toml
type Config struct {
	Log           LogConfig          `toml:"log"`
	Hyprland      HyprlandConfig     `toml:"hyprland"`
	Notifications NotificationConfig `toml:"notifications"`
	Dock          DockConfig         `toml:"dock"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// HyprlandConfig selects the compositor instance.
type HyprlandConfig struct {
	Instance       string   `toml:"instance"`        // Empty = $HYPRLAND_INSTANCE_SIGNATURE
	CommandTimeout Duration `toml:"command_timeout"` // e.g. "2s" or 2000
}

// NotificationConfig controls the notifications attentiond sends.
type NotificationConfig struct {
	AppName string `toml:"app_name"`
	Icon    string `toml:"icon"`
	// RateLimit applies to the host's own transient notifications while
	// attentiond is disabled.
	RateLimit Duration `toml:"rate_limit"`
}

// DockConfig controls dock highlighting.
type DockConfig struct {
	LauncherEntry bool `toml:"launcher_entry"` // Publish urgency over com.canonical.Unity.LauncherEntry
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Hyprland: HyprlandConfig{
			CommandTimeout: DefaultCommandTimeout,
		},
		Notifications: NotificationConfig{
			AppName:   DefaultAppName,
			Icon:      DefaultIcon,
			RateLimit: DefaultRateLimit,
		},
		Dock: DockConfig{
			LauncherEntry: true,
		},
	}
}

// ConfigPath returns the path to the config file under XDG_CONFIG_HOME.
func ConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "attentiond", "attentiond.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Hyprland.CommandTimeout < 0 {
		return fmt.Errorf("command_timeout must not be negative, got %s", c.Hyprland.CommandTimeout.Duration())
	}
	if c.Notifications.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative, got %s", c.Notifications.RateLimit.Duration())
	}
	if strings.TrimSpace(c.Notifications.AppName) == "" {
		return errors.New("app_name must not be empty")
	}
	return nil
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q, must be one of: debug, info, warn, error", c.Log.Level)
	}
	return level, nil
}

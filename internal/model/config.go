package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// AccentColor is the fallback hex color for reminders without one.
	AccentColor string `mapstructure:"accent_color" yaml:"accent_color"`

	// UserName personalizes the greeting. Empty is fine.
	UserName string `mapstructure:"user_name" yaml:"user_name"`
}

// NotifyConfig holds settings for the due-time notifier.
type NotifyConfig struct {
	// Enabled controls whether the background due-check runs at all.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// PollIntervalSec is how often (in seconds) the collection is
	// scanned for newly due reminders.
	PollIntervalSec int `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`

	// WindowSec bounds how long after its due time a reminder still
	// qualifies for a notification. Anything older is skipped so that
	// reopening the app after days away does not fire a storm of
	// stale alerts.
	WindowSec int `mapstructure:"window_sec" yaml:"window_sec"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// DataDir holds the SQLite database and the log file.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Notify  NotifyConfig  `mapstructure:"notify" yaml:"notify"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/remind/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "remind", "config.yaml")
}

// defaultDataDir returns ~/.local/share/remind, falling back to the
// working directory when the home directory cannot be resolved.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "remind-data")
	}
	return filepath.Join(home, ".local", "share", "remind")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		DataDir: defaultDataDir(),
		Display: DisplayConfig{
			AccentColor: "#FF69B4",
		},
		Notify: NotifyConfig{
			Enabled:         true,
			PollIntervalSec: 10,
			WindowSec:       60,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("display.accent_color", "#FF69B4")
	v.SetDefault("display.user_name", "")
	v.SetDefault("notify.enabled", true)
	v.SetDefault("notify.poll_interval_sec", 10)
	v.SetDefault("notify.window_sec", 60)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Notify.PollIntervalSec <= 0 {
		cfg.Notify.PollIntervalSec = 10
	}
	if cfg.Notify.WindowSec <= 0 {
		cfg.Notify.WindowSec = 60
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("data_dir", cfg.DataDir)
	v.Set("display", cfg.Display)
	v.Set("notify", cfg.Notify)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

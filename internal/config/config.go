package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration structure. The yaml tags keep `config
// show` output keyed the same way the config file is written.
type Config struct {
	Feed          FeedConfig          `mapstructure:"feed" yaml:"feed"`
	UI            UIConfig            `mapstructure:"ui" yaml:"ui"`
	Notifications NotificationsConfig `mapstructure:"notifications" yaml:"notifications"`
	Alerts        AlertsConfig        `mapstructure:"alerts" yaml:"alerts"`
	Sound         SoundConfig         `mapstructure:"sound" yaml:"sound"`
	Debug         bool                `mapstructure:"debug" yaml:"debug"`
}

// FeedConfig holds realtime feed connection parameters.
type FeedConfig struct {
	// URL is the websocket endpoint of the alert feed.
	URL string `mapstructure:"url" yaml:"url"`

	// ReconnectMaxAttempts bounds automatic reconnection before giving up.
	ReconnectMaxAttempts int `mapstructure:"reconnect_max_attempts" yaml:"reconnect_max_attempts"`

	// ProbeInterval is how often network reachability is checked.
	ProbeInterval time.Duration `mapstructure:"probe_interval" yaml:"probe_interval"`

	// ProbeTimeout is the dial timeout for a single reachability check.
	ProbeTimeout time.Duration `mapstructure:"probe_timeout" yaml:"probe_timeout"`
}

// UIConfig holds user interface preferences.
type UIConfig struct {
	Theme      string `mapstructure:"theme" yaml:"theme"`
	DateFormat string `mapstructure:"date_format" yaml:"date_format"`
}

// NotificationsConfig holds toast notification defaults.
type NotificationsConfig struct {
	// DefaultDuration applies when a pushed notification omits one.
	DefaultDuration time.Duration `mapstructure:"default_duration" yaml:"default_duration"`

	// AutoClose applies when a pushed notification omits the flag.
	AutoClose bool `mapstructure:"auto_close" yaml:"auto_close"`

	// MaxVisible caps the number of stacked toasts rendered at once.
	MaxVisible int `mapstructure:"max_visible" yaml:"max_visible"`
}

// AlertsConfig holds alert presentation settings.
type AlertsConfig struct {
	// FaultThreshold is how many rendering faults a boundary tolerates
	// before the recovery view escalates.
	FaultThreshold int `mapstructure:"fault_threshold" yaml:"fault_threshold"`

	// DialogExitDelay is the fade-out delay before a confirmation dialog
	// resolves.
	DialogExitDelay time.Duration `mapstructure:"dialog_exit_delay" yaml:"dialog_exit_delay"`

	// DialogAutoClose forces the cancel path after this long; zero disables.
	DialogAutoClose time.Duration `mapstructure:"dialog_auto_close" yaml:"dialog_auto_close"`
}

// SoundConfig holds audible cue settings.
type SoundConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// Load reads configuration from YAML file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.config/vigil")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("VIGIL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	applyDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file: defaults plus environment are the configuration.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks configuration values.
func Validate(cfg *Config) error {
	if cfg.Feed.URL == "" {
		return fmt.Errorf("feed.url cannot be empty")
	}
	if !strings.HasPrefix(cfg.Feed.URL, "ws://") && !strings.HasPrefix(cfg.Feed.URL, "wss://") {
		return fmt.Errorf("feed.url must be a ws:// or wss:// endpoint, got %s", cfg.Feed.URL)
	}
	if cfg.Feed.ReconnectMaxAttempts < 1 {
		return fmt.Errorf("feed.reconnect_max_attempts must be >= 1, got %d", cfg.Feed.ReconnectMaxAttempts)
	}
	if cfg.Feed.ProbeInterval < time.Second || cfg.Feed.ProbeInterval > time.Minute {
		return fmt.Errorf("feed.probe_interval must be between 1s and 60s, got %v", cfg.Feed.ProbeInterval)
	}
	if cfg.Feed.ProbeTimeout < 100*time.Millisecond || cfg.Feed.ProbeTimeout >= cfg.Feed.ProbeInterval {
		return fmt.Errorf("feed.probe_timeout must be between 100ms and probe_interval, got %v", cfg.Feed.ProbeTimeout)
	}

	validThemes := []string{"dark", "light"}
	validTheme := false
	for _, theme := range validThemes {
		if cfg.UI.Theme == theme {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("ui.theme must be one of: %v, got %s", validThemes, cfg.UI.Theme)
	}

	if cfg.Notifications.DefaultDuration < 500*time.Millisecond || cfg.Notifications.DefaultDuration > time.Minute {
		return fmt.Errorf("notifications.default_duration must be between 500ms and 60s, got %v", cfg.Notifications.DefaultDuration)
	}
	if cfg.Notifications.MaxVisible < 1 {
		return fmt.Errorf("notifications.max_visible must be >= 1, got %d", cfg.Notifications.MaxVisible)
	}

	if cfg.Alerts.FaultThreshold < 1 {
		return fmt.Errorf("alerts.fault_threshold must be >= 1, got %d", cfg.Alerts.FaultThreshold)
	}
	if cfg.Alerts.DialogExitDelay < 50*time.Millisecond || cfg.Alerts.DialogExitDelay > time.Second {
		return fmt.Errorf("alerts.dialog_exit_delay must be between 50ms and 1s, got %v", cfg.Alerts.DialogExitDelay)
	}
	if cfg.Alerts.DialogAutoClose != 0 && cfg.Alerts.DialogAutoClose <= cfg.Alerts.DialogExitDelay {
		return fmt.Errorf("alerts.dialog_auto_close must exceed dialog_exit_delay, got %v", cfg.Alerts.DialogAutoClose)
	}

	return nil
}

// applyDefaults sets default configuration values.
func applyDefaults() {
	viper.SetDefault("feed.url", "ws://localhost:8420/ws")
	viper.SetDefault("feed.reconnect_max_attempts", 5)
	viper.SetDefault("feed.probe_interval", "5s")
	viper.SetDefault("feed.probe_timeout", "2s")

	viper.SetDefault("ui.theme", "dark")
	viper.SetDefault("ui.date_format", "2006-01-02 15:04:05")

	viper.SetDefault("notifications.default_duration", "5s")
	viper.SetDefault("notifications.auto_close", true)
	viper.SetDefault("notifications.max_visible", 5)

	viper.SetDefault("alerts.fault_threshold", 3)
	viper.SetDefault("alerts.dialog_exit_delay", "200ms")
	viper.SetDefault("alerts.dialog_auto_close", "0s")

	viper.SetDefault("sound.enabled", true)

	viper.SetDefault("debug", false)
}

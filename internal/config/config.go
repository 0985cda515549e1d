// Package config provides configuration management for habit.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config holds all configuration for the habit application.
type Config struct {
	Storage       StorageConfig      `mapstructure:"storage"`
	Dashboard     DashboardConfig    `mapstructure:"dashboard"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Log           LogConfig          `mapstructure:"log"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	DataDir string `mapstructure:"data_dir"`
}

// DashboardConfig holds dashboard display settings.
type DashboardConfig struct {
	WeekStart    string `mapstructure:"week_start"`
	ShowThoughts bool   `mapstructure:"show_thoughts"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorDone    string `mapstructure:"color_done"`
	ColorPending string `mapstructure:"color_pending"`
	ColorLocked  string `mapstructure:"color_locked"`
	ColorTitle   string `mapstructure:"color_title"`
	ColorAccent  string `mapstructure:"color_accent"`
	ColorHelp    string `mapstructure:"color_help"`
	ColorError   string `mapstructure:"color_error"`
	IconApp      string `mapstructure:"icon_app"`
	IconStreak   string `mapstructure:"icon_streak"`
	IconStats    string `mapstructure:"icon_stats"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorDone:    "#2ECC71",
		ColorPending: "#A0AEC0",
		ColorLocked:  "#4B5563",
		ColorTitle:   "#7C6FE0",
		ColorAccent:  "#F5A623",
		ColorHelp:    "#95A5A6",
		ColorError:   "#E74C3C",
		IconApp:      "✅",
		IconStreak:   "🔥",
		IconStats:    "📊",
	}
}

const defaultDataDir = "~/.habit"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: "sqlite",
			DataDir: defaultDataDir,
		},
		Dashboard: DashboardConfig{
			WeekStart:    "sunday",
			ShowThoughts: true,
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Theme: DefaultThemeConfig(),
	}
}

// configFile overrides the default config location when set.
var configFile string

// SetConfigFile makes Load and Save use path instead of ~/.habit/config.toml.
func SetConfigFile(path string) {
	configFile = path
}

// Load loads the configuration from the config file, creating it with
// defaults on first run. HABIT_* environment variables override file values.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newViper(configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	dataDir, err := ExpandPath(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}
	cfg.Storage.DataDir = dataDir

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newViper(configPath)
	v.Set("storage.backend", cfg.Storage.Backend)
	v.Set("storage.data_dir", cfg.Storage.DataDir)
	v.Set("dashboard.week_start", cfg.Dashboard.WeekStart)
	v.Set("dashboard.show_thoughts", cfg.Dashboard.ShowThoughts)
	v.Set("notifications.enabled", cfg.Notifications.Enabled)
	v.Set("notifications.sound", cfg.Notifications.Sound)
	v.Set("log.level", cfg.Log.Level)
	v.Set("theme.color_done", cfg.Theme.ColorDone)
	v.Set("theme.color_pending", cfg.Theme.ColorPending)
	v.Set("theme.color_locked", cfg.Theme.ColorLocked)
	v.Set("theme.color_title", cfg.Theme.ColorTitle)
	v.Set("theme.color_accent", cfg.Theme.ColorAccent)
	v.Set("theme.color_help", cfg.Theme.ColorHelp)
	v.Set("theme.color_error", cfg.Theme.ColorError)
	v.Set("theme.icon_app", cfg.Theme.IconApp)
	v.Set("theme.icon_streak", cfg.Theme.IconStreak)
	v.Set("theme.icon_stats", cfg.Theme.IconStats)

	return v.WriteConfigAs(configPath)
}

// Set updates a single key in the config file after checking it is known.
func Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	if !isKnownKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	switch key {
	case "dashboard.week_start":
		if _, err := ParseWeekday(value); err != nil {
			return err
		}
	case "storage.backend":
		if value != "sqlite" && value != "json" {
			return fmt.Errorf("storage.backend must be sqlite or json, got %q", value)
		}
	case "log.level":
		if _, err := zapcore.ParseLevel(value); err != nil {
			return fmt.Errorf("invalid log level %q", value)
		}
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newViper(configPath)
	if _, err := os.Stat(configPath); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.Set(key, value)
	return v.WriteConfigAs(configPath)
}

// Keys returns every known configuration key.
func Keys() []string {
	v := viper.New()
	setDefaults(v)
	return v.AllKeys()
}

func isKnownKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	if configFile != "" {
		return configFile, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".habit", "config.toml"), nil
}

// GetDBPath returns the path to the SQLite database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "habits.db")
}

// GetLogPath returns the path to the log file.
func GetLogPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "habit.log")
}

// WeekStart returns the configured first day of the week, Sunday when unset or invalid.
func (c *Config) WeekStart() time.Weekday {
	day, err := ParseWeekday(c.Dashboard.WeekStart)
	if err != nil {
		return time.Sunday
	}
	return day
}

// ParseWeekday accepts full or three-letter English day names.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid week day %q", s)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		path = defaultDataDir
	}
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	v.SetEnvPrefix("HABIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("storage.backend", defaults.Storage.Backend)
	v.SetDefault("storage.data_dir", defaults.Storage.DataDir)
	v.SetDefault("dashboard.week_start", defaults.Dashboard.WeekStart)
	v.SetDefault("dashboard.show_thoughts", defaults.Dashboard.ShowThoughts)
	v.SetDefault("notifications.enabled", defaults.Notifications.Enabled)
	v.SetDefault("notifications.sound", defaults.Notifications.Sound)
	v.SetDefault("log.level", defaults.Log.Level)

	// Theme defaults
	theme := defaults.Theme
	v.SetDefault("theme.color_done", theme.ColorDone)
	v.SetDefault("theme.color_pending", theme.ColorPending)
	v.SetDefault("theme.color_locked", theme.ColorLocked)
	v.SetDefault("theme.color_title", theme.ColorTitle)
	v.SetDefault("theme.color_accent", theme.ColorAccent)
	v.SetDefault("theme.color_help", theme.ColorHelp)
	v.SetDefault("theme.color_error", theme.ColorError)
	v.SetDefault("theme.icon_app", theme.IconApp)
	v.SetDefault("theme.icon_streak", theme.IconStreak)
	v.SetDefault("theme.icon_stats", theme.IconStats)
}

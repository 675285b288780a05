package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DatabaseConfig holds the SQLite database settings.
type DatabaseConfig struct {
	// Path is the location of the database file.
	Path string `mapstructure:"path" yaml:"path"`
}

// RedisConfig holds the connection settings for the push queue backend.
// An empty Addr disables the Redis-backed live channel entirely; the
// service falls back to the in-process channel.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
}

// NotifyConfig holds notification delivery settings.
type NotifyConfig struct {
	// Queue is the asynq queue name used for push delivery tasks.
	Queue string `mapstructure:"queue" yaml:"queue"`

	// PushEndpoint is the push provider URL the worker posts to.
	PushEndpoint string `mapstructure:"push_endpoint" yaml:"push_endpoint"`
}

// RemindConfig holds the reminder scanner settings.
type RemindConfig struct {
	// Schedule is a cron spec controlling how often due tasks are scanned.
	Schedule string `mapstructure:"schedule" yaml:"schedule"`
}

// AppConfig is the top-level service configuration.
type AppConfig struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Redis    RedisConfig    `mapstructure:"redis" yaml:"redis"`
	Notify   NotifyConfig   `mapstructure:"notify" yaml:"notify"`
	Remind   RemindConfig   `mapstructure:"remind" yaml:"remind"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/pairtask/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "pairtask", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Database: DatabaseConfig{Path: "pairtask.db"},
		Notify: NotifyConfig{
			Queue:        "notify",
			PushEndpoint: "https://exp.host/--/api/v2/push/send",
		},
		Remind: RemindConfig{Schedule: "@every 1m"},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("database.path", "pairtask.db")
	v.SetDefault("notify.queue", "notify")
	v.SetDefault("notify.push_endpoint", "https://exp.host/--/api/v2/push/send")
	v.SetDefault("remind.schedule", "@every 1m")

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

	v.Set("database", cfg.Database)
	v.Set("redis", cfg.Redis)
	v.Set("notify", cfg.Notify)
	v.Set("remind", cfg.Remind)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

// Package config loads Sclera configuration from file and environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the runtime configuration for the Sclera binaries.
type Config struct {
	// LogLevel is the zerolog level name ("debug", "info", "warn", "error").
	LogLevel string `mapstructure:"log_level"`

	// DatabasePath is the sqlite database file. Empty means the default
	// location under the user data directory.
	DatabasePath string `mapstructure:"database_path"`

	// ListenAddr is the bind address for the API server.
	ListenAddr string `mapstructure:"listen_addr"`

	// APIBaseURL is where the client reports tour completion.
	APIBaseURL string `mapstructure:"api_base_url"`

	// AccountType selects the guided-tour catalog ("student", "exam_prep").
	AccountType string `mapstructure:"account_type"`

	// Timezone is the default IANA timezone for users without one.
	Timezone string `mapstructure:"timezone"`
}

// Defaults applied before any file or environment override.
const (
	DefaultListenAddr = "127.0.0.1:8333"
	DefaultAPIBaseURL = "http://127.0.0.1:8333"
	DefaultTimezone   = "Asia/Kolkata"
)

// Load reads configuration from the given file path, or from the default
// config directory when path is empty, with SCLERA_* environment overrides.
// A missing config file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("database_path", "")
	v.SetDefault("listen_addr", DefaultListenAddr)
	v.SetDefault("api_base_url", DefaultAPIBaseURL)
	v.SetDefault("account_type", "student")
	v.SetDefault("timezone", DefaultTimezone)

	v.SetEnvPrefix("SCLERA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// ConfigDir returns the Sclera config directory, creating nothing.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "sclera"), nil
}

// DataDir returns the directory for the sqlite database, created on demand.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	dir := filepath.Join(home, ".local", "share", "sclera")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return dir, nil
}

// ResolveDatabasePath returns the configured database path, or the default
// location when unset.
func (c *Config) ResolveDatabasePath() (string, error) {
	if c.DatabasePath != "" {
		return c.DatabasePath, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sclera.db"), nil
}

// Package config loads builder configuration from YAML files and
// CHAINABLE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Zertz/stripe-chainable/pkg/logging"
	"github.com/Zertz/stripe-chainable/pkg/pagination"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. CHAINABLE_CACHE_ADDR.
const EnvPrefix = "CHAINABLE"

// Load loads the configuration from file. With an empty path it looks for
// chainable.yaml in the current directory and in ~/.chainable, and falls back
// to defaults when neither exists.
func Load(configPath string) (*Config, error) {
	v := newViper()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("chainable")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".chainable"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	return decode(v)
}

// Default returns the default configuration with environment overrides
// applied.
func Default() (*Config, error) {
	return decode(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("pagination.page_size", pagination.DefaultPageSize)

	// Cache defaults
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.addr", "localhost:6379")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("cache.prefix", "chainable")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}
	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		return fmt.Errorf("invalid logging format: %s", c.Logging.Format)
	}

	if c.Pagination.PageSize < 1 || c.Pagination.PageSize > pagination.MaxPageSize {
		return fmt.Errorf("pagination.page_size must be between 1 and %d (got %d)",
			pagination.MaxPageSize, c.Pagination.PageSize)
	}

	if c.Cache.Enabled {
		if c.Cache.Addr == "" {
			return fmt.Errorf("cache.addr is required when the cache is enabled")
		}
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive (got %s)", c.Cache.TTL)
		}
		if c.Cache.DB < 0 {
			return fmt.Errorf("cache.db must not be negative (got %d)", c.Cache.DB)
		}
	}

	return nil
}

// LoggerConfig converts the logging section for logging.Setup.
func (c *Config) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.LogLevel(strings.ToLower(c.Logging.Level))
	if format, err := logging.ParseFormat(c.Logging.Format); err == nil {
		cfg.Format = format
	}
	return cfg
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig represents the relational store configuration
type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // "postgres" or "sqlite"
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
	Path     string `yaml:"path"` // sqlite file
}

// CacheConfig represents Redis configuration for query history.
// An empty Host disables history.
type CacheConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Password   string `yaml:"password"`
	Database   int    `yaml:"database"`
	HistoryLen int    `yaml:"history_len"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LogConfig represents logger configuration
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultPath is read when CONFIG_FILE is unset.
const DefaultPath = "configs/config.yaml"

// Path returns the config file location.
func Path() string {
	if envFile := os.Getenv("CONFIG_FILE"); envFile != "" {
		return envFile
	}
	return DefaultPath
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	overrideString(&cfg.Database.Driver, "DB_DRIVER")
	overrideString(&cfg.Database.Host, "DB_HOST")
	overrideString(&cfg.Database.User, "DB_USER")
	overrideString(&cfg.Database.Password, "DB_PASSWORD")
	overrideString(&cfg.Database.Database, "DB_NAME")
	overrideString(&cfg.Database.SSLMode, "DB_SSLMODE")
	overrideString(&cfg.Database.Path, "DB_PATH")
	overrideString(&cfg.Cache.Host, "REDIS_HOST")
	overrideString(&cfg.Cache.Password, "REDIS_PASSWORD")
	overrideString(&cfg.Log.Level, "LOG_LEVEL")
	if err := overrideInt(&cfg.Database.Port, "DB_PORT"); err != nil {
		return nil, err
	}
	if err := overrideInt(&cfg.Cache.Port, "REDIS_PORT"); err != nil {
		return nil, err
	}
	if err := overrideInt(&cfg.Cache.Database, "REDIS_DB"); err != nil {
		return nil, err
	}
	if err := overrideInt(&cfg.Server.Port, "SERVER_PORT"); err != nil {
		return nil, err
	}

	// Defaults
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Cache.Port == 0 {
		cfg.Cache.Port = 6379
	}
	if cfg.Cache.HistoryLen == 0 {
		cfg.Cache.HistoryLen = 50
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("database.host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database.user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database.database is required")
		}
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for sqlite")
		}
	default:
		return fmt.Errorf("database.driver %q is not supported", c.Database.Driver)
	}
	if c.Cache.HistoryLen < 0 {
		return fmt.Errorf("cache.history_len must not be negative")
	}
	return nil
}

// HistoryEnabled reports whether a Redis host is configured
func (c *Config) HistoryEnabled() bool {
	return c.Cache.Host != ""
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: invalid integer %q", key, v)
	}
	*dst = n
	return nil
}

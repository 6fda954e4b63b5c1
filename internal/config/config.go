// Package config loads the kanban configuration: built-in defaults, then an
// optional YAML file, then KANBAN_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Auth modes
const (
	AuthModeNone  = "none"  // No authentication (local use)
	AuthModeHS256 = "hs256" // Bearer JWT signed with a shared secret
	AuthModeJWKS  = "jwks"  // Bearer JWT verified against a remote key set
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config represents the kanban configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	HTTP     HTTPConfig     `yaml:"http"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"KANBAN_DATABASE_PATH"`
}

// HTTPConfig configures the REST server.
type HTTPConfig struct {
	Addr            string        `yaml:"addr" env:"KANBAN_HTTP_ADDR"`
	BodyLimit       string        `yaml:"body_limit" env:"KANBAN_HTTP_BODY_LIMIT"` // e.g. "1M"
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"KANBAN_HTTP_SHUTDOWN_TIMEOUT"`
}

// RedisConfig configures the optional board cache. An empty URL disables it.
type RedisConfig struct {
	URL string        `yaml:"url,omitempty" env:"KANBAN_REDIS_URL"`
	TTL time.Duration `yaml:"ttl" env:"KANBAN_REDIS_TTL"`
}

// AuthConfig configures bearer token verification.
type AuthConfig struct {
	Mode     string `yaml:"mode" env:"KANBAN_AUTH_MODE"`
	Secret   string `yaml:"secret,omitempty" env:"KANBAN_AUTH_SECRET"`
	JWKSURL  string `yaml:"jwks_url,omitempty" env:"KANBAN_AUTH_JWKS_URL"`
	Audience string `yaml:"audience,omitempty" env:"KANBAN_AUTH_AUDIENCE"`
	Issuer   string `yaml:"issuer,omitempty" env:"KANBAN_AUTH_ISSUER"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level" env:"KANBAN_LOG_LEVEL"`
	Format string `yaml:"format" env:"KANBAN_LOG_FORMAT"`
}

// Default returns the built-in configuration.
func Default() *Config {
	dbPath := filepath.Join(".kanban", "kanban.db")
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".kanban", "kanban.db")
	}
	return &Config{
		Database: DatabaseConfig{Path: dbPath},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			BodyLimit:       "1M",
			ShutdownTimeout: 10 * time.Second,
		},
		Redis: RedisConfig{TTL: 5 * time.Minute},
		Auth:  AuthConfig{Mode: AuthModeNone},
		Log:   LogConfig{Level: "info", Format: LogFormatText},
	}
}

// DefaultPath returns ~/.kanban/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".kanban", "config.yaml"), nil
}

// Load resolves the configuration. An empty path means the default location,
// which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// No config file; defaults and environment only.
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg as YAML to path, creating its directory.
func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may hold the auth secret.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	if c.HTTP.BodyLimit == "" {
		return fmt.Errorf("http.body_limit is required")
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return fmt.Errorf("http.shutdown_timeout must be > 0, got %s", c.HTTP.ShutdownTimeout)
	}
	if c.Redis.URL != "" && c.Redis.TTL <= 0 {
		return fmt.Errorf("redis.ttl must be > 0 when redis.url is set, got %s", c.Redis.TTL)
	}

	switch c.Auth.Mode {
	case AuthModeNone:
	case AuthModeHS256:
		if c.Auth.Secret == "" {
			return fmt.Errorf("auth.secret is required for auth mode '%s'", AuthModeHS256)
		}
	case AuthModeJWKS:
		if c.Auth.JWKSURL == "" {
			return fmt.Errorf("auth.jwks_url is required for auth mode '%s'", AuthModeJWKS)
		}
	default:
		return fmt.Errorf("invalid auth.mode: %s (must be 'none', 'hs256' or 'jwks')", c.Auth.Mode)
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level: %s", c.Log.Level)
	}
	if c.Log.Format != LogFormatText && c.Log.Format != LogFormatJSON {
		return fmt.Errorf("invalid log.format: %s (must be 'text' or 'json')", c.Log.Format)
	}

	return nil
}

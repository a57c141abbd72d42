package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "hydrohero/backend/libs/config"
	libdb "hydrohero/backend/libs/db"
)

const (
	defaultPort             = "8000"
	defaultTelemetryTimeout = 10
	defaultRedisTTL         = 24 * 60 * 60
	defaultHistoryLimit     = 500
)

// HTTPConfig configures the listener.
type HTTPConfig struct {
	Port        string   `yaml:"port" env:"HYDRATION_HTTP_PORT"`
	CORSOrigins []string `yaml:"corsOrigins" env:"HYDRATION_CORS_ORIGINS"`
}

// DatabaseConfig selects the SQL driver and DSN.
type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"HYDRATION_DB_DRIVER"`
	DSN    string `yaml:"dsn" env:"HYDRATION_DB_DSN"`
}

// TelemetryConfig points at the realtime database holding device documents.
type TelemetryConfig struct {
	URL            string `yaml:"url" env:"HYDRATION_TELEMETRY_URL"`
	TimeoutSeconds int    `yaml:"timeoutSeconds" env:"HYDRATION_TELEMETRY_TIMEOUT"`
}

// RedisConfig enables device last-seen tracking when Addr is set.
type RedisConfig struct {
	Addr       string `yaml:"addr" env:"HYDRATION_REDIS_ADDR"`
	Password   string `yaml:"password" env:"HYDRATION_REDIS_PASSWORD"`
	DB         int    `yaml:"db" env:"HYDRATION_REDIS_DB"`
	TTLSeconds int    `yaml:"ttlSeconds" env:"HYDRATION_REDIS_TTL"`
}

// Config represents service configuration loaded from YAML/env.
type Config struct {
	HTTP         HTTPConfig      `yaml:"http"`
	Database     DatabaseConfig  `yaml:"database"`
	Telemetry    TelemetryConfig `yaml:"telemetry"`
	Redis        RedisConfig     `yaml:"redis"`
	HistoryLimit int             `yaml:"historyLimit" env:"HYDRATION_HISTORY_LIMIT"`
}

// Load reads configuration using the shared config loader.
func Load() (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{
			Port:        defaultPort,
			CORSOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Driver: libdb.DriverPostgres,
		},
		Telemetry: TelemetryConfig{
			TimeoutSeconds: defaultTelemetryTimeout,
		},
		Redis: RedisConfig{
			TTLSeconds: defaultRedisTTL,
		},
		HistoryLimit: defaultHistoryLimit,
	}

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required values and normalizes the rest.
func (c *Config) Validate() error {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	switch c.Database.Driver {
	case "", "postgres", libdb.DriverPostgres:
		c.Database.Driver = libdb.DriverPostgres
	case "sqlite", libdb.DriverSQLite:
		c.Database.Driver = libdb.DriverSQLite
	default:
		return fmt.Errorf("config: unsupported database driver %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("config: database DSN is required")
	}
	c.Telemetry.URL = strings.TrimRight(strings.TrimSpace(c.Telemetry.URL), "/")
	if c.Telemetry.TimeoutSeconds <= 0 {
		c.Telemetry.TimeoutSeconds = defaultTelemetryTimeout
	}
	if c.Redis.TTLSeconds <= 0 {
		c.Redis.TTLSeconds = defaultRedisTTL
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = defaultHistoryLimit
	}
	return nil
}

// HTTPAddress ensures we always return host:port formatted string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = defaultPort
	}
	if strings.Contains(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// TelemetryTimeout bounds a single device document read.
func (c *Config) TelemetryTimeout() time.Duration {
	if c.Telemetry.TimeoutSeconds <= 0 {
		return defaultTelemetryTimeout * time.Second
	}
	return time.Duration(c.Telemetry.TimeoutSeconds) * time.Second
}

// RedisEnabled reports whether last-seen tracking is configured.
func (c *Config) RedisEnabled() bool {
	return strings.TrimSpace(c.Redis.Addr) != ""
}

// LastSeenTTL is how long a device last-seen entry survives.
func (c *Config) LastSeenTTL() time.Duration {
	if c.Redis.TTLSeconds <= 0 {
		return defaultRedisTTL * time.Second
	}
	return time.Duration(c.Redis.TTLSeconds) * time.Second
}

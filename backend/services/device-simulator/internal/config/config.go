package config

import (
	"strings"
	"time"

	libconfig "hydrohero/backend/libs/config"
)

const (
	defaultBackendURL  = "http://localhost:8000/api"
	defaultFrontendURL = "http://localhost:5173"
	defaultTimeout     = 10
)

// Config holds simulator defaults. Command line flags override every field.
type Config struct {
	Firebase struct {
		URL      string `yaml:"url" env:"HYDROSIM_FIREBASE_URL"`
		DeviceID string `yaml:"deviceId" env:"HYDROSIM_DEVICE_ID"`
	} `yaml:"firebase"`
	BackendURL     string `yaml:"backendUrl" env:"HYDROSIM_BACKEND_URL"`
	FrontendURL    string `yaml:"frontendUrl" env:"HYDROSIM_FRONTEND_URL"`
	TimeoutSeconds int    `yaml:"timeoutSeconds" env:"HYDROSIM_TIMEOUT"`
}

// Load reads configuration using the shared config loader.
func Load() (*Config, error) {
	cfg := &Config{
		BackendURL:     defaultBackendURL,
		FrontendURL:    defaultFrontendURL,
		TimeoutSeconds: defaultTimeout,
	}
	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}
	cfg.Firebase.URL = strings.TrimRight(strings.TrimSpace(cfg.Firebase.URL), "/")
	cfg.Firebase.DeviceID = strings.TrimSpace(cfg.Firebase.DeviceID)
	return cfg, nil
}

// Timeout converts the configured seconds to a duration.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultTimeout * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

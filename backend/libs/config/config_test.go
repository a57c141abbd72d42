package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	HTTP struct {
		Port string `yaml:"port" env:"TEST_HTTP_PORT"`
	} `yaml:"http"`
	Telemetry struct {
		URL            string `yaml:"url"`
		TimeoutSeconds int    `yaml:"timeoutSeconds"`
	} `yaml:"telemetry"`
	Origins []string `yaml:"origins" env:"TEST_ORIGINS"`
	Debug   bool     `yaml:"debug" env:"TEST_DEBUG"`
	Ignored string   `env:"-"`
}

func TestLoadConfigRejectsNonPointer(t *testing.T) {
	require.Error(t, LoadConfig(nil))
	require.Error(t, LoadConfig(testConfig{}))
}

func TestLoadConfigYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  port: "9000"
telemetry:
  url: https://example.firebaseio.com
  timeoutSeconds: 3
origins: ["http://a"]
`), 0o600))

	t.Setenv("ENV_FILE", "")
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("TEST_HTTP_PORT", "9100")
	t.Setenv("TELEMETRY_TIMEOUTSECONDS", "7")
	t.Setenv("TEST_ORIGINS", "http://x, http://y,,")
	t.Setenv("TEST_DEBUG", "true")
	t.Setenv("IGNORED", "nope")

	var cfg testConfig
	require.NoError(t, LoadConfig(&cfg))

	assert.Equal(t, "9100", cfg.HTTP.Port)
	assert.Equal(t, "https://example.firebaseio.com", cfg.Telemetry.URL)
	assert.Equal(t, 7, cfg.Telemetry.TimeoutSeconds)
	assert.Equal(t, []string{"http://x", "http://y"}, cfg.Origins)
	assert.True(t, cfg.Debug)
	assert.Empty(t, cfg.Ignored)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "local.env")
	require.NoError(t, os.WriteFile(envPath, []byte("TEST_HTTP_PORT=7777\n"), 0o600))

	t.Setenv("CONFIG_FILE", "")
	t.Setenv("ENV_FILE", envPath)
	// godotenv.Load sets variables that t.Setenv does not track.
	t.Cleanup(func() { os.Unsetenv("TEST_HTTP_PORT") })

	var cfg testConfig
	require.NoError(t, LoadConfig(&cfg))
	assert.Equal(t, "7777", cfg.HTTP.Port)
}

func TestLoadConfigMissingExplicitEnvFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	var cfg testConfig
	require.Error(t, LoadConfig(&cfg))
}

func TestLoadConfigInvalidValue(t *testing.T) {
	t.Setenv("ENV_FILE", "")
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("TEST_DEBUG", "maybe")

	var cfg testConfig
	err := LoadConfig(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TEST_DEBUG")
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	libdb "hydrohero/backend/libs/db"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "none.env"))
	require.NoError(t, os.WriteFile(os.Getenv("ENV_FILE"), nil, 0o600))
	t.Setenv("CONFIG_FILE", "")
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("HYDRATION_DB_DSN", "postgres://localhost/hydration")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.HTTPAddress())
	assert.Equal(t, libdb.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 10*time.Second, cfg.TelemetryTimeout())
	assert.False(t, cfg.RedisEnabled())
	assert.Equal(t, 24*time.Hour, cfg.LastSeenTTL())
	assert.Equal(t, 500, cfg.HistoryLimit)
}

func TestLoadRequiresDSN(t *testing.T) {
	isolate(t)
	t.Setenv("HYDRATION_DB_DSN", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("HYDRATION_HTTP_PORT", "9090")
	t.Setenv("HYDRATION_DB_DRIVER", "SQLite")
	t.Setenv("HYDRATION_DB_DSN", "/tmp/hydration.db")
	t.Setenv("HYDRATION_TELEMETRY_URL", "https://demo.firebaseio.com/devices/ ")
	t.Setenv("HYDRATION_TELEMETRY_TIMEOUT", "3")
	t.Setenv("HYDRATION_REDIS_ADDR", "localhost:6379")
	t.Setenv("HYDRATION_REDIS_TTL", "60")
	t.Setenv("HYDRATION_CORS_ORIGINS", "http://localhost:5173, http://localhost:3000")
	t.Setenv("HYDRATION_HISTORY_LIMIT", "20")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddress())
	assert.Equal(t, libdb.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "https://demo.firebaseio.com/devices", cfg.Telemetry.URL)
	assert.Equal(t, 3*time.Second, cfg.TelemetryTimeout())
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, time.Minute, cfg.LastSeenTTL())
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 20, cfg.HistoryLimit)
}

func TestLoadYAML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  port: "127.0.0.1:8100"
database:
  driver: sqlite3
  dsn: hydration.db
telemetry:
  url: https://demo.firebaseio.com
historyLimit: -1
`), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8100", cfg.HTTPAddress())
	assert.Equal(t, "hydration.db", cfg.Database.DSN)
	assert.Equal(t, 500, cfg.HistoryLimit)
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Driver: "mysql", DSN: "x"}}
	require.ErrorContains(t, cfg.Validate(), "mysql")
}

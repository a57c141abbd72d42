package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("ENV_FILE", "")
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("HYDROSIM_FIREBASE_URL", "https://demo.firebaseio.com/ ")
	t.Setenv("HYDROSIM_DEVICE_ID", " bottle-1 ")
	t.Setenv("HYDROSIM_TIMEOUT", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://demo.firebaseio.com", cfg.Firebase.URL)
	assert.Equal(t, "bottle-1", cfg.Firebase.DeviceID)
	assert.Equal(t, "http://localhost:8000/api", cfg.BackendURL)
	assert.Equal(t, "http://localhost:5173", cfg.FrontendURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
}

func TestLoadMissingExplicitConfigFile(t *testing.T) {
	t.Setenv("ENV_FILE", "")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
}

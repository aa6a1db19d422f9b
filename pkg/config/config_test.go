package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mapmeasure", cfg.Server.Name)
	assert.Equal(t, 64, cfg.Sessions.Max)
	assert.Equal(t, 1.0, cfg.Nominatim.RPS)
	assert.Equal(t, 5*time.Minute, cfg.Nominatim.CacheTTL)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapmeasure.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sessions:\n  max: 8\nnominatim:\n  cache_ttl: 30s\n"), 0o600))
	t.Setenv("MAPMEASURE_NOMINATIM_RPS", "2.5")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Sessions.Max)
	assert.Equal(t, 30*time.Second, cfg.Nominatim.CacheTTL)
	assert.Equal(t, 2.5, cfg.Nominatim.RPS)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.name is required")
	assert.Contains(t, err.Error(), "sessions.max must be positive")
	assert.Contains(t, err.Error(), "nominatim.rps must be positive")
}

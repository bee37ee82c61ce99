package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(New(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "file", cfg.Prefs.Backend)
	assert.Equal(t, 50*time.Millisecond, cfg.Theme.ApplyDelay)
	assert.Equal(t, 30*time.Second, cfg.Refresh.Interval)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: http://students.internal:9000
prefs:
  backend: sqlite
  path: /tmp/prefs.db
refresh:
  interval: 1m
`), 0o644))
	t.Setenv("CLASSDESK_PREFS_BACKEND", "memory")

	cfg, err := LoadFrom(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "http://students.internal:9000", cfg.API.BaseURL)
	assert.Equal(t, "memory", cfg.Prefs.Backend, "environment beats file")
	assert.Equal(t, "/tmp/prefs.db", cfg.Prefs.Path)
	assert.Equal(t, time.Minute, cfg.Refresh.Interval)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unclosed\n"), 0o644))
	_, err := LoadFrom(New(), path)
	assert.Error(t, err)
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefault(path))
	assert.Error(t, WriteDefault(path), "existing files are not overwritten")

	cfg, err := LoadFrom(New(), path)
	require.NoError(t, err)
	assert.Equal(t, Default().API, cfg.API)
	assert.Equal(t, Default().Theme.ApplyDelay, cfg.Theme.ApplyDelay)
}

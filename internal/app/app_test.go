package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classdesk/internal/prefs"
	"classdesk/internal/ui/theme"
)

func TestSetupWiresDependencies(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	themes := filepath.Join(home, "themes")
	require.NoError(t, os.MkdirAll(themes, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(themes, "ocean.json"),
		[]byte(`{"name":"ocean","extends":["dark"],"properties":{"accent":"#00bcd4"}}`), 0o644))

	cfgPath := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
api:
  base_url: http://configured:8080
prefs:
  backend: sqlite
  path: `+filepath.Join(home, "prefs.db")+`
theme:
  dir: `+themes+`
`), 0o644))

	env, err := Setup(context.Background(), Config{ConfigPath: cfgPath, APIBase: "http://flag:9000", Debug: true})
	require.NoError(t, err)
	defer env.Close()

	assert.Equal(t, "http://flag:9000", env.Client.BaseURL())
	assert.True(t, env.Registry.Has(theme.Name("ocean")))
	require.Len(t, env.Themes, 1)

	saved, ok, err := env.Prefs.Get(context.Background(), prefs.KeyAPIBase)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "http://flag:9000", saved)

	assert.NotEmpty(t, env.Ring.Entries())
	_, err = os.Stat(filepath.Join(home, ".classdesk", "classdesk.log"))
	assert.NoError(t, err, "debug enables the file log")
}

func TestSetupSavedBaseURLBeatsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CLASSDESK_PREFS_BACKEND", "file")
	t.Setenv("CLASSDESK_PREFS_PATH", filepath.Join(home, "prefs.yaml"))

	env, err := Setup(context.Background(), Config{APIBase: "http://saved:1"})
	require.NoError(t, err)
	require.NoError(t, env.Close())

	env, err = Setup(context.Background(), Config{})
	require.NoError(t, err)
	defer env.Close()
	assert.Equal(t, "http://saved:1", env.Client.BaseURL())
}

func TestSetupNoPersist(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	env, err := Setup(context.Background(), Config{NoPersist: true})
	require.NoError(t, err)
	defer env.Close()

	_, isMemory := env.Prefs.(*prefs.Memory)
	assert.True(t, isMemory)
	assert.Equal(t, "http://localhost:8080", env.Client.BaseURL())
}

func TestRestoreDarkMode(t *testing.T) {
	store := prefs.NewMemory()
	surface := theme.NewSurface()

	restoreDarkMode(context.Background(), store, surface, nil)
	assert.False(t, surface.HasClass(theme.DarkModeClass))

	require.NoError(t, store.Set(context.Background(), prefs.KeyDarkMode, "true"))
	restoreDarkMode(context.Background(), store, surface, nil)
	assert.True(t, surface.HasClass(theme.DarkModeClass))
}

func TestTestConnection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"An","className":"CTK46","gpa":3.5}]`))
	}))
	defer srv.Close()

	t.Setenv("HOME", t.TempDir())
	env, err := Setup(context.Background(), Config{NoPersist: true, APIBase: srv.URL})
	require.NoError(t, err)
	defer env.Close()

	var out bytes.Buffer
	require.NoError(t, TestConnection(context.Background(), &out, env.Client))
	assert.Contains(t, out.String(), "Found 1 students.")
	assert.Contains(t, out.String(), "An (CTK46)")
}

func TestPrintVersion(t *testing.T) {
	var out bytes.Buffer
	PrintVersion(&out)
	assert.Contains(t, out.String(), "classdesk dev")
}

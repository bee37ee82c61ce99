package theme

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classdesk/internal/prefs"
)

func newTestManager(t *testing.T, store Preferences) (*Manager, *Surface, *ManualScheduler) {
	t.Helper()
	s := NewSurface()
	sched := NewManualScheduler()
	r := NewRegistry()
	a := NewApplier(r, s, WithScheduler(sched), WithPreferences(store))
	return NewManager(r, a, store, nil), s, sched
}

func TestManagerSavedThemeRoundTrip(t *testing.T) {
	store := prefs.NewMemory()
	m, _, _ := newTestManager(t, store)
	require.True(t, m.SetTheme(NameNeon))

	restarted, s, sched := newTestManager(t, store)
	assert.Equal(t, NameNeon, restarted.LoadSaved())
	sched.Advance(DefaultApplyDelay)
	glow, _ := s.Slot("--glow-effect")
	assert.Equal(t, "0 0 20px #00ff00", glow)
}

func TestManagerLoadSavedDefaults(t *testing.T) {
	m, s, _ := newTestManager(t, prefs.NewMemory())
	assert.Equal(t, NameDefault, m.LoadSaved())
	assert.Equal(t, "", s.ThemeClass())

	m, _, _ = newTestManager(t, &failingPrefs{})
	assert.Equal(t, NameDefault, m.LoadSaved())
}

func TestManagerLoadSavedUnknownFallsBack(t *testing.T) {
	store := prefs.NewMemory()
	require.NoError(t, store.Set(context.Background(), prefs.KeySelectedTheme, "sepia"))

	m, _, _ := newTestManager(t, store)
	assert.Equal(t, NameDefault, m.LoadSaved())
}

func TestManagerSetThemeUnknownKeepsCurrent(t *testing.T) {
	m, _, _ := newTestManager(t, prefs.NewMemory())
	require.True(t, m.SetTheme(NameDark))
	assert.False(t, m.SetTheme("sepia"))
	assert.Equal(t, NameDark, m.Current())
	assert.Equal(t, "#ff6b6b", m.Resolved()[KeyAccent])
}

func TestManagerCycle(t *testing.T) {
	m, _, _ := newTestManager(t, prefs.NewMemory())
	got := []Name{m.Cycle(), m.Cycle(), m.Cycle(), m.Cycle()}
	assert.Equal(t, []Name{NameDark, NameLight, NameNeon, NameDefault}, got)
}

func TestFromFlag(t *testing.T) {
	_, ok := FromFlag("  ")
	assert.False(t, ok)

	n, ok := FromFlag("Neon")
	assert.True(t, ok)
	assert.Equal(t, NameNeon, n)

	t.Setenv("COLORFGBG", "")
	t.Setenv("CLASSDESK_TERMINAL_THEME", "light")
	n, ok = FromFlag("auto")
	assert.True(t, ok)
	assert.Equal(t, NameLight, n)
}

func TestBackgroundFromColorFGBG(t *testing.T) {
	tests := []struct {
		value     string
		light, ok bool
	}{
		{"15;0", false, true},
		{"0;15", true, true},
		{"0;7;0", true, true},
		{"0;8", false, true},
		{"default", false, false},
		{"0;x", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			light, ok := backgroundFromColorFGBG(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.light, light)
		})
	}
}

package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurfaceFlushNotifiesListeners(t *testing.T) {
	s := NewSurface()
	calls := 0
	s.OnChange(func() {
		calls++
		// listeners may read the surface without deadlocking
		_ = s.Classes()
	})

	s.SetSlot("--bg-primary", "#000")
	assert.Equal(t, 0, calls)
	s.Flush()
	assert.Equal(t, 1, calls)
	assert.Equal(t, uint64(1), s.Revision())
}

func TestSurfaceClasses(t *testing.T) {
	s := NewSurface()
	s.AddClass("neon-theme")
	s.AddClass(DarkModeClass)
	assert.Equal(t, "neon-theme", s.ThemeClass())

	s.RemoveClassesMatching(isThemeClass)
	assert.Equal(t, []string{"dark"}, s.Classes())
	assert.False(t, s.ToggleClass(DarkModeClass))
	assert.True(t, s.ToggleClass(DarkModeClass))
	assert.True(t, s.HasClass(DarkModeClass))
}

func TestParseColor(t *testing.T) {
	black, _ := colorful.Hex("#000000")

	tests := []struct {
		name  string
		value string
		want  string
		ok    bool
	}{
		{"hex", "#ff6b6b", "#ff6b6b", true},
		{"short hex", "#fff", "#ffffff", true},
		{"opaque rgba", "rgba(255, 0, 0, 1)", "#ff0000", true},
		{"translucent over black", "rgba(255, 255, 255, 0.5)", "#808080", true},
		{"shadow", "0 0 20px #00ff00", "#00ff00", true},
		{"gradient", "linear-gradient(135deg, #000000 0%, #ffffff 100%)", "", true},
		{"keyword", "transparent", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HexColor(tt.value, black)
			require.Equal(t, tt.ok, ok)
			if tt.want != "" {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestStylesFollowSurface(t *testing.T) {
	s := NewSurface()
	st := StylesFor(s)
	assert.False(t, st.HasGlow)
	assert.Equal(t, Primary, st.AccentColor)

	s.SetSlot("--accent-primary", "#ff6b6b")
	s.SetSlot("--glow-effect", "0 0 20px #00ff00")
	st = StylesFor(s)
	assert.Equal(t, lipgloss.Color("#ff6b6b"), st.AccentColor)
	assert.True(t, st.HasGlow)
	assert.Equal(t, lipgloss.Color("#00ff00"), st.GlowColor)

	s.AddClass(DarkModeClass)
	st = StylesFor(s)
	assert.Equal(t, lipgloss.Color(Border.Dark), st.BorderColor)
}

func TestFallbackStylesheetColors(t *testing.T) {
	st := DefaultStyles()
	assert.Equal(t, PrimaryMuted, st.Button.GetBorderTopForeground())
	assert.Equal(t, TextDim, st.StatusValue.GetForeground())

	s := NewSurface()
	s.SetSlot("--btn-outline-border", "#007bff")
	s.SetSlot("--text-secondary", "#123456")
	s.SetSlot("--bg-primary", "#000000")
	st = StylesFor(s)
	assert.Equal(t, lipgloss.Color("#007bff"), st.Button.GetBorderTopForeground())
	assert.Equal(t, lipgloss.Color("#123456"), st.StatusValue.GetForeground())
	assert.Equal(t, "#000000", st.Backdrop.Hex())
}

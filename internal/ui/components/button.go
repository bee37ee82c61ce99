package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"classdesk/internal/ui/theme"
)

// Brand colors for primary actions.
const (
	GradientFrom = "#667eea"
	GradientTo   = "#764ba2"
	GlowBase     = "#667eea"
)

// Glow strength, as the opacity of the glow color over the backdrop.
const (
	GlowIdle    = 0.5
	GlowFocused = 0.8
)

// Button is a dialog button ready to render.
type Button struct {
	Label   string
	Focused bool
	Style   lipgloss.Style
	// Fill paints one background color per cell across the padded label.
	Fill []lipgloss.Color
}

// ButtonDecorator returns a restyled copy of a button.
type ButtonDecorator func(Button) Button

// NewButton returns the outline button from the active styles.
func NewButton(label string, focused bool, st theme.Styles) Button {
	style := st.Button
	if focused {
		style = st.ButtonActive
	}
	return Button{Label: label, Focused: focused, Style: style}
}

// Decorate applies decorators in order.
func (b Button) Decorate(decorators ...ButtonDecorator) Button {
	for _, d := range decorators {
		b = d(b)
	}
	return b
}

// Gradient fills the button with a left-to-right blend between two hex colors.
func Gradient(from, to string) ButtonDecorator {
	return func(b Button) Button {
		start, err := colorful.Hex(from)
		if err != nil {
			return b
		}
		end, err := colorful.Hex(to)
		if err != nil {
			return b
		}
		width := lipgloss.Width(b.Label) + b.Style.GetHorizontalPadding()
		b.Fill = GradientColors(start, end, width)
		b.Style = b.Style.UnsetBackground().Foreground(lipgloss.Color("#ffffff"))
		return b
	}
}

// Glow tints the border with the theme glow, or GlowBase when the theme has
// none. A focused button glows brighter and gets a thick border.
func Glow(st theme.Styles) ButtonDecorator {
	return func(b Button) Button {
		glow, _ := colorful.Hex(GlowBase)
		if c, ok := st.GlowColor.(lipgloss.Color); ok && st.HasGlow {
			if parsed, err := colorful.Hex(string(c)); err == nil {
				glow = parsed
			}
		}
		strength := GlowIdle
		if b.Focused {
			strength = GlowFocused
			b.Style = b.Style.BorderStyle(lipgloss.ThickBorder())
		}
		b.Style = b.Style.BorderForeground(lipgloss.Color(GlowColor(st.Backdrop, glow, strength)))
		return b
	}
}

// GlowColor is glow at the given opacity over backdrop, as "#rrggbb".
func GlowColor(backdrop, glow colorful.Color, strength float64) string {
	return backdrop.BlendRgb(glow, strength).Clamped().Hex()
}

// GradientColors returns n colors blended from start to end in Lab space.
func GradientColors(start, end colorful.Color, n int) []lipgloss.Color {
	if n <= 0 {
		return nil
	}
	out := make([]lipgloss.Color, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = lipgloss.Color(start.BlendLab(end, t).Clamped().Hex())
	}
	return out
}

// View renders the button.
func (b Button) View() string {
	if len(b.Fill) == 0 {
		return b.Style.Render(b.Label)
	}

	cells := []rune(strings.Repeat(" ", b.Style.GetPaddingLeft()) + b.Label + strings.Repeat(" ", b.Style.GetPaddingRight()))
	cell := lipgloss.NewStyle().Foreground(b.Style.GetForeground()).Bold(b.Focused)

	var sb strings.Builder
	for i, r := range cells {
		sb.WriteString(cell.Background(b.Fill[min(i, len(b.Fill)-1)]).Render(string(r)))
	}
	return b.Style.
		UnsetPaddingLeft().
		UnsetPaddingRight().
		UnsetBackground().
		Render(sb.String())
}

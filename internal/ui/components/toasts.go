package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"classdesk/internal/notify"
	"classdesk/internal/ui/theme"
)

// ToastSource lists the toasts to draw.
type ToastSource interface {
	Visible() []notify.Toast
}

// Toasts renders the toast stack, newest at the bottom.
type Toasts struct {
	source ToastSource
	width  int
	styles theme.Styles
}

// NewToasts creates a toast stack reading from source.
func NewToasts(source ToastSource) *Toasts {
	return &Toasts{source: source, styles: theme.DefaultStyles()}
}

// SetStyles applies the active theme.
func (t *Toasts) SetStyles(st theme.Styles) {
	t.styles = st
}

// SetWidth sets the available width.
func (t *Toasts) SetWidth(width int) {
	t.width = width
}

// Empty reports whether nothing would be drawn.
func (t *Toasts) Empty() bool {
	return t.source == nil || len(t.source.Visible()) == 0
}

var toastIcons = map[notify.Kind]string{
	notify.KindSuccess: "✓",
	notify.KindError:   "✗",
	notify.KindWarning: "!",
	notify.KindInfo:    "i",
}

func (t *Toasts) color(kind notify.Kind) lipgloss.TerminalColor {
	switch kind {
	case notify.KindSuccess:
		return t.styles.SuccessColor
	case notify.KindError:
		return t.styles.ErrorColor
	case notify.KindWarning:
		return t.styles.WarningColor
	default:
		return t.styles.InfoColor
	}
}

// View renders the stack, or "" when empty.
func (t *Toasts) View() string {
	if t.Empty() {
		return ""
	}

	width := min(48, max(20, t.width/3))
	var rows []string
	for _, toast := range t.source.Visible() {
		c := t.color(toast.Kind)
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c).
			Foreground(c).
			Padding(0, 1).
			Width(width)
		if toast.Phase == notify.PhaseFading {
			style = style.Faint(true)
		}
		rows = append(rows, style.Render(toastIcons[toast.Kind]+" "+truncate(toast.Message, width-4)))
	}
	return strings.Join(rows, "\n")
}

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"classdesk/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SpinnerTickMsg is sent on each spinner frame update.
type SpinnerTickMsg time.Time

// Spinner is an animated loading indicator.
type Spinner struct {
	frame    int
	interval time.Duration
	style    lipgloss.Style
}

// NewSpinner creates a new Spinner.
func NewSpinner() *Spinner {
	return &Spinner{
		interval: 80 * time.Millisecond,
		style:    theme.DefaultStyles().Spinner,
	}
}

// SetStyles picks up the spinner color of the active theme.
func (s *Spinner) SetStyles(st theme.Styles) {
	s.style = st.Spinner
}

// Tick advances the spinner to the next frame.
func (s *Spinner) Tick() {
	s.frame = (s.frame + 1) % len(spinnerFrames)
}

// View returns the current spinner frame.
func (s *Spinner) View() string {
	return s.style.Render(spinnerFrames[s.frame])
}

// TickCmd returns a command that sends SpinnerTickMsg at the spinner's interval.
func (s *Spinner) TickCmd() tea.Cmd {
	return tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return SpinnerTickMsg(t)
	})
}

// SpinnerWithText renders a spinner followed by muted text.
func SpinnerWithText(spinner *Spinner, muted lipgloss.Style, text string) string {
	return spinner.View() + " " + muted.Render(text)
}

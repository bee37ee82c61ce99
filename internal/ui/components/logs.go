package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"classdesk/internal/log"
	"classdesk/internal/ui/theme"
)

// EntrySource supplies log entries, oldest first.
type EntrySource interface {
	Entries() []log.Entry
}

// Logs shows recent log entries in a scrollable panel.
type Logs struct {
	source   EntrySource
	viewport viewport.Model
	width    int
	height   int
	follow   bool
	styles   theme.Styles
}

// NewLogs creates a logs panel reading from source.
func NewLogs(source EntrySource) *Logs {
	return &Logs{
		source:   source,
		viewport: viewport.New(0, 0),
		follow:   true,
		styles:   theme.DefaultStyles(),
	}
}

// SetStyles applies the active theme.
func (l *Logs) SetStyles(st theme.Styles) {
	l.styles = st
}

// SetSize sets the panel size including its title line.
func (l *Logs) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.viewport.Width = max(0, width-2)
	l.viewport.Height = max(1, height-1)
	l.Refresh()
}

// Refresh reloads entries from the source.
func (l *Logs) Refresh() {
	if l.source == nil {
		return
	}
	l.viewport.SetContent(l.render())
	if l.follow {
		l.viewport.GotoBottom()
	}
}

// ScrollUp scrolls one line up and stops following new entries.
func (l *Logs) ScrollUp() {
	l.viewport.LineUp(1)
	l.follow = false
}

// ScrollDown scrolls one line down; reaching the end resumes following.
func (l *Logs) ScrollDown() {
	l.viewport.LineDown(1)
	l.follow = l.viewport.AtBottom()
}

// ScrollToBottom jumps to the newest entry.
func (l *Logs) ScrollToBottom() {
	l.viewport.GotoBottom()
	l.follow = true
}

func (l *Logs) render() string {
	s := l.styles
	entries := l.source.Entries()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		level := e.Level
		switch level {
		case "ERROR":
			level = s.StatusError.Render(padRight(level, 5))
		case "WARN":
			level = s.StatusWarning.Render(padRight(level, 5))
		case "DEBUG":
			level = s.Muted.Render(padRight(level, 5))
		default:
			level = s.StatusInfo.Render(padRight(level, 5))
		}
		lines = append(lines, s.Muted.Render(e.Time.Format("15:04:05"))+" "+level+" "+e.Message)
	}
	return strings.Join(lines, "\n")
}

// View renders the panel.
func (l *Logs) View() string {
	s := l.styles
	title := s.CardTitle.Render("Logs")
	return title + "\n" + l.viewport.View()
}

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"classdesk/internal/state"
	"classdesk/internal/ui/theme"
)

// Header renders the application header.
type Header struct {
	width     int
	title     string
	apiBase   string
	themeName string
	status    state.ConnectionStatus
	count     int
	extra     string
	styles    theme.Styles
}

// NewHeader creates a new Header component.
func NewHeader() *Header {
	return &Header{
		title:  "classdesk",
		styles: theme.DefaultStyles(),
	}
}

// SetStyles applies the active theme.
func (h *Header) SetStyles(st theme.Styles) {
	h.styles = st
}

// SetWidth sets the header width.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetAPIBase sets the API root display.
func (h *Header) SetAPIBase(base string) {
	h.apiBase = base
}

// SetTheme sets the active theme badge.
func (h *Header) SetTheme(name string) {
	h.themeName = name
}

// SetStatus sets the connection status and the number of loaded records.
func (h *Header) SetStatus(status state.ConnectionStatus, count int) {
	h.status = status
	h.count = count
}

// SetExtra sets trailing pre-rendered text, such as the refresh status.
func (h *Header) SetExtra(extra string) {
	h.extra = extra
}

// StatusText returns the plain connection summary, e.g. "connected · 12 records".
func (h *Header) StatusText() string {
	switch h.status {
	case state.StatusConnected:
		noun := "records"
		if h.count == 1 {
			noun = "record"
		}
		return fmt.Sprintf("connected · %d %s", h.count, noun)
	case state.StatusDisconnected:
		return "disconnected"
	default:
		return "connecting..."
	}
}

// View renders the header.
func (h *Header) View() string {
	s := h.styles

	var left strings.Builder
	left.WriteString(s.HeaderTitle.Render(h.title))
	if h.apiBase != "" {
		left.WriteString(s.HeaderInfo.Render(" > "))
		left.WriteString(s.HeaderInfo.Render(h.apiBase))
	}

	var right strings.Builder
	switch h.status {
	case state.StatusConnected:
		right.WriteString(s.StatusSuccess.Render("● " + h.StatusText()))
	case state.StatusDisconnected:
		right.WriteString(s.StatusError.Render("● " + h.StatusText()))
	default:
		right.WriteString(s.Muted.Render(h.StatusText()))
	}
	if h.extra != "" {
		right.WriteString(" ")
		right.WriteString(h.extra)
	}
	if h.themeName != "" {
		right.WriteString(" ")
		right.WriteString(s.HeaderBadge.Render(h.themeName))
	}

	leftStr := left.String()
	rightStr := right.String()

	padding := h.width - lipgloss.Width(leftStr) - lipgloss.Width(rightStr) - 4
	if padding < 2 {
		padding = 2
	}

	content := leftStr + fmt.Sprintf("%*s", padding, "") + rightStr
	return s.Header.Width(h.width).Render(content)
}

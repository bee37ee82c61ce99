package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"classdesk/internal/ui/theme"
)

// ThemePicker lists registered themes and returns the chosen one.
type ThemePicker struct {
	active  bool
	names   []theme.Name
	current theme.Name
	cursor  int
	styles  theme.Styles
}

// NewThemePicker creates a new picker.
func NewThemePicker() *ThemePicker {
	return &ThemePicker{styles: theme.DefaultStyles()}
}

// SetStyles applies the active theme.
func (p *ThemePicker) SetStyles(st theme.Styles) {
	p.styles = st
}

// Activate opens the picker with the cursor on current.
func (p *ThemePicker) Activate(names []theme.Name, current theme.Name) {
	p.active = true
	p.names = names
	p.current = current
	p.cursor = 0
	for i, n := range names {
		if n == current {
			p.cursor = i
			break
		}
	}
}

// Deactivate hides the picker.
func (p *ThemePicker) Deactivate() {
	p.active = false
}

// IsActive returns whether the picker is open.
func (p *ThemePicker) IsActive() bool {
	return p.active
}

// Highlighted returns the theme under the cursor.
func (p *ThemePicker) Highlighted() (theme.Name, bool) {
	if p.cursor < 0 || p.cursor >= len(p.names) {
		return "", false
	}
	return p.names[p.cursor], true
}

// Update moves the cursor. done is true once the picker closes; name is empty
// when it was dismissed without a choice.
func (p *ThemePicker) Update(msg tea.Msg) (name theme.Name, done bool) {
	if !p.active {
		return "", false
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", false
	}

	switch key.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.names)-1 {
			p.cursor++
		}
	case "enter":
		p.Deactivate()
		n, _ := p.Highlighted()
		return n, true
	case "esc", "t", "q":
		p.Deactivate()
		return "", true
	}
	return "", false
}

// View renders the picker.
func (p *ThemePicker) View() string {
	if !p.active {
		return ""
	}
	s := p.styles

	var b strings.Builder
	b.WriteString(s.ModalTitle.Render("Theme"))
	b.WriteString("\n\n")
	for i, n := range p.names {
		marker := "  "
		if i == p.cursor {
			marker = s.Cursor.Render("▸ ")
		}
		label := string(n)
		if n == p.current {
			label += " ✓"
		}
		if i == p.cursor {
			b.WriteString(marker + s.Accent.Bold(true).Render(label))
		} else {
			b.WriteString(marker + s.Row.Render(label))
		}
		if i < len(p.names)-1 {
			b.WriteString("\n")
		}
	}
	return s.Modal.Width(32).Render(b.String())
}

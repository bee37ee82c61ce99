package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"classdesk/internal/model"
	"classdesk/internal/ui/theme"
)

// ConfirmResult is returned when the user answers the dialog.
type ConfirmResult struct {
	Confirmed bool
	Student   model.Student
}

// ConfirmDialog asks before a student is deleted.
type ConfirmDialog struct {
	active  bool
	yes     bool
	student model.Student
	width   int
	styles  theme.Styles
}

// NewConfirmDialog creates a new confirmation dialog.
func NewConfirmDialog() *ConfirmDialog {
	return &ConfirmDialog{styles: theme.DefaultStyles()}
}

// SetStyles applies the active theme.
func (c *ConfirmDialog) SetStyles(st theme.Styles) {
	c.styles = st
}

// SetWidth sets the available width.
func (c *ConfirmDialog) SetWidth(width int) {
	c.width = width
}

// Activate opens the dialog for student. The focus starts on "Cancel".
func (c *ConfirmDialog) Activate(student model.Student) {
	c.active = true
	c.yes = false
	c.student = student
}

// Deactivate hides the dialog.
func (c *ConfirmDialog) Deactivate() {
	c.active = false
}

// IsActive returns whether the dialog is open.
func (c *ConfirmDialog) IsActive() bool {
	return c.active
}

// Update handles y/n, arrow keys and enter.
func (c *ConfirmDialog) Update(msg tea.Msg) *ConfirmResult {
	if !c.active {
		return nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "y", "Y":
		c.Deactivate()
		return &ConfirmResult{Confirmed: true, Student: c.student}
	case "n", "N", "esc", "q":
		c.Deactivate()
		return &ConfirmResult{Student: c.student}
	case "left", "right", "tab", "h", "l":
		c.yes = !c.yes
	case "enter":
		c.Deactivate()
		return &ConfirmResult{Confirmed: c.yes, Student: c.student}
	}
	return nil
}

// View renders the dialog.
func (c *ConfirmDialog) View() string {
	if !c.active {
		return ""
	}
	s := c.styles

	var b strings.Builder
	b.WriteString(s.ModalTitle.Render("Delete student?"))
	b.WriteString("\n\n")
	b.WriteString(s.Bold.Render(fmt.Sprintf("%s (%s, GPA %s)", c.student.Name, c.student.ClassName, model.FormatGPA(c.student.GPA))))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("This cannot be undone."))
	b.WriteString("\n\n")

	cancel := NewButton("Cancel", !c.yes, s).Decorate(Glow(s))
	del := NewButton("Delete", c.yes, s).Decorate(Glow(s))
	del.Style = del.Style.Foreground(s.ErrorColor)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cancel.View(), "  ", del.View()))

	width := 44
	if c.width > 0 && c.width < 54 {
		width = max(30, c.width-10)
	}
	return s.Modal.Width(width).Render(b.String())
}

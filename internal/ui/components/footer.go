package components

import (
	"strings"

	"classdesk/internal/ui/theme"
)

// KeyBinding represents a key binding for display in the footer.
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer renders the application footer with key bindings.
type Footer struct {
	width    int
	bindings []KeyBinding
	styles   theme.Styles
}

// NewFooter creates a new Footer component.
func NewFooter() *Footer {
	return &Footer{styles: theme.DefaultStyles()}
}

// SetStyles applies the active theme.
func (f *Footer) SetStyles(st theme.Styles) {
	f.styles = st
}

// SetWidth sets the footer width.
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings sets the key bindings to display.
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// View renders the footer.
func (f *Footer) View() string {
	s := f.styles
	divider := s.StatusDivider.Render(" | ")

	parts := make([]string, 0, len(f.bindings))
	for _, b := range f.bindings {
		parts = append(parts, s.StatusKey.Render(b.Key)+" "+s.StatusValue.Render(b.Desc))
	}

	return s.StatusBar.Width(f.width).Render(strings.Join(parts, divider))
}

// TableBindings returns the key bindings for the student table.
func TableBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "↑↓", Desc: "navigate"},
		{Key: "a", Desc: "add"},
		{Key: "e", Desc: "edit"},
		{Key: "d", Desc: "delete"},
		{Key: "r", Desc: "refresh"},
		{Key: "/", Desc: "filter"},
		{Key: "t", Desc: "theme"},
		{Key: ":", Desc: "command"},
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "quit"},
	}
}

// FilterBindings returns the key bindings for filter mode.
func FilterBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "enter", Desc: "apply filter"},
		{Key: "esc", Desc: "clear"},
	}
}

// FormBindings returns the key bindings for the student form.
func FormBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "tab", Desc: "next field"},
		{Key: "enter", Desc: "save"},
		{Key: "esc", Desc: "cancel"},
	}
}

// ConfirmBindings returns the key bindings for the delete confirmation.
func ConfirmBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "y", Desc: "delete"},
		{Key: "n/esc", Desc: "cancel"},
	}
}

// PickerBindings returns the key bindings for the theme picker.
func PickerBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "↑↓", Desc: "navigate"},
		{Key: "enter", Desc: "apply"},
		{Key: "esc", Desc: "close"},
	}
}

// HelpBindings returns the key bindings for the help screen.
func HelpBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "?/esc", Desc: "close"},
		{Key: "q", Desc: "quit"},
	}
}

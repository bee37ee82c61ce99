package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"classdesk/internal/ui/theme"
)

// Command represents an available command
type Command struct {
	Name        string
	Aliases     []string
	Description string
}

// AvailableCommands lists all supported commands
var AvailableCommands = []Command{
	{Name: "theme", Aliases: []string{"th", "colorscheme"}, Description: "Switch theme (:theme <name>)"},
	{Name: "refresh", Aliases: []string{"r", "reload"}, Description: "Reload students"},
	{Name: "add", Aliases: []string{"a", "new"}, Description: "Add a student"},
	{Name: "dark", Aliases: []string{"darkmode"}, Description: "Toggle dark mode"},
	{Name: "filter", Aliases: []string{"f", "class"}, Description: "Filter by class (:filter <class>)"},
	{Name: "search", Aliases: []string{"s", "find"}, Description: "Server-side search (:search <text>)"},
	{Name: "logs", Aliases: []string{"log", "l"}, Description: "Toggle logs panel"},
	{Name: "help", Aliases: []string{"h", "?"}, Description: "Show help"},
	{Name: "quit", Aliases: []string{"q", "exit"}, Description: "Quit application"},
}

// CommandResult is the result of executing a command
type CommandResult struct {
	Command string
	Args    []string
}

// CommandPalette provides vim-style command input
type CommandPalette struct {
	input       textinput.Model
	active      bool
	width       int
	suggestions []Command
	styles      theme.Styles
}

// NewCommandPalette creates a new command palette
func NewCommandPalette() *CommandPalette {
	ti := textinput.New()
	ti.Placeholder = "command..."
	ti.CharLimit = 64
	ti.Width = 30

	return &CommandPalette{
		input:  ti,
		styles: theme.DefaultStyles(),
	}
}

// SetStyles applies the active theme.
func (c *CommandPalette) SetStyles(st theme.Styles) {
	c.styles = st
}

// SetWidth sets the palette width
func (c *CommandPalette) SetWidth(width int) {
	c.width = width
	c.input.Width = max(10, min(50, width-10))
}

// Activate shows the command palette
func (c *CommandPalette) Activate() tea.Cmd {
	c.active = true
	c.input.SetValue("")
	c.input.Focus()
	c.updateSuggestions()
	return textinput.Blink
}

// Deactivate hides the command palette
func (c *CommandPalette) Deactivate() {
	c.active = false
	c.input.Blur()
	c.input.SetValue("")
	c.suggestions = nil
}

// IsActive returns whether the palette is active
func (c *CommandPalette) IsActive() bool {
	return c.active
}

// Suggestions returns the commands matching the current input.
func (c *CommandPalette) Suggestions() []Command {
	return c.suggestions
}

// Update handles input updates
func (c *CommandPalette) Update(msg tea.Msg) (*CommandResult, tea.Cmd) {
	if !c.active {
		return nil, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			result := ParseCommand(c.input.Value())
			c.Deactivate()
			return result, nil

		case "esc":
			c.Deactivate()
			return nil, nil

		case "tab":
			// Complete the command word, keeping any arguments
			if len(c.suggestions) > 0 {
				args := ""
				if parts := strings.Fields(c.input.Value()); len(parts) > 1 {
					args = " " + strings.Join(parts[1:], " ")
				}
				c.input.SetValue(c.suggestions[0].Name + args)
				c.input.CursorEnd()
				c.updateSuggestions()
			}
			return nil, nil
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	c.updateSuggestions()
	return nil, cmd
}

func (c *CommandPalette) updateSuggestions() {
	fields := strings.Fields(strings.ToLower(c.input.Value()))
	if len(fields) == 0 {
		c.suggestions = AvailableCommands
		return
	}

	query := fields[0]
	c.suggestions = nil
	for _, cmd := range AvailableCommands {
		if strings.HasPrefix(cmd.Name, query) {
			c.suggestions = append(c.suggestions, cmd)
			continue
		}
		for _, alias := range cmd.Aliases {
			if strings.HasPrefix(alias, query) {
				c.suggestions = append(c.suggestions, cmd)
				break
			}
		}
	}
}

// ParseCommand parses palette input into a command with aliases resolved.
// Empty input yields nil.
func ParseCommand(value string) *CommandResult {
	parts := strings.Fields(strings.TrimSpace(value))
	if len(parts) == 0 {
		return nil
	}

	name := strings.ToLower(parts[0])
	resolved := name
lookup:
	for _, cmd := range AvailableCommands {
		if cmd.Name == name {
			break
		}
		for _, alias := range cmd.Aliases {
			if alias == name {
				resolved = cmd.Name
				break lookup
			}
		}
	}

	result := &CommandResult{Command: resolved}
	if len(parts) > 1 {
		result.Args = parts[1:]
	}
	return result
}

// View renders the command palette
func (c *CommandPalette) View() string {
	if !c.active {
		return ""
	}
	s := c.styles

	var content strings.Builder
	content.WriteString(s.Accent.Bold(true).Render(":"))
	content.WriteString(c.input.View())
	content.WriteString("\n")

	if len(c.suggestions) > 0 {
		content.WriteString("\n")
		maxShow := min(6, len(c.suggestions))
		for i := 0; i < maxShow; i++ {
			cmd := c.suggestions[i]
			if i == 0 {
				content.WriteString(s.Accent.Bold(true).Render(cmd.Name))
			} else {
				content.WriteString(s.Muted.Render(cmd.Name))
			}
			content.WriteString(" ")
			content.WriteString(s.Muted.Faint(true).Render(cmd.Description))
			if i < maxShow-1 {
				content.WriteString("\n")
			}
		}
		if len(c.suggestions) > maxShow {
			content.WriteString("\n")
			content.WriteString(s.Muted.Faint(true).Render("...and more"))
		}
	}

	return s.Modal.Padding(0, 1).Width(max(20, min(60, c.width-4))).Render(content.String())
}

// CommandBindings returns key bindings for command mode
func CommandBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "enter", Desc: "execute"},
		{Key: "tab", Desc: "complete"},
		{Key: "esc", Desc: "cancel"},
	}
}

package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"classdesk/internal/notify"
	"classdesk/internal/state"
	"classdesk/internal/ui/components"
	"classdesk/internal/ui/theme"
)

// executeCommand executes a command from the command palette.
func (m *Model) executeCommand(result *components.CommandResult) tea.Cmd {
	if result == nil {
		return nil
	}

	m.logger.Debug("Executing command: %s %s", result.Command, strings.Join(result.Args, " "))

	switch result.Command {
	case "theme":
		if len(result.Args) == 0 {
			m.openThemePicker()
			return nil
		}
		m.setTheme(theme.Name(strings.ToLower(result.Args[0])))
		return nil

	case "refresh":
		return m.loadStudents()

	case "add":
		return m.openAdd()

	case "dark":
		return m.toggleDarkMode()

	case "filter":
		m.state.ClassFilter = strings.Join(result.Args, " ")
		m.refreshTable()
		return nil

	case "search":
		m.state.SearchQuery = strings.Join(result.Args, " ")
		return m.loadStudents()

	case "logs":
		m.state.ShowLogs = !m.state.ShowLogs
		m.updateComponentSizes()
		return nil

	case "help":
		m.state.View = state.ViewHelp
		return nil

	case "quit":
		return tea.Quit

	default:
		m.notifier.Show(fmt.Sprintf("Unknown command: %s", result.Command), notify.KindWarning)
		return nil
	}
}

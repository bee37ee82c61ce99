package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"classdesk/internal/state"
	"classdesk/internal/ui/components"
	"classdesk/internal/ui/layout"
)

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	d := m.dimensions()
	if d.Mode == layout.ModeTooSmall {
		return m.renderTooSmallScreen()
	}
	m.updateComponentSizes()

	m.updateHeader()
	sections := []string{m.header.View()}

	var content string
	switch {
	case m.commandPalette.IsActive():
		content = m.placeCenter(d, m.commandPalette.View())
	case m.state.View == state.ViewForm:
		content = m.placeCenter(d, m.form.View())
	case m.state.View == state.ViewConfirmDelete:
		content = m.placeCenter(d, m.confirm.View())
	case m.state.View == state.ViewThemePicker:
		content = m.placeCenter(d, m.picker.View())
	case m.state.View == state.ViewHelp:
		content = m.placeCenter(d, m.renderHelp())
	default:
		content = m.renderMainContent(d)
	}
	sections = append(sections, lipgloss.NewStyle().
		Width(d.ContentWidth).
		Height(d.ContentHeight).
		MaxWidth(d.ContentWidth).
		MaxHeight(d.ContentHeight).
		Render(content))

	if !m.toasts.Empty() {
		sections = append(sections, lipgloss.PlaceHorizontal(d.TermWidth, lipgloss.Right, m.toasts.View()))
	}

	if d.LogsHeight > 0 {
		m.logs.Refresh()
		sections = append(sections, lipgloss.NewStyle().
			Width(d.TermWidth).
			Height(d.LogsHeight).
			MaxWidth(d.TermWidth).
			MaxHeight(d.LogsHeight).
			Render(m.logs.View()))
	}

	m.footer.SetBindings(m.currentBindings())
	sections = append(sections, m.footer.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// updateHeader copies state into the header.
func (m *Model) updateHeader() {
	m.header.SetAPIBase(m.state.APIBase)
	if m.themes != nil {
		m.header.SetTheme(string(m.themes.Current()))
	}
	m.header.SetStatus(m.state.Status, len(m.state.Students))
	m.header.SetExtra(m.refreshIndicator.View())
}

// currentBindings returns the footer hints for the active mode.
func (m *Model) currentBindings() []components.KeyBinding {
	switch {
	case m.commandPalette.IsActive():
		return components.CommandBindings()
	case m.filtering:
		return components.FilterBindings()
	}

	switch m.state.View {
	case state.ViewForm:
		return components.FormBindings()
	case state.ViewConfirmDelete:
		return components.ConfirmBindings()
	case state.ViewThemePicker:
		return components.PickerBindings()
	case state.ViewHelp:
		return components.HelpBindings()
	default:
		return components.TableBindings()
	}
}

func (m *Model) placeCenter(d layout.Dimensions, view string) string {
	return lipgloss.Place(d.ContentWidth, d.ContentHeight, lipgloss.Center, lipgloss.Center, view)
}

// renderTooSmallScreen shows a message when the window is too small.
func (m *Model) renderTooSmallScreen() string {
	c := layout.DefaultConstraints()
	msg := m.styles.StatusWarning.Bold(true).Render("Window too small")
	hint := m.styles.Muted.Render(fmt.Sprintf("\nMin: %dx%d", c.MinWidth, c.MinHeight))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg+hint)
}

// filterSummary describes active filters, or "" when there are none.
func (m *Model) filterSummary() string {
	var parts []string
	if m.state.SearchQuery != "" {
		parts = append(parts, fmt.Sprintf("search %q", m.state.SearchQuery))
	}
	if m.state.ClassFilter != "" {
		parts = append(parts, "class "+m.state.ClassFilter)
	}
	if m.state.FilterText != "" {
		parts = append(parts, fmt.Sprintf("filter %q", m.state.FilterText))
	}
	if len(parts) == 0 {
		return ""
	}
	out := "Filtered: " + parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out + "  (esc to clear)"
}

// renderMainContent renders the table and, in split mode, the details pane.
func (m *Model) renderMainContent(d layout.Dimensions) string {
	tableView := m.table.View()

	if m.filtering {
		tableView = m.styles.Accent.Bold(true).Render("Filter: ") + m.filterInput.View() + "\n\n" + tableView
	} else if summary := m.filterSummary(); summary != "" {
		tableView = m.styles.Muted.Render(summary) + "\n\n" + tableView
	}

	if d.Mode == layout.ModeSinglePane {
		return tableView
	}

	tablePane := lipgloss.NewStyle().
		Width(d.TableWidth).
		Height(d.TableHeight).
		MaxWidth(d.TableWidth).
		MaxHeight(d.TableHeight).
		Render(tableView)

	detailsPane := lipgloss.NewStyle().
		Width(d.DetailsWidth).
		Height(d.DetailsHeight).
		MaxWidth(d.DetailsWidth).
		MaxHeight(d.DetailsHeight).
		Render(m.details.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, tablePane, detailsPane)
}

// renderHelp renders the full key reference.
func (m *Model) renderHelp() string {
	body := m.styles.ModalTitle.Render("Keys") + "\n\n" + m.help.FullHelpView(m.keys.FullHelp())
	return m.styles.Modal.Render(body)
}

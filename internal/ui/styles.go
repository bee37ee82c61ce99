package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"classdesk/internal/ui/components"
	"classdesk/internal/ui/layout"
	"classdesk/internal/ui/theme"
)

// applyStyles rebuilds styles from the surface and pushes them to every component.
func (m *Model) applyStyles() {
	st := theme.StylesFor(m.surface)
	m.styles = st

	m.header.SetStyles(st)
	m.footer.SetStyles(st)
	m.table.SetStyles(st)
	m.details.SetStyles(st)
	m.logs.SetStyles(st)
	m.toasts.SetStyles(st)
	m.form.SetStyles(st)
	m.confirm.SetStyles(st)
	m.picker.SetStyles(st)
	m.commandPalette.SetStyles(st)
	m.refreshIndicator.SetStyles(st)

	m.help.Styles = helpStyles(st)
	m.filterInput.PromptStyle = st.Accent
	m.filterInput.TextStyle = st.Row

	m.updateDetails()
}

// helpStyles maps theme styles onto the bubbles help view.
func helpStyles(st theme.Styles) help.Styles {
	return help.Styles{
		Ellipsis:       st.Muted,
		ShortKey:       st.StatusKey,
		ShortDesc:      st.Muted,
		ShortSeparator: st.StatusDivider,
		FullKey:        st.StatusKey,
		FullDesc:       st.DetailValue,
		FullSeparator:  st.StatusDivider,
	}
}

// dimensions computes the current layout, leaving room for toasts.
func (m *Model) dimensions() layout.Dimensions {
	extra := 0
	if !m.toasts.Empty() {
		extra = lipgloss.Height(m.toasts.View())
	}
	return layout.Calculate(m.width, m.height, m.state.ShowLogs, extra, layout.DefaultConstraints())
}

// updateComponentSizes resizes components to the current layout.
func (m *Model) updateComponentSizes() {
	d := m.dimensions()
	if d.Mode == layout.ModeTooSmall {
		return
	}

	tableHeight := d.TableHeight
	if m.filtering || m.filterSummary() != "" {
		tableHeight -= 2
	}

	m.header.SetWidth(d.TermWidth)
	m.footer.SetWidth(d.TermWidth)
	m.toasts.SetWidth(d.TermWidth)
	m.table.SetSize(max(10, d.TableWidth-2), max(3, tableHeight-2))
	m.details.SetSize(d.DetailsWidth, d.DetailsHeight)
	m.form.SetSize(d.ContentWidth, d.ContentHeight)
	m.confirm.SetWidth(d.ContentWidth)
	m.commandPalette.SetWidth(d.ContentWidth)
	m.help.Width = d.ContentWidth - 6
	if d.LogsHeight > 0 {
		m.logs.SetSize(d.TermWidth, d.LogsHeight)
	}
}

// refreshTable re-applies filters to the loaded students.
func (m *Model) refreshTable() {
	students := m.state.FilteredStudents()
	if len(m.state.Students) > 0 && len(students) == 0 {
		m.table.SetEmptyMessage("No students match the current filter.")
	} else {
		m.table.SetEmptyMessage("No students yet. Press a to add one.")
	}
	m.table.SetStudents(students)
	m.updateDetails()
	m.updateComponentSizes()
}

// updateDetails shows the selected student in the details pane.
func (m *Model) updateDetails() {
	st, ok := m.table.Selected()
	if !ok {
		m.details.SetTitle("")
		m.details.SetRows(nil)
		return
	}
	m.details.SetTitle(st.Name)
	m.details.SetRows(components.StudentDetails(st, m.styles))
}

package ui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"classdesk/internal/anim"
	"classdesk/internal/api"
	"classdesk/internal/model"
	"classdesk/internal/notify"
	"classdesk/internal/prefs"
	"classdesk/internal/state"
	"classdesk/internal/ui/theme"
)

// handleKeyMsg routes a key press to the active mode or view.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if m.commandPalette.IsActive() {
		result, cmd := m.commandPalette.Update(msg)
		if result != nil {
			return tea.Batch(cmd, m.executeCommand(result))
		}
		return cmd
	}

	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch m.state.View {
	case state.ViewForm:
		return m.handleFormKey(msg)
	case state.ViewConfirmDelete:
		return m.handleConfirmKey(msg)
	case state.ViewThemePicker:
		return m.handlePickerKey(msg)
	case state.ViewHelp:
		return m.handleHelpKey(msg)
	default:
		return m.handleTableKey(msg)
	}
}

func (m *Model) handleTableKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.table.Up()
		m.updateDetails()
	case key.Matches(msg, m.keys.Down):
		m.table.Down()
		m.updateDetails()
	case key.Matches(msg, m.keys.Top):
		m.table.Top()
		m.updateDetails()
	case key.Matches(msg, m.keys.Bottom):
		m.table.Bottom()
		m.updateDetails()
	case key.Matches(msg, m.keys.PageUp):
		m.table.PageUp()
		m.updateDetails()
	case key.Matches(msg, m.keys.PageDown):
		m.table.PageDown()
		m.updateDetails()

	case key.Matches(msg, m.keys.Add):
		return m.openAdd()
	case key.Matches(msg, m.keys.Edit):
		return m.openEdit()
	case key.Matches(msg, m.keys.Delete):
		m.openDelete()
	case key.Matches(msg, m.keys.Refresh):
		return m.loadStudents()
	case key.Matches(msg, m.keys.Yank):
		if st, ok := m.table.Selected(); ok {
			return m.yankStudent(st)
		}

	case key.Matches(msg, m.keys.ThemePicker):
		m.openThemePicker()
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
	case key.Matches(msg, m.keys.DarkMode):
		return m.toggleDarkMode()

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filterInput.SetValue(m.state.FilterText)
		m.filterInput.CursorEnd()
		return m.filterInput.Focus()
	case key.Matches(msg, m.keys.Command):
		m.commandPalette.SetWidth(m.width)
		return m.commandPalette.Activate()
	case key.Matches(msg, m.keys.AutoRefresh):
		m.toggleAutoRefresh()
	case key.Matches(msg, m.keys.Logs):
		m.state.ShowLogs = !m.state.ShowLogs
		m.updateComponentSizes()
	case key.Matches(msg, m.keys.LogScrollUp):
		m.logs.ScrollUp()
	case key.Matches(msg, m.keys.LogScrollDown):
		m.logs.ScrollDown()
	case key.Matches(msg, m.keys.LogScrollEnd):
		m.logs.ScrollToBottom()
	case key.Matches(msg, m.keys.Help):
		m.state.View = state.ViewHelp

	case key.Matches(msg, m.keys.Back):
		if m.state.FilterText != "" || m.state.ClassFilter != "" || m.state.SearchQuery != "" {
			return m.clearFilters()
		}
	}
	return nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.FilterAccept):
		m.filtering = false
		m.filterInput.Blur()
		return nil
	case key.Matches(msg, m.keys.FilterClear):
		m.filtering = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.state.FilterText = ""
		m.refreshTable()
		return nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if v := m.filterInput.Value(); v != m.state.FilterText {
		m.state.FilterText = v
		m.refreshTable()
	}
	return cmd
}

func (m *Model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	if m.saving && msg.String() != "esc" {
		return nil
	}

	result, cmd := m.form.Update(msg)
	if result == nil {
		return cmd
	}

	switch {
	case result.Cancelled:
		m.saving = false
		m.state.Close()
		return cmd
	case result.Err != nil:
		m.notifier.Error("Please fill all fields correctly")
		return cmd
	}

	m.saving = true
	return tea.Batch(cmd, m.saveStudent(result.EditingID, result.Input))
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	result := m.confirm.Update(msg)
	if result == nil {
		return nil
	}
	m.state.Close()
	if !result.Confirmed {
		return nil
	}
	return m.deleteStudent(result.Student)
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	name, done := m.picker.Update(msg)
	if !done {
		return nil
	}
	m.state.Close()
	if name != "" {
		m.setTheme(name)
	}
	return nil
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Back):
		m.state.Close()
	}
	return nil
}

// openAdd opens an empty form with the bounce effect.
func (m *Model) openAdd() tea.Cmd {
	m.state.BeginAdd()
	m.saving = false
	m.form.SetEffect(m.animator.Animate(anim.NewElement("form"), anim.NameBounce))
	return m.form.Activate(nil)
}

// openEdit opens the form on the selected student.
func (m *Model) openEdit() tea.Cmd {
	st, ok := m.table.Selected()
	if !ok {
		return nil
	}
	m.state.BeginEdit(st)
	m.saving = false
	m.form.SetEffect(m.animator.Animate(anim.NewElement("form"), anim.NameBounce))
	return m.form.Activate(&st)
}

// openDelete asks for confirmation before deleting the selected student.
func (m *Model) openDelete() {
	st, ok := m.table.Selected()
	if !ok {
		return
	}
	m.state.BeginDelete(st)
	m.confirm.SetWidth(m.width)
	m.confirm.Activate(st)
}

func (m *Model) openThemePicker() {
	if m.themes == nil {
		return
	}
	m.picker.Activate(m.themes.Names(), m.themes.Current())
	m.state.View = state.ViewThemePicker
}

// setTheme switches the theme. Unknown names leave the current theme in place.
func (m *Model) setTheme(name theme.Name) {
	if m.themes == nil {
		return
	}
	if !m.themes.SetTheme(name) {
		m.notifier.Show(fmt.Sprintf("Unknown theme %q", name), notify.KindWarning)
		return
	}
	m.applyStyles()
	m.notifier.Show("Theme: "+string(name), notify.KindSuccess)
}

func (m *Model) cycleTheme() {
	if m.themes == nil {
		return
	}
	name := m.themes.Cycle()
	m.applyStyles()
	m.notifier.Show("Theme: "+string(name), notify.KindSuccess)
}

// toggleDarkMode flips the dark class marker and persists the choice.
func (m *Model) toggleDarkMode() tea.Cmd {
	on := m.surface.ToggleClass(theme.DarkModeClass)
	m.surface.Flush()
	m.state.DarkMode = on
	m.applyStyles()
	return m.savePreference(prefs.KeyDarkMode, strconv.FormatBool(on))
}

func (m *Model) toggleAutoRefresh() {
	m.state.ToggleAutoRefresh()
	m.refreshIndicator.SetEnabled(m.state.AutoRefresh)
	if m.state.AutoRefresh {
		m.notifier.Show("Auto-refresh on", notify.KindInfo)
	} else {
		m.notifier.Show("Auto-refresh off", notify.KindInfo)
	}
}

// clearFilters drops the local filter, class filter and any server-side search.
func (m *Model) clearFilters() tea.Cmd {
	hadSearch := m.state.SearchQuery != ""
	m.state.FilterText = ""
	m.state.ClassFilter = ""
	m.state.SearchQuery = ""
	m.filterInput.SetValue("")
	m.refreshTable()
	if hadSearch {
		return m.loadStudents()
	}
	return nil
}

func (m *Model) handleStudentsLoaded(msg studentsLoadedMsg) tea.Cmd {
	m.table.SetLoading(false)
	m.refreshIndicator.SetRefreshing(false)

	if msg.query != m.state.SearchQuery {
		// Superseded by a newer search.
		m.state.StudentsLoading = false
		return nil
	}

	if msg.err != nil {
		m.state.SetStudentsError(msg.err)
		m.table.SetError(msg.err)
		m.logger.Error("Failed to load students: %v", msg.err)
		m.notifier.Error("Failed to load students")
		m.updateHeader()
		return nil
	}

	m.state.SetStudents(msg.students)
	m.table.SetError(nil)
	m.animateArrivals(msg.students)
	m.refreshTable()
	m.logger.Debug("Loaded %d students", len(msg.students))
	return nil
}

// animateArrivals slides in rows that were not in the previous list and
// fades in the row that was just saved.
func (m *Model) animateArrivals(students []model.Student) {
	first := m.knownIDs == nil
	seen := make(map[int64]bool, len(students))

	for _, st := range students {
		seen[st.ID] = true
		isNew := !first && !m.knownIDs[st.ID]
		isSaved := st.ID == m.highlightID && m.highlightID != 0
		if !isNew && !isSaved {
			continue
		}

		el := anim.NewElement("row-" + strconv.FormatInt(st.ID, 10))
		id := st.ID
		el.OnChange(func(*anim.Element) { m.send(effectChangedMsg{rowID: id}) })
		if isSaved {
			m.animator.Animate(el, anim.NameFadeIn)
		}
		if isNew {
			m.animator.Animate(el, anim.NameSlideIn)
		}
		m.table.SetEffect(id, el)
	}

	for id := range m.knownIDs {
		if !seen[id] {
			m.table.ClearEffect(id)
		}
	}

	if m.highlightID != 0 && seen[m.highlightID] {
		m.table.SetStudents(m.state.FilteredStudents())
		m.table.SelectID(m.highlightID)
	}
	m.highlightID = 0
	m.knownIDs = seen
}

// pruneEffect drops a row effect once it has settled.
func (m *Model) pruneEffect(id int64) {
	el, ok := m.table.Effect(id)
	if !ok {
		return
	}
	if !el.Faint() && !el.Shifted() && !el.Emphasized() {
		m.table.ClearEffect(id)
	}
}

func (m *Model) handleStudentSaved(msg studentSavedMsg) tea.Cmd {
	m.saving = false
	if msg.err != nil {
		m.logger.Error("Failed to save student: %v", msg.err)
		m.notifier.Error("Error saving student")
		return nil
	}

	m.form.Deactivate()
	m.state.Close()
	m.highlightID = msg.student.ID
	if msg.created {
		m.notifier.Success("Student saved successfully!")
	} else {
		m.notifier.Success("Student updated!")
	}
	return m.loadStudents()
}

func (m *Model) handleStudentDeleted(msg studentDeletedMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Error("Failed to delete student %d: %v", msg.student.ID, msg.err)
		if errors.Is(msg.err, api.ErrNotFound) {
			m.notifier.Error("Delete failed: student no longer exists")
			return m.loadStudents()
		}
		m.notifier.Error("Delete failed")
		return nil
	}

	m.notifier.Success("Deleted")
	return m.loadStudents()
}

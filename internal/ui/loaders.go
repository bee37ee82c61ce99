package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"classdesk/internal/model"
)

// loadStudents re-lists students, or repeats the active server-side search.
func (m *Model) loadStudents() tea.Cmd {
	if m.service == nil {
		return nil
	}

	m.state.StudentsLoading = true
	m.table.SetLoading(true)
	m.refreshIndicator.SetRefreshing(true)

	query := m.state.SearchQuery
	class := m.state.ClassFilter
	service := m.service
	timeout := m.timeout

	load := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var (
			students []model.Student
			err      error
		)
		if query != "" {
			students, err = service.Search(ctx, query, class)
		} else {
			students, err = service.List(ctx)
		}
		return studentsLoadedMsg{students: students, query: query, err: err}
	}

	if m.spinning {
		return load
	}
	m.spinning = true
	return tea.Batch(load, m.table.Spinner().TickCmd())
}

// saveStudent creates a student, or updates it when id is non-zero.
func (m *Model) saveStudent(id int64, in model.StudentInput) tea.Cmd {
	if m.service == nil {
		return nil
	}
	service := m.service
	timeout := m.timeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if id == 0 {
			st, err := service.Create(ctx, in)
			return studentSavedMsg{student: st, created: true, err: err}
		}
		st, err := service.Update(ctx, id, in)
		return studentSavedMsg{student: st, err: err}
	}
}

// deleteStudent deletes st.
func (m *Model) deleteStudent(st model.Student) tea.Cmd {
	if m.service == nil {
		return nil
	}
	service := m.service
	timeout := m.timeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return studentDeletedMsg{student: st, err: service.Delete(ctx, st.ID)}
	}
}

// yankStudent copies st to the clipboard as JSON.
func (m *Model) yankStudent(st model.Student) tea.Cmd {
	clip := m.clipboard
	return func() tea.Msg {
		text, err := rowJSON(st)
		if err != nil {
			return clipboardMsg{err: err}
		}
		return clipboardMsg{text: text, err: clip(text)}
	}
}

// savePreference writes key off the UI goroutine. Failures are logged.
func (m *Model) savePreference(key, value string) tea.Cmd {
	if m.prefs == nil {
		return nil
	}
	store := m.prefs
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return preferenceSavedMsg{key: key, err: store.Set(ctx, key, value)}
	}
}

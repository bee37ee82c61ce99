// Package state manages the application state.
package state

import (
	"strings"
	"time"

	"classdesk/internal/model"
)

// View represents the current view/screen.
type View int

const (
	ViewTable         View = iota // Student table
	ViewForm                      // Add/edit dialog
	ViewConfirmDelete             // Delete confirmation
	ViewThemePicker               // Theme selection list
	ViewHelp                      // Key reference
)

// String returns a short label for the view.
func (v View) String() string {
	switch v {
	case ViewTable:
		return "students"
	case ViewForm:
		return "form"
	case ViewConfirmDelete:
		return "confirm"
	case ViewThemePicker:
		return "themes"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ConnectionStatus reflects the outcome of the last list request.
type ConnectionStatus string

const (
	StatusUnknown      ConnectionStatus = ""
	StatusConnected    ConnectionStatus = "connected"
	StatusDisconnected ConnectionStatus = "disconnected"
)

// State holds all application state.
type State struct {
	// Current view
	View View

	// API root in use
	APIBase string

	// Students data
	Students        []model.Student
	StudentsLoading bool
	StudentsError   error
	Status          ConnectionStatus

	// Form state: EditingID is zero when adding
	EditingID int64

	// Pending delete target
	PendingDelete *model.Student

	// UI state
	ShowLogs      bool
	SearchQuery   string
	FilterText    string
	ClassFilter   string
	AutoRefresh   bool
	CommandMode   bool
	DarkMode      bool
	LastRefreshAt int64 // Unix timestamp
}

// New creates a new State with defaults.
func New() *State {
	return &State{
		View:        ViewTable,
		AutoRefresh: true,
	}
}

// SetStudents records a successful list.
func (s *State) SetStudents(students []model.Student) {
	s.Students = students
	s.StudentsLoading = false
	s.StudentsError = nil
	s.Status = StatusConnected
	s.LastRefreshAt = time.Now().Unix()
}

// SetStudentsError records a failed list. Previously loaded students are kept.
func (s *State) SetStudentsError(err error) {
	s.StudentsLoading = false
	s.StudentsError = err
	s.Status = StatusDisconnected
}

// BeginAdd opens the form for a new student.
func (s *State) BeginAdd() {
	s.EditingID = 0
	s.View = ViewForm
}

// BeginEdit opens the form for an existing student.
func (s *State) BeginEdit(student model.Student) {
	s.EditingID = student.ID
	s.View = ViewForm
}

// BeginDelete asks for confirmation before deleting student.
func (s *State) BeginDelete(student model.Student) {
	st := student
	s.PendingDelete = &st
	s.View = ViewConfirmDelete
}

// Close returns to the table and clears form and delete state.
func (s *State) Close() {
	s.View = ViewTable
	s.EditingID = 0
	s.PendingDelete = nil
}

// IsEditing reports whether the form edits an existing record.
func (s *State) IsEditing() bool {
	return s.EditingID != 0
}

// FindStudent returns the loaded student with id.
func (s *State) FindStudent(id int64) (model.Student, bool) {
	for _, st := range s.Students {
		if st.ID == id {
			return st, true
		}
	}
	return model.Student{}, false
}

// FilteredStudents returns students filtered by the current filter text
// (name or class, case-insensitive) and the exact class filter.
func (s *State) FilteredStudents() []model.Student {
	if s.FilterText == "" && s.ClassFilter == "" {
		return s.Students
	}

	var filtered []model.Student
	for _, st := range s.Students {
		if s.ClassFilter != "" && !strings.EqualFold(st.ClassName, s.ClassFilter) {
			continue
		}
		if s.FilterText != "" &&
			!containsIgnoreCase(st.Name, s.FilterText) &&
			!containsIgnoreCase(st.ClassName, s.FilterText) {
			continue
		}
		filtered = append(filtered, st)
	}
	return filtered
}

// ClassNames returns the distinct classes of the loaded students.
func (s *State) ClassNames() []string {
	return model.ClassNames(s.Students)
}

// ToggleAutoRefresh toggles auto-refresh.
func (s *State) ToggleAutoRefresh() {
	s.AutoRefresh = !s.AutoRefresh
}

// containsIgnoreCase checks if s contains substr (case-insensitive).
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

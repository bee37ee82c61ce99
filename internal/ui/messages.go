package ui

import (
	"classdesk/internal/model"
)

// Messages for bubbletea.
type (
	// studentsLoadedMsg is sent when a list or search request completes.
	studentsLoadedMsg struct {
		students []model.Student
		query    string
		err      error
	}

	// studentSavedMsg is sent when a create or update request completes.
	studentSavedMsg struct {
		student model.Student
		created bool
		err     error
	}

	// studentDeletedMsg is sent when a delete request completes.
	studentDeletedMsg struct {
		student model.Student
		err     error
	}

	// clipboardMsg reports the outcome of a yank.
	clipboardMsg struct {
		text string
		err  error
	}

	// preferenceSavedMsg reports the outcome of a preference write.
	preferenceSavedMsg struct {
		key string
		err error
	}

	// surfaceChangedMsg is sent after a theme flush so styles are rebuilt.
	surfaceChangedMsg struct {
		revision uint64
	}

	// toastsChangedMsg is sent whenever a toast appears, fades or leaves.
	toastsChangedMsg struct{}

	// effectChangedMsg is sent when an animated element settles.
	effectChangedMsg struct {
		rowID int64
	}
)

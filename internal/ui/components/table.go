package components

import (
	"fmt"
	"strconv"
	"strings"

	"classdesk/internal/anim"
	"classdesk/internal/model"
	"classdesk/internal/ui/theme"
)

// Column widths of the student table. Name takes the remaining width.
const (
	colIDWidth    = 6
	colClassWidth = 14
	colGPAWidth   = 6
	minNameWidth  = 12
)

// StudentTable is a scrollable, selectable table of students.
type StudentTable struct {
	students []model.Student
	effects  map[int64]*anim.Element
	cursor   int
	offset   int
	width    int
	height   int
	loading  bool
	errMsg   string
	emptyMsg string
	spinner  *Spinner
	styles   theme.Styles
}

// NewStudentTable creates an empty table.
func NewStudentTable() *StudentTable {
	return &StudentTable{
		emptyMsg: "No students yet. Press a to add one.",
		effects:  make(map[int64]*anim.Element),
		spinner:  NewSpinner(),
		styles:   theme.DefaultStyles(),
	}
}

// SetStyles applies the active theme.
func (t *StudentTable) SetStyles(st theme.Styles) {
	t.styles = st
	t.spinner.SetStyles(st)
}

// Spinner returns the table's spinner for external tick updates.
func (t *StudentTable) Spinner() *Spinner {
	return t.spinner
}

// SetStudents replaces the rows, keeping the cursor in range.
func (t *StudentTable) SetStudents(students []model.Student) {
	t.students = students
	if t.cursor >= len(students) {
		t.cursor = max(0, len(students)-1)
	}
	t.clampOffset()
}

// Students returns the rows currently shown.
func (t *StudentTable) Students() []model.Student {
	return t.students
}

// SetEffect attaches an animated element to the row with id.
func (t *StudentTable) SetEffect(id int64, el *anim.Element) {
	t.effects[id] = el
}

// Effect returns the element attached to the row with id.
func (t *StudentTable) Effect(id int64) (*anim.Element, bool) {
	el, ok := t.effects[id]
	return el, ok
}

// ClearEffect detaches the row effect for id.
func (t *StudentTable) ClearEffect(id int64) {
	delete(t.effects, id)
}

// SetSize sets the table dimensions.
func (t *StudentTable) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.clampOffset()
}

// SetLoading sets the loading state.
func (t *StudentTable) SetLoading(loading bool) {
	t.loading = loading
}

// SetError sets the error message.
func (t *StudentTable) SetError(err error) {
	if err != nil {
		t.errMsg = err.Error()
	} else {
		t.errMsg = ""
	}
}

// SetEmptyMessage sets the message shown when there are no rows.
func (t *StudentTable) SetEmptyMessage(msg string) {
	t.emptyMsg = msg
}

// Cursor returns the current cursor position.
func (t *StudentTable) Cursor() int {
	return t.cursor
}

// Selected returns the student under the cursor.
func (t *StudentTable) Selected() (model.Student, bool) {
	if t.cursor >= 0 && t.cursor < len(t.students) {
		return t.students[t.cursor], true
	}
	return model.Student{}, false
}

// SelectID moves the cursor to the row with id, if present.
func (t *StudentTable) SelectID(id int64) bool {
	for i, s := range t.students {
		if s.ID == id {
			t.cursor = i
			t.clampOffset()
			return true
		}
	}
	return false
}

// Up moves the cursor up.
func (t *StudentTable) Up() {
	if t.cursor > 0 {
		t.cursor--
		t.clampOffset()
	}
}

// Down moves the cursor down.
func (t *StudentTable) Down() {
	if t.cursor < len(t.students)-1 {
		t.cursor++
		t.clampOffset()
	}
}

// Top moves the cursor to the first row.
func (t *StudentTable) Top() {
	t.cursor = 0
	t.offset = 0
}

// Bottom moves the cursor to the last row.
func (t *StudentTable) Bottom() {
	t.cursor = max(0, len(t.students)-1)
	t.clampOffset()
}

// PageDown moves the cursor one screen down.
func (t *StudentTable) PageDown() {
	t.cursor = min(max(0, len(t.students)-1), t.cursor+t.visibleRowCount())
	t.clampOffset()
}

// PageUp moves the cursor one screen up.
func (t *StudentTable) PageUp() {
	t.cursor = max(0, t.cursor-t.visibleRowCount())
	t.clampOffset()
}

func (t *StudentTable) clampOffset() {
	visible := t.visibleRowCount()
	if visible <= 0 {
		return
	}

	if t.cursor < t.offset {
		t.offset = t.cursor
	} else if t.cursor >= t.offset+visible {
		t.offset = t.cursor - visible + 1
	}

	t.offset = min(t.offset, max(0, len(t.students)-visible))
	t.offset = max(0, t.offset)
}

// visibleRowCount leaves room for the column header and the scroll line.
func (t *StudentTable) visibleRowCount() int {
	return max(1, t.height-3)
}

func (t *StudentTable) nameWidth() int {
	// cursor(2) + id + class + gpa + 3 gaps + padding(2)
	return max(minNameWidth, t.width-2-colIDWidth-colClassWidth-colGPAWidth-3-2)
}

func (t *StudentTable) formatRow(s model.Student) string {
	return strings.Join([]string{
		padRight(truncate(strconv.FormatInt(s.ID, 10), colIDWidth), colIDWidth),
		padRight(truncate(s.Name, t.nameWidth()), t.nameWidth()),
		padRight(truncate(s.ClassName, colClassWidth), colClassWidth),
		padRight(model.FormatGPA(s.GPA), colGPAWidth),
	}, " ")
}

func (t *StudentTable) headerRow() string {
	return "  " + strings.Join([]string{
		padRight("ID", colIDWidth),
		padRight("Name", t.nameWidth()),
		padRight("Class", colClassWidth),
		padRight("GPA", colGPAWidth),
	}, " ")
}

// View renders the table.
func (t *StudentTable) View() string {
	s := t.styles
	var b strings.Builder

	if t.loading && len(t.students) == 0 {
		b.WriteString(SpinnerWithText(t.spinner, s.Muted, "Loading students..."))
		return s.Table.Render(b.String())
	}

	if t.errMsg != "" && len(t.students) == 0 {
		b.WriteString(s.StatusError.Render(truncate("✗ "+t.errMsg, max(10, t.width-4))))
		return s.Table.Render(b.String())
	}

	b.WriteString(s.TableHeader.Render(t.headerRow()))
	b.WriteString("\n")

	if len(t.students) == 0 {
		b.WriteString(s.Muted.Render("  " + t.emptyMsg))
		return s.Table.Render(b.String())
	}

	visible := t.visibleRowCount()
	end := min(t.offset+visible, len(t.students))

	for i := t.offset; i < end; i++ {
		st := t.students[i]
		row := t.formatRow(st)

		style := s.Row
		if i%2 == 1 {
			style = s.RowStripe
		}
		if i == t.cursor {
			style = s.RowSelected
		}

		prefix := "  "
		if i == t.cursor {
			prefix = s.Cursor.Render("▸ ")
		}

		if el, ok := t.effects[st.ID]; ok {
			if el.Faint() {
				style = style.Faint(true)
			}
			if el.Emphasized() {
				style = style.Bold(true)
			}
			if el.Shifted() {
				prefix = "   "
				if i == t.cursor {
					prefix = " " + s.Cursor.Render("▸ ")
				}
			}
		}

		b.WriteString(prefix)
		b.WriteString(style.Render(row))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if len(t.students) > visible {
		b.WriteString("\n")
		b.WriteString(s.ScrollInfo.Render(fmt.Sprintf("↑↓ %d-%d of %d", t.offset+1, end, len(t.students))))
	}

	return s.Table.Render(b.String())
}

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"classdesk/internal/anim"
	"classdesk/internal/model"
	"classdesk/internal/ui/theme"
)

// Form fields in focus order.
const (
	fieldName = iota
	fieldClass
	fieldGPA
	fieldCount
)

// StudentForm is the add/edit dialog.
type StudentForm struct {
	width      int
	height     int
	active     bool
	editingID  int64
	focusIndex int
	inputs     [fieldCount]textinput.Model
	errMsg     string
	effect     *anim.Element
	styles     theme.Styles
}

// FormResult is returned when the form is submitted or cancelled. A submit
// leaves the form open; the caller closes it once the save is confirmed.
type FormResult struct {
	Cancelled bool
	EditingID int64
	Input     model.StudentInput

	// Err is set when the fields do not validate.
	Err error
}

// NewStudentForm creates a new form dialog.
func NewStudentForm() *StudentForm {
	f := &StudentForm{styles: theme.DefaultStyles()}

	placeholders := [fieldCount]string{"Full name", "e.g. CS101", "0.00 - 4.00"}
	limits := [fieldCount]int{128, 64, 8}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Width = 32
		f.inputs[i] = ti
	}
	return f
}

// SetStyles applies the active theme.
func (f *StudentForm) SetStyles(st theme.Styles) {
	f.styles = st
}

// SetSize sets the dialog size.
func (f *StudentForm) SetSize(width, height int) {
	f.width = width
	f.height = height
}

// SetEffect attaches the element that animates the dialog frame.
func (f *StudentForm) SetEffect(el *anim.Element) {
	f.effect = el
}

// Activate opens the form. A nil student opens an empty add form.
func (f *StudentForm) Activate(student *model.Student) tea.Cmd {
	f.active = true
	f.focusIndex = fieldName
	f.errMsg = ""
	f.editingID = 0

	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	if student != nil {
		f.editingID = student.ID
		f.inputs[fieldName].SetValue(student.Name)
		f.inputs[fieldClass].SetValue(student.ClassName)
		f.inputs[fieldGPA].SetValue(model.FormatGPA(student.GPA))
	}
	f.updateFocus()
	return textinput.Blink
}

// Deactivate hides the form.
func (f *StudentForm) Deactivate() {
	f.active = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// IsActive returns whether the form is open.
func (f *StudentForm) IsActive() bool {
	return f.active
}

// IsEditing reports whether the form edits an existing record.
func (f *StudentForm) IsEditing() bool {
	return f.editingID != 0
}

// Err returns the current validation message.
func (f *StudentForm) Err() string {
	return f.errMsg
}

// Values returns the raw field values.
func (f *StudentForm) Values() (name, className, gpa string) {
	return f.inputs[fieldName].Value(), f.inputs[fieldClass].Value(), f.inputs[fieldGPA].Value()
}

// Update handles input. A result is returned on submit or cancel.
func (f *StudentForm) Update(msg tea.Msg) (*FormResult, tea.Cmd) {
	if !f.active {
		return nil, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			if f.focusIndex < fieldGPA {
				f.nextField()
				return nil, nil
			}
			return f.submit(), nil

		case "ctrl+s":
			return f.submit(), nil

		case "esc":
			f.Deactivate()
			return &FormResult{Cancelled: true, EditingID: f.editingID}, nil

		case "tab", "down":
			f.nextField()
			return nil, nil

		case "shift+tab", "up":
			f.prevField()
			return nil, nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focusIndex], cmd = f.inputs[f.focusIndex].Update(msg)
	return nil, cmd
}

func (f *StudentForm) submit() *FormResult {
	in, err := model.ParseInput(f.Values())
	if err != nil {
		f.errMsg = err.Error()
		return &FormResult{EditingID: f.editingID, Err: err}
	}
	f.errMsg = ""
	return &FormResult{EditingID: f.editingID, Input: in}
}

func (f *StudentForm) nextField() {
	f.focusIndex = (f.focusIndex + 1) % fieldCount
	f.updateFocus()
}

func (f *StudentForm) prevField() {
	f.focusIndex = (f.focusIndex - 1 + fieldCount) % fieldCount
	f.updateFocus()
}

func (f *StudentForm) updateFocus() {
	for i := range f.inputs {
		if i == f.focusIndex {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// View renders the dialog.
func (f *StudentForm) View() string {
	if !f.active {
		return ""
	}
	s := f.styles

	dialogWidth := 52
	if f.width > 0 && f.width < 62 {
		dialogWidth = max(36, f.width-10)
	}

	box := s.Modal.Width(dialogWidth)
	if f.effect != nil && f.effect.Emphasized() {
		box = box.Border(lipgloss.ThickBorder())
	}

	title := "Add Student"
	if f.IsEditing() {
		title = "Edit Student"
	}

	labels := [fieldCount]string{"Name", "Class", "GPA"}

	var b strings.Builder
	b.WriteString(s.ModalTitle.Render(title))
	b.WriteString("\n\n")

	for i := range f.inputs {
		label := s.InputLabel.Render(labels[i])
		if i != f.focusIndex {
			label = s.Muted.Render(labels[i])
		}
		b.WriteString(label)
		b.WriteString("\n")

		field := s.Input
		if i == f.focusIndex {
			field = s.InputFocused
		}
		b.WriteString(field.Width(dialogWidth - 6).Render(f.inputs[i].View()))
		b.WriteString("\n")
	}

	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(s.StatusError.Render("✗ " + f.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(f.buttons())
	b.WriteString("\n")
	b.WriteString(s.Muted.Italic(true).Render("Tab: next field | Enter: save | Esc: cancel"))

	return box.Render(b.String())
}

// buttons renders the Save/Cancel row. Save is the primary action.
func (f *StudentForm) buttons() string {
	s := f.styles
	save := NewButton("Save", true, s).Decorate(Gradient(GradientFrom, GradientTo), Glow(s))
	cancel := NewButton("Cancel", false, s).Decorate(Glow(s))
	return lipgloss.JoinHorizontal(lipgloss.Top, save.View(), "  ", cancel.View())
}

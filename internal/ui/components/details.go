package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"classdesk/internal/model"
	"classdesk/internal/ui/theme"
)

// DetailRow represents a row in the details pane.
type DetailRow struct {
	Label string
	Value string
	Style *lipgloss.Style
}

// Details displays key-value details of the selected record.
type Details struct {
	title  string
	rows   []DetailRow
	width  int
	height int
	styles theme.Styles
}

// NewDetails creates a new Details component.
func NewDetails() *Details {
	return &Details{styles: theme.DefaultStyles()}
}

// SetStyles applies the active theme.
func (d *Details) SetStyles(st theme.Styles) {
	d.styles = st
}

// SetTitle sets the details title.
func (d *Details) SetTitle(title string) {
	d.title = title
}

// SetRows sets the detail rows.
func (d *Details) SetRows(rows []DetailRow) {
	d.rows = rows
}

// SetSize sets the component dimensions.
func (d *Details) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the details pane.
func (d *Details) View() string {
	s := d.styles
	card := s.Card.Width(max(10, d.width-2))

	if len(d.rows) == 0 {
		return card.Render(s.Muted.Render("Select a student to view details"))
	}

	var b strings.Builder
	if d.title != "" {
		b.WriteString(s.CardTitle.Render(d.title))
		b.WriteString("\n")
	}

	maxRows := max(1, d.height-4)
	for i, row := range d.rows {
		if i >= maxRows {
			b.WriteString(s.Muted.Render(fmt.Sprintf("... and %d more", len(d.rows)-i)))
			break
		}

		value := truncate(row.Value, max(1, d.width-18))
		if row.Style != nil {
			value = row.Style.Render(value)
		} else {
			value = s.DetailValue.Render(value)
		}

		b.WriteString(s.DetailLabel.Render(row.Label+":") + " " + value)
		if i < len(d.rows)-1 && i < maxRows-1 {
			b.WriteString("\n")
		}
	}

	return card.Render(b.String())
}

// StudentDetails returns detail rows for a student.
func StudentDetails(st model.Student, styles theme.Styles) []DetailRow {
	gpaStyle := styles.StatusSuccess
	switch {
	case st.GPA < 2:
		gpaStyle = styles.StatusError
	case st.GPA < 3:
		gpaStyle = styles.StatusWarning
	}

	rows := []DetailRow{
		{Label: "ID", Value: strconv.FormatInt(st.ID, 10)},
		{Label: "Name", Value: st.Name},
		{Label: "Class", Value: st.ClassName},
		{Label: "GPA", Value: model.FormatGPA(st.GPA), Style: &gpaStyle},
	}
	if st.CreatedAt != nil {
		rows = append(rows, DetailRow{Label: "Created", Value: st.CreatedAt.Local().Format("2006-01-02 15:04")})
	}
	return rows
}

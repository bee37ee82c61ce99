package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"classdesk/internal/model"
)

const tablePadding = 2

func writeTable(out io.Writer, headers []string, rows [][]string) error {
	writer := tabwriter.NewWriter(out, 0, 0, tablePadding, ' ', tabwriter.StripEscape)
	if len(headers) > 0 {
		fmt.Fprintln(writer, strings.Join(headers, "\t"))
	}
	for _, row := range rows {
		fmt.Fprintln(writer, strings.Join(row, "\t"))
	}
	return writer.Flush()
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeStudents(out io.Writer, students []model.Student, asJSON bool) error {
	if asJSON {
		if students == nil {
			students = []model.Student{}
		}
		return writeJSON(out, students)
	}
	if len(students) == 0 {
		_, err := fmt.Fprintln(out, "No students found")
		return err
	}
	rows := make([][]string, 0, len(students))
	for _, s := range students {
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			s.Name,
			s.ClassName,
			model.FormatGPA(s.GPA),
			formatCreated(s),
		})
	}
	return writeTable(out, []string{"ID", "NAME", "CLASS", "GPA", "CREATED"}, rows)
}

func formatCreated(s model.Student) string {
	if s.CreatedAt == nil {
		return "-"
	}
	return s.CreatedAt.Local().Format("2006-01-02 15:04")
}

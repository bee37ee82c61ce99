// Package model defines domain types used throughout the application.
// These types are decoupled from the wire format of any one server.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidInput is wrapped by every StudentInput validation error.
var ErrInvalidInput = errors.New("invalid student")

// Student is one record of the student API.
type Student struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	ClassName string     `json:"className"`
	GPA       float64    `json:"gpa"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// createdAtLayouts are the timestamp formats servers are known to emit.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// UnmarshalJSON accepts both className and class_name, a string or numeric
// gpa, and several created_at layouts.
func (s *Student) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         json.Number     `json:"id"`
		Name       string          `json:"name"`
		ClassName  *string         `json:"className"`
		ClassSnake *string         `json:"class_name"`
		GPA        json.RawMessage `json:"gpa"`
		CreatedAt  *string         `json:"created_at"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Student{Name: raw.Name}
	if raw.ID != "" {
		id, err := raw.ID.Int64()
		if err != nil {
			return fmt.Errorf("student id: %w", err)
		}
		s.ID = id
	}
	switch {
	case raw.ClassName != nil:
		s.ClassName = *raw.ClassName
	case raw.ClassSnake != nil:
		s.ClassName = *raw.ClassSnake
	}

	gpa, err := parseGPA(raw.GPA)
	if err != nil {
		return err
	}
	s.GPA = gpa

	if raw.CreatedAt != nil && *raw.CreatedAt != "" {
		for _, layout := range createdAtLayouts {
			if t, err := time.Parse(layout, *raw.CreatedAt); err == nil {
				s.CreatedAt = &t
				break
			}
		}
	}
	return nil
}

func parseGPA(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("student gpa: %w", err)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("student gpa: %w", err)
	}
	return f, nil
}

// Input returns the editable fields of s.
func (s Student) Input() StudentInput {
	return StudentInput{Name: s.Name, ClassName: s.ClassName, GPA: s.GPA}
}

// FormatGPA renders a GPA with two decimals.
func FormatGPA(gpa float64) string {
	return strconv.FormatFloat(gpa, 'f', 2, 64)
}

// StudentInput is the body of create and update requests.
type StudentInput struct {
	Name      string
	ClassName string
	GPA       float64
}

// MarshalJSON writes the class under both className and class_name so the
// body is accepted by servers using either convention.
func (in StudentInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name       string  `json:"name"`
		ClassName  string  `json:"className"`
		ClassSnake string  `json:"class_name"`
		GPA        float64 `json:"gpa"`
	}{in.Name, in.ClassName, in.ClassName, in.GPA})
}

// Normalize trims surrounding whitespace.
func (in StudentInput) Normalize() StudentInput {
	in.Name = strings.TrimSpace(in.Name)
	in.ClassName = strings.TrimSpace(in.ClassName)
	return in
}

// Validate reports missing fields or a non-finite GPA.
func (in StudentInput) Validate() error {
	in = in.Normalize()
	switch {
	case in.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case in.ClassName == "":
		return fmt.Errorf("%w: class is required", ErrInvalidInput)
	case math.IsNaN(in.GPA) || math.IsInf(in.GPA, 0):
		return fmt.Errorf("%w: gpa must be a number", ErrInvalidInput)
	}
	return nil
}

// ParseInput builds a StudentInput from raw form fields.
func ParseInput(name, className, gpa string) (StudentInput, error) {
	in := StudentInput{Name: name, ClassName: className}.Normalize()
	f, err := strconv.ParseFloat(strings.TrimSpace(gpa), 64)
	if err != nil {
		return in, fmt.Errorf("%w: gpa must be a number", ErrInvalidInput)
	}
	in.GPA = f
	return in, in.Validate()
}

// ClassNames returns the distinct class names of students, sorted.
func ClassNames(students []Student) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range students {
		if s.ClassName == "" || seen[s.ClassName] {
			continue
		}
		seen[s.ClassName] = true
		out = append(out, s.ClassName)
	}
	sort.Strings(out)
	return out
}

package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type studentServer struct {
	mu      sync.Mutex
	methods []string
	bodies  []map[string]any
	deleted []string
}

func newStudentServer(t *testing.T) (*studentServer, string) {
	t.Helper()
	s := &studentServer{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.methods = append(s.methods, r.Method+" "+r.URL.Path)
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			var body map[string]any
			_ = json.Unmarshal(data, &body)
			s.bodies = append(s.bodies, body)
		}
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/students":
			_, _ = io.WriteString(w, `[
				{"id":1,"name":"An","className":"CTK46","gpa":3.5},
				{"id":2,"name":"Binh","class_name":"CTK47","gpa":"2.75"}
			]`)
		case r.Method == http.MethodGet && r.URL.Path == "/students/search":
			_, _ = io.WriteString(w, `[{"id":2,"name":"Binh","className":"CTK47","gpa":2.75}]`)
		case r.Method == http.MethodPost && r.URL.Path == "/students":
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"id":7}`)
		case r.Method == http.MethodPut:
			_, _ = io.WriteString(w, `{}`)
		case r.Method == http.MethodDelete && r.URL.Path == "/students/404":
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"not found"}`)
		case r.Method == http.MethodDelete:
			s.mu.Lock()
			s.deleted = append(s.deleted, strings.TrimPrefix(r.URL.Path, "/students/"))
			s.mu.Unlock()
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return s, srv.URL
}

func resetFlags() {
	flagConfig, flagAPI, flagDebug, flagNoPersist = "", "", false, false
	flagTheme, flagNoAltScreen = "", false
	listClass, listJSON = "", false
	searchClass, searchJSON = "", false
	addName, addClass, addGPA = "", "", ""
	updateName, updateClass, updateGPA = "", "", ""
	deleteYes = false
	themeShowJSON = false
	configInitForce = false
}

// run executes the root command with an isolated home directory.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CLASSDESK_PREFS_BACKEND", "memory")
	return execute(t, stdin, args...)
}

// execute runs the root command in the current environment.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestListPrintsTable(t *testing.T) {
	_, url := newStudentServer(t)
	out, err := run(t, "", "list", "--api", url)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"ID", "NAME", "CLASS", "GPA", "CREATED"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "An", "CTK46", "3.50", "-"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2", "Binh", "CTK47", "2.75", "-"}, strings.Fields(lines[2]))
}

func TestListByClassUsesSearch(t *testing.T) {
	srv, url := newStudentServer(t)
	out, err := run(t, "", "list", "--api", url, "--class", "CTK47", "--json")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Binh", got[0]["name"])
	assert.Equal(t, []string{"GET /students/search"}, srv.methods)
}

func TestAddValidatesBeforeCallingServer(t *testing.T) {
	srv, url := newStudentServer(t)
	_, err := run(t, "", "add", "--api", url, "--name", "An", "--class", "CTK46", "--gpa", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gpa must be a number")
	assert.Empty(t, srv.methods)
}

func TestAddCreatesStudent(t *testing.T) {
	srv, url := newStudentServer(t)
	out, err := run(t, "", "add", "--api", url, "-n", " An ", "-c", "CTK46", "-g", "3.2")
	require.NoError(t, err)
	assert.Contains(t, out, "Student saved successfully! (id 7)")

	require.Len(t, srv.bodies, 1)
	assert.Equal(t, "An", srv.bodies[0]["name"])
	assert.Equal(t, "CTK46", srv.bodies[0]["className"])
	assert.Equal(t, "CTK46", srv.bodies[0]["class_name"])
	assert.Equal(t, 3.2, srv.bodies[0]["gpa"])
}

func TestUpdateKeepsUnsetFields(t *testing.T) {
	srv, url := newStudentServer(t)
	out, err := run(t, "", "update", "2", "--api", url, "--gpa", "3.9")
	require.NoError(t, err)
	assert.Contains(t, out, "Student updated!")

	assert.Equal(t, []string{"GET /students", "PUT /students/2"}, srv.methods)
	require.Len(t, srv.bodies, 1)
	assert.Equal(t, "Binh", srv.bodies[0]["name"])
	assert.Equal(t, "CTK47", srv.bodies[0]["className"])
	assert.Equal(t, 3.9, srv.bodies[0]["gpa"])
}

func TestUpdateUnknownStudent(t *testing.T) {
	_, url := newStudentServer(t)
	_, err := run(t, "", "update", "99", "--api", url, "--name", "X")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "student 99")
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	srv, url := newStudentServer(t)

	out, err := run(t, "n\n", "delete", "1", "--api", url)
	require.EqualError(t, err, "delete aborted")
	assert.Contains(t, out, "Delete An (CTK46)? [y/N]")
	assert.Empty(t, srv.deleted)

	out, err = run(t, "y\n", "delete", "1", "--api", url)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted")
	assert.Equal(t, []string{"1"}, srv.deleted)
}

func TestDeleteMissingStudent(t *testing.T) {
	_, url := newStudentServer(t)
	_, err := run(t, "", "delete", "404", "--yes", "--api", url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no longer exists")
}

func TestDeleteRejectsBadID(t *testing.T) {
	_, err := run(t, "", "delete", "abc", "--yes")
	require.EqualError(t, err, `invalid student id "abc"`)
}

func TestPing(t *testing.T) {
	_, url := newStudentServer(t)
	out, err := run(t, "", "ping", "--api", url)
	require.NoError(t, err)
	assert.Contains(t, out, "Success! Found 2 students.")
	assert.Contains(t, out, "  - An (CTK46)")
}

func TestThemeListIncludesUserThemes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ocean.toml"), []byte(`
extends = ["dark"]
[properties]
accent = "#00bcd4"
`), 0o644))
	t.Setenv("CLASSDESK_THEME_DIR", dir)

	out, err := run(t, "", "theme", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "neon")
	assert.Contains(t, out, "ocean")
	assert.Contains(t, out, filepath.Join(dir, "ocean.toml"))

	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "default") {
			assert.True(t, strings.HasPrefix(line, "*"), "default is active when nothing is saved")
		}
	}
}

func TestThemeShowAndSet(t *testing.T) {
	out, err := run(t, "", "theme", "show", "neon", "--json")
	require.NoError(t, err)
	var mapping map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &mapping))
	assert.NotEmpty(t, mapping)

	_, err = run(t, "", "theme", "show", "nope")
	assert.EqualError(t, err, `unknown theme "nope"`)

	out, err = run(t, "", "theme", "set", "Dark")
	require.NoError(t, err)
	assert.Equal(t, "Theme: dark\n", out)

	_, err = run(t, "", "theme", "set", "missing")
	assert.Error(t, err)
}

func TestThemeSetIsSavedAcrossRuns(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CLASSDESK_PREFS_BACKEND", "file")
	t.Setenv("CLASSDESK_PREFS_PATH", filepath.Join(home, "prefs.yaml"))

	out, err := execute(t, "", "theme", "set", "neon")
	require.NoError(t, err)
	assert.Equal(t, "Theme: neon\n", out)

	data, err := os.ReadFile(filepath.Join(home, "prefs.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "neon")

	out, err = execute(t, "", "theme", "list")
	require.NoError(t, err)
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "neon") {
			assert.True(t, strings.HasPrefix(line, "*"), line)
		}
	}
}

func TestConfigInitAndPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.yaml")

	out, err := run(t, "", "config", "path", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	_, err = run(t, "", "config", "init", "--config", path)
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = run(t, "", "config", "init", "--config", path)
	assert.Error(t, err, "refuses to overwrite")

	_, err = run(t, "", "config", "init", "--config", path, "--force")
	assert.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "classdesk "))
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classdesk/internal/model"
	"classdesk/internal/prefs"
)

type recordedRequest struct {
	Method    string
	Path      string
	Query     string
	RequestID string
	Body      map[string]any
}

type fakeServer struct {
	mu       sync.Mutex
	requests []recordedRequest
	handler  http.HandlerFunc
}

func newFakeServer(t *testing.T, handler http.HandlerFunc) (*fakeServer, *Client) {
	t.Helper()
	fs := &fakeServer{handler: handler}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			Query:     r.URL.RawQuery,
			RequestID: r.Header.Get("X-Request-ID"),
		}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &rec.Body)
		}
		fs.mu.Lock()
		fs.requests = append(fs.requests, rec)
		fs.mu.Unlock()
		fs.handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return fs, New(srv.URL+"/", WithTimeout(2*time.Second))
}

func (fs *fakeServer) last() recordedRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.requests[len(fs.requests)-1]
}

func writeJSON(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, body)
}

func TestList(t *testing.T) {
	fs, c := newFakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, `[{"id":1,"name":"An","class_name":"CTK46","gpa":3.5}]`)
	})

	students, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "CTK46", students[0].ClassName)

	req := fs.last()
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/students", req.Path)
	_, err = uuid.Parse(req.RequestID)
	assert.NoError(t, err, "every request carries a uuid request id")
}

func TestListNonArrayIsEmpty(t *testing.T) {
	_, c := newFakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, `{"students": []}`)
	})
	students, err := c.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}

func TestSearchQuery(t *testing.T) {
	fs, c := newFakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, `[]`)
	})
	_, err := c.Search(context.Background(), " an ", "CTK46")
	require.NoError(t, err)
	req := fs.last()
	assert.Equal(t, "/students/search", req.Path)
	assert.Equal(t, "class=CTK46&q=an", req.Query)
}

func TestCreateAndUpdate(t *testing.T) {
	fs, c := newFakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			writeJSON(w, 201, `{"id":7,"name":"An","class_name":"CTK46","gpa":3.5,"message":"Student added successfully"}`)
		case http.MethodPut:
			writeJSON(w, 200, `{"message":"Student updated successfully"}`)
		}
	})

	in := model.StudentInput{Name: " An ", ClassName: "CTK46", GPA: 3.5}
	created, err := c.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	body := fs.last().Body
	assert.Equal(t, "An", body["name"])
	assert.Equal(t, "CTK46", body["className"])
	assert.Equal(t, "CTK46", body["class_name"])

	updated, err := c.Update(context.Background(), 7, model.StudentInput{Name: "An", ClassName: "CTK47", GPA: 3.9})
	require.NoError(t, err)
	assert.Equal(t, "/students/7", fs.last().Path)
	assert.Equal(t, int64(7), updated.ID)
	assert.Equal(t, "CTK47", updated.ClassName, "sparse responses are filled from the input")
}

func TestCreateValidatesBeforeSending(t *testing.T) {
	fs, c := newFakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 201, `{}`)
	})
	_, err := c.Create(context.Background(), model.StudentInput{Name: "An"})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	assert.Empty(t, fs.requests)
}

func TestDeleteNotFound(t *testing.T) {
	_, c := newFakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 404, `{"error":"Student not found"}`)
	})
	err := c.Delete(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 404, se.Code)
	assert.Equal(t, "Student not found", se.Message)
	assert.Contains(t, se.Error(), "DELETE /students/42")
}

func TestServerErrorIsNotNotFound(t *testing.T) {
	_, c := newFakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 500, `boom`)
	})
	_, err := c.List(context.Background())
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "boom", se.Message)
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	_, err := New(srv.URL).List(context.Background())
	require.Error(t, err)
	var se *StatusError
	assert.False(t, errors.As(err, &se))
}

func TestResolveBaseURL(t *testing.T) {
	ctx := context.Background()
	store := prefs.NewMemory()

	assert.Equal(t, DefaultBaseURL, ResolveBaseURL(ctx, "", "", store))
	assert.Equal(t, "http://cfg:1", ResolveBaseURL(ctx, "", "http://cfg:1", store))

	assert.Equal(t, "http://flag:2", ResolveBaseURL(ctx, "http://flag:2", "http://cfg:1", store))
	saved, ok, _ := store.Get(ctx, prefs.KeyAPIBase)
	assert.True(t, ok)
	assert.Equal(t, "http://flag:2", saved)

	assert.Equal(t, "http://flag:2", ResolveBaseURL(ctx, "", "http://cfg:1", store), "saved value beats config")
	assert.Equal(t, "http://cfg:1", ResolveBaseURL(ctx, "", "http://cfg:1", nil))
}

func TestWithTimeoutLeavesCallerClientAlone(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}
	c := New("http://students.test", WithHTTPClient(shared), WithTimeout(2*time.Second))

	assert.Equal(t, time.Minute, shared.Timeout)
	assert.Equal(t, 2*time.Second, c.http.Timeout)
	assert.NotSame(t, shared, c.http)

	before := http.DefaultClient.Timeout
	New("http://students.test", WithHTTPClient(http.DefaultClient), WithTimeout(time.Second))
	assert.Equal(t, before, http.DefaultClient.Timeout)
}

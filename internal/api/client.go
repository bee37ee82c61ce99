// Package api is the HTTP client for the student records service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"classdesk/internal/log"
	"classdesk/internal/model"
)

const (
	// DefaultBaseURL is used when no flag, preference or config value is set.
	DefaultBaseURL = "http://localhost:8080"

	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "classdesk"
	maxBodyBytes     = 4 << 20
)

// ErrNotFound is returned when the server answers 404.
var ErrNotFound = errors.New("student not found")

// StatusError is a non-2xx response.
type StatusError struct {
	Method  string
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Code)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Code, msg)
}

// Is makes errors.Is(err, ErrNotFound) true for 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// Client talks to a student API rooted at a base URL.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	logger    *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout. The http.Client is copied first,
// so a client passed to WithHTTPClient is left as it was.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.http
			hc.Timeout = d
			c.http = &hc
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List returns every student. A body that is not a JSON array yields an empty list.
func (c *Client) List(ctx context.Context) ([]model.Student, error) {
	return c.list(ctx, "/students", nil)
}

// Search filters students server-side by a name/class substring and an exact class.
func (c *Client) Search(ctx context.Context, query, class string) ([]model.Student, error) {
	q := url.Values{}
	if query = strings.TrimSpace(query); query != "" {
		q.Set("q", query)
	}
	if class = strings.TrimSpace(class); class != "" {
		q.Set("class", class)
	}
	return c.list(ctx, "/students/search", q)
}

// Create adds a student and returns the server's view of it.
func (c *Client) Create(ctx context.Context, in model.StudentInput) (model.Student, error) {
	if err := in.Validate(); err != nil {
		return model.Student{}, err
	}
	in = in.Normalize()
	var out model.Student
	if err := c.do(ctx, http.MethodPost, "/students", nil, in, &out); err != nil {
		return model.Student{}, err
	}
	return fillFromInput(out, 0, in), nil
}

// Update replaces the fields of student id.
func (c *Client) Update(ctx context.Context, id int64, in model.StudentInput) (model.Student, error) {
	if err := in.Validate(); err != nil {
		return model.Student{}, err
	}
	in = in.Normalize()
	var out model.Student
	if err := c.do(ctx, http.MethodPut, studentPath(id), nil, in, &out); err != nil {
		return model.Student{}, err
	}
	return fillFromInput(out, id, in), nil
}

// Delete removes student id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, studentPath(id), nil, nil, nil)
}

func (c *Client) list(ctx context.Context, path string, q url.Values) ([]model.Student, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, q, nil, &raw); err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []model.Student{}, nil
	}
	var students []model.Student
	if err := json.Unmarshal(trimmed, &students); err != nil {
		return nil, fmt.Errorf("decode students: %w", err)
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body, out any) error {
	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("%s %s failed (request %s): %v", method, path, reqID, err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	c.logger.Debug("%s %s -> %d in %s (request %s)", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond), reqID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:  method,
			Path:    path,
			Code:    resp.StatusCode,
			Message: errorMessage(data),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(body))
}

// fillFromInput completes a sparse write response with the submitted values.
func fillFromInput(s model.Student, id int64, in model.StudentInput) model.Student {
	if s.ID == 0 {
		s.ID = id
	}
	if s.Name == "" {
		s.Name = in.Name
	}
	if s.ClassName == "" {
		s.ClassName = in.ClassName
	}
	if s.GPA == 0 {
		s.GPA = in.GPA
	}
	return s
}

func studentPath(id int64) string {
	return "/students/" + strconv.FormatInt(id, 10)
}

// Package prefs persists small user preferences such as the selected theme.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Preference keys.
const (
	KeySelectedTheme = "selectedTheme"
	KeyDarkMode      = "darkMode"
	KeyAPIBase       = "apiBase"
)

// Backend names.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendDynamoDB = "dynamodb"
	BackendMemory   = "memory"
)

// ErrUnknownBackend is returned by Open for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown preference backend")

// Store is a string key/value preference store.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend   string
	Path      string
	Table     string
	Profile   string
	Region    string
	Namespace string
}

// Open returns the store described by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	backend := strings.ToLower(strings.TrimSpace(opts.Backend))
	switch backend {
	case "", BackendFile:
		path := opts.Path
		if path == "" {
			path = DefaultPath("prefs.yaml")
		}
		return NewFileStore(path)
	case BackendSQLite:
		path := opts.Path
		if path == "" {
			path = DefaultPath("prefs.db")
		}
		return OpenSQLite(ctx, path)
	case BackendDynamoDB:
		return OpenDynamo(ctx, DynamoOptions{
			Table:     opts.Table,
			Profile:   opts.Profile,
			Region:    opts.Region,
			Namespace: opts.Namespace,
		})
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// DefaultPath returns name inside the classdesk config directory.
func DefaultPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".classdesk", name)
}

// Memory is an in-process store.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty in-process store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Close() error { return nil }

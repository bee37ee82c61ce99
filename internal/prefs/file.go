package prefs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileStore keeps preferences in a YAML document.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// NewFileStore loads path if it exists. A missing file starts empty.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, values: make(map[string]string)}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read prefs %q: %w", s.path, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, &s.values); err != nil {
		return fmt.Errorf("parse prefs %q: %w", s.path, err)
	}
	if s.values == nil {
		s.values = make(map[string]string)
	}
	return nil
}

func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores value and rewrites the file.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.values[key]
	s.values[key] = value

	data, err := yaml.Marshal(s.values)
	if err != nil {
		s.restore(key, prev, had)
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.restore(key, prev, had)
		return fmt.Errorf("create prefs directory: %w", err)
	}
	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		s.restore(key, prev, had)
		return fmt.Errorf("write prefs %q: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) restore(key, prev string, had bool) {
	if had {
		s.values[key] = prev
		return
	}
	delete(s.values, key)
}

func (s *FileStore) Close() error { return nil }

// writeFileAtomic writes to a temp file in the same directory, then renames it over path.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".classdesk-prefs-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return errors.Join(err, tmp.Close())
	}
	if err := tmp.Chmod(perm); err != nil {
		return errors.Join(err, tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

package theme

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

var (
	// ErrUnknownProperty is returned when a theme file names a key outside the vocabulary.
	ErrUnknownProperty = errors.New("unknown theme property")
	// ErrEmptyBaseProperty is returned when a theme file blanks one of the base keys.
	ErrEmptyBaseProperty = errors.New("base theme property is empty")
	// ErrThemeExists is returned when a theme file reuses a registered name.
	ErrThemeExists = errors.New("theme already registered")
)

// FileSpec is the on-disk form of a user theme.
//
//	name = "ocean"
//	extends = ["dark"]
//	[properties]
//	accent = "#00bcd4"
type FileSpec struct {
	Name       string            `json:"name"       toml:"name"`
	Extends    []string          `json:"extends"    toml:"extends"`
	Properties map[string]string `json:"properties" toml:"properties"`
}

// UserTheme describes a theme registered from a file.
type UserTheme struct {
	Name    Name
	Extends []Name
	Path    string
}

// LoadDir registers every *.toml and *.json theme in dir with r. A missing
// directory is not an error. Files that fail to load are skipped and their
// errors joined into the returned error.
func LoadDir(r *Registry, dir string) ([]UserTheme, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("themes: read directory %q: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var (
		loaded   []UserTheme
		combined error
	)
	for _, fname := range names {
		ext := strings.ToLower(filepath.Ext(fname))
		if ext != ".toml" && ext != ".json" {
			continue
		}
		path := filepath.Join(dir, fname)
		ut, err := loadFile(r, path, ext)
		if err != nil {
			combined = errors.Join(combined, fmt.Errorf("themes: load %q: %w", path, err))
			continue
		}
		loaded = append(loaded, ut)
	}
	return loaded, combined
}

func loadFile(r *Registry, path, ext string) (UserTheme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return UserTheme{}, err
	}
	spec, err := DecodeSpec(data, ext)
	if err != nil {
		return UserTheme{}, err
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	ut, err := RegisterSpec(r, spec)
	if err != nil {
		return UserTheme{}, err
	}
	ut.Path = path
	return ut, nil
}

// DecodeSpec parses a theme file body; ext is ".toml" or ".json".
func DecodeSpec(data []byte, ext string) (FileSpec, error) {
	var spec FileSpec
	switch ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&spec); err != nil {
			return FileSpec{}, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &spec); err != nil {
			return FileSpec{}, err
		}
	default:
		return FileSpec{}, fmt.Errorf("decode: unsupported format %q", ext)
	}
	return spec, nil
}

// RegisterSpec registers spec as a new theme whose chain is the chains of
// every extended theme followed by the spec's own overrides. Base keys must
// stay non-empty; an empty extended key leaves that slot to the stylesheet.
func RegisterSpec(r *Registry, spec FileSpec) (UserTheme, error) {
	name := Name(strings.ToLower(strings.TrimSpace(spec.Name)))
	if name == "" {
		return UserTheme{}, errors.New("theme name is empty")
	}
	if r.Has(name) {
		return UserTheme{}, fmt.Errorf("%w: %q", ErrThemeExists, name)
	}

	table := make(Mapping, len(spec.Properties))
	for k, v := range spec.Properties {
		key := Key(k)
		if !IsKnown(key) {
			return UserTheme{}, fmt.Errorf("%w: %q", ErrUnknownProperty, k)
		}
		v = strings.TrimSpace(v)
		if v == "" && slices.Contains(BaseKeys(), key) {
			return UserTheme{}, fmt.Errorf("%w: %q", ErrEmptyBaseProperty, k)
		}
		table[key] = v
	}

	var (
		chain   []Transform
		extends []Name
	)
	for _, parent := range spec.Extends {
		pn := Name(strings.ToLower(strings.TrimSpace(parent)))
		pc, ok := r.Chain(pn)
		if !ok {
			return UserTheme{}, fmt.Errorf("extends unknown theme %q", parent)
		}
		chain = append(chain, pc...)
		extends = append(extends, pn)
	}
	chain = append(chain, Override(table))

	r.Register(name, chain...)
	return UserTheme{Name: name, Extends: extends}, nil
}

package theme

import (
	"sort"
	"strings"
	"sync"
)

// Surface holds the live style slots and class markers the renderer reads from.
// It is shared between the UI goroutine and deferred theme commits.
type Surface struct {
	mu        sync.RWMutex
	slots     map[string]string
	classes   map[string]bool
	revision  uint64
	listeners []func()
}

// NewSurface returns an empty surface.
func NewSurface() *Surface {
	return &Surface{
		slots:   make(map[string]string),
		classes: make(map[string]bool),
	}
}

// OnChange registers fn to be called after every flush.
func (s *Surface) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// SetSlot writes a slot value.
func (s *Surface) SetSlot(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[name] = value
}

// ClearSlot removes a slot value.
func (s *Surface) ClearSlot(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, name)
}

// Slot returns a slot value and whether it is set.
func (s *Surface) Slot(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.slots[name]
	return v, ok
}

// Value returns the slot value bound to a vocabulary key, or "".
func (s *Surface) Value(k Key) string {
	slot, ok := SlotFor(k)
	if !ok {
		return ""
	}
	v, _ := s.Slot(slot)
	return v
}

// Snapshot returns a copy of all set slots.
func (s *Surface) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.slots))
	for k, v := range s.slots {
		out[k] = v
	}
	return out
}

// AddClass sets a class marker.
func (s *Surface) AddClass(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classes[name] = true
}

// RemoveClass clears a class marker.
func (s *Surface) RemoveClass(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.classes, name)
}

// ToggleClass flips a class marker and returns the new state.
func (s *Surface) ToggleClass(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.classes[name] {
		delete(s.classes, name)
		return false
	}
	s.classes[name] = true
	return true
}

// RemoveClassesMatching clears every class marker for which match returns true.
func (s *Surface) RemoveClassesMatching(match func(string) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.classes {
		if match(c) {
			delete(s.classes, c)
		}
	}
}

// HasClass reports whether a class marker is set.
func (s *Surface) HasClass(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.classes[name]
}

// Classes returns the set class markers, sorted.
func (s *Surface) Classes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.classes))
	for c := range s.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ThemeClass returns the active "<name>-theme" marker, or "" for the default theme.
func (s *Surface) ThemeClass() string {
	for _, c := range s.Classes() {
		if isThemeClass(c) {
			return c
		}
	}
	return ""
}

// Revision counts flushes.
func (s *Surface) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Flush is a synchronous barrier: pending slot and class changes become
// observable and listeners run before Flush returns.
func (s *Surface) Flush() {
	s.mu.Lock()
	s.revision++
	listeners := append([]func(){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

func themeClass(name Name) string {
	return string(name) + "-theme"
}

func isThemeClass(c string) bool {
	return strings.HasSuffix(c, "-theme")
}

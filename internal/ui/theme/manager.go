package theme

import (
	"context"
	"sync"
	"time"

	"classdesk/internal/log"
	"classdesk/internal/prefs"
)

// Manager owns the active theme name. SetTheme is the only way to change it.
type Manager struct {
	registry *Registry
	applier  *Applier
	prefs    Preferences
	logger   *log.Logger

	setMu   sync.Mutex
	mu      sync.RWMutex
	current Name
}

// NewManager returns a manager whose active theme is "default".
// prefs may be nil, in which case LoadSaved always activates the default theme.
func NewManager(registry *Registry, applier *Applier, p Preferences, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		registry: registry,
		applier:  applier,
		prefs:    p,
		logger:   logger,
		current:  NameDefault,
	}
}

// LoadSaved activates the persisted theme, or "default" when none is saved.
func (m *Manager) LoadSaved() Name {
	name := NameDefault
	if m.prefs != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		saved, ok, err := m.prefs.Get(ctx, prefs.KeySelectedTheme)
		cancel()
		switch {
		case err != nil:
			m.logger.Warn("theme: failed to read saved theme: %v", err)
		case ok && saved != "":
			name = Name(saved)
		}
	}

	if !m.SetTheme(name) {
		m.logger.Warn("theme: saved theme %q is not registered, using default", name)
		m.SetTheme(NameDefault)
	}
	return m.Current()
}

// SetTheme activates name. Unknown names are ignored and false is returned.
func (m *Manager) SetTheme(name Name) bool {
	m.setMu.Lock()
	defer m.setMu.Unlock()

	if !m.applier.Activate(name) {
		return false
	}
	m.mu.Lock()
	m.current = name
	m.mu.Unlock()
	m.logger.Info("Theme set to %s", name)
	return true
}

// Cycle activates the theme registered after the current one.
func (m *Manager) Cycle() Name {
	names := m.registry.Names()
	if len(names) == 0 {
		return m.Current()
	}
	cur := m.Current()
	next := names[0]
	for i, n := range names {
		if n == cur {
			next = names[(i+1)%len(names)]
			break
		}
	}
	m.SetTheme(next)
	return m.Current()
}

// Current returns the active theme name.
func (m *Manager) Current() Name {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Resolved returns a fresh mapping for the active theme.
func (m *Manager) Resolved() Mapping {
	mapping, _ := m.registry.Resolve(m.Current())
	return mapping
}

// Names returns every registered theme name.
func (m *Manager) Names() []Name {
	return m.registry.Names()
}

// Applier returns the applier driving the surface.
func (m *Manager) Applier() *Applier {
	return m.applier
}

package theme

import (
	"context"
	"sync"
	"time"

	"classdesk/internal/log"
	"classdesk/internal/prefs"
)

// DefaultApplyDelay separates the clear phase from the commit phase.
const DefaultApplyDelay = 50 * time.Millisecond

// Target is the presentation surface a theme is applied to.
type Target interface {
	AddClass(name string)
	RemoveClassesMatching(match func(string) bool)
	SetSlot(name, value string)
	ClearSlot(name string)
	Flush()
}

// Preferences persists the selected theme name.
type Preferences interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Applier synchronizes resolved themes onto a Target in two phases:
// clear every slot, then commit the new values after a short delay.
type Applier struct {
	registry *Registry
	target   Target
	prefs    Preferences
	sched    Scheduler
	delay    time.Duration
	logger   *log.Logger

	// applyMu serializes the clear phase against commits.
	applyMu sync.Mutex

	mu      sync.Mutex
	gen     uint64
	cancel  Cancel
	pending func()

	// saveMu guards the name waiting to be persisted; writeMu keeps writes in order.
	saveMu    sync.Mutex
	saveName  Name
	saveDirty bool
	writeMu   sync.Mutex
}

// ApplierOption configures an Applier.
type ApplierOption func(*Applier)

// WithScheduler sets the scheduler used for the commit phase.
func WithScheduler(s Scheduler) ApplierOption {
	return func(a *Applier) { a.sched = s }
}

// WithDelay sets the gap between the clear and commit phases.
func WithDelay(d time.Duration) ApplierOption {
	return func(a *Applier) {
		if d >= 0 {
			a.delay = d
		}
	}
}

// WithPreferences sets where the active theme name is persisted.
func WithPreferences(p Preferences) ApplierOption {
	return func(a *Applier) { a.prefs = p }
}

// WithLogger sets the applier logger.
func WithLogger(l *log.Logger) ApplierOption {
	return func(a *Applier) { a.logger = l }
}

// NewApplier returns an Applier writing to target.
func NewApplier(registry *Registry, target Target, opts ...ApplierOption) *Applier {
	a := &Applier{
		registry: registry,
		target:   target,
		sched:    TimerScheduler{},
		delay:    DefaultApplyDelay,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Activate applies the named theme. It returns false, and changes nothing,
// when the name is not registered. The commit phase runs later; a second
// Activate before it fires replaces the pending commit. The name is persisted
// off the caller's goroutine.
func (a *Applier) Activate(name Name) bool {
	mapping, ok := a.registry.Resolve(name)
	if !ok {
		a.logger.Debug("theme: ignoring unknown theme %q", name)
		return false
	}

	a.applyMu.Lock()
	a.target.RemoveClassesMatching(isThemeClass)
	if name != NameDefault {
		a.target.AddClass(themeClass(name))
	}
	a.target.Flush()

	for _, slot := range Slots() {
		a.target.ClearSlot(slot)
	}
	a.target.Flush()

	a.schedule(name, mapping)
	a.applyMu.Unlock()

	a.persist(name)
	return true
}

// Settle runs a pending commit immediately and waits for the selected theme
// to be written. It reports whether a commit was pending.
func (a *Applier) Settle() bool {
	a.mu.Lock()
	run := a.pending
	cancel := a.cancel
	a.mu.Unlock()

	defer a.save()
	if run == nil {
		return false
	}
	if cancel != nil {
		cancel()
	}
	run()
	return true
}

// Pending reports whether a commit is scheduled.
func (a *Applier) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending != nil
}

func (a *Applier) schedule(name Name, mapping Mapping) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancel != nil {
		a.cancel()
	}
	a.gen++
	gen := a.gen

	commit := func() {
		a.applyMu.Lock()
		defer a.applyMu.Unlock()

		a.mu.Lock()
		if a.gen != gen || a.pending == nil {
			a.mu.Unlock()
			return
		}
		a.pending = nil
		a.cancel = nil
		a.mu.Unlock()

		a.commit(mapping)
		a.logger.Debug("theme: committed %q (%d properties)", name, len(mapping))
	}
	a.pending = commit
	a.cancel = a.sched.After(a.delay, commit)
}

func (a *Applier) commit(mapping Mapping) {
	for _, k := range Keys() {
		v := mapping[k]
		if v == "" {
			continue
		}
		slot, _ := SlotFor(k)
		a.target.SetSlot(slot, v)
	}
	a.target.Flush()
}

// persist queues name for saving. Rapid switches coalesce into one write of
// the latest name.
func (a *Applier) persist(name Name) {
	if a.prefs == nil {
		return
	}
	a.saveMu.Lock()
	a.saveName = name
	a.saveDirty = true
	a.saveMu.Unlock()
	a.sched.After(0, a.save)
}

// save writes the queued theme name, if any.
func (a *Applier) save() {
	if a.prefs == nil {
		return
	}
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	a.saveMu.Lock()
	name, dirty := a.saveName, a.saveDirty
	a.saveDirty = false
	a.saveMu.Unlock()
	if !dirty {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.prefs.Set(ctx, prefs.KeySelectedTheme, string(name)); err != nil {
		a.logger.Warn("theme: failed to save selected theme: %v", err)
	}
}

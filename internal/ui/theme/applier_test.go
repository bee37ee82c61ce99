package theme

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classdesk/internal/prefs"
)

// recorder is a Target that logs every operation and forwards it to a Surface.
type recorder struct {
	mu      sync.Mutex
	ops     []string
	surface *Surface
}

func newRecorder() *recorder {
	return &recorder{surface: NewSurface()}
}

func (r *recorder) add(op string) {
	r.mu.Lock()
	r.ops = append(r.ops, op)
	r.mu.Unlock()
}

func (r *recorder) AddClass(name string) {
	r.add("add " + name)
	r.surface.AddClass(name)
}

func (r *recorder) RemoveClassesMatching(match func(string) bool) {
	r.add("remove-classes")
	r.surface.RemoveClassesMatching(match)
}

func (r *recorder) SetSlot(name, value string) {
	r.add("set " + name)
	r.surface.SetSlot(name, value)
}

func (r *recorder) ClearSlot(name string) {
	r.add("clear " + name)
	r.surface.ClearSlot(name)
}

func (r *recorder) Flush() {
	r.add("flush")
	r.surface.Flush()
}

func (r *recorder) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.ops
	r.ops = nil
	return out
}

type failingPrefs struct{ calls int }

func (f *failingPrefs) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

func (f *failingPrefs) Set(context.Context, string, string) error {
	f.calls++
	return errors.New("disk on fire")
}

func newTestApplier(t *testing.T, opts ...ApplierOption) (*Applier, *recorder, *ManualScheduler) {
	t.Helper()
	rec := newRecorder()
	sched := NewManualScheduler()
	opts = append([]ApplierOption{WithScheduler(sched)}, opts...)
	return NewApplier(NewRegistry(), rec, opts...), rec, sched
}

func TestActivateClearPhaseOrdering(t *testing.T) {
	a, rec, sched := newTestApplier(t)

	require.True(t, a.Activate(NameDark))
	ops := rec.take()

	// remove, add marker, flush, 40 clears, flush
	require.Len(t, ops, 2+1+40+1)
	assert.Equal(t, "remove-classes", ops[0])
	assert.Equal(t, "add dark-theme", ops[1])
	assert.Equal(t, "flush", ops[2])
	for i, slot := range Slots() {
		assert.Equal(t, "clear "+slot, ops[3+i])
	}
	assert.Equal(t, "flush", ops[len(ops)-1])

	assert.True(t, a.Pending())
	sched.Advance(DefaultApplyDelay - time.Millisecond)
	assert.Empty(t, rec.take(), "nothing is committed before the delay")

	sched.Advance(time.Millisecond)
	ops = rec.take()
	require.Len(t, ops, 41)
	for _, op := range ops[:40] {
		assert.True(t, strings.HasPrefix(op, "set "), op)
	}
	assert.Equal(t, "flush", ops[40])
	assert.False(t, a.Pending())

	v, _ := rec.surface.Slot("--accent-primary")
	assert.Equal(t, "#ff6b6b", v)
}

func TestActivateDefaultHasNoMarker(t *testing.T) {
	a, rec, sched := newTestApplier(t)
	require.True(t, a.Activate(NameNeon))
	sched.Advance(DefaultApplyDelay)
	assert.Equal(t, "neon-theme", rec.surface.ThemeClass())

	require.True(t, a.Activate(NameDefault))
	sched.Advance(DefaultApplyDelay)
	assert.Equal(t, "", rec.surface.ThemeClass())
	assert.Len(t, rec.surface.Snapshot(), 5)
}

func TestActivateUnknownIsNoop(t *testing.T) {
	store := prefs.NewMemory()
	a, rec, sched := newTestApplier(t, WithPreferences(store))

	require.True(t, a.Activate(NameLight))
	sched.Advance(DefaultApplyDelay)
	before := rec.surface.Snapshot()
	classes := rec.surface.Classes()
	rec.take()

	assert.False(t, a.Activate("sepia"))
	assert.Empty(t, rec.take())
	assert.False(t, a.Pending())
	assert.Equal(t, before, rec.surface.Snapshot())
	assert.Equal(t, classes, rec.surface.Classes())

	saved, _, _ := store.Get(context.Background(), prefs.KeySelectedTheme)
	assert.Equal(t, "light", saved)
}

func TestActivateIsIdempotent(t *testing.T) {
	a, rec, sched := newTestApplier(t)
	a.Activate(NameDark)
	sched.Advance(DefaultApplyDelay)
	first := rec.surface.Snapshot()
	firstClasses := rec.surface.Classes()

	a.Activate(NameDark)
	sched.Advance(DefaultApplyDelay)
	assert.Equal(t, first, rec.surface.Snapshot())
	assert.Equal(t, firstClasses, rec.surface.Classes())
}

func TestNeonAfterDarkClearsExtendedSlots(t *testing.T) {
	a, rec, sched := newTestApplier(t)
	a.Activate(NameDark)
	sched.Advance(DefaultApplyDelay)
	_, ok := rec.surface.Slot("--table-bg")
	require.True(t, ok)

	a.Activate(NameNeon)
	sched.Advance(DefaultApplyDelay)
	_, ok = rec.surface.Slot("--table-bg")
	assert.False(t, ok)
	glow, _ := rec.surface.Slot("--glow-effect")
	assert.Equal(t, "0 0 20px #00ff00", glow)
	assert.Equal(t, []string{"neon-theme"}, rec.surface.Classes())
}

func TestRapidActivationCancelsPendingCommit(t *testing.T) {
	a, rec, sched := newTestApplier(t)

	a.Activate(NameDark)
	sched.Advance(10 * time.Millisecond)
	a.Activate(NameLight)
	rec.take()

	sched.Advance(DefaultApplyDelay)
	ops := rec.take()
	flushes := 0
	for _, op := range ops {
		if op == "flush" {
			flushes++
		}
	}
	assert.Equal(t, 1, flushes, "only the last activation commits")

	accent, _ := rec.surface.Slot("--accent-primary")
	assert.Equal(t, "#007bff", accent)
	assert.Equal(t, "light-theme", rec.surface.ThemeClass())
	assert.Equal(t, 0, sched.Pending())
}

func TestSettleRunsPendingCommit(t *testing.T) {
	a, rec, sched := newTestApplier(t)
	assert.False(t, a.Settle())

	a.Activate(NameNeon)
	assert.True(t, a.Settle())
	accent, _ := rec.surface.Slot("--accent-primary")
	assert.Equal(t, "#ff00ff", accent)

	rec.take()
	sched.Advance(time.Second)
	assert.Empty(t, rec.take(), "settled commit does not run twice")
}

func TestPersistenceFailureIsIgnored(t *testing.T) {
	p := &failingPrefs{}
	a, rec, sched := newTestApplier(t, WithPreferences(p))

	assert.True(t, a.Activate(NameDark))
	sched.Advance(DefaultApplyDelay)
	assert.Equal(t, 1, p.calls)
	accent, _ := rec.surface.Slot("--accent-primary")
	assert.Equal(t, "#ff6b6b", accent)
}

func TestCommitOmitsEmptyValues(t *testing.T) {
	rec := newRecorder()
	sched := NewManualScheduler()
	r := NewRegistry()
	r.Register("blank", Override(Mapping{KeyGlow: "", KeyTableBackground: "#101010"}))
	a := NewApplier(r, rec, WithScheduler(sched))

	a.Activate("blank")
	sched.Advance(DefaultApplyDelay)
	_, ok := rec.surface.Slot("--glow-effect")
	assert.False(t, ok)
	v, _ := rec.surface.Slot("--table-bg")
	assert.Equal(t, "#101010", v)
}

func TestApplierWithTimerScheduler(t *testing.T) {
	s := NewSurface()
	a := NewApplier(NewRegistry(), s, WithDelay(5*time.Millisecond))
	require.True(t, a.Activate(NameDark))

	assert.Eventually(t, func() bool {
		v, _ := s.Slot("--accent-primary")
		return v == "#ff6b6b"
	}, time.Second, 5*time.Millisecond)
}

type countingPrefs struct {
	mu     sync.Mutex
	writes []string
}

func (c *countingPrefs) Get(context.Context, string) (string, bool, error) {
	return "", false, nil
}

func (c *countingPrefs) Set(_ context.Context, _ string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes = append(c.writes, value)
	return nil
}

func TestPersistRunsOffTheCallerAndCoalesces(t *testing.T) {
	p := &countingPrefs{}
	a, _, sched := newTestApplier(t, WithPreferences(p))

	a.Activate(NameDark)
	a.Activate(NameLight)
	a.Activate(NameNeon)
	assert.Empty(t, p.writes, "Activate does not block on the store")

	sched.Advance(0)
	assert.Equal(t, []string{"neon"}, p.writes)

	sched.Advance(DefaultApplyDelay)
	assert.Equal(t, []string{"neon"}, p.writes)
}

func TestSettleFlushesQueuedWrite(t *testing.T) {
	store := prefs.NewMemory()
	a, _, _ := newTestApplier(t, WithPreferences(store))

	a.Activate(NameLight)
	assert.True(t, a.Settle())

	saved, _, err := store.Get(context.Background(), prefs.KeySelectedTheme)
	require.NoError(t, err)
	assert.Equal(t, "light", saved)
}

// Package notify shows user-facing notices as log lines and transient toasts.
package notify

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"classdesk/internal/log"
	"classdesk/internal/ui/theme"
)

// Kind classifies a notice.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Toast timing.
const (
	ShowDelay    = 100 * time.Millisecond
	DismissAfter = 3000 * time.Millisecond
	FadeDuration = 300 * time.Millisecond
)

// Phase is the visible state of a toast.
type Phase int

const (
	PhaseHidden Phase = iota
	PhaseShown
	PhaseFading
)

// Notifier presents a message.
type Notifier interface {
	Show(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Show implements Notifier.
func (f NotifierFunc) Show(message string) { f(message) }

// Base logs "[KIND] message".
type Base struct {
	Kind   Kind
	Logger *log.Logger
}

// Show implements Notifier.
func (b Base) Show(message string) {
	logger := b.Logger
	if logger == nil {
		logger = log.Default()
	}
	line := "[" + strings.ToUpper(string(b.Kind)) + "] " + message
	if b.Kind == KindError {
		logger.Error("%s", line)
		return
	}
	logger.Info("%s", line)
}

// Toast is one transient notice on a Board.
type Toast struct {
	ID      string
	Kind    Kind
	Message string
	Phase   Phase
	Created time.Time
	seq     uint64
}

// Board holds the live toasts.
type Board struct {
	mu       sync.RWMutex
	toasts   map[string]*Toast
	seq      uint64
	onChange func()
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{toasts: make(map[string]*Toast)}
}

// OnChange sets the hook called after every board change.
func (b *Board) OnChange(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = fn
}

// Toasts returns copies of the live toasts in creation order.
func (b *Board) Toasts() []Toast {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Toast, 0, len(b.toasts))
	for _, t := range b.toasts {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// Visible returns toasts that are shown or fading.
func (b *Board) Visible() []Toast {
	var out []Toast
	for _, t := range b.Toasts() {
		if t.Phase != PhaseHidden {
			out = append(out, t)
		}
	}
	return out
}

func (b *Board) add(kind Kind, message string) string {
	b.mu.Lock()
	b.seq++
	t := &Toast{
		ID:      uuid.NewString(),
		Kind:    kind,
		Message: message,
		Created: time.Now(),
		seq:     b.seq,
	}
	b.toasts[t.ID] = t
	b.mu.Unlock()
	b.changed()
	return t.ID
}

func (b *Board) setPhase(id string, p Phase) {
	b.mu.Lock()
	t, ok := b.toasts[id]
	if ok {
		t.Phase = p
	}
	b.mu.Unlock()
	if ok {
		b.changed()
	}
}

func (b *Board) remove(id string) {
	b.mu.Lock()
	_, ok := b.toasts[id]
	delete(b.toasts, id)
	b.mu.Unlock()
	if ok {
		b.changed()
	}
}

func (b *Board) changed() {
	b.mu.RLock()
	fn := b.onChange
	b.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// WithToast decorates next: after next runs, a toast of kind is added to
// board, shown after ShowDelay, faded at DismissAfter and removed
// FadeDuration later. Timers are independent of each other.
func WithToast(kind Kind, next Notifier, board *Board, s theme.Scheduler) Notifier {
	return NotifierFunc(func(message string) {
		next.Show(message)
		id := board.add(kind, message)
		s.After(ShowDelay, func() { board.setPhase(id, PhaseShown) })
		s.After(DismissAfter, func() {
			board.setPhase(id, PhaseFading)
			s.After(FadeDuration, func() { board.remove(id) })
		})
	})
}

// Manager routes messages to a notifier by kind.
type Manager struct {
	logger    *log.Logger
	notifiers map[Kind]Notifier
}

// NewManager decorates a Base notifier with toasts for success, error and
// warning. Info and any other kind are only logged.
func NewManager(board *Board, s theme.Scheduler, logger *log.Logger) *Manager {
	if s == nil {
		s = theme.TimerScheduler{}
	}
	if logger == nil {
		logger = log.Default()
	}
	m := &Manager{logger: logger, notifiers: make(map[Kind]Notifier)}
	for _, k := range []Kind{KindSuccess, KindError, KindWarning} {
		m.notifiers[k] = WithToast(k, Base{Kind: k, Logger: logger}, board, s)
	}
	return m
}

// Show presents message. A kind without a toast is only logged.
func (m *Manager) Show(message string, kind Kind) {
	if n, ok := m.notifiers[kind]; ok {
		n.Show(message)
		return
	}
	Base{Kind: kind, Logger: m.logger}.Show(message)
}

// Success is Show(message, KindSuccess).
func (m *Manager) Success(message string) { m.Show(message, KindSuccess) }

// Error is Show(message, KindError).
func (m *Manager) Error(message string) { m.Show(message, KindError) }

package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classdesk/internal/log"
	"classdesk/internal/ui/theme"
)

type captureOutput struct {
	mu    sync.Mutex
	lines []string
}

func (c *captureOutput) Write(level, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, level+" "+message)
}

func newTestManager() (*Manager, *Board, *theme.ManualScheduler, *captureOutput) {
	out := &captureOutput{}
	board := NewBoard()
	s := theme.NewManualScheduler()
	return NewManager(board, s, log.New(log.LevelDebug, out)), board, s, out
}

func TestToastLifecycle(t *testing.T) {
	m, board, s, out := newTestManager()

	m.Show("Student saved successfully!", KindSuccess)
	require.Equal(t, []string{"INFO [SUCCESS] Student saved successfully!"}, out.lines)

	toasts := board.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, PhaseHidden, toasts[0].Phase)
	assert.Empty(t, board.Visible())

	s.Advance(ShowDelay)
	assert.Equal(t, PhaseShown, board.Toasts()[0].Phase)

	s.Advance(DismissAfter - ShowDelay)
	assert.Equal(t, PhaseFading, board.Toasts()[0].Phase)

	s.Advance(FadeDuration - time.Millisecond)
	assert.Len(t, board.Toasts(), 1)
	s.Advance(time.Millisecond)
	assert.Empty(t, board.Toasts())
}

func TestToastsKeepCreationOrder(t *testing.T) {
	m, board, s, _ := newTestManager()
	m.Show("first", KindWarning)
	s.Advance(time.Second)
	m.Show("second", KindError)

	toasts := board.Toasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, "first", toasts[0].Message)
	assert.Equal(t, KindError, toasts[1].Kind)

	s.Advance(DismissAfter - time.Second + FadeDuration)
	toasts = board.Toasts()
	require.Len(t, toasts, 1, "timers are independent per toast")
	assert.Equal(t, "second", toasts[0].Message)
}

func TestInfoLogsOnly(t *testing.T) {
	m, board, s, out := newTestManager()
	m.Show("Auto-refresh on", KindInfo)
	assert.Equal(t, []string{"INFO [INFO] Auto-refresh on"}, out.lines)
	assert.Empty(t, board.Toasts())
	assert.Equal(t, 0, s.Pending())
}

func TestUnknownKindLogsOnly(t *testing.T) {
	m, board, s, out := newTestManager()
	m.Show("hello", Kind("debug"))
	assert.Equal(t, []string{"INFO [DEBUG] hello"}, out.lines)
	assert.Empty(t, board.Toasts())
	assert.Equal(t, 0, s.Pending())
}

func TestErrorsLogAtErrorLevel(t *testing.T) {
	m, _, _, out := newTestManager()
	m.Error("Delete failed")
	assert.Equal(t, []string{"ERROR [ERROR] Delete failed"}, out.lines)
}

func TestBoardOnChange(t *testing.T) {
	m, board, s, _ := newTestManager()
	changes := 0
	board.OnChange(func() { changes++ })

	m.Success("ok")
	s.Advance(DismissAfter + FadeDuration)
	assert.Equal(t, 4, changes, "add, show, fade, remove")
}

package theme

import (
	"sort"
	"sync"
	"time"
)

// Cancel stops a scheduled callback. It reports whether the call prevented it from running.
type Cancel func() bool

// Scheduler runs deferred callbacks.
type Scheduler interface {
	After(d time.Duration, fn func()) Cancel
}

// TimerScheduler schedules callbacks with time.AfterFunc.
// Callbacks run on their own goroutine.
type TimerScheduler struct{}

// After implements Scheduler.
func (TimerScheduler) After(d time.Duration, fn func()) Cancel {
	t := time.AfterFunc(d, fn)
	return t.Stop
}

// ManualScheduler runs callbacks only when its virtual clock is advanced.
// It is deterministic and meant for tests and headless tools.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	at       time.Duration
	seq      int
	fn       func()
	canceled bool
	done     bool
}

// NewManualScheduler returns a scheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// After implements Scheduler.
func (s *ManualScheduler) After(d time.Duration, fn func()) Cancel {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	task := &manualTask{at: s.now + d, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, task)
	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if task.done || task.canceled {
			return false
		}
		task.canceled = true
		return true
	}
}

// Advance moves the clock forward by d and runs every callback that came due,
// in due-time order. Callbacks scheduled while advancing run too if they fall
// inside the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		task := s.nextDue(target)
		if task == nil {
			break
		}
		task.fn()
	}

	s.mu.Lock()
	s.now = target
	s.mu.Unlock()
}

// Pending returns how many callbacks are waiting to run.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.done && !t.canceled {
			n++
		}
	}
	return n
}

func (s *ManualScheduler) nextDue(target time.Duration) *manualTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.done && !t.canceled {
			live = append(live, t)
		}
	}
	s.tasks = live

	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].at == s.tasks[j].at {
			return s.tasks[i].seq < s.tasks[j].seq
		}
		return s.tasks[i].at < s.tasks[j].at
	})
	if len(s.tasks) == 0 || s.tasks[0].at > target {
		return nil
	}
	task := s.tasks[0]
	task.done = true
	if task.at > s.now {
		s.now = task.at
	}
	return task
}

package log

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Entry is one buffered log line.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
}

// Ring keeps the most recent entries in memory for the logs panel.
type Ring struct {
	mu      sync.RWMutex
	entries []Entry
	size    int
	next    int
	full    bool
}

// NewRing returns a ring holding at most size entries.
func NewRing(size int) *Ring {
	if size <= 0 {
		size = 200
	}
	return &Ring{entries: make([]Entry, size), size: size}
}

// Write implements Output.
func (r *Ring) Write(level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[r.next] = Entry{Time: time.Now(), Level: level, Message: message}
	r.next = (r.next + 1) % r.size
	if r.next == 0 {
		r.full = true
	}
}

// Entries returns buffered entries, oldest first.
func (r *Ring) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.full {
		return append([]Entry(nil), r.entries[:r.next]...)
	}
	out := make([]Entry, 0, r.size)
	out = append(out, r.entries[r.next:]...)
	out = append(out, r.entries[:r.next]...)
	return out
}

// Tee fans a message out to several outputs.
type Tee []Output

// Write implements Output.
func (t Tee) Write(level, message string) {
	for _, o := range t {
		if o != nil {
			o.Write(level, message)
		}
	}
}

// ZerologOutput writes structured JSON lines through zerolog.
type ZerologOutput struct {
	logger zerolog.Logger
	closer io.Closer
}

// NewZerologOutput returns an output writing to w.
func NewZerologOutput(w io.Writer) *ZerologOutput {
	return &ZerologOutput{
		logger: zerolog.New(w).With().Timestamp().Str("app", "classdesk").Logger(),
	}
}

// OpenFile returns an output appending to a size-rotated file at path.
func OpenFile(path string) (*ZerologOutput, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     30,
	}
	out := NewZerologOutput(rotator)
	out.closer = rotator
	return out, nil
}

// Write implements Output.
func (z *ZerologOutput) Write(level, message string) {
	var ev *zerolog.Event
	switch level {
	case "DEBUG":
		ev = z.logger.Debug()
	case "WARN":
		ev = z.logger.Warn()
	case "ERROR":
		ev = z.logger.Error()
	default:
		ev = z.logger.Info()
	}
	ev.Msg(message)
}

// Close releases the underlying file, if any.
func (z *ZerologOutput) Close() error {
	if z.closer == nil {
		return nil
	}
	return z.closer.Close()
}

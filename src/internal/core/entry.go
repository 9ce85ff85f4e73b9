// FILE: tracekit/src/internal/core/entry.go
package core

import (
	"runtime"
	"time"

	"github.com/google/uuid"
)

// LogEntry is a single finalized log record handed to the preservation
// subsystem. Entries are immutable once recorded; the caller owns the value
// until it is passed to Record.
//
// Fields holds string-keyed scalar metadata. Values survive a snapshot
// round trip with encoding/json semantics: strings, float64 numbers, bools,
// or nil.
type LogEntry struct {
	ID       string         `json:"id"`
	Time     time.Time      `json:"time"`
	Level    Level          `json:"level"`
	Category string         `json:"category,omitempty"`
	Message  string         `json:"message"`
	Fields   map[string]any `json:"fields,omitempty"`
	File     string         `json:"file,omitempty"`
	Function string         `json:"function,omitempty"`
	Line     int            `json:"line,omitempty"`
}

// NewEntry builds a finalized entry for the given level, category and
// message: a fresh UUID, the current time, and the caller's source location.
func NewEntry(level Level, category, message string) LogEntry {
	e := LogEntry{
		ID:       uuid.NewString(),
		Time:     time.Now(),
		Level:    level,
		Category: category,
		Message:  message,
	}

	if pc, file, line, ok := runtime.Caller(1); ok {
		e.File = file
		e.Line = line
		if fn := runtime.FuncForPC(pc); fn != nil {
			e.Function = fn.Name()
		}
	}

	return e
}

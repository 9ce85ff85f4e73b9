// FILE: tracekit/src/internal/format/raw.go
package format

import (
	"tracekit/src/internal/core"

	"github.com/lixenwraith/log"
)

// Emits message text alone, one line per entry; severity, time and
// metadata are discarded
type RawFormatter struct {
	logger *log.Logger
}

// Creates a raw formatter
func NewRawFormatter(logger *log.Logger) (*RawFormatter, error) {
	return &RawFormatter{logger: logger}, nil
}

// Formats the entry as its bare message
func (f *RawFormatter) Format(entry core.LogEntry) ([]byte, error) {
	out := make([]byte, 0, len(entry.Message)+1)
	out = append(out, entry.Message...)
	return append(out, '\n'), nil
}

// Returns the formatter name
func (f *RawFormatter) Name() string {
	return "raw"
}

// FILE: tracekit/src/internal/format/format.go
package format

import (
	"fmt"

	"tracekit/src/internal/config"
	"tracekit/src/internal/core"

	"github.com/lixenwraith/log"
)

// Formatter defines the interface for rendering a LogEntry as a byte slice.
type Formatter interface {
	// Format renders one entry, newline-terminated.
	Format(entry core.LogEntry) ([]byte, error)

	// Name returns the formatter type name
	Name() string
}

// New creates a new Formatter based on the dump configuration.
func New(cfg config.DumpConfig, logger *log.Logger) (Formatter, error) {
	// Default to json if no format specified
	name := cfg.Format
	if name == "" {
		name = config.DumpFormatJSON
	}

	switch name {
	case config.DumpFormatJSON:
		return NewJSONFormatter(cfg.JSON, logger)
	case config.DumpFormatTxt:
		return NewTxtFormatter(cfg.Txt, logger)
	case config.DumpFormatRaw:
		return NewRawFormatter(logger)
	default:
		return nil, fmt.Errorf("unknown formatter type: %s", name)
	}
}

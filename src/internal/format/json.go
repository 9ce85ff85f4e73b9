// FILE: tracekit/src/internal/format/json.go
package format

import (
	"encoding/json"
	"fmt"
	"time"

	"tracekit/src/internal/config"
	"tracekit/src/internal/core"

	"github.com/lixenwraith/log"
)

// JSONFormatter produces structured JSON output from log entries.
type JSONFormatter struct {
	config *config.JSONFormatterOptions
	logger *log.Logger
}

// NewJSONFormatter creates a new JSON formatter from configuration
// options. Unset field names fall back to the defaults.
func NewJSONFormatter(opts *config.JSONFormatterOptions, logger *log.Logger) (*JSONFormatter, error) {
	def := config.DefaultJSONFormatterOptions()
	if opts == nil {
		opts = def
	} else {
		o := *opts
		if o.TimestampField == "" {
			o.TimestampField = def.TimestampField
		}
		if o.LevelField == "" {
			o.LevelField = def.LevelField
		}
		if o.MessageField == "" {
			o.MessageField = def.MessageField
		}
		opts = &o
	}

	return &JSONFormatter{
		config: opts,
		logger: logger,
	}, nil
}

// Format transforms a single LogEntry into a JSON byte slice.
func (f *JSONFormatter) Format(entry core.LogEntry) ([]byte, error) {
	output := make(map[string]any)

	output[f.config.TimestampField] = entry.Time.Format(time.RFC3339Nano)
	output[f.config.LevelField] = entry.Level.String()
	output[f.config.MessageField] = entry.Message

	if entry.ID != "" {
		output["id"] = entry.ID
	}
	if entry.Category != "" {
		output["category"] = entry.Category
	}
	if entry.File != "" {
		output["file"] = entry.File
		output["line"] = entry.Line
	}
	if entry.Function != "" {
		output["function"] = entry.Function
	}

	// Merge additional fields, but don't override the metadata keys
	for k, v := range entry.Fields {
		if _, exists := output[k]; !exists {
			output[k] = v
		}
	}

	var result []byte
	var err error
	if f.config.Pretty {
		result, err = json.MarshalIndent(output, "", "  ")
	} else {
		result, err = json.Marshal(output)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return append(result, '\n'), nil
}

// Name returns the formatter's type name.
func (f *JSONFormatter) Name() string {
	return "json"
}

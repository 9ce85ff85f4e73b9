// FILE: tracekit/src/internal/format/txt.go
package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"tracekit/src/internal/config"
	"tracekit/src/internal/core"

	"github.com/lixenwraith/log"
)

// Renders entries through a text/template for human-readable dumps
type TxtFormatter struct {
	config   *config.TxtFormatterOptions
	template *template.Template
	logger   *log.Logger
}

// Creates a text formatter, compiling the template up front so a bad
// template fails before any entry is consumed
func NewTxtFormatter(opts *config.TxtFormatterOptions, logger *log.Logger) (*TxtFormatter, error) {
	def := config.DefaultTxtFormatterOptions()
	if opts == nil {
		opts = def
	} else {
		o := *opts
		if o.Template == "" {
			o.Template = def.Template
		}
		if o.TimestampFormat == "" {
			o.TimestampFormat = def.TimestampFormat
		}
		opts = &o
	}

	f := &TxtFormatter{
		config: opts,
		logger: logger,
	}

	tmpl, err := template.New("entry").Funcs(f.helpers()).Parse(opts.Template)
	if err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}
	f.template = tmpl
	return f, nil
}

// helpers exposes the template functions available to custom templates
func (f *TxtFormatter) helpers() template.FuncMap {
	return template.FuncMap{
		"FmtTime": func(t time.Time) string {
			return t.Format(f.config.TimestampFormat)
		},
		"ToUpper":   strings.ToUpper,
		"ToLower":   strings.ToLower,
		"TrimSpace": strings.TrimSpace,
	}
}

// Formats one entry; a template that fails at execute time degrades to
// a fixed line rather than losing the entry
func (f *TxtFormatter) Format(entry core.LogEntry) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.template.Execute(&buf, templateData(entry)); err != nil {
		f.logger.Debug("msg", "Template execution failed, using fallback",
			"component", "txt_formatter",
			"error", err)
		return f.fallbackLine(entry), nil
	}

	result := buf.Bytes()
	if len(result) == 0 || result[len(result)-1] != '\n' {
		result = append(result, '\n')
	}
	return result, nil
}

// templateData flattens an entry into the map the template executes
// over; missing keys render as empty rather than erroring
func templateData(entry core.LogEntry) map[string]any {
	data := map[string]any{
		"Timestamp": entry.Time,
		"Level":     entry.Level.String(),
		"Category":  entry.Category,
		"Message":   entry.Message,
		"File":      entry.File,
		"Function":  entry.Function,
		"Line":      entry.Line,
	}
	if len(entry.Fields) > 0 {
		if raw, err := json.Marshal(entry.Fields); err == nil {
			data["Fields"] = string(raw)
		}
	}
	return data
}

func (f *TxtFormatter) fallbackLine(entry core.LogEntry) []byte {
	line := fmt.Sprintf("%s [%s] %s\n",
		entry.Time.Format(f.config.TimestampFormat),
		strings.ToUpper(entry.Level.String()),
		entry.Message)
	return []byte(line)
}

// Returns the formatter name
func (f *TxtFormatter) Name() string {
	return "txt"
}

// FILE: tracekit/src/internal/filter/filter.go
package filter

import (
	"fmt"
	"regexp"
	"sync/atomic"

	"tracekit/src/internal/config"
	"tracekit/src/internal/core"

	"github.com/lixenwraith/log"
)

// Filter decides whether an entry belongs in the preserved history.
// Patterns are compiled once at construction and never change; there
// is no reload path, so Apply runs lock-free.
type Filter struct {
	config   config.FilterConfig
	patterns []*regexp.Regexp
	logger   *log.Logger

	totalProcessed atomic.Uint64
	totalMatched   atomic.Uint64
	totalDropped   atomic.Uint64
}

// NewFilter compiles one filter. An empty type defaults to include, an
// empty logic to or; an uncompilable pattern fails construction.
func NewFilter(cfg config.FilterConfig, logger *log.Logger) (*Filter, error) {
	if cfg.Type == "" {
		cfg.Type = config.FilterTypeInclude
	}
	if cfg.Logic == "" {
		cfg.Logic = config.FilterLogicOr
	}

	compiled := make([]*regexp.Regexp, 0, len(cfg.Patterns))
	for i, pattern := range cfg.Patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern[%d] '%s': %w", i, pattern, err)
		}
		compiled = append(compiled, re)
	}

	logger.Debug("msg", "Preservation filter compiled",
		"component", "filter",
		"type", cfg.Type,
		"logic", cfg.Logic,
		"pattern_count", len(compiled))

	return &Filter{
		config:   cfg,
		patterns: compiled,
		logger:   logger,
	}, nil
}

// Apply reports whether the entry passes. Patterns see a single match
// text of the form "category level message" (category omitted when
// empty), so anchored patterns can pin either prefix. A filter with no
// patterns passes everything.
func (f *Filter) Apply(entry core.LogEntry) bool {
	f.totalProcessed.Add(1)

	if len(f.patterns) == 0 {
		return true
	}

	matched := f.evaluate(matchText(entry))
	if matched {
		f.totalMatched.Add(1)
	}

	pass := matched
	if f.config.Type == config.FilterTypeExclude {
		pass = !matched
	}
	if !pass {
		f.totalDropped.Add(1)
	}
	return pass
}

func matchText(entry core.LogEntry) string {
	text := entry.Level.String() + " " + entry.Message
	if entry.Category != "" {
		return entry.Category + " " + text
	}
	return text
}

// evaluate runs the configured logic: or needs one pattern to hit, and
// needs all of them.
func (f *Filter) evaluate(text string) bool {
	if f.config.Logic == config.FilterLogicAnd {
		for _, re := range f.patterns {
			if !re.MatchString(text) {
				return false
			}
		}
		return true
	}

	if f.config.Logic != config.FilterLogicOr {
		// Validation rejects anything else up front
		f.logger.Warn("msg", "Unknown filter logic",
			"component", "filter",
			"logic", f.config.Logic)
		return false
	}

	for _, re := range f.patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// GetStats returns the filter's counters and shape.
func (f *Filter) GetStats() map[string]any {
	return map[string]any{
		"type":            f.config.Type,
		"logic":           f.config.Logic,
		"pattern_count":   len(f.patterns),
		"total_processed": f.totalProcessed.Load(),
		"total_matched":   f.totalMatched.Load(),
		"total_dropped":   f.totalDropped.Load(),
	}
}

// FILE: tracekit/src/internal/filter/chain.go
package filter

import (
	"fmt"
	"sync/atomic"

	"tracekit/src/internal/config"
	"tracekit/src/internal/core"

	"github.com/lixenwraith/log"
)

// Chain conjoins filters: an entry enters the history only if every
// filter passes it. An empty chain is the common case and passes all.
type Chain struct {
	filters []*Filter
	logger  *log.Logger

	totalProcessed atomic.Uint64
	totalPassed    atomic.Uint64
}

// NewChain compiles every configured filter. The first bad regex fails
// the whole chain, named by its position.
func NewChain(configs []config.FilterConfig, logger *log.Logger) (*Chain, error) {
	filters := make([]*Filter, 0, len(configs))
	for i, cfg := range configs {
		f, err := NewFilter(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("filter[%d]: %w", i, err)
		}
		filters = append(filters, f)
	}

	chain := &Chain{filters: filters, logger: logger}
	if len(filters) > 0 {
		logger.Info("msg", "Filter chain created",
			"component", "filter_chain",
			"filter_count", len(filters))
	}
	return chain, nil
}

// Apply reports whether the entry survives every filter in order.
func (c *Chain) Apply(entry core.LogEntry) bool {
	c.totalProcessed.Add(1)

	for i, f := range c.filters {
		if !f.Apply(entry) {
			c.logger.Debug("msg", "Entry filtered out",
				"component", "filter_chain",
				"filter_index", i,
				"filter_type", f.config.Type)
			return false
		}
	}

	c.totalPassed.Add(1)
	return true
}

// GetStats aggregates the chain totals with per-filter breakdowns.
func (c *Chain) GetStats() map[string]any {
	filterStats := make([]map[string]any, len(c.filters))
	for i, f := range c.filters {
		filterStats[i] = f.GetStats()
	}

	return map[string]any{
		"filter_count":    len(c.filters),
		"total_processed": c.totalProcessed.Load(),
		"total_passed":    c.totalPassed.Load(),
		"filters":         filterStats,
	}
}

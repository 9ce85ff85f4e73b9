// FILE: tracekit/src/internal/config/filter.go
package config

// Filter type constants
const (
	FilterTypeInclude = "include"
	FilterTypeExclude = "exclude"
)

// Filter logic constants
const (
	FilterLogicOr  = "or"
	FilterLogicAnd = "and"
)

// FilterConfig defines one regex filter applied to entries before they
// enter the preserved history. An empty Type defaults to "include", an
// empty Logic to "or".
type FilterConfig struct {
	// "include" keeps matching entries, "exclude" drops them
	Type string `toml:"type"`

	// "or" matches on any pattern, "and" requires all patterns
	Logic string `toml:"logic"`

	// Regular expressions matched against the entry's category,
	// level and message text
	Patterns []string `toml:"patterns"`
}

// FILE: tracekit/src/internal/config/logging.go
package config

// LogConfig controls tracekit's own diagnostic logging. This is the
// tool's operational chatter, not the preserved entries; quiet mode
// silences it wholesale regardless of these settings.
type LogConfig struct {
	// Output selects where diagnostics go: "file", "stdout", "stderr",
	// "both" or "none".
	Output string `toml:"output"`

	// Level is the minimum severity that gets logged: "debug", "info",
	// "warn" or "error".
	Level string `toml:"level"`

	// File holds the file-output settings, consulted when Output is
	// "file" or "both".
	File *LogFileConfig `toml:"file"`

	// Console holds the terminal-output settings.
	Console *LogConsoleConfig `toml:"console"`
}

// LogFileConfig shapes on-disk diagnostic logs and their rotation.
type LogFileConfig struct {
	Directory string `toml:"directory"`
	Name      string `toml:"name"`

	// MaxSizeMB rotates a log file once it grows past this size.
	MaxSizeMB int64 `toml:"max_size_mb"`

	// MaxTotalSizeMB caps the combined size of all retained logs.
	MaxTotalSizeMB int64 `toml:"max_total_size_mb"`

	// RetentionHours ages out old logs; 0 keeps them indefinitely.
	RetentionHours float64 `toml:"retention_hours"`
}

// LogConsoleConfig shapes terminal diagnostics.
type LogConsoleConfig struct {
	// Target is "stdout", "stderr" or "split". Split routes debug and
	// info to stdout while warn and error go to stderr.
	Target string `toml:"target"`

	// Format is "txt" or "json".
	Format string `toml:"format"`
}

// DefaultLogConfig keeps diagnostics on stderr at info level, so dumped
// entry data on stdout stays clean for redirection.
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		Output: "stderr",
		Level:  "info",
		File: &LogFileConfig{
			Directory:      "./log",
			Name:           "tracekit",
			MaxSizeMB:      100,
			MaxTotalSizeMB: 1000,
			RetentionHours: 168,
		},
		Console: &LogConsoleConfig{
			Target: "stderr",
			Format: "txt",
		},
	}
}

// FILE: tracekit/src/internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"tracekit/src/internal/core"
)

type Config struct {
	Preserve PreserveConfig `toml:"preserve"`
	Dump     DumpConfig     `toml:"dump"`
	Logging  *LogConfig     `toml:"logging"`

	// Quiet suppresses operational output in the CLI.
	Quiet bool `toml:"quiet"`
}

// PreserveConfig configures the log preservation subsystem.
type PreserveConfig struct {
	// Capacity is the bounded history size in entries
	Capacity int `toml:"capacity"`

	// Directory holding the snapshot and marker files.
	// Empty selects <user cache dir>/tracekit
	Directory string `toml:"directory"`

	// File names inside Directory
	SnapshotName string `toml:"snapshot_name"`
	MarkerName   string `toml:"marker_name"`

	// DisableMarker turns off the memory-mapped crash marker;
	// recovery then never reports a crash
	DisableMarker bool `toml:"disable_marker"`

	// AutoPersistIntervalSec snapshots the history on an interval
	// when positive (0 = explicit persists only)
	AutoPersistIntervalSec int `toml:"auto_persist_interval_sec"`

	// FlushPerMinute caps eviction-triggered early flushes
	FlushPerMinute int `toml:"flush_per_minute"`

	// Filters select which entries enter the history
	Filters []FilterConfig `toml:"filters"`
}

// StoragePaths resolves the snapshot and marker file locations, applying
// defaults for any unset field.
func (c PreserveConfig) StoragePaths() (snapshotPath, markerPath string, err error) {
	dir := c.Directory
	if dir == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return "", "", fmt.Errorf("resolve user cache directory: %w", err)
		}
		dir = filepath.Join(cacheDir, "tracekit")
	}

	snapName := c.SnapshotName
	if snapName == "" {
		snapName = core.DefaultSnapshotName
	}

	markerName := c.MarkerName
	if markerName == "" {
		markerName = core.DefaultMarkerName
	}

	return filepath.Join(dir, snapName), filepath.Join(dir, markerName), nil
}

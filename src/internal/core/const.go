// FILE: tracekit/src/internal/core/const.go
package core

// Preservation defaults applied when the configuration leaves a
// field unset.
const (
	// DefaultCapacity is the bounded history size in entries.
	DefaultCapacity = 50

	// DefaultSnapshotName is the snapshot file name inside the
	// storage directory.
	DefaultSnapshotName = "snapshot.json"

	// DefaultMarkerName is the crash marker file name inside the
	// storage directory.
	DefaultMarkerName = "crash.marker"

	// DefaultFlushPerMinute bounds how many eviction-triggered early
	// flushes may fire per minute.
	DefaultFlushPerMinute = 6
)

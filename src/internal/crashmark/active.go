// FILE: tracekit/src/internal/crashmark/active.go
package crashmark

import (
	"errors"
	"sync/atomic"
)

// ErrActiveRegion is returned when a second region tries to register as
// the process-wide crash target.
var ErrActiveRegion = errors.New("a crash marker region is already active")

// active holds the single region that fatal-signal handling marks.
// A plain package variable keeps the crash path to one atomic load.
var active atomic.Pointer[Region]

// Activate registers r as the process-wide crash target. Only one region
// may be active at a time.
func Activate(r *Region) error {
	if !active.CompareAndSwap(nil, r) {
		return ErrActiveRegion
	}
	return nil
}

// Deactivate releases the active slot if r holds it. Deactivate before
// closing a region; the crash path must never reach a closed mapping.
func Deactivate(r *Region) {
	active.CompareAndSwap(r, nil)
}

// MarkActive tags the active region, if any. Safe to call with no region
// registered and safe on the crash path.
func MarkActive() {
	if r := active.Load(); r != nil {
		r.MarkFromSignal()
	}
}

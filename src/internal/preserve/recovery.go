// FILE: tracekit/src/internal/preserve/recovery.go
package preserve

import (
	"tracekit/src/internal/core"
)

// Result is what a recovery pass found: the entries preserved by the
// previous run, oldest first, and whether that run died abnormally.
type Result struct {
	Entries       []core.LogEntry
	CrashDetected bool
}

// Recover inspects the crash marker and loads the persisted snapshot.
// The marker is consumed: a detected crash is reported once, then the
// region is cleared so later recoveries see a clean state. The two
// checks are independent; a crash with no snapshot still reports
// CrashDetected, and a snapshot with no marker still returns entries.
//
// A snapshot that exists but cannot be decoded surfaces as an error
// wrapping snapshot.ErrDecode with no entries; the crash flag in the
// returned Result is still meaningful.
func (p *Preserver) Recover() (Result, error) {
	res := Result{CrashDetected: p.consumeMarker()}

	p.mu.Lock()
	entries, err := p.store.Recover()
	p.mu.Unlock()

	if err != nil {
		return res, err
	}
	res.Entries = entries

	p.logger.Info("msg", "Recovery completed",
		"component", "preserve",
		"entries", len(res.Entries),
		"crash_detected", res.CrashDetected)

	return res, nil
}

// Peek reads the same state as Recover without consuming anything: the
// marker keeps its tag and the snapshot stays in place. Diagnostic use.
func (p *Preserver) Peek() (Result, error) {
	res := Result{}
	if p.region != nil {
		res.CrashDetected = p.region.Marked()
	}

	p.mu.Lock()
	entries, err := p.store.Recover()
	p.mu.Unlock()

	if err != nil {
		return res, err
	}
	res.Entries = entries
	return res, nil
}

// consumeMarker reports and clears a set crash marker. Without a region
// the answer is always false.
func (p *Preserver) consumeMarker() bool {
	if p.region == nil {
		return false
	}
	if !p.region.Marked() {
		return false
	}

	p.logger.Warn("msg", "Abnormal termination detected",
		"component", "preserve")

	if err := p.region.Clear(); err != nil {
		p.logger.Warn("msg", "Failed to clear crash marker",
			"component", "preserve",
			"error", err)
	}
	return true
}

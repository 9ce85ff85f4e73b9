// FILE: tracekit/src/internal/preserve/preserver.go
package preserve

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/log"
	"golang.org/x/time/rate"

	"tracekit/src/internal/config"
	"tracekit/src/internal/core"
	"tracekit/src/internal/crashmark"
	"tracekit/src/internal/filter"
	"tracekit/src/internal/guard"
	"tracekit/src/internal/history"
	"tracekit/src/internal/snapshot"
)

// Preserver owns the bounded history and its snapshot. All history and
// snapshot access is serialized through one mutex; Record, Count and the
// history half of Clear never touch the disk, while Persist and Recover
// hold the lock for the duration of a single bounded file operation.
//
// The crash marker region sits outside that mutex. Its writes are
// serialized by the region's own spinlock so the crash path never waits
// on an I/O-holding lock.
type Preserver struct {
	mu      sync.Mutex
	buffer  *history.Buffer
	store   *snapshot.Store
	filters *filter.Chain

	// dirty counts records since the last successful persist. An
	// eviction while dirty >= capacity is losing a never-persisted
	// entry, which is what triggers an early flush.
	dirty        int
	recorded     uint64
	filtered     uint64
	persists     uint64
	earlyFlushes uint64
	lastPersist  time.Time

	region *crashmark.Region // nil when the marker is disabled or degraded
	logger *log.Logger

	flushLimiter *rate.Limiter
	flushCh      chan struct{}
	autoPersist  time.Duration

	started  atomic.Bool
	stopOnce sync.Once
	done     chan struct{}
	wg       sync.WaitGroup
}

// PreserveStats is a point-in-time snapshot of the preserver's counters.
type PreserveStats struct {
	Recorded     uint64
	Filtered     uint64
	Evicted      uint64
	Persists     uint64
	EarlyFlushes uint64
	Pending      int
	LastPersist  time.Time
}

// New builds a preserver from the scanned configuration. A marker region
// that cannot be opened or activated is logged once and left out; the
// preserver then runs degraded, with history and snapshot fully working
// but crash detection reporting nothing.
func New(cfg config.PreserveConfig, logger *log.Logger) (*Preserver, error) {
	snapPath, markerPath, err := cfg.StoragePaths()
	if err != nil {
		return nil, fmt.Errorf("resolve storage paths: %w", err)
	}

	filters, err := filter.NewChain(cfg.Filters, logger)
	if err != nil {
		return nil, fmt.Errorf("build filter chain: %w", err)
	}

	p := &Preserver{
		buffer:       history.New(cfg.Capacity),
		store:        snapshot.New(snapPath, logger),
		filters:      filters,
		logger:       logger,
		flushLimiter: newFlushLimiter(cfg.FlushPerMinute),
		flushCh:      make(chan struct{}, 1),
		autoPersist:  time.Duration(cfg.AutoPersistIntervalSec) * time.Second,
		done:         make(chan struct{}),
	}

	if !cfg.DisableMarker {
		region, err := crashmark.Open(markerPath)
		if err != nil {
			logger.Error("msg", "Crash marker unavailable, running degraded",
				"component", "preserve",
				"path", markerPath,
				"error", err)
		} else if err := crashmark.Activate(region); err != nil {
			logger.Error("msg", "Crash marker not activated, running degraded",
				"component", "preserve",
				"error", err)
			region.Close()
		} else {
			p.region = region
		}
	}

	logger.Info("msg", "Preserver initialized",
		"component", "preserve",
		"capacity", cfg.Capacity,
		"snapshot", snapPath,
		"marker_enabled", p.region != nil)

	return p, nil
}

func newFlushLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(0, 0)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

// Record appends a finalized entry to the history. Entries rejected by
// the configured filters are counted and dropped. Record never performs
// I/O; when the append evicts an entry that no snapshot has captured, a
// throttled early flush is requested from the background loop instead.
func (p *Preserver) Record(e core.LogEntry) {
	if !p.filters.Apply(e) {
		p.mu.Lock()
		p.filtered++
		p.mu.Unlock()
		return
	}

	p.mu.Lock()
	before := p.buffer.Evictions()
	p.buffer.Append(e)
	p.recorded++

	requestFlush := false
	if p.buffer.Cap() > 0 &&
		p.buffer.Evictions() > before &&
		p.dirty >= p.buffer.Cap() &&
		p.flushLimiter.Allow() {
		p.earlyFlushes++
		requestFlush = true
	}
	p.dirty++
	p.mu.Unlock()

	if requestFlush {
		select {
		case p.flushCh <- struct{}{}:
		default:
		}
	}
}

// Persist snapshots the current history. Persisting an empty history is
// a no-op that leaves any existing snapshot untouched.
//
// The snapshot is the durability boundary: entries recorded after the
// last successful persist are lost if the process dies. The crash marker
// signals that a crash happened; it never carries entry content.
func (p *Preserver) Persist() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	entries := p.buffer.Entries()
	if err := p.store.Persist(entries); err != nil {
		return err
	}

	p.dirty = 0
	if len(entries) > 0 {
		p.persists++
		p.lastPersist = time.Now()
	}
	return nil
}

// Count reports how many entries the history currently retains.
func (p *Preserver) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buffer.Len()
}

// Clear discards the in-memory history, removes the snapshot file, and
// zeroes the crash marker.
func (p *Preserver) Clear() error {
	p.mu.Lock()
	p.buffer.Clear()
	p.dirty = 0
	storeErr := p.store.Clear()
	p.mu.Unlock()

	var regionErr error
	if p.region != nil {
		regionErr = p.region.Clear()
	}

	return errors.Join(storeErr, regionErr)
}

// MarkCrash writes the full crash marker on the normal path. Hosts that
// trap their own fatal conditions call this before dying.
func (p *Preserver) MarkCrash() error {
	if p.region == nil {
		return crashmark.ErrNotMapped
	}
	return p.region.Mark()
}

// InstallCrashHandlers registers the process-wide fatal signal guard.
// Safe to call more than once.
func (p *Preserver) InstallCrashHandlers() *guard.Guard {
	return guard.Install(p.logger)
}

// Start launches the background loop that services early-flush requests
// and, when configured, persists on an interval. Repeated calls are
// no-ops.
func (p *Preserver) Start(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		return
	}

	p.wg.Add(1)
	go p.runLoop(ctx)

	p.logger.Debug("msg", "Preserver loop started",
		"component", "preserve",
		"auto_persist", p.autoPersist.String())
}

func (p *Preserver) runLoop(ctx context.Context) {
	defer p.wg.Done()

	var tick <-chan time.Time
	if p.autoPersist > 0 {
		ticker := time.NewTicker(p.autoPersist)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-tick:
			p.persistIfDirty("interval")
		case <-p.flushCh:
			p.persistIfDirty("eviction")
		case <-ctx.Done():
			return
		case <-p.done:
			return
		}
	}
}

// persistIfDirty is the background variant of Persist: it skips clean
// histories and logs failures instead of returning them.
func (p *Preserver) persistIfDirty(reason string) {
	p.mu.Lock()
	dirty := p.dirty
	p.mu.Unlock()
	if dirty == 0 {
		return
	}

	if err := p.Persist(); err != nil {
		p.logger.Warn("msg", "Background persist failed",
			"component", "preserve",
			"reason", reason,
			"error", err)
	}
}

// Stop terminates the background loop and waits for it to exit. It does
// not persist; callers wanting a final snapshot call Persist first.
func (p *Preserver) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
	})
	p.wg.Wait()
}

// Close stops the loop and releases the marker region. The snapshot and
// marker files stay on disk for the next run to recover.
func (p *Preserver) Close() error {
	p.Stop()

	var err error
	if p.region != nil {
		crashmark.Deactivate(p.region)
		err = p.region.Close()
		p.region = nil
	}

	p.logger.Debug("msg", "Preserver closed",
		"component", "preserve")

	return err
}

// GetStats returns a copy of the current counters.
func (p *Preserver) GetStats() PreserveStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	return PreserveStats{
		Recorded:     p.recorded,
		Filtered:     p.filtered,
		Evicted:      p.buffer.Evictions(),
		Persists:     p.persists,
		EarlyFlushes: p.earlyFlushes,
		Pending:      p.dirty,
		LastPersist:  p.lastPersist,
	}
}

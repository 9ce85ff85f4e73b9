// FILE: tracekit/src/internal/crashmark/region.go
package crashmark

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"
)

const (
	// RegionSize is the fixed size of the memory-mapped marker file.
	RegionSize = 1 << 20

	tagLen = 6
)

// markerTag occupies the first six bytes of a marked region. Everything
// after it is informational only; detection reads just these bytes.
var markerTag = []byte("CRASH\n")

// ErrNotMapped is returned by operations on a closed region.
var ErrNotMapped = errors.New("crash marker region is not mapped")

// Region is a memory-mapped crash marker file. Marking writes the tag
// directly into the mapping, so the bytes reach the page cache without
// any file I/O on the crash path and survive abnormal process death.
//
// Mark, MarkFromSignal, Marked and Clear may be used concurrently.
// Close must not overlap any other call; it is the final operation
// during orderly shutdown and is never reached from a crash path.
type Region struct {
	mu     spinLock
	file   *os.File
	data   []byte
	closed atomic.Bool
}

// Open maps the marker file at path, creating it at RegionSize when
// absent. An existing marked file keeps its contents so that a crash
// from a previous run stays detectable.
func Open(path string) (*Region, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create marker directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("open marker file: %w", err)
	}

	if err := f.Truncate(RegionSize); err != nil {
		f.Close()
		return nil, fmt.Errorf("size marker file: %w", err)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, RegionSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("map marker file: %w", err)
	}

	return &Region{
		file: f,
		data: data,
	}, nil
}

// Mark writes the crash tag followed by the current unix time in
// seconds, then flushes the mapping.
func (r *Region) Mark() error {
	if r.closed.Load() {
		return ErrNotMapped
	}

	r.mu.lock()
	if r.data == nil {
		r.mu.unlock()
		return ErrNotMapped
	}
	copy(r.data, markerTag)
	var buf [24]byte
	ts := strconv.AppendInt(buf[:0], time.Now().Unix(), 10)
	n := copy(r.data[tagLen:], ts)
	r.data[tagLen+n] = '\n'
	err := unix.Msync(r.data, unix.MS_SYNC)
	r.mu.unlock()

	if err != nil {
		return fmt.Errorf("sync marker: %w", err)
	}
	return nil
}

// MarkFromSignal writes the crash tag and nothing else. It allocates
// nothing, logs nothing, and swallows errors; the process is about to
// die and partial success still leaves a detectable tag in the page
// cache.
func (r *Region) MarkFromSignal() {
	if r.closed.Load() {
		return
	}

	r.mu.lock()
	if r.data != nil {
		copy(r.data, markerTag)
		unix.Msync(r.data, unix.MS_SYNC)
	}
	r.mu.unlock()
}

// Marked reports whether the region carries the crash tag. The read is
// lock-free; a mark racing with it is observed on the next call.
func (r *Region) Marked() bool {
	if r.closed.Load() {
		return false
	}
	return bytes.Equal(r.data[:tagLen], markerTag)
}

// Clear zeroes the region and flushes the mapping.
func (r *Region) Clear() error {
	if r.closed.Load() {
		return ErrNotMapped
	}

	r.mu.lock()
	if r.data == nil {
		r.mu.unlock()
		return ErrNotMapped
	}
	clear(r.data)
	err := unix.Msync(r.data, unix.MS_SYNC)
	r.mu.unlock()

	if err != nil {
		return fmt.Errorf("sync marker: %w", err)
	}
	return nil
}

// Close unmaps the region and closes the backing file. The marker file
// itself is left in place with whatever state it holds.
func (r *Region) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}

	r.mu.lock()
	data := r.data
	r.data = nil
	r.mu.unlock()

	var errs []error
	if data != nil {
		if err := unix.Munmap(data); err != nil {
			errs = append(errs, fmt.Errorf("unmap marker: %w", err))
		}
	}
	if err := r.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close marker file: %w", err))
	}
	return errors.Join(errs...)
}

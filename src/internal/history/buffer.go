// FILE: tracekit/src/internal/history/buffer.go
package history

import (
	"tracekit/src/internal/core"
)

// Buffer is a fixed-capacity ring of log entries. Once full, each append
// overwrites the oldest entry. Buffer is not safe for concurrent use; the
// owning component serializes access.
type Buffer struct {
	entries   []core.LogEntry
	head      int // index of the oldest entry when count > 0
	count     int
	evictions uint64
}

// New returns a buffer holding at most capacity entries. A capacity below
// zero is treated as zero; such a buffer discards every append.
func New(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{
		entries: make([]core.LogEntry, capacity),
	}
}

// Append stores e, evicting the oldest entry if the buffer is full.
func (b *Buffer) Append(e core.LogEntry) {
	if len(b.entries) == 0 {
		b.evictions++
		return
	}

	if b.count < len(b.entries) {
		b.entries[(b.head+b.count)%len(b.entries)] = e
		b.count++
		return
	}

	// Full: overwrite the oldest slot and advance the head.
	b.entries[b.head] = e
	b.head = (b.head + 1) % len(b.entries)
	b.evictions++
}

// Entries returns the retained entries ordered oldest to newest. The
// result is a copy; mutating it does not affect the buffer.
func (b *Buffer) Entries() []core.LogEntry {
	if b.count == 0 {
		return nil
	}

	out := make([]core.LogEntry, b.count)
	for i := 0; i < b.count; i++ {
		out[i] = b.entries[(b.head+i)%len(b.entries)]
	}
	return out
}

// Len reports how many entries are currently retained.
func (b *Buffer) Len() int {
	return b.count
}

// Cap reports the fixed capacity.
func (b *Buffer) Cap() int {
	return len(b.entries)
}

// Evictions reports how many entries have been overwritten or discarded
// since creation.
func (b *Buffer) Evictions() uint64 {
	return b.evictions
}

// Clear discards all retained entries. Capacity and the eviction count
// are preserved.
func (b *Buffer) Clear() {
	for i := range b.entries {
		b.entries[i] = core.LogEntry{}
	}
	b.head = 0
	b.count = 0
}

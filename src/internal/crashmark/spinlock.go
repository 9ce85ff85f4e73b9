// FILE: tracekit/src/internal/crashmark/spinlock.go
package crashmark

import (
	"runtime"
	"sync/atomic"
)

// spinLock is a busy-wait lock built on a single CAS word. The crash
// marking path must not touch runtime mutex internals, so the region
// serializes writers with this instead of sync.Mutex.
type spinLock struct {
	flag atomic.Int32
}

func (l *spinLock) lock() {
	for !l.flag.CompareAndSwap(0, 1) {
		runtime.Gosched()
	}
}

func (l *spinLock) unlock() {
	l.flag.Store(0)
}

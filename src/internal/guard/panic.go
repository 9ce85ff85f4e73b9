// FILE: tracekit/src/internal/guard/panic.go
package guard

import (
	"tracekit/src/internal/crashmark"
)

// MarkOnPanic tags the active crash region when the calling goroutine is
// unwinding from a panic, then re-panics with the original value. Faults
// in the program's own execution arrive as runtime panics rather than
// catchable signals, so goroutines that must leave a marker defer this
// at their top:
//
//	defer guard.MarkOnPanic()
//
// The panic continues unchanged; MarkOnPanic never swallows it.
func MarkOnPanic() {
	if v := recover(); v != nil {
		crashmark.MarkActive()
		panic(v)
	}
}

// FILE: tracekit/src/internal/guard/guard_test.go
package guard

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"tracekit/src/internal/crashmark"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

// activateTestRegion opens a region in a scratch directory and registers
// it as the process-wide crash target for the duration of the test.
func activateTestRegion(t *testing.T) *crashmark.Region {
	t.Helper()

	r, err := crashmark.Open(filepath.Join(t.TempDir(), "crash.marker"))
	require.NoError(t, err)
	require.NoError(t, crashmark.Activate(r))

	t.Cleanup(func() {
		crashmark.Deactivate(r)
		r.Close()
	})
	return r
}

func TestInstall_Idempotent(t *testing.T) {
	g1 := Install(newTestLogger())
	defer g1.Uninstall()

	g2 := Install(newTestLogger())
	assert.Same(t, g1, g2, "second install must return the existing guard")
}

func TestInstall_AfterUninstall(t *testing.T) {
	g1 := Install(newTestLogger())
	g1.Uninstall()

	g2 := Install(newTestLogger())
	defer g2.Uninstall()

	assert.NotSame(t, g1, g2, "uninstall should allow a fresh guard")
}

func TestUninstall_OnlyCurrentGuard(t *testing.T) {
	g1 := Install(newTestLogger())
	g1.Uninstall()

	g2 := Install(newTestLogger())
	defer g2.Uninstall()

	// A stale handle must not tear down the active guard
	g1.Uninstall()

	g3 := Install(newTestLogger())
	assert.Same(t, g2, g3)
}

func TestGuard_MarksThenRaises(t *testing.T) {
	r := activateTestRegion(t)

	raised := make(chan os.Signal, 1)
	g := &Guard{
		sigChan: make(chan os.Signal, 1),
		done:    make(chan struct{}),
		logger:  newTestLogger(),
		raise: func(sig os.Signal) {
			raised <- sig
		},
	}
	go g.watch()
	defer close(g.done)

	g.sigChan <- syscall.SIGSEGV

	select {
	case sig := <-raised:
		assert.Equal(t, syscall.SIGSEGV, sig)
	case <-time.After(time.Second):
		t.Fatal("signal was not re-raised")
	}

	assert.True(t, r.Marked(), "marker must be written before the re-raise")
}

func TestGuard_HandleWithoutRegion(t *testing.T) {
	raised := make(chan os.Signal, 1)
	g := &Guard{
		logger: newTestLogger(),
		raise: func(sig os.Signal) {
			raised <- sig
		},
	}

	assert.NotPanics(t, func() { g.handle(syscall.SIGABRT) })
	assert.Equal(t, syscall.SIGABRT, <-raised)
}

func TestMarkOnPanic(t *testing.T) {
	r := activateTestRegion(t)

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		func() {
			defer MarkOnPanic()
			panic("boom")
		}()
	}()

	assert.Equal(t, "boom", recovered, "panic value must pass through unchanged")
	assert.True(t, r.Marked())
}

func TestMarkOnPanic_NormalReturn(t *testing.T) {
	r := activateTestRegion(t)

	func() {
		defer MarkOnPanic()
	}()

	assert.False(t, r.Marked(), "no panic, no mark")
}

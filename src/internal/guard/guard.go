// FILE: tracekit/src/internal/guard/guard.go
package guard

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/lixenwraith/log"
	"golang.org/x/sys/unix"

	"tracekit/src/internal/crashmark"
)

// fatalSignals are the deliveries that mark the crash region before the
// process dies. Faults raised by the program's own execution surface as
// runtime panics instead and are covered by MarkOnPanic.
var fatalSignals = []os.Signal{
	syscall.SIGABRT,
	syscall.SIGSEGV,
	syscall.SIGBUS,
	syscall.SIGFPE,
	syscall.SIGILL,
	syscall.SIGTRAP,
}

var (
	installMu sync.Mutex
	installed *Guard
)

// Guard owns the fatal signal watcher. One guard exists per process;
// Install hands the same instance back to every caller.
type Guard struct {
	sigChan chan os.Signal
	done    chan struct{}
	logger  *log.Logger

	// raise delivers the signal's default action. Tests substitute it
	// to observe the crash path without dying.
	raise func(os.Signal)
}

// Install registers the watcher for fatal signals. Repeated calls are
// cheap and return the existing guard.
func Install(logger *log.Logger) *Guard {
	installMu.Lock()
	defer installMu.Unlock()

	if installed != nil {
		return installed
	}

	g := &Guard{
		sigChan: make(chan os.Signal, len(fatalSignals)),
		done:    make(chan struct{}),
		logger:  logger,
		raise:   defaultRaise,
	}

	signal.Notify(g.sigChan, fatalSignals...)
	go g.watch()

	logger.Info("msg", "Fatal signal guard installed",
		"component", "guard",
		"signals", len(fatalSignals))

	installed = g
	return g
}

// Uninstall stops the watcher and restores default delivery. Only the
// currently installed guard is affected.
func (g *Guard) Uninstall() {
	installMu.Lock()
	defer installMu.Unlock()

	if installed != g {
		return
	}

	signal.Stop(g.sigChan)
	close(g.done)
	installed = nil

	g.logger.Debug("msg", "Fatal signal guard removed",
		"component", "guard")
}

func (g *Guard) watch() {
	for {
		select {
		case sig := <-g.sigChan:
			g.handle(sig)
		case <-g.done:
			return
		}
	}
}

// handle runs the crash path: mark first, then hand the signal back to
// its default action. Nothing here logs or allocates before the mark.
func (g *Guard) handle(sig os.Signal) {
	crashmark.MarkActive()
	g.raise(sig)
}

// defaultRaise restores the signal's default disposition and re-sends it
// to the process, so exit status and core dumps match an unguarded run.
func defaultRaise(sig os.Signal) {
	s, ok := sig.(syscall.Signal)
	if !ok {
		return
	}
	signal.Reset(sig)
	unix.Kill(unix.Getpid(), s)
}

// FILE: src/cmd/tracekit/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"tracekit/src/internal/config"
	"tracekit/src/internal/core"
	"tracekit/src/internal/format"
	"tracekit/src/internal/preserve"
	"tracekit/src/internal/snapshot"
	"tracekit/src/internal/version"

	"github.com/google/uuid"
	"github.com/lixenwraith/log"
)

var logger *log.Logger

func main() {
	// Parse flags first to get quiet mode early
	flagCfg, err := ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Initialize output handler with quiet mode
	InitOutputHandler(flagCfg.Quiet)

	// Handle version flag
	if flagCfg.ShowVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	// Set config file environment if specified
	if flagCfg.ConfigFile != "" {
		os.Setenv("TRACEKIT_CONFIG_FILE", flagCfg.ConfigFile)
	}

	// Load configuration with CLI overrides
	cfg, err := config.LoadWithCLI(os.Args[1:])
	if err != nil {
		if flagCfg.ConfigFile != "" && strings.Contains(err.Error(), "not found") {
			FatalError(2, "Config file not found: %s\n", flagCfg.ConfigFile)
		}
		FatalError(1, "Failed to load config: %v\n", err)
	}

	if flagCfg.Quiet {
		cfg.Quiet = true
	}
	if flagCfg.DumpFormat != "" {
		cfg.Dump.Format = flagCfg.DumpFormat
	}
	applyLogOverrides(cfg, flagCfg)

	// Write out the effective configuration and stop
	if flagCfg.InitConfig != "" {
		if err := cfg.SaveToFile(flagCfg.InitConfig); err != nil {
			FatalError(1, "Failed to write config: %v\n", err)
		}
		Print("Wrote configuration to %s\n", flagCfg.InitConfig)
		os.Exit(0)
	}

	// Initialize logger with quiet mode awareness
	if err := initializeLogger(cfg); err != nil {
		FatalError(1, "Failed to initialize logger: %v\n", err)
	}

	logger.Info("msg", "TraceKit starting",
		"version", version.String(),
		"config_file", flagCfg.ConfigFile)

	preserver, err := preserve.New(cfg.Preserve, logger)
	if err != nil {
		logger.Error("msg", "Failed to initialize preserver", "error", err)
		Error("Failed to initialize preservation: %v\n", err)
		shutdownLogger()
		os.Exit(1)
	}

	exitCode := execute(preserver, cfg, flagCfg)

	if err := preserver.Close(); err != nil {
		logger.Warn("msg", "Preserver close failed", "error", err)
	}
	shutdownLogger()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// execute dispatches the requested action. With no action flags the
// status report runs.
func execute(p *preserve.Preserver, cfg *config.Config, flagCfg *FlagConfig) int {
	switch {
	case flagCfg.Status:
		return runStatus(p, cfg)
	case flagCfg.Dump:
		return runDump(p, cfg)
	case flagCfg.ClearAll:
		return runClear(p)
	}

	acted := false

	if flagCfg.Record > 0 {
		runRecord(p, flagCfg.Record)
		acted = true
	}

	if flagCfg.Guard {
		return runGuarded(p)
	}

	if flagCfg.Persist {
		if err := p.Persist(); err != nil {
			Error("Persist failed: %v\n", err)
			return 1
		}
		Print("Persisted %d entries\n", p.Count())
		acted = true
	}

	if !acted {
		return runStatus(p, cfg)
	}
	return 0
}

// runStatus reports preserved state without consuming the crash marker.
func runStatus(p *preserve.Preserver, cfg *config.Config) int {
	snapPath, markerPath, err := cfg.Preserve.StoragePaths()
	if err != nil {
		Error("Cannot resolve storage paths: %v\n", err)
		return 1
	}

	res, err := p.Peek()
	if err != nil {
		// The marker half of the result stays meaningful on decode failure
		Error("Snapshot unreadable: %v\n", err)
		Print("Crash marker:      %s\n", markerPath)
		Print("Crash detected:    %v\n", res.CrashDetected)
		return 1
	}

	Print("Snapshot:          %s\n", snapPath)
	Print("Preserved entries: %d\n", len(res.Entries))
	Print("Crash marker:      %s\n", markerPath)
	Print("Crash detected:    %v\n", res.CrashDetected)
	return 0
}

// runDump recovers preserved entries, printing them to stdout in the
// configured format. The crash marker is consumed.
func runDump(p *preserve.Preserver, cfg *config.Config) int {
	// Resolve the formatter before touching preserved state so a bad
	// format leaves the marker unconsumed
	formatter, err := format.New(cfg.Dump, logger)
	if err != nil {
		Error("Dump format unavailable: %v\n", err)
		return 1
	}

	res, err := p.Recover()
	if err != nil {
		if errors.Is(err, snapshot.ErrDecode) {
			Error("Snapshot is corrupt, nothing recovered: %v\n", err)
		} else {
			Error("Recovery failed: %v\n", err)
		}
		Error("Crash detected: %v\n", res.CrashDetected)
		return 1
	}

	for _, entry := range res.Entries {
		line, err := formatter.Format(entry)
		if err != nil {
			Error("Failed to format entry: %v\n", err)
			return 1
		}
		if _, err := os.Stdout.Write(line); err != nil {
			Error("Failed to write entry: %v\n", err)
			return 1
		}
	}

	Error("Recovered %d entries, crash detected: %v\n", len(res.Entries), res.CrashDetected)
	return 0
}

func runClear(p *preserve.Preserver) int {
	if err := p.Clear(); err != nil {
		Error("Clear failed: %v\n", err)
		return 1
	}
	Print("Preserved state cleared\n")
	return 0
}

// runRecord seeds the history with synthetic entries, tagged with a
// per-invocation run id so dumps from different runs stay tellable apart.
func runRecord(p *preserve.Preserver, n int) {
	runID := uuid.NewString()
	for i := 1; i <= n; i++ {
		e := core.NewEntry(core.LevelInfo, "synthetic", fmt.Sprintf("synthetic entry %d of %d", i, n))
		e.Fields = map[string]any{
			"run": runID,
			"seq": float64(i),
		}
		p.Record(e)
	}
	Print("Recorded %d entries (run %s)\n", n, runID)
}

// runGuarded installs the fatal signal guard and blocks until the
// process is told to stop. Useful for exercising crash detection from
// the outside: kill the process, then check -status.
func runGuarded(p *preserve.Preserver) int {
	p.InstallCrashHandlers()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	Print("Guard installed, pid %d waiting for termination\n", os.Getpid())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	logger.Info("msg", "Shutdown signal received",
		"signal", sig.String())

	if err := p.Persist(); err != nil {
		Error("Final persist failed: %v\n", err)
		return 1
	}
	Print("Persisted %d entries on shutdown\n", p.Count())
	return 0
}

func shutdownLogger() {
	if logger != nil {
		if err := logger.Shutdown(2 * time.Second); err != nil {
			// Best effort - can't log the shutdown error
			Error("Logger shutdown error: %v\n", err)
		}
	}
}

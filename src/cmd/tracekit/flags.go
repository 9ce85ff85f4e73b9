// FILE: src/cmd/tracekit/flags.go
package main

import (
	"flag"
	"fmt"
	"os"
)

// Command-line flags
var (
	// General flags
	configFile  = flag.String("config", "", "Config file path")
	showVersion = flag.Bool("version", false, "Show version information")
	quiet       = flag.Bool("quiet", false, "Suppress operational output")

	// Action flags
	status     = flag.Bool("status", false, "Report snapshot and crash marker state without consuming them")
	dump       = flag.Bool("dump", false, "Recover preserved entries and print them")
	dumpFormat = flag.String("format", "", "Dump output format: json, txt, raw (overrides config)")
	clearAll   = flag.Bool("clear", false, "Clear history, snapshot and crash marker")
	record     = flag.Int("record", 0, "Record N synthetic entries")
	persist    = flag.Bool("persist", false, "Persist the current history to the snapshot")
	guardMode  = flag.Bool("guard", false, "Install the fatal signal guard and wait (demo mode)")
	initConfig = flag.String("init-config", "", "Write the effective configuration to the given path and exit")

	// Logging flags
	logOutput  = flag.String("log-output", "", "Log output: file, stdout, stderr, both, none (overrides config)")
	logLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	logDir     = flag.String("log-dir", "", "Log directory (when using file output)")
	logConsole = flag.String("log-console", "", "Console target: stdout, stderr, split (overrides config)")
)

// FlagConfig carries parsed command-line state into the rest of main
type FlagConfig struct {
	ConfigFile  string
	ShowVersion bool
	Quiet       bool

	Status     bool
	Dump       bool
	DumpFormat string
	ClearAll   bool
	Record     int
	Persist    bool
	Guard      bool
	InitConfig string

	LogOutput  string
	LogLevel   string
	LogDir     string
	LogConsole string
}

func init() {
	flag.Usage = customUsage
}

func ParseFlags() (*FlagConfig, error) {
	flag.Parse()

	// Validate log-output flag if provided
	if *logOutput != "" {
		validOutputs := map[string]bool{
			"file": true, "stdout": true, "stderr": true,
			"both": true, "none": true,
		}
		if !validOutputs[*logOutput] {
			return nil, fmt.Errorf("invalid log-output: %s (valid: file, stdout, stderr, both, none)", *logOutput)
		}
	}

	// Validate log-level flag if provided
	if *logLevel != "" {
		if _, err := parseLogLevel(*logLevel); err != nil {
			return nil, fmt.Errorf("invalid log-level: %s (valid: debug, info, warn, error)", *logLevel)
		}
	}

	// Validate log-console flag if provided
	if *logConsole != "" {
		validTargets := map[string]bool{
			"stdout": true, "stderr": true, "split": true,
		}
		if !validTargets[*logConsole] {
			return nil, fmt.Errorf("invalid log-console: %s (valid: stdout, stderr, split)", *logConsole)
		}
	}

	// Validate format flag if provided
	if *dumpFormat != "" {
		validFormats := map[string]bool{
			"json": true, "txt": true, "raw": true,
		}
		if !validFormats[*dumpFormat] {
			return nil, fmt.Errorf("invalid format: %s (valid: json, txt, raw)", *dumpFormat)
		}
	}

	if *record < 0 {
		return nil, fmt.Errorf("invalid record count: %d", *record)
	}

	// The read-modify verbs are mutually exclusive
	verbs := 0
	for _, v := range []bool{*status, *dump, *clearAll} {
		if v {
			verbs++
		}
	}
	if verbs > 1 {
		return nil, fmt.Errorf("at most one of -status, -dump, -clear may be given")
	}

	return &FlagConfig{
		ConfigFile:  *configFile,
		ShowVersion: *showVersion,
		Quiet:       *quiet,
		Status:      *status,
		Dump:        *dump,
		DumpFormat:  *dumpFormat,
		ClearAll:    *clearAll,
		Record:      *record,
		Persist:     *persist,
		Guard:       *guardMode,
		InitConfig:  *initConfig,
		LogOutput:   *logOutput,
		LogLevel:    *logLevel,
		LogDir:      *logDir,
		LogConsole:  *logConsole,
	}, nil
}

func customUsage() {
	fmt.Fprintf(os.Stderr, "TraceKit - Crash-Resilient Log Preservation\n\n")
	fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Options:\n")

	// General options
	fmt.Fprintf(os.Stderr, "\nGeneral:\n")
	fmt.Fprintf(os.Stderr, "  -config string\n\tConfig file path\n")
	fmt.Fprintf(os.Stderr, "  -version\n\tShow version information\n")
	fmt.Fprintf(os.Stderr, "  -quiet\n\tSuppress operational output\n")

	// Action options
	fmt.Fprintf(os.Stderr, "\nActions:\n")
	fmt.Fprintf(os.Stderr, "  -status\n\tReport snapshot and crash marker state (non-destructive)\n")
	fmt.Fprintf(os.Stderr, "  -dump\n\tRecover preserved entries, print them, consume the crash marker\n")
	fmt.Fprintf(os.Stderr, "  -format string\n\tDump output format: json, txt, raw (overrides config)\n")
	fmt.Fprintf(os.Stderr, "  -clear\n\tClear history, snapshot and crash marker\n")
	fmt.Fprintf(os.Stderr, "  -record int\n\tRecord N synthetic entries\n")
	fmt.Fprintf(os.Stderr, "  -persist\n\tPersist the current history to the snapshot\n")
	fmt.Fprintf(os.Stderr, "  -guard\n\tInstall the fatal signal guard and wait for termination (demo mode)\n")
	fmt.Fprintf(os.Stderr, "  -init-config string\n\tWrite the effective configuration to the given path and exit\n")

	// Logging options
	fmt.Fprintf(os.Stderr, "\nLogging:\n")
	fmt.Fprintf(os.Stderr, "  -log-output string\n\tLog output: file, stdout, stderr, both, none (overrides config)\n")
	fmt.Fprintf(os.Stderr, "  -log-level string\n\tLog level: debug, info, warn, error (overrides config)\n")
	fmt.Fprintf(os.Stderr, "  -log-dir string\n\tLog directory (when using file output)\n")
	fmt.Fprintf(os.Stderr, "  -log-console string\n\tConsole target: stdout, stderr, split (overrides config)\n")

	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  # Show preserved state from the previous run\n")
	fmt.Fprintf(os.Stderr, "  %s -status\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "  # Recover entries after a crash\n")
	fmt.Fprintf(os.Stderr, "  %s -dump > recovered.jsonl\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "  # Human-readable crash dump\n")
	fmt.Fprintf(os.Stderr, "  %s -dump -format txt\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "  # Seed and persist synthetic entries\n")
	fmt.Fprintf(os.Stderr, "  %s -record 10 -persist\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "  # Run guarded until killed, then inspect the marker\n")
	fmt.Fprintf(os.Stderr, "  %s -guard & kill -SEGV $!; %s -status\n\n", os.Args[0], os.Args[0])

	fmt.Fprintf(os.Stderr, "Environment Variables:\n")
	fmt.Fprintf(os.Stderr, "  TRACEKIT_CONFIG_FILE  Config file path\n")
	fmt.Fprintf(os.Stderr, "  TRACEKIT_CONFIG_DIR   Config directory\n")
}

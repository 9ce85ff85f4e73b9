// FILE: src/cmd/tracekit/bootstrap.go
package main

import (
	"fmt"
	"strings"

	"tracekit/src/internal/config"

	"github.com/lixenwraith/log"
)

// applyLogOverrides lets the logging CLI flags win over file and env
// settings.
func applyLogOverrides(cfg *config.Config, flagCfg *FlagConfig) {
	if cfg.Logging == nil {
		cfg.Logging = config.DefaultLogConfig()
	}

	if flagCfg.LogOutput != "" {
		cfg.Logging.Output = flagCfg.LogOutput
	}
	if flagCfg.LogLevel != "" {
		cfg.Logging.Level = flagCfg.LogLevel
	}
	if flagCfg.LogDir != "" {
		if cfg.Logging.File == nil {
			cfg.Logging.File = &config.LogFileConfig{Name: "tracekit"}
		}
		cfg.Logging.File.Directory = flagCfg.LogDir
	}
	if flagCfg.LogConsole != "" {
		if cfg.Logging.Console == nil {
			cfg.Logging.Console = &config.LogConsoleConfig{}
		}
		cfg.Logging.Console.Target = flagCfg.LogConsole
	}
}

// initializeLogger builds the diagnostic logger from the resolved
// configuration. Quiet mode wins over everything and produces a logger
// that drops all records.
func initializeLogger(cfg *config.Config) error {
	logger = log.NewLogger()

	if cfg.Quiet {
		return logger.InitWithDefaults(
			"disable_file=true",
			"enable_stdout=false",
			"level=255")
	}

	levelValue, err := parseLogLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	args := []string{fmt.Sprintf("level=%d", levelValue)}

	switch cfg.Logging.Output {
	case "none":
		args = append(args, "disable_file=true", "enable_stdout=false")
	case "stdout":
		args = append(args, "disable_file=true", "enable_stdout=true", "stdout_target=stdout")
	case "stderr":
		args = append(args, "disable_file=true", "enable_stdout=true", "stdout_target=stderr")
	case "file":
		args = append(args, "enable_stdout=false")
		args = append(args, fileLogArgs(cfg.Logging.File)...)
	case "both":
		args = append(args, "enable_stdout=true")
		args = append(args, fileLogArgs(cfg.Logging.File)...)
		args = append(args, consoleTargetArgs(cfg.Logging.Console)...)
	default:
		return fmt.Errorf("invalid log output mode: %s", cfg.Logging.Output)
	}

	if cfg.Logging.Console != nil && cfg.Logging.Console.Format != "" {
		args = append(args, fmt.Sprintf("format=%s", cfg.Logging.Console.Format))
	}

	return logger.InitWithDefaults(args...)
}

// fileLogArgs translates the file block into logger settings.
func fileLogArgs(fc *config.LogFileConfig) []string {
	if fc == nil {
		return nil
	}

	args := []string{
		fmt.Sprintf("directory=%s", fc.Directory),
		fmt.Sprintf("name=%s", fc.Name),
		fmt.Sprintf("max_size_mb=%d", fc.MaxSizeMB),
		fmt.Sprintf("max_total_size_mb=%d", fc.MaxTotalSizeMB),
	}
	if fc.RetentionHours > 0 {
		args = append(args, fmt.Sprintf("retention_period_hrs=%.1f", fc.RetentionHours))
	}
	return args
}

// consoleTargetArgs routes console output, including the split mode
// that sends debug/info to stdout and warn/error to stderr.
func consoleTargetArgs(cc *config.LogConsoleConfig) []string {
	target := "stderr"
	if cc != nil && cc.Target != "" {
		target = cc.Target
	}

	if target == "split" {
		return []string{"stdout_split_mode=true", "stdout_target=split"}
	}
	return []string{fmt.Sprintf("stdout_target=%s", target)}
}

func parseLogLevel(level string) (int, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int(log.LevelDebug), nil
	case "info":
		return int(log.LevelInfo), nil
	case "warn", "warning":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}

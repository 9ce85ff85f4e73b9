// FILE: tracekit/src/internal/config/validation.go
package config

import (
	"fmt"
	"regexp"
	"strings"
)

func (c *Config) validate() error {
	if err := validatePreserveConfig(&c.Preserve); err != nil {
		return err
	}

	if err := validateDumpConfig(&c.Dump); err != nil {
		return err
	}

	if c.Logging != nil {
		if err := validateLogConfig(c.Logging); err != nil {
			return err
		}
	}

	return nil
}

func validatePreserveConfig(cfg *PreserveConfig) error {
	if cfg.Capacity < 0 {
		return fmt.Errorf("history capacity cannot be negative: %d", cfg.Capacity)
	}

	if cfg.AutoPersistIntervalSec < 0 {
		return fmt.Errorf("auto persist interval cannot be negative: %d", cfg.AutoPersistIntervalSec)
	}

	if cfg.FlushPerMinute < 0 {
		return fmt.Errorf("flush rate cannot be negative: %d", cfg.FlushPerMinute)
	}

	if strings.Contains(cfg.Directory, "..") {
		return fmt.Errorf("storage directory contains directory traversal: %s", cfg.Directory)
	}

	for _, name := range []string{cfg.SnapshotName, cfg.MarkerName} {
		if name == "" {
			// Resolved to the built-in default
			continue
		}
		if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
			return fmt.Errorf("storage file name must be a bare file name: %q", name)
		}
	}

	if cfg.SnapshotName != "" && cfg.SnapshotName == cfg.MarkerName {
		return fmt.Errorf("snapshot and marker cannot share a file name: %q", cfg.SnapshotName)
	}

	return validateFilterConfigs(cfg.Filters)
}

func validateFilterConfigs(filters []FilterConfig) error {
	validTypes := map[string]bool{
		"": true, FilterTypeInclude: true, FilterTypeExclude: true,
	}
	validLogic := map[string]bool{
		"": true, FilterLogicOr: true, FilterLogicAnd: true,
	}

	for i, f := range filters {
		if !validTypes[f.Type] {
			return fmt.Errorf("filter[%d]: invalid type: %s", i, f.Type)
		}
		if !validLogic[f.Logic] {
			return fmt.Errorf("filter[%d]: invalid logic: %s", i, f.Logic)
		}
		for j, pattern := range f.Patterns {
			if _, err := regexp.Compile(pattern); err != nil {
				return fmt.Errorf("filter[%d]: invalid regex pattern[%d] '%s': %w", i, j, pattern, err)
			}
		}
	}

	return nil
}

func validateDumpConfig(cfg *DumpConfig) error {
	validFormats := map[string]bool{
		"": true, DumpFormatJSON: true, DumpFormatTxt: true, DumpFormatRaw: true,
	}
	if !validFormats[cfg.Format] {
		return fmt.Errorf("invalid dump format: %s", cfg.Format)
	}

	return nil
}

func validateLogConfig(cfg *LogConfig) error {
	validOutputs := map[string]bool{
		"file": true, "stdout": true, "stderr": true,
		"both": true, "none": true,
	}
	if !validOutputs[cfg.Output] {
		return fmt.Errorf("invalid log output mode: %s", cfg.Output)
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[cfg.Level] {
		return fmt.Errorf("invalid log level: %s", cfg.Level)
	}

	if cfg.Console != nil {
		validTargets := map[string]bool{
			"stdout": true, "stderr": true, "split": true,
		}
		if !validTargets[cfg.Console.Target] {
			return fmt.Errorf("invalid console target: %s", cfg.Console.Target)
		}

		validFormats := map[string]bool{
			"txt": true, "json": true, "": true,
		}
		if !validFormats[cfg.Console.Format] {
			return fmt.Errorf("invalid console format: %s", cfg.Console.Format)
		}
	}

	return nil
}

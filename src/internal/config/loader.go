// FILE: tracekit/src/internal/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lconfig "github.com/lixenwraith/config"

	"tracekit/src/internal/core"
)

func defaults() *Config {
	return &Config{
		Preserve: PreserveConfig{
			Capacity:       core.DefaultCapacity,
			SnapshotName:   core.DefaultSnapshotName,
			MarkerName:     core.DefaultMarkerName,
			FlushPerMinute: core.DefaultFlushPerMinute,
		},
		Dump:    DefaultDumpConfig(),
		Logging: DefaultLogConfig(),
	}
}

// LoadWithCLI resolves the effective configuration. Precedence, highest
// first: CLI args, TRACEKIT_* environment, TOML file, built-in defaults.
// A missing config file is not an error; the file source just
// contributes nothing.
func LoadWithCLI(cliArgs []string) (*Config, error) {
	cfg, err := lconfig.NewBuilder().
		WithDefaults(defaults()).
		WithEnvPrefix("TRACEKIT_").
		WithFile(GetConfigPath()).
		WithArgs(cliArgs).
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceCLI,
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()
	if err != nil && !strings.Contains(err.Error(), "not found") {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	final := &Config{}
	if err := cfg.Scan(final, ""); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	return final, final.validate()
}

// customEnvTransform maps a config path like preserve.capacity to
// TRACEKIT_PRESERVE_CAPACITY.
func customEnvTransform(path string) string {
	return "TRACEKIT_" + strings.ToUpper(strings.ReplaceAll(path, ".", "_"))
}

// GetConfigPath picks the config file location. TRACEKIT_CONFIG_FILE
// names the file (absolute, or relative to TRACEKIT_CONFIG_DIR when
// that is set); TRACEKIT_CONFIG_DIR alone means tracekit.toml inside
// it; otherwise ~/.config/tracekit.toml.
func GetConfigPath() string {
	file := os.Getenv("TRACEKIT_CONFIG_FILE")
	dir := os.Getenv("TRACEKIT_CONFIG_DIR")

	switch {
	case file != "" && filepath.IsAbs(file):
		return file
	case file != "" && dir != "":
		return filepath.Join(dir, file)
	case file != "":
		return file
	case dir != "":
		return filepath.Join(dir, "tracekit.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "tracekit.toml")
	}
	return "tracekit.toml"
}

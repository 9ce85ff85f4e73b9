// FILE: tracekit/src/internal/config/saver.go
package config

import (
	"fmt"

	lconfig "github.com/lixenwraith/config"
)

// SaveToFile writes the effective configuration to path as TOML. It
// backs -init-config, giving operators a complete starting file with
// every default spelled out.
func (c *Config) SaveToFile(path string) error {
	if path == "" {
		return fmt.Errorf("config save path is empty")
	}

	// A throwaway lconfig instance scoped to this one write; the rest
	// of the program only ever works with the scanned Config struct
	lcfg, err := lconfig.NewBuilder().
		WithTarget(c).
		WithFile(path).
		WithFileFormat("toml").
		Build()
	if err != nil {
		return fmt.Errorf("prepare config for saving: %w", err)
	}

	if err := lcfg.Save(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// FILE: tracekit/src/internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"tracekit/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := defaults()

	assert.Equal(t, core.DefaultCapacity, cfg.Preserve.Capacity)
	assert.Equal(t, core.DefaultSnapshotName, cfg.Preserve.SnapshotName)
	assert.Equal(t, core.DefaultMarkerName, cfg.Preserve.MarkerName)
	assert.Equal(t, core.DefaultFlushPerMinute, cfg.Preserve.FlushPerMinute)
	assert.False(t, cfg.Preserve.DisableMarker)
	assert.Zero(t, cfg.Preserve.AutoPersistIntervalSec)

	assert.Equal(t, DumpFormatJSON, cfg.Dump.Format)
	require.NotNil(t, cfg.Dump.JSON)
	require.NotNil(t, cfg.Dump.Txt)

	require.NotNil(t, cfg.Logging)
	assert.NoError(t, cfg.validate())
}

func TestStoragePaths(t *testing.T) {
	t.Run("ExplicitDirectory", func(t *testing.T) {
		cfg := PreserveConfig{
			Directory:    "/var/lib/myapp",
			SnapshotName: "snap.json",
			MarkerName:   "mark.bin",
		}

		snapPath, markerPath, err := cfg.StoragePaths()
		require.NoError(t, err)
		assert.Equal(t, "/var/lib/myapp/snap.json", snapPath)
		assert.Equal(t, "/var/lib/myapp/mark.bin", markerPath)
	})

	t.Run("NameDefaults", func(t *testing.T) {
		cfg := PreserveConfig{Directory: "/tmp/x"}

		snapPath, markerPath, err := cfg.StoragePaths()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/tmp/x", core.DefaultSnapshotName), snapPath)
		assert.Equal(t, filepath.Join("/tmp/x", core.DefaultMarkerName), markerPath)
	})

	t.Run("DirectoryDefaultsToUserCache", func(t *testing.T) {
		cacheDir := t.TempDir()
		t.Setenv("XDG_CACHE_HOME", cacheDir)

		cfg := PreserveConfig{}
		snapPath, _, err := cfg.StoragePaths()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(cacheDir, "tracekit", core.DefaultSnapshotName), snapPath)
	})
}

func TestValidatePreserveConfig(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     PreserveConfig
		wantErr string
	}{
		{
			name: "Valid",
			cfg:  PreserveConfig{Capacity: 50, SnapshotName: "s.json", MarkerName: "m.bin"},
		},
		{
			name: "ValidEmptyNames",
			cfg:  PreserveConfig{Capacity: 10},
		},
		{
			name: "ZeroCapacity",
			cfg:  PreserveConfig{Capacity: 0},
		},
		{
			name:    "NegativeCapacity",
			cfg:     PreserveConfig{Capacity: -1},
			wantErr: "capacity cannot be negative",
		},
		{
			name:    "NegativeInterval",
			cfg:     PreserveConfig{AutoPersistIntervalSec: -5},
			wantErr: "interval cannot be negative",
		},
		{
			name:    "NegativeFlushRate",
			cfg:     PreserveConfig{FlushPerMinute: -1},
			wantErr: "flush rate cannot be negative",
		},
		{
			name:    "DirectoryTraversal",
			cfg:     PreserveConfig{Directory: "../../etc"},
			wantErr: "directory traversal",
		},
		{
			name:    "SnapshotNameWithSlash",
			cfg:     PreserveConfig{SnapshotName: "sub/snap.json"},
			wantErr: "bare file name",
		},
		{
			name:    "MarkerNameDot",
			cfg:     PreserveConfig{MarkerName: "."},
			wantErr: "bare file name",
		},
		{
			name:    "SharedName",
			cfg:     PreserveConfig{SnapshotName: "state.bin", MarkerName: "state.bin"},
			wantErr: "cannot share",
		},
		{
			name: "ValidFilters",
			cfg: PreserveConfig{Filters: []FilterConfig{
				{Type: FilterTypeExclude, Logic: FilterLogicAnd, Patterns: []string{"a", "b"}},
			}},
		},
		{
			name: "BadFilterType",
			cfg: PreserveConfig{Filters: []FilterConfig{
				{Type: "block"},
			}},
			wantErr: "invalid type",
		},
		{
			name: "BadFilterLogic",
			cfg: PreserveConfig{Filters: []FilterConfig{
				{Logic: "xor"},
			}},
			wantErr: "invalid logic",
		},
		{
			name: "BadFilterPattern",
			cfg: PreserveConfig{Filters: []FilterConfig{
				{Patterns: []string{"ok"}},
				{Patterns: []string{"["}},
			}},
			wantErr: "filter[1]",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePreserveConfig(&tc.cfg)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidateDumpConfig(t *testing.T) {
	for _, format := range []string{"", DumpFormatJSON, DumpFormatTxt, DumpFormatRaw} {
		cfg := DumpConfig{Format: format}
		assert.NoError(t, validateDumpConfig(&cfg), "format %q", format)
	}

	cfg := DumpConfig{Format: "xml"}
	err := validateDumpConfig(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid dump format")
}

func TestValidateLogConfig(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*LogConfig)
		wantErr bool
	}{
		{name: "Defaults", mutate: func(c *LogConfig) {}},
		{name: "BadOutput", mutate: func(c *LogConfig) { c.Output = "syslog" }, wantErr: true},
		{name: "BadLevel", mutate: func(c *LogConfig) { c.Level = "trace" }, wantErr: true},
		{name: "BadConsoleTarget", mutate: func(c *LogConfig) { c.Console.Target = "tty" }, wantErr: true},
		{name: "BadConsoleFormat", mutate: func(c *LogConfig) { c.Console.Format = "xml" }, wantErr: true},
		{name: "SplitTarget", mutate: func(c *LogConfig) { c.Console.Target = "split" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultLogConfig()
			tc.mutate(cfg)

			err := validateLogConfig(cfg)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Run("ExplicitAbsoluteFile", func(t *testing.T) {
		t.Setenv("TRACEKIT_CONFIG_FILE", "/etc/tracekit/custom.toml")
		t.Setenv("TRACEKIT_CONFIG_DIR", "")
		assert.Equal(t, "/etc/tracekit/custom.toml", GetConfigPath())
	})

	t.Run("RelativeFileWithDir", func(t *testing.T) {
		t.Setenv("TRACEKIT_CONFIG_FILE", "custom.toml")
		t.Setenv("TRACEKIT_CONFIG_DIR", "/opt/conf")
		assert.Equal(t, "/opt/conf/custom.toml", GetConfigPath())
	})

	t.Run("DirOnly", func(t *testing.T) {
		t.Setenv("TRACEKIT_CONFIG_FILE", "")
		t.Setenv("TRACEKIT_CONFIG_DIR", "/opt/conf")
		assert.Equal(t, "/opt/conf/tracekit.toml", GetConfigPath())
	})

	t.Run("HomeFallback", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("TRACEKIT_CONFIG_FILE", "")
		t.Setenv("TRACEKIT_CONFIG_DIR", "")
		t.Setenv("HOME", home)
		assert.Equal(t, filepath.Join(home, ".config", "tracekit.toml"), GetConfigPath())
	})
}

func TestLoadWithCLI_FromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "tracekit.toml")

	content := `
quiet = false

[preserve]
capacity = 10
directory = "` + dir + `"
flush_per_minute = 2

[[preserve.filters]]
type = "exclude"
patterns = ["heartbeat"]

[dump]
format = "txt"

[logging]
output = "none"
level = "debug"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0600))
	t.Setenv("TRACEKIT_CONFIG_FILE", configPath)
	t.Setenv("TRACEKIT_CONFIG_DIR", "")

	cfg, err := LoadWithCLI(nil)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Preserve.Capacity)
	assert.Equal(t, dir, cfg.Preserve.Directory)
	assert.Equal(t, 2, cfg.Preserve.FlushPerMinute)
	assert.Equal(t, core.DefaultSnapshotName, cfg.Preserve.SnapshotName, "unset fields fall back to defaults")

	require.Len(t, cfg.Preserve.Filters, 1)
	assert.Equal(t, FilterTypeExclude, cfg.Preserve.Filters[0].Type)
	assert.Equal(t, []string{"heartbeat"}, cfg.Preserve.Filters[0].Patterns)

	assert.Equal(t, DumpFormatTxt, cfg.Dump.Format)
	assert.Equal(t, "none", cfg.Logging.Output)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadWithCLI_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "tracekit.toml")

	require.NoError(t, os.WriteFile(configPath, []byte("[preserve]\ncapacity = -3\n"), 0600))
	t.Setenv("TRACEKIT_CONFIG_FILE", configPath)
	t.Setenv("TRACEKIT_CONFIG_DIR", "")

	_, err := LoadWithCLI(nil)
	assert.Error(t, err)
}

func TestSaveToFile(t *testing.T) {
	cfg := defaults()
	path := filepath.Join(t.TempDir(), "out.toml")

	require.NoError(t, cfg.SaveToFile(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	assert.Error(t, cfg.SaveToFile(""), "empty path must be rejected")
}

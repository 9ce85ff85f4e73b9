// FILE: tracekit/src/internal/config/format.go
package config

// Dump format constants
const (
	DumpFormatJSON = "json"
	DumpFormatTxt  = "txt"
	DumpFormatRaw  = "raw"
)

// DumpConfig controls how recovered entries are rendered.
type DumpConfig struct {
	// Output format: "json", "txt", "raw". Empty selects "json"
	Format string `toml:"format"`

	JSON *JSONFormatterOptions `toml:"json"`
	Txt  *TxtFormatterOptions  `toml:"txt"`
}

// JSONFormatterOptions configures the JSON renderer.
type JSONFormatterOptions struct {
	// Output key names for the entry metadata
	TimestampField string `toml:"timestamp_field"`
	LevelField     string `toml:"level_field"`
	MessageField   string `toml:"message_field"`

	// Pretty enables indented output
	Pretty bool `toml:"pretty"`
}

// TxtFormatterOptions configures the text renderer.
type TxtFormatterOptions struct {
	// Template renders one entry. Fields: Timestamp, Level, Category,
	// Message, Fields, File, Function, Line. Functions: FmtTime,
	// ToUpper, ToLower, TrimSpace.
	Template string `toml:"template"`

	// TimestampFormat is the layout FmtTime applies
	TimestampFormat string `toml:"timestamp_format"`
}

func DefaultDumpConfig() DumpConfig {
	return DumpConfig{
		Format: DumpFormatJSON,
		JSON:   DefaultJSONFormatterOptions(),
		Txt:    DefaultTxtFormatterOptions(),
	}
}

func DefaultJSONFormatterOptions() *JSONFormatterOptions {
	return &JSONFormatterOptions{
		TimestampField: "time",
		LevelField:     "level",
		MessageField:   "message",
	}
}

func DefaultTxtFormatterOptions() *TxtFormatterOptions {
	return &TxtFormatterOptions{
		Template:        "{{FmtTime .Timestamp}} [{{ToUpper .Level}}]{{if .Category}} {{.Category}}{{end}} {{.Message}}{{if .Fields}} {{.Fields}}{{end}}",
		TimestampFormat: "2006-01-02 15:04:05.000",
	}
}

// FILE: src/internal/config/formatter.go
package config

// FormatterConfig describes how records are rendered before forwarding.
type FormatterConfig struct {
	// Formatter type: "json", "text", "raw"
	Format string `toml:"format"`

	// Ordered default keys applied to every JSON-formatted record.
	// Each entry names an output key and the record attribute it is
	// evaluated from.
	DefaultKeys []DefaultKeyConfig `toml:"default_keys"`

	// Remove keys whose value is the empty string before serialization
	PruneEmpty bool `toml:"prune_empty"`

	// Layout for the "asctime" attribute and the text formatter timestamp
	TimestampFormat string `toml:"timestamp_format"`

	// Template for the text formatter
	Template string `toml:"template"`
}

type DefaultKeyConfig struct {
	Key       string `toml:"key"`
	Attribute string `toml:"attribute"`
}

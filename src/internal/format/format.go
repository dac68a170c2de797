// FILE: src/internal/format/format.go
package format

import (
	"fmt"

	"hecship/src/internal/config"
	"hecship/src/internal/core"

	"github.com/lixenwraith/log"
)

// Formatter defines the interface for transforming a Record into a byte slice.
type Formatter interface {
	// Format takes a Record and returns the formatted log as a byte slice.
	Format(rec core.Record) ([]byte, error)

	// Name returns the formatter type name
	Name() string
}

// New creates a new Formatter based on the provided configuration.
func New(cfg *config.FormatterConfig, logger *log.Logger) (Formatter, error) {
	if cfg == nil {
		cfg = &config.FormatterConfig{}
	}

	name := cfg.Format
	if name == "" {
		name = "json"
	}

	switch name {
	case "json":
		return NewJSONFormatter(cfg, logger)
	case "text":
		return NewTextFormatter(cfg, logger)
	case "raw":
		return NewRawFormatter(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown formatter type: %s", name)
	}
}

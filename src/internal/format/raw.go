// FILE: src/internal/format/raw.go
package format

import (
	"encoding/json"

	"hecship/src/internal/config"
	"hecship/src/internal/core"

	"github.com/lixenwraith/log"
)

// Outputs the rendered message as-is with a newline
type RawFormatter struct {
	logger *log.Logger
}

// Creates a new raw formatter
func NewRawFormatter(cfg *config.FormatterConfig, logger *log.Logger) (*RawFormatter, error) {
	return &RawFormatter{
		logger: logger,
	}, nil
}

// Returns the message with a newline appended. Structured payloads are
// re-encoded since they have no single rendered form.
func (f *RawFormatter) Format(rec core.Record) ([]byte, error) {
	return append([]byte(renderMessage(rec)), '\n'), nil
}

// Returns the formatter name
func (f *RawFormatter) Name() string {
	return "raw"
}

// renderMessage gives the plain-text rendering of a record's payload.
func renderMessage(rec core.Record) string {
	if payload, ok := rec.Payload.(core.StructuredPayload); ok {
		if encoded, err := json.Marshal(map[string]any(payload)); err == nil {
			return string(encoded)
		}
	}
	return rec.Message
}

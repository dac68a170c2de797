// FILE: src/internal/core/record.go
package core

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Record represents a single log record on its way to the collector
type Record struct {
	Time    time.Time
	Logger  string
	Level   string
	Message string
	Payload Payload
}

// Payload is the rendered log payload, resolved once into either a
// structured mapping or plain text.
type Payload interface {
	payload()
}

// StructuredPayload is a JSON-object-shaped payload. Keys pass through
// to the formatted output as-is.
type StructuredPayload map[string]any

// TextPayload is a plain string payload.
type TextPayload string

func (StructuredPayload) payload() {}
func (TextPayload) payload()       {}

// ParsePayload resolves a rendered message into its payload variant.
// A message that decodes as a JSON object becomes a StructuredPayload,
// anything else is text. Numbers are kept as json.Number so integer
// values survive a round trip unchanged.
func ParsePayload(message string) Payload {
	trimmed := strings.TrimSpace(message)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return TextPayload(message)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(trimmed)))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return TextPayload(message)
	}
	// Trailing garbage after the object means it was not a JSON document
	if dec.More() {
		return TextPayload(message)
	}
	return StructuredPayload(m)
}

// NewRecord builds a record from a rendered message, resolving the
// payload variant. The Message field is kept only for text payloads;
// structured payloads carry their content in the mapping itself.
func NewRecord(t time.Time, logger, level, message string) Record {
	r := Record{
		Time:   t,
		Logger: logger,
		Level:  level,
	}
	switch p := ParsePayload(message).(type) {
	case StructuredPayload:
		r.Payload = p
	case TextPayload:
		r.Message = string(p)
		r.Payload = p
	}
	return r
}

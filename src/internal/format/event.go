// FILE: src/internal/format/event.go
package format

import (
	"bytes"
	"encoding/json"

	"hecship/src/internal/core"
)

// Event renders a record and wraps it as a forwardable event value.
// JSON formatter output passes through as a raw JSON document; other
// formatters ship their rendered text as a string.
func Event(f Formatter, rec core.Record) (any, error) {
	out, err := f.Format(rec)
	if err != nil {
		return nil, err
	}

	out = bytes.TrimRight(out, "\n")
	if f.Name() == "json" {
		return json.RawMessage(out), nil
	}
	return string(out), nil
}

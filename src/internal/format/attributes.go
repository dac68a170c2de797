// FILE: src/internal/format/attributes.go
package format

import (
	"fmt"
	"sort"
	"time"

	"hecship/src/internal/core"
)

// attributeFunc evaluates one record attribute for a default key.
type attributeFunc func(rec core.Record) any

// resolveAttribute maps an attribute name to its accessor. Unknown names
// fail here, at construction time, not at format time.
func resolveAttribute(name, timestampFormat string) (attributeFunc, error) {
	switch name {
	case "level", "levelname":
		return func(rec core.Record) any { return rec.Level }, nil
	case "name":
		return func(rec core.Record) any { return rec.Logger }, nil
	case "message":
		// Empty for structured payloads; the mapping carries its own keys
		return func(rec core.Record) any { return rec.Message }, nil
	case "asctime":
		layout := timestampFormat
		if layout == "" {
			layout = "2006-01-02 15:04:05"
		}
		return func(rec core.Record) any { return rec.Time.Format(layout) }, nil
	case "created":
		return func(rec core.Record) any {
			return float64(rec.Time.UnixNano()) / float64(time.Second)
		}, nil
	default:
		return nil, fmt.Errorf("unknown record attribute: %q (known: %v)", name, knownAttributes())
	}
}

func knownAttributes() []string {
	names := []string{"asctime", "created", "level", "levelname", "message", "name"}
	sort.Strings(names)
	return names
}

// FILE: src/internal/forwarder/envelope.go
package forwarder

import (
	"time"
)

// Overrides carries the optional per-event envelope fields. A nil field
// falls back to the forwarder default; a non-nil blank string suppresses
// the default and the field is omitted from the envelope entirely,
// letting the collector apply its own default.
type Overrides struct {
	Time       *time.Time
	Host       *string
	Source     *string
	SourceType *string
	Index      *string
}

// String is a convenience for building override fields at call sites.
func String(s string) *string {
	return &s
}

// envelope is the wire unit sent to the collector. Unresolved fields are
// omitted, never sent as null or empty string.
type envelope struct {
	Time       float64 `json:"time"`
	Host       string  `json:"host,omitempty"`
	Source     string  `json:"source,omitempty"`
	SourceType string  `json:"sourcetype,omitempty"`
	Index      string  `json:"index,omitempty"`
	Event      any     `json:"event"`
}

// resolveField applies the override → default → absent precedence.
func resolveField(override *string, def string) string {
	if override != nil {
		return *override
	}
	return def
}

// epochSeconds converts a wall-clock time to epoch seconds, keeping the
// fractional part.
func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

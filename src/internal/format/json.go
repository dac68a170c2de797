// FILE: src/internal/format/json.go
package format

import (
	"bytes"
	"encoding/json"
	"sort"

	"hecship/src/internal/config"
	"hecship/src/internal/core"

	"github.com/lixenwraith/log"
)

// JSONFormatter produces a single-line JSON document per record by merging
// the record's payload with the configured default keys.
type JSONFormatter struct {
	defaultKeys []defaultKey
	pruneEmpty  bool
	logger      *log.Logger
}

type defaultKey struct {
	key  string
	eval attributeFunc
}

// NewJSONFormatter creates a new JSON formatter from configuration options.
// Default key attributes are resolved against the known attribute set here,
// so a misnamed attribute fails construction instead of every format call.
func NewJSONFormatter(cfg *config.FormatterConfig, logger *log.Logger) (*JSONFormatter, error) {
	f := &JSONFormatter{
		pruneEmpty: cfg.PruneEmpty,
		logger:     logger,
	}

	for _, dk := range cfg.DefaultKeys {
		eval, err := resolveAttribute(dk.Attribute, cfg.TimestampFormat)
		if err != nil {
			return nil, err
		}
		f.defaultKeys = append(f.defaultKeys, defaultKey{key: dk.Key, eval: eval})
	}

	return f, nil
}

// Format transforms a single Record into a JSON byte slice.
func (f *JSONFormatter) Format(rec core.Record) ([]byte, error) {
	merged := newFieldMap()

	// Structured payloads pass their own keys through; text payloads
	// contribute nothing directly, only through default keys.
	if payload, ok := rec.Payload.(core.StructuredPayload); ok {
		keys := make([]string, 0, len(payload))
		for k := range payload {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			merged.set(k, payload[k])
		}
	}

	// Default keys are always evaluated. A same-named key from the
	// payload keeps its position but the default's value wins.
	for _, dk := range f.defaultKeys {
		merged.set(dk.key, dk.eval(rec))
	}

	out, err := merged.marshal(f.pruneEmpty)
	if err != nil {
		return nil, err
	}

	return append(out, '\n'), nil
}

// Name returns the formatter's type name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// fieldMap is a mapping that remembers insertion order. Setting an
// existing key replaces its value in place.
type fieldMap struct {
	keys   []string
	values map[string]any
}

func newFieldMap() *fieldMap {
	return &fieldMap{values: make(map[string]any)}
}

func (m *fieldMap) set(k string, v any) {
	if _, exists := m.values[k]; !exists {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

// marshal serializes the mapping as a compact JSON object in insertion
// order. With prune enabled, keys holding a literal empty string are
// dropped; zero, false, null and empty containers are kept.
func (m *fieldMap) marshal(prune bool) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	for _, k := range m.keys {
		v := m.values[k]
		if prune {
			if s, ok := v.(string); ok && s == "" {
				continue
			}
		}

		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, &core.SerializationError{Key: k, Err: err}
		}

		if !first {
			buf.WriteByte(',')
		}
		first = false

		name, _ := json.Marshal(k)
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(encoded)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FILE: src/internal/bridge/handler.go
package bridge

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"hecship/src/internal/config"
	"hecship/src/internal/core"
	"hecship/src/internal/format"
	"hecship/src/internal/forwarder"

	"github.com/lixenwraith/log"
)

// Reserved attribute keys that become envelope overrides instead of
// payload fields. They are only recognized at the top level, outside
// any group.
const (
	AttrHost       = "host"
	AttrSource     = "source"
	AttrSourceType = "sourcetype"
	AttrIndex      = "index"
)

// Options configures the slog bridge.
type Options struct {
	// Minimum level to forward; defaults to slog.LevelInfo
	Level slog.Leveler

	// Formatter for the event payload; defaults to a plain JSON
	// formatter. Raw and text formatters ship their rendered output
	// as a string event.
	Formatter format.Formatter

	// Logger name exposed to default keys as the "name" attribute
	LoggerName string

	// Called with the delivery error when a forward fails. The error
	// is reported, never propagated out of the logging call.
	OnError func(error)
}

// Handler is a slog.Handler that forwards every record to a HEC
// collector. Delivery failures are contained here: emitting a log record
// must never crash the caller.
type Handler struct {
	fwd       *forwarder.Forwarder
	formatter format.Formatter
	level     slog.Leveler
	name      string
	onError   func(error)
	logger    *log.Logger

	// Accumulated state from WithAttrs/WithGroup
	groups    []string
	extras    []extraField
	overrides forwarder.Overrides
}

type extraField struct {
	key   string
	value any
}

// NewHandler creates the bridge around an existing forwarder.
func NewHandler(fwd *forwarder.Forwarder, opts *Options, logger *log.Logger) (*Handler, error) {
	if opts == nil {
		opts = &Options{}
	}

	h := &Handler{
		fwd:       fwd,
		formatter: opts.Formatter,
		level:     opts.Level,
		name:      opts.LoggerName,
		onError:   opts.OnError,
		logger:    logger,
	}

	if h.level == nil {
		h.level = slog.LevelInfo
	}

	if h.formatter == nil {
		f, err := format.NewJSONFormatter(&config.FormatterConfig{PruneEmpty: true}, logger)
		if err != nil {
			return nil, err
		}
		h.formatter = f
	}

	return h, nil
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats the record and forwards it. Delivery errors are
// reported through the internal logger and the OnError callback;
// serialization errors are returned since they indicate a programming
// error at the call site.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	ov := h.overrides
	extras := make([]extraField, len(h.extras), len(h.extras)+r.NumAttrs())
	copy(extras, h.extras)

	r.Attrs(func(a slog.Attr) bool {
		extras = collectAttr(extras, &ov, h.groups, a)
		return true
	})

	if ov.Time == nil && !r.Time.IsZero() {
		t := r.Time
		ov.Time = &t
	}

	rec := h.buildRecord(r, extras)

	event, err := format.Event(h.formatter, rec)
	if err != nil {
		return err
	}

	if err := h.fwd.Forward(event, ov); err != nil {
		var deliveryErr *forwarder.DeliveryError
		if errors.As(err, &deliveryErr) {
			h.logger.Error("msg", "Failed to forward log record",
				"component", "bridge",
				"status_code", deliveryErr.StatusCode,
				"error", err)
			if h.onError != nil {
				h.onError(err)
			}
			return nil
		}
		return err
	}

	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	clone := *h
	clone.extras = make([]extraField, len(h.extras), len(h.extras)+len(attrs))
	copy(clone.extras, h.extras)

	for _, a := range attrs {
		clone.extras = collectAttr(clone.extras, &clone.overrides, h.groups, a)
	}
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.groups = make([]string, len(h.groups), len(h.groups)+1)
	copy(clone.groups, h.groups)
	clone.groups = append(clone.groups, name)
	return &clone
}

// buildRecord resolves the payload variant once: a JSON-object message
// becomes a structured payload, extra attrs fold into the mapping without
// overwriting the message's own keys.
func (h *Handler) buildRecord(r slog.Record, extras []extraField) core.Record {
	rec := core.NewRecord(r.Time, h.name, r.Level.String(), r.Message)
	if len(extras) == 0 {
		return rec
	}

	payload, ok := rec.Payload.(core.StructuredPayload)
	if !ok {
		payload = core.StructuredPayload{}
		if rec.Message != "" {
			payload["message"] = rec.Message
		}
		rec.Message = ""
	}

	for _, f := range extras {
		if _, exists := payload[f.key]; !exists {
			payload[f.key] = f.value
		}
	}

	rec.Payload = payload
	return rec
}

// collectAttr routes one attr either into the overrides (reserved keys at
// the top level) or into the extra payload fields, flattening groups with
// dotted keys.
func collectAttr(dst []extraField, ov *forwarder.Overrides, groups []string, a slog.Attr) []extraField {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		g := groups
		if a.Key != "" {
			g = append(append([]string{}, groups...), a.Key)
		}
		for _, ga := range a.Value.Group() {
			dst = collectAttr(dst, ov, g, ga)
		}
		return dst
	}

	if a.Key == "" {
		return dst
	}

	if len(groups) == 0 {
		switch a.Key {
		case AttrHost:
			ov.Host = forwarder.String(a.Value.String())
			return dst
		case AttrSource:
			ov.Source = forwarder.String(a.Value.String())
			return dst
		case AttrSourceType:
			ov.SourceType = forwarder.String(a.Value.String())
			return dst
		case AttrIndex:
			ov.Index = forwarder.String(a.Value.String())
			return dst
		}
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + a.Key
	}

	return append(dst, extraField{key: key, value: attrValue(a.Value)})
}

// attrValue converts a slog value into a JSON-friendly form.
func attrValue(v slog.Value) any {
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	case slog.KindDuration:
		return v.Duration().String()
	default:
		return v.Any()
	}
}

// FILE: src/internal/format/text.go
package format

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"hecship/src/internal/config"
	"hecship/src/internal/core"

	"github.com/lixenwraith/log"
)

// DefaultTextTemplate is used when no template is configured
const DefaultTextTemplate = "[{{FmtTime .Timestamp}}] [{{.Level}}] {{.Logger}} - {{.Message}}"

// Produces human-readable text output using templates
type TextFormatter struct {
	config   *config.FormatterConfig
	template *template.Template
	logger   *log.Logger
}

// Creates a new text formatter
func NewTextFormatter(cfg *config.FormatterConfig, logger *log.Logger) (*TextFormatter, error) {
	f := &TextFormatter{
		config: cfg,
		logger: logger,
	}

	// Create template with helper functions
	funcMap := template.FuncMap{
		"FmtTime": func(t time.Time) string {
			return t.Format(f.timestampFormat())
		},
		"ToUpper":   strings.ToUpper,
		"ToLower":   strings.ToLower,
		"TrimSpace": strings.TrimSpace,
	}

	text := cfg.Template
	if text == "" {
		text = DefaultTextTemplate
	}

	tmpl, err := template.New("log").Funcs(funcMap).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}

	f.template = tmpl
	return f, nil
}

// Formats the record using the template
func (f *TextFormatter) Format(rec core.Record) ([]byte, error) {
	data := map[string]any{
		"Timestamp": rec.Time,
		"Level":     rec.Level,
		"Logger":    rec.Logger,
		"Message":   renderMessage(rec),
	}

	// Set default level if empty
	if data["Level"] == "" {
		data["Level"] = "INFO"
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		// Fallback: return a basic formatted message
		f.logger.Debug("msg", "Template execution failed, using fallback",
			"component", "text_formatter",
			"error", err)

		fallback := fmt.Sprintf("[%s] [%s] %s - %s\n",
			rec.Time.Format(f.timestampFormat()),
			strings.ToUpper(rec.Level),
			rec.Logger,
			renderMessage(rec))
		return []byte(fallback), nil
	}

	// Ensure newline at end
	result := buf.Bytes()
	if len(result) == 0 || result[len(result)-1] != '\n' {
		result = append(result, '\n')
	}

	return result, nil
}

// Returns the formatter name
func (f *TextFormatter) Name() string {
	return "text"
}

func (f *TextFormatter) timestampFormat() string {
	if f.config.TimestampFormat != "" {
		return f.config.TimestampFormat
	}
	return "2006-01-02 15:04:05"
}

// FILE: src/internal/filter/filter_test.go
package filter

import (
	"testing"
	"time"

	"hecship/src/internal/config"
	"hecship/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func record(logger, level, message string) core.Record {
	return core.Record{
		Time:    time.Now(),
		Logger:  logger,
		Level:   level,
		Message: message,
	}
}

func TestNewFilter(t *testing.T) {
	logger := newTestLogger()

	t.Run("SuccessWithDefaults", func(t *testing.T) {
		cfg := config.FilterConfig{Patterns: []string{"test"}}
		f, err := NewFilter(cfg, logger)
		assert.NoError(t, err)
		assert.NotNil(t, f)
		assert.Equal(t, config.FilterTypeInclude, f.config.Type)
		assert.Equal(t, config.FilterLogicOr, f.config.Logic)
	})

	t.Run("SuccessWithCustomConfig", func(t *testing.T) {
		cfg := config.FilterConfig{
			Type:     config.FilterTypeExclude,
			Logic:    config.FilterLogicAnd,
			Patterns: []string{"test", "pattern"},
		}
		f, err := NewFilter(cfg, logger)
		assert.NoError(t, err)
		assert.NotNil(t, f)
		assert.Equal(t, config.FilterTypeExclude, f.config.Type)
		assert.Equal(t, config.FilterLogicAnd, f.config.Logic)
		assert.Len(t, f.patterns, 2)
	})

	t.Run("ErrorInvalidRegex", func(t *testing.T) {
		cfg := config.FilterConfig{Patterns: []string{"["}}
		f, err := NewFilter(cfg, logger)
		assert.Error(t, err)
		assert.Nil(t, f)
		assert.Contains(t, err.Error(), "invalid regex pattern")
	})
}

func TestFilter_Apply(t *testing.T) {
	logger := newTestLogger()

	testCases := []struct {
		name     string
		cfg      config.FilterConfig
		rec      core.Record
		expected bool
	}{
		// Include OR logic
		{
			name:     "IncludeOR_MatchOne",
			cfg:      config.FilterConfig{Type: config.FilterTypeInclude, Logic: config.FilterLogicOr, Patterns: []string{"timeout", "refused"}},
			rec:      record("", "", "upstream timeout after 30s"),
			expected: true,
		},
		{
			name:     "IncludeOR_NoMatch",
			cfg:      config.FilterConfig{Type: config.FilterTypeInclude, Logic: config.FilterLogicOr, Patterns: []string{"timeout", "refused"}},
			rec:      record("", "", "request completed"),
			expected: false,
		},
		// Include AND logic
		{
			name:     "IncludeAND_MatchAll",
			cfg:      config.FilterConfig{Type: config.FilterTypeInclude, Logic: config.FilterLogicAnd, Patterns: []string{"database", "retry"}},
			rec:      record("", "", "database retry scheduled"),
			expected: true,
		},
		{
			name:     "IncludeAND_MatchOne",
			cfg:      config.FilterConfig{Type: config.FilterTypeInclude, Logic: config.FilterLogicAnd, Patterns: []string{"database", "retry"}},
			rec:      record("", "", "database connection opened"),
			expected: false,
		},
		// Exclude OR logic
		{
			name:     "ExcludeOR_MatchOne",
			cfg:      config.FilterConfig{Type: config.FilterTypeExclude, Logic: config.FilterLogicOr, Patterns: []string{"healthz", "readyz"}},
			rec:      record("", "", "GET /healthz 200"),
			expected: false,
		},
		{
			name:     "ExcludeOR_NoMatch",
			cfg:      config.FilterConfig{Type: config.FilterTypeExclude, Logic: config.FilterLogicOr, Patterns: []string{"healthz", "readyz"}},
			rec:      record("", "", "GET /orders 200"),
			expected: true,
		},
		// Exclude AND logic
		{
			name:     "ExcludeAND_MatchAll",
			cfg:      config.FilterConfig{Type: config.FilterTypeExclude, Logic: config.FilterLogicAnd, Patterns: []string{"debug", "cache"}},
			rec:      record("", "", "debug cache lookup miss"),
			expected: false,
		},
		{
			name:     "ExcludeAND_MatchOne",
			cfg:      config.FilterConfig{Type: config.FilterTypeExclude, Logic: config.FilterLogicAnd, Patterns: []string{"debug", "cache"}},
			rec:      record("", "", "debug startup sequence"),
			expected: true,
		},
		// Level and logger name participate in matching
		{
			name:     "MatchesLevel",
			cfg:      config.FilterConfig{Type: config.FilterTypeInclude, Patterns: []string{"^ERROR"}},
			rec:      record("", "ERROR", "disk full"),
			expected: true,
		},
		{
			name:     "MatchesLoggerName",
			cfg:      config.FilterConfig{Type: config.FilterTypeInclude, Patterns: []string{"^payments"}},
			rec:      record("payments", "INFO", "charge settled"),
			expected: true,
		},
		// Edge cases
		{
			name:     "NoPatterns",
			cfg:      config.FilterConfig{Type: config.FilterTypeInclude, Patterns: []string{}},
			rec:      record("", "", "any message"),
			expected: true,
		},
		{
			name:     "EmptyMessage",
			cfg:      config.FilterConfig{Type: config.FilterTypeInclude, Patterns: []string{"x"}},
			rec:      record("", "", ""),
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := NewFilter(tc.cfg, logger)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, f.Apply(tc.rec))
		})
	}
}

func TestFilter_UpdatePatterns(t *testing.T) {
	logger := newTestLogger()

	f, err := NewFilter(config.FilterConfig{Patterns: []string{"old"}}, logger)
	assert.NoError(t, err)
	assert.True(t, f.Apply(record("", "", "old style")))

	t.Run("ReplacesPatterns", func(t *testing.T) {
		err := f.UpdatePatterns([]string{"new"})
		assert.NoError(t, err)
		assert.False(t, f.Apply(record("", "", "old style")))
		assert.True(t, f.Apply(record("", "", "new style")))
	})

	t.Run("RejectsInvalidAndKeepsCurrent", func(t *testing.T) {
		err := f.UpdatePatterns([]string{"new", "["})
		assert.Error(t, err)
		assert.True(t, f.Apply(record("", "", "new style")))
	})
}

func TestFilter_GetStats(t *testing.T) {
	logger := newTestLogger()

	f, err := NewFilter(config.FilterConfig{
		Type:     config.FilterTypeInclude,
		Patterns: []string{"keep"},
	}, logger)
	assert.NoError(t, err)

	f.Apply(record("", "", "keep this"))
	f.Apply(record("", "", "drop this"))

	stats := f.GetStats()
	assert.Equal(t, uint64(2), stats["total_processed"])
	assert.Equal(t, uint64(1), stats["total_matched"])
	assert.Equal(t, uint64(1), stats["total_dropped"])
}

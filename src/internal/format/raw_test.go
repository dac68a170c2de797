// FILE: src/internal/format/raw_test.go
package format

import (
	"testing"
	"time"

	"hecship/src/internal/config"
	"hecship/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawFormatter_Format(t *testing.T) {
	logger := newTestLogger()
	formatter, err := NewRawFormatter(&config.FormatterConfig{}, logger)
	require.NoError(t, err)

	t.Run("TextPassthrough", func(t *testing.T) {
		rec := core.NewRecord(time.Now(), "stdin", "INFO", "plain log line")
		output, err := formatter.Format(rec)
		require.NoError(t, err)
		assert.Equal(t, "plain log line\n", string(output))
	})

	t.Run("StructuredReencoded", func(t *testing.T) {
		rec := core.NewRecord(time.Now(), "stdin", "INFO", `{"user": "test"}`)
		output, err := formatter.Format(rec)
		require.NoError(t, err)
		assert.Equal(t, `{"user":"test"}`+"\n", string(output))
	})
}

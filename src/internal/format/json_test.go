// FILE: src/internal/format/json_test.go
package format

import (
	"errors"
	"strings"
	"testing"
	"time"

	"hecship/src/internal/config"
	"hecship/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(t *testing.T, message string) core.Record {
	t.Helper()
	return core.NewRecord(
		time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC),
		"root", "INFO", message)
}

func defaultKeys(pairs ...string) []config.DefaultKeyConfig {
	var keys []config.DefaultKeyConfig
	for i := 0; i < len(pairs); i += 2 {
		keys = append(keys, config.DefaultKeyConfig{Key: pairs[i], Attribute: pairs[i+1]})
	}
	return keys
}

func TestJSONFormatter_Format(t *testing.T) {
	logger := newTestLogger()

	t.Run("TextMessageNoDefaultKeys", func(t *testing.T) {
		formatter, err := NewJSONFormatter(&config.FormatterConfig{PruneEmpty: true}, logger)
		require.NoError(t, err)

		output, err := formatter.Format(newRecord(t, "hello world"))
		require.NoError(t, err)

		// message only appears when configured as a default key
		assert.Equal(t, "{}\n", string(output))
	})

	t.Run("TextMessageWithDefaultKeys", func(t *testing.T) {
		formatter, err := NewJSONFormatter(&config.FormatterConfig{
			DefaultKeys: defaultKeys("level", "levelname", "name", "name"),
			PruneEmpty:  true,
		}, logger)
		require.NoError(t, err)

		output, err := formatter.Format(newRecord(t, "hello world"))
		require.NoError(t, err)

		assert.Equal(t, `{"level":"INFO","name":"root"}`+"\n", string(output))
	})

	t.Run("TextMessageWithMessageKey", func(t *testing.T) {
		formatter, err := NewJSONFormatter(&config.FormatterConfig{
			DefaultKeys: defaultKeys("level", "levelname", "name", "name", "message", "message"),
			PruneEmpty:  true,
		}, logger)
		require.NoError(t, err)

		output, err := formatter.Format(newRecord(t, "hello world"))
		require.NoError(t, err)

		assert.Equal(t, `{"level":"INFO","name":"root","message":"hello world"}`+"\n", string(output))
	})

	t.Run("MappingMessagePassesThrough", func(t *testing.T) {
		formatter, err := NewJSONFormatter(&config.FormatterConfig{
			DefaultKeys: defaultKeys("level", "levelname", "name", "name"),
			PruneEmpty:  true,
		}, logger)
		require.NoError(t, err)

		output, err := formatter.Format(newRecord(t, `{"a": 1, "b": 2, "c": ""}`))
		require.NoError(t, err)

		assert.Equal(t, `{"a":1,"b":2,"level":"INFO","name":"root"}`+"\n", string(output))
	})

	t.Run("MappingMessagePruneDisabled", func(t *testing.T) {
		formatter, err := NewJSONFormatter(&config.FormatterConfig{
			DefaultKeys: defaultKeys("level", "levelname", "name", "name"),
			PruneEmpty:  false,
		}, logger)
		require.NoError(t, err)

		output, err := formatter.Format(newRecord(t, `{"a": 1, "b": 2, "c": ""}`))
		require.NoError(t, err)

		assert.Equal(t, `{"a":1,"b":2,"c":"","level":"INFO","name":"root"}`+"\n", string(output))
	})

	t.Run("MappingMessageEmptyMessageKeyPruned", func(t *testing.T) {
		// The message attribute renders empty for structured payloads,
		// so a configured message key disappears under pruning.
		formatter, err := NewJSONFormatter(&config.FormatterConfig{
			DefaultKeys: defaultKeys("level", "levelname", "name", "name", "message", "message"),
			PruneEmpty:  true,
		}, logger)
		require.NoError(t, err)

		output, err := formatter.Format(newRecord(t, `{"a": 1, "b": 2}`))
		require.NoError(t, err)

		assert.Equal(t, `{"a":1,"b":2,"level":"INFO","name":"root"}`+"\n", string(output))
	})

	t.Run("MappingMessageEmptyMessageKeyKept", func(t *testing.T) {
		formatter, err := NewJSONFormatter(&config.FormatterConfig{
			DefaultKeys: defaultKeys("level", "levelname", "name", "name", "message", "message"),
			PruneEmpty:  false,
		}, logger)
		require.NoError(t, err)

		output, err := formatter.Format(newRecord(t, `{"a": 1, "b": 2}`))
		require.NoError(t, err)

		assert.Equal(t, `{"a":1,"b":2,"level":"INFO","name":"root","message":""}`+"\n", string(output))
	})

	t.Run("DefaultKeyOverwritesInPlace", func(t *testing.T) {
		// The payload key keeps its position, the default's value wins
		formatter, err := NewJSONFormatter(&config.FormatterConfig{
			DefaultKeys: defaultKeys("name", "name", "level", "levelname"),
			PruneEmpty:  true,
		}, logger)
		require.NoError(t, err)

		output, err := formatter.Format(newRecord(t, `{"hello": "world", "name": "qwer"}`))
		require.NoError(t, err)

		assert.Equal(t, `{"hello":"world","name":"root","level":"INFO"}`+"\n", string(output))
	})

	t.Run("PruningOnlyRemovesEmptyStrings", func(t *testing.T) {
		formatter, err := NewJSONFormatter(&config.FormatterConfig{PruneEmpty: true}, logger)
		require.NoError(t, err)

		output, err := formatter.Format(newRecord(t,
			`{"zero": 0, "no": false, "null": null, "list": [], "obj": {}, "gone": ""}`))
		require.NoError(t, err)

		out := string(output)
		assert.Contains(t, out, `"zero":0`)
		assert.Contains(t, out, `"no":false`)
		assert.Contains(t, out, `"null":null`)
		assert.Contains(t, out, `"list":[]`)
		assert.Contains(t, out, `"obj":{}`)
		assert.NotContains(t, out, "gone")
	})

	t.Run("AsctimeAndCreated", func(t *testing.T) {
		formatter, err := NewJSONFormatter(&config.FormatterConfig{
			DefaultKeys:     defaultKeys("time", "asctime", "created", "created"),
			TimestampFormat: "2006-01-02 15:04:05",
			PruneEmpty:      true,
		}, logger)
		require.NoError(t, err)

		output, err := formatter.Format(newRecord(t, "x"))
		require.NoError(t, err)

		assert.Contains(t, string(output), `"time":"2023-01-01 12:00:00"`)
		assert.Contains(t, string(output), `"created":1672574400`)
	})

	t.Run("SingleLineOutput", func(t *testing.T) {
		formatter, err := NewJSONFormatter(&config.FormatterConfig{
			DefaultKeys: defaultKeys("level", "levelname"),
			PruneEmpty:  true,
		}, logger)
		require.NoError(t, err)

		output, err := formatter.Format(newRecord(t, `{"a": "b\nc"}`))
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(string(output), "\n"))
		assert.Equal(t, 1, strings.Count(string(output), "\n"))
	})

	t.Run("UnknownAttributeFailsConstruction", func(t *testing.T) {
		formatter, err := NewJSONFormatter(&config.FormatterConfig{
			DefaultKeys: defaultKeys("level", "severity"),
		}, logger)
		assert.Error(t, err)
		assert.Nil(t, formatter)
		assert.Contains(t, err.Error(), "unknown record attribute")
	})

	t.Run("UnserializableValue", func(t *testing.T) {
		formatter, err := NewJSONFormatter(&config.FormatterConfig{PruneEmpty: true}, logger)
		require.NoError(t, err)

		rec := core.Record{
			Time:    time.Now(),
			Level:   "INFO",
			Payload: core.StructuredPayload{"bad": make(chan int)},
		}

		output, err := formatter.Format(rec)
		require.Error(t, err)
		assert.Nil(t, output)

		var serErr *core.SerializationError
		require.True(t, errors.As(err, &serErr))
		assert.Equal(t, "bad", serErr.Key)
	})
}

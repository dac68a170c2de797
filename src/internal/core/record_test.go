// FILE: src/internal/core/record_test.go
package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload(t *testing.T) {
	testCases := []struct {
		name       string
		message    string
		structured bool
	}{
		{name: "PlainText", message: "hello world", structured: false},
		{name: "Empty", message: "", structured: false},
		{name: "JSONObject", message: `{"a": 1}`, structured: true},
		{name: "JSONObjectWithWhitespace", message: `  {"a": 1}  `, structured: true},
		{name: "JSONArray", message: `[1, 2]`, structured: false},
		{name: "JSONNumber", message: `42`, structured: false},
		{name: "MalformedObject", message: `{"a": `, structured: false},
		{name: "ObjectWithTrailingGarbage", message: `{"a": 1} extra`, structured: false},
		{name: "BraceButNotJSON", message: "{not json}", structured: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload := ParsePayload(tc.message)
			if tc.structured {
				assert.IsType(t, StructuredPayload{}, payload)
			} else {
				assert.Equal(t, TextPayload(tc.message), payload)
			}
		})
	}
}

func TestParsePayload_PreservesNumbers(t *testing.T) {
	payload := ParsePayload(`{"count": 9007199254740993}`)
	structured, ok := payload.(StructuredPayload)
	require.True(t, ok)

	num, ok := structured["count"].(json.Number)
	require.True(t, ok, "numbers should decode as json.Number")
	assert.Equal(t, "9007199254740993", num.String())
}

func TestNewRecord(t *testing.T) {
	now := time.Now()

	t.Run("TextMessage", func(t *testing.T) {
		rec := NewRecord(now, "root", "INFO", "hello")
		assert.Equal(t, "hello", rec.Message)
		assert.Equal(t, TextPayload("hello"), rec.Payload)
	})

	t.Run("StructuredMessage", func(t *testing.T) {
		rec := NewRecord(now, "root", "INFO", `{"a": 1}`)
		assert.Empty(t, rec.Message, "structured payloads carry no rendered message")
		assert.IsType(t, StructuredPayload{}, rec.Payload)
	})
}

// FILE: src/internal/filter/chain_test.go
package filter

import (
	"testing"

	"hecship/src/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestNewChain(t *testing.T) {
	logger := newTestLogger()

	t.Run("EmptyChain", func(t *testing.T) {
		chain, err := NewChain(nil, logger)
		assert.NoError(t, err)
		assert.NotNil(t, chain)
		assert.Empty(t, chain.filters)
	})

	t.Run("MultipleFilters", func(t *testing.T) {
		configs := []config.FilterConfig{
			{Type: config.FilterTypeInclude, Patterns: []string{"app"}},
			{Type: config.FilterTypeExclude, Patterns: []string{"debug"}},
		}
		chain, err := NewChain(configs, logger)
		assert.NoError(t, err)
		assert.Len(t, chain.filters, 2)
	})

	t.Run("ErrorPropagatesWithIndex", func(t *testing.T) {
		configs := []config.FilterConfig{
			{Patterns: []string{"valid"}},
			{Patterns: []string{"["}},
		}
		chain, err := NewChain(configs, logger)
		assert.Error(t, err)
		assert.Nil(t, chain)
		assert.Contains(t, err.Error(), "filter[1]")
	})
}

func TestChain_Apply(t *testing.T) {
	logger := newTestLogger()

	t.Run("EmptyChainPassesAll", func(t *testing.T) {
		chain, err := NewChain(nil, logger)
		assert.NoError(t, err)
		assert.True(t, chain.Apply(record("", "", "anything")))
	})

	t.Run("AllFiltersMustPass", func(t *testing.T) {
		configs := []config.FilterConfig{
			{Type: config.FilterTypeInclude, Patterns: []string{"request"}},
			{Type: config.FilterTypeExclude, Patterns: []string{"healthz"}},
		}
		chain, err := NewChain(configs, logger)
		assert.NoError(t, err)

		assert.True(t, chain.Apply(record("", "", "request GET /orders")))
		assert.False(t, chain.Apply(record("", "", "request GET /healthz")))
		assert.False(t, chain.Apply(record("", "", "unrelated line")))
	})
}

func TestChain_GetStats(t *testing.T) {
	logger := newTestLogger()

	chain, err := NewChain([]config.FilterConfig{
		{Type: config.FilterTypeInclude, Patterns: []string{"keep"}},
	}, logger)
	assert.NoError(t, err)

	chain.Apply(record("", "", "keep this"))
	chain.Apply(record("", "", "drop this"))

	stats := chain.GetStats()
	assert.Equal(t, 1, stats["filter_count"])
	assert.Equal(t, uint64(2), stats["total_processed"])
	assert.Equal(t, uint64(1), stats["total_passed"])

	filterStats, ok := stats["filters"].([]map[string]any)
	assert.True(t, ok)
	assert.Len(t, filterStats, 1)
}

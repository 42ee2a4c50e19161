package discounts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "discounts.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func resetEngine() {
	engineInstance = nil
}

func TestNewEngine(t *testing.T) {
	t.Run("loads valid config", func(t *testing.T) {
		resetEngine()
		path := writeConfig(t, `{"codes":{"SD10":{"label":"Seasonal","percent":10,"active":true}}}`)
		engine, err := NewEngine(path)
		require.NoError(t, err)
		require.NotNil(t, engine)
		assert.Same(t, engine, GetEngine())
	})

	t.Run("rejects empty code table", func(t *testing.T) {
		resetEngine()
		path := writeConfig(t, `{"codes":{}}`)
		_, err := NewEngine(path)
		assert.Error(t, err)
	})

	t.Run("rejects percent out of range", func(t *testing.T) {
		resetEngine()
		path := writeConfig(t, `{"codes":{"BAD":{"label":"x","percent":150,"active":true}}}`)
		_, err := NewEngine(path)
		assert.Error(t, err)
	})

	t.Run("rejects entry with neither label nor percent", func(t *testing.T) {
		resetEngine()
		path := writeConfig(t, `{"codes":{"EMPTY":{"active":true}}}`)
		_, err := NewEngine(path)
		assert.Error(t, err)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		resetEngine()
		_, err := NewEngine(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
}

func TestResolve(t *testing.T) {
	resetEngine()
	path := writeConfig(t, `{"codes":{
		"SD10":{"label":"Seasonal","percent":10,"active":true},
		"P20":{"percent":20,"active":true},
		"ND":{"label":"Net price","active":true},
		"OLD":{"label":"Retired","percent":5,"active":false}
	}}`)
	engine, err := NewEngine(path)
	require.NoError(t, err)

	t.Run("label plus percent", func(t *testing.T) {
		got, ok := engine.Resolve("SD10")
		require.True(t, ok)
		assert.Equal(t, "Seasonal (10% off)", got)
	})

	t.Run("percent only", func(t *testing.T) {
		got, ok := engine.Resolve("P20")
		require.True(t, ok)
		assert.Equal(t, "20% off", got)
	})

	t.Run("label only", func(t *testing.T) {
		got, ok := engine.Resolve("ND")
		require.True(t, ok)
		assert.Equal(t, "Net price", got)
	})

	t.Run("inactive code resolves to nothing", func(t *testing.T) {
		_, ok := engine.Resolve("OLD")
		assert.False(t, ok)
	})

	t.Run("unknown code resolves to nothing", func(t *testing.T) {
		_, ok := engine.Resolve("MISSING")
		assert.False(t, ok)
	})

	t.Run("nil engine is safe", func(t *testing.T) {
		var nilEngine *Engine
		_, ok := nilEngine.Resolve("SD10")
		assert.False(t, ok)
	})
}

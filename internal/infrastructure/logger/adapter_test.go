package logger

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerAdapter_WritesJSONLines(t *testing.T) {
	dir := t.TempDir()

	log, err := NewLoggerAdapter(dir, false)
	require.NoError(t, err)

	log.WithField("step", 1).Info("Tool completed", "name", "search")
	log.Debug("hidden at info level")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(log.Path())
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, `"msg":"Tool completed"`)
	assert.Contains(t, content, `"name":"search"`)
	assert.Contains(t, content, `"step":1`)
	assert.Contains(t, content, `"timestamp"`)
	assert.NotContains(t, content, "hidden at info level")
}

func TestLoggerAdapter_VerboseEnablesDebug(t *testing.T) {
	dir := t.TempDir()

	log, err := NewLoggerAdapter(dir, true)
	require.NoError(t, err)

	log.WithFields(map[string]any{"query": "eiffel"}).Debug("Starting step")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(log.Path())
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"query":"eiffel"`))
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Info("ignored")
	assert.Empty(t, log.Path())
}

package tool

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveTool_AppendsWithTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "research_output.txt")
	save := NewSaveTool(path)
	save.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) }

	out, err := save.Call(context.Background(), "test content")
	require.NoError(t, err)
	assert.Equal(t, "Data successfully saved to "+path, out)

	first, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(first), "test content\n\n"))
	assert.Contains(t, string(first), "--- Research Output ---\nTimestamp: 2024-05-01 09:30:00\n")

	_, err = save.Call(context.Background(), "second entry")
	require.NoError(t, err)

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Greater(t, len(second), len(first))
	assert.True(t, strings.HasPrefix(string(second), string(first)), "existing content must be kept")
	assert.Equal(t, 2, strings.Count(string(second), "--- Research Output ---"))
	assert.Contains(t, string(second), "second entry")
}

func TestSaveTool_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultSaveFile, NewSaveTool("").path)
}

func TestSaveTool_UnwritablePath(t *testing.T) {
	save := NewSaveTool(filepath.Join(t.TempDir(), "missing", "dir", "out.txt"))
	_, err := save.Call(context.Background(), "x")
	assert.Error(t, err)
}

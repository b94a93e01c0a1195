package userinteraction

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestConsoleProgress(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	p := NewConsoleProgress(&buf)
	ctx := context.Background()

	p.ShowStep(ctx, 2, 15)
	p.ShowThinking(ctx, "")
	p.ShowToolStart(ctx, "search", "eiffel tower height")
	p.ShowToolResult(ctx, "search", "Title: A\nURL: a\n\nTitle: B\nURL: b\n", false)
	p.ShowToolResult(ctx, "calculator", "calculator is not a valid tool", true)

	out := buf.String()
	assert.Contains(t, out, "Step 2/15")
	assert.NotContains(t, out, "Thought:")
	assert.Contains(t, out, "Web search")
	assert.Contains(t, out, "Query: eiffel tower height")
	assert.Contains(t, out, "✓ 2 results")
	assert.Contains(t, out, "✗ Error: calculator is not a valid tool")
}

func TestFormatToolResult(t *testing.T) {
	assert.Equal(t, "Page: Eiffel Tower", formatToolResult("wikipedia", "Page: Eiffel Tower\nSummary: ..."))
	assert.Equal(t, "Data successfully saved to out.txt", formatToolResult("save_text_to_file", "Data successfully saved to out.txt"))
	assert.Equal(t, "No good search result found", formatToolResult("search", "No good search result found"))

	long := strings.Repeat("a", 150)
	assert.Equal(t, long[:100]+"...", formatToolResult("other", long))
}

func TestFormatToolInput(t *testing.T) {
	assert.Equal(t, "Page: Paris", formatToolInput("wikipedia", "Paris"))
	assert.Equal(t, "12 characters", formatToolInput("save_text_to_file", "test content"))
	assert.Empty(t, formatToolInput("search", ""))
}

func TestTruncate_KeepsRunesWhole(t *testing.T) {
	got := truncate("x"+strings.Repeat("é", 200), 100)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "x"+strings.Repeat("é", 49)+"...", got)
}

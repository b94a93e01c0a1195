package userinteraction

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
)

var _ output.ProgressPort = (*ConsoleProgress)(nil)

// ConsoleProgress prints agent steps and tool activity.
type ConsoleProgress struct {
	w io.Writer
}

func NewConsoleProgress(w io.Writer) *ConsoleProgress {
	if w == nil {
		w = os.Stderr
	}
	return &ConsoleProgress{w: w}
}

func (p *ConsoleProgress) ShowStep(ctx context.Context, step, maxSteps int) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(p.w, "\n━━━ Step %d/%d ━━━\n", step, maxSteps)
}

func (p *ConsoleProgress) ShowThinking(ctx context.Context, content string) {
	if content == "" {
		return
	}

	blue := color.New(color.FgBlue)
	blue.Fprint(p.w, "Thought: ")

	dim := color.New(color.Faint)
	dim.Fprintln(p.w, truncate(content, 500))
}

func (p *ConsoleProgress) ShowToolStart(ctx context.Context, toolName, input string) {
	icon, name := toolDisplay(toolName)

	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Fprintf(p.w, "%s %s\n", icon, name)

	if summary := formatToolInput(toolName, input); summary != "" {
		dim := color.New(color.Faint)
		dim.Fprintf(p.w, "   %s\n", summary)
	}
}

func (p *ConsoleProgress) ShowToolResult(ctx context.Context, toolName, result string, isError bool) {
	if isError {
		red := color.New(color.FgRed)
		red.Fprint(p.w, "✗ Error: ")

		dim := color.New(color.Faint)
		dim.Fprintln(p.w, truncate(result, 300))
		return
	}

	green := color.New(color.FgGreen)
	green.Fprintf(p.w, "✓ %s\n", formatToolResult(toolName, result))
}

func toolDisplay(toolName string) (string, string) {
	switch entity.ToolName(toolName) {
	case entity.ToolSearch:
		return "🔎", "Web search"
	case entity.ToolWikipedia:
		return "📖", "Wikipedia"
	case entity.ToolSave:
		return "💾", "Save to file"
	}
	return "🔧", toolName
}

func formatToolInput(toolName, input string) string {
	if input == "" {
		return ""
	}
	switch entity.ToolName(toolName) {
	case entity.ToolSearch:
		return "Query: " + truncate(input, 80)
	case entity.ToolWikipedia:
		return "Page: " + truncate(input, 80)
	case entity.ToolSave:
		return fmt.Sprintf("%d characters", len(input))
	}
	return truncate(input, 80)
}

func formatToolResult(toolName, result string) string {
	switch entity.ToolName(toolName) {
	case entity.ToolSearch:
		if n := strings.Count(result, "Title: "); n > 0 {
			return fmt.Sprintf("%d results", n)
		}
	case entity.ToolWikipedia:
		first, _, _ := strings.Cut(result, "\n")
		return truncate(first, 100)
	case entity.ToolSave:
		return result
	}
	return truncate(result, 100)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	n := maxLen
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

package output

import "context"

// ProgressPort receives agent loop events for display.
type ProgressPort interface {
	ShowStep(ctx context.Context, step, maxSteps int)
	ShowThinking(ctx context.Context, content string)
	ShowToolStart(ctx context.Context, toolName, input string)
	ShowToolResult(ctx context.Context, toolName, result string, isError bool)
}

package input

import (
	"context"

	"research-agent/internal/domain/entity"
)

type ExecuteResult struct {
	FinalAnswer string
	Steps       int
	Invocations []entity.ToolInvocation
	// Stopped is set when the step limit ended the run instead of a final answer.
	Stopped bool
}

// ToolsUsed returns invoked tool names in first-use order, without duplicates.
func (r *ExecuteResult) ToolsUsed() []string {
	seen := make(map[entity.ToolName]bool, len(r.Invocations))
	names := make([]string, 0, len(r.Invocations))
	for _, inv := range r.Invocations {
		if seen[inv.Name] {
			continue
		}
		seen[inv.Name] = true
		names = append(names, inv.Name.String())
	}
	return names
}

type ResearchExecutor interface {
	Execute(ctx context.Context, query string) (*ExecuteResult, error)
}

package tool

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/tools"

	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
)

var _ output.ToolPort = (*LangchainTool)(nil)

// LangchainTool exposes a string-in/string-out langchaingo tool to the
// tool-calling loop under a fixed name.
type LangchainTool struct {
	name   entity.ToolName
	tool   tools.Tool
	logger output.LoggerPort
}

func NewLangchainTool(name entity.ToolName, tool tools.Tool, logger output.LoggerPort) *LangchainTool {
	return &LangchainTool{name: name, tool: tool, logger: logger}
}

func (t *LangchainTool) Name() entity.ToolName {
	return t.name
}

func (t *LangchainTool) Description() string {
	return t.tool.Description()
}

func (t *LangchainTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"input": map[string]interface{}{
				"type":        "string",
				"description": "Input passed to the tool as plain text",
			},
		},
		"required": []string{"input"},
	}
}

func (t *LangchainTool) Execute(ctx context.Context, arguments string) (string, error) {
	input, err := entity.DecodeToolInput(arguments)
	if err != nil {
		return "", err
	}
	return t.Invoke(ctx, input)
}

// Invoke calls the wrapped tool with an already decoded input.
func (t *LangchainTool) Invoke(ctx context.Context, input string) (string, error) {
	if t.logger != nil {
		t.logger.Debug("Invoking tool", "name", t.name, "input", input)
	}

	result, err := t.tool.Call(ctx, input)
	if err != nil {
		return "", fmt.Errorf("%s: %w", t.name, err)
	}
	return result, nil
}

package entity

import (
	"encoding/json"
	"fmt"
	"strings"
)

type ToolName string

const (
	ToolSearch    ToolName = "search"
	ToolWikipedia ToolName = "wikipedia"
	ToolSave      ToolName = "save_text_to_file"
)

func (t ToolName) String() string {
	return string(t)
}

// ToolInvocation is one entry of the agent scratchpad: which tool ran, with
// what input, and what it returned.
type ToolInvocation struct {
	Name   ToolName
	Input  string
	Output string
}

// DecodeToolInput accepts {"input": "..."}, any object with a single string
// field, a JSON string, or raw text.
func DecodeToolInput(arguments string) (string, error) {
	trimmed := strings.TrimSpace(arguments)
	if trimmed == "" {
		return "", nil
	}

	switch trimmed[0] {
	case '{':
		var fields map[string]interface{}
		if err := json.Unmarshal([]byte(trimmed), &fields); err != nil {
			return "", fmt.Errorf("invalid input format: %w", err)
		}
		if v, ok := fields["input"]; ok {
			s, ok := v.(string)
			if !ok {
				return "", fmt.Errorf("input must be a string, got %T", v)
			}
			return s, nil
		}
		if len(fields) == 1 {
			for _, v := range fields {
				if s, ok := v.(string); ok {
					return s, nil
				}
			}
		}
		return "", fmt.Errorf("input parameter is required")
	case '"':
		var s string
		if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
			return "", fmt.Errorf("invalid input format: %w", err)
		}
		return s, nil
	default:
		return arguments, nil
	}
}

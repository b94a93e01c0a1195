package output

import (
	"context"
	"errors"

	"research-agent/internal/domain/entity"
)

// ErrNoChoices is returned when the model reply carries no message.
var ErrNoChoices = errors.New("no choices in response")

type LLMPort interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// ChatRequest without Tools is a plain completion.
type ChatRequest struct {
	Messages    []entity.Message
	Tools       []entity.ToolDefinition
	Temperature float32
}

type ChatResponse struct {
	Message entity.Message
}

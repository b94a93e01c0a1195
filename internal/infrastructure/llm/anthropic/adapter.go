package anthropic

import (
	"context"
	"fmt"
	"strings"

	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
)

var _ output.LLMPort = (*AnthropicAdapter)(nil)

type AnthropicAdapter struct {
	model  llms.Model
	logger output.LoggerPort
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Logger  output.LoggerPort
}

func NewAnthropicAdapter(cfg Config) (*AnthropicAdapter, error) {
	opts := []anthropic.Option{
		anthropic.WithToken(cfg.APIKey),
		anthropic.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}

	model, err := anthropic.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create anthropic client: %w", err)
	}
	return NewWithModel(model, cfg.Logger), nil
}

// NewWithModel wraps any langchaingo model.
func NewWithModel(model llms.Model, logger output.LoggerPort) *AnthropicAdapter {
	return &AnthropicAdapter{model: model, logger: logger}
}

func (a *AnthropicAdapter) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	messages := convertMessages(req.Messages)

	opts := []llms.CallOption{llms.WithTemperature(float64(req.Temperature))}
	if len(req.Tools) > 0 {
		opts = append(opts, llms.WithTools(convertTools(req.Tools)))
	}

	if a.logger != nil {
		a.logger.Debug("Generating content",
			"messagesCount", len(messages),
			"toolsCount", len(req.Tools))
	}

	resp, err := a.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return nil, fmt.Errorf("generate content failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, output.ErrNoChoices
	}

	return &output.ChatResponse{Message: mergeChoices(resp.Choices)}, nil
}

func convertMessages(messages []entity.Message) []llms.MessageContent {
	result := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case entity.RoleSystem:
			result = append(result, llms.TextParts(llms.ChatMessageTypeSystem, msg.Content))
		case entity.RoleUser:
			result = append(result, llms.TextParts(llms.ChatMessageTypeHuman, msg.Content))
		case entity.RoleAssistant:
			result = append(result, assistantMessages(msg)...)
		case entity.RoleTool:
			result = append(result, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{llms.ToolCallResponse{
					ToolCallID: msg.ToolCallID,
					Name:       msg.Name,
					Content:    msg.Content,
				}},
			})
		}
	}
	return result
}

// assistantMessages emits the narration and each tool call as separate AI
// turns. The langchaingo anthropic client serializes only the first part of an
// AI message, and the API merges consecutive assistant turns.
func assistantMessages(msg entity.Message) []llms.MessageContent {
	result := make([]llms.MessageContent, 0, len(msg.ToolCalls)+1)
	if msg.Content != "" {
		result = append(result, llms.TextParts(llms.ChatMessageTypeAI, msg.Content))
	}
	for _, tc := range msg.ToolCalls {
		args := tc.Arguments
		if strings.TrimSpace(args) == "" {
			args = "{}"
		}
		result = append(result, llms.MessageContent{
			Role: llms.ChatMessageTypeAI,
			Parts: []llms.ContentPart{llms.ToolCall{
				ID:   tc.ID,
				Type: "function",
				FunctionCall: &llms.FunctionCall{
					Name:      tc.Name,
					Arguments: args,
				},
			}},
		})
	}
	return result
}

func convertTools(tools []entity.ToolDefinition) []llms.Tool {
	result := make([]llms.Tool, 0, len(tools))
	for _, t := range tools {
		result = append(result, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return result
}

// mergeChoices folds the per-block choices Anthropic returns into one
// assistant message.
func mergeChoices(choices []*llms.ContentChoice) entity.Message {
	msg := entity.Message{Role: entity.RoleAssistant}

	var text []string
	for _, choice := range choices {
		if choice == nil {
			continue
		}
		if choice.Content != "" {
			text = append(text, choice.Content)
		}
		for _, tc := range choice.ToolCalls {
			if tc.FunctionCall == nil {
				continue
			}
			msg.ToolCalls = append(msg.ToolCalls, entity.ToolCall{
				ID:        tc.ID,
				Name:      tc.FunctionCall.Name,
				Arguments: tc.FunctionCall.Arguments,
			})
		}
	}
	msg.Content = strings.Join(text, "\n")
	return msg
}

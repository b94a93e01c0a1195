package executor

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"research-agent/internal/application/port/input"
	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
)

var _ input.ResearchExecutor = (*UseCase)(nil)

const (
	DefaultMaxSteps   = 15
	maxObservationLen = 20000

	// StoppedAnswer is returned as the final answer when the step limit is hit.
	StoppedAnswer = "Agent stopped due to iteration limit or time limit."
)

type state int

const (
	stateAwaitingModel state = iota
	stateExecutingTool
	stateDone
)

func (s state) String() string {
	switch s {
	case stateAwaitingModel:
		return "awaiting_model"
	case stateExecutingTool:
		return "executing_tool"
	case stateDone:
		return "done"
	default:
		return "unknown"
	}
}

type Config struct {
	SystemPrompt string
	MaxSteps     int
}

type UseCase struct {
	llm          output.LLMPort
	tools        output.ToolRegistry
	logger       output.LoggerPort
	progress     output.ProgressPort
	systemPrompt string
	maxSteps     int
}

func New(
	llm output.LLMPort,
	tools output.ToolRegistry,
	logger output.LoggerPort,
	progress output.ProgressPort,
	cfg Config,
) *UseCase {
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = DefaultMaxSteps
	}
	return &UseCase{
		llm:          llm,
		tools:        tools,
		logger:       logger,
		progress:     progress,
		systemPrompt: cfg.SystemPrompt,
		maxSteps:     cfg.MaxSteps,
	}
}

// run is the scratchpad of a single Execute call.
type run struct {
	messages    []entity.Message
	pending     []entity.ToolCall
	invocations []entity.ToolInvocation
	final       string
	step        int
	log         output.LoggerPort
}

func (uc *UseCase) Execute(ctx context.Context, query string) (*input.ExecuteResult, error) {
	r := &run{
		messages: []entity.Message{
			{Role: entity.RoleSystem, Content: uc.systemPrompt},
			{Role: entity.RoleUser, Content: query},
		},
		log: uc.logger.WithField("query", query),
	}
	toolDefs := uc.tools.Definitions()

	r.log.Info("Agent execution started", "maxSteps", uc.maxSteps)

	st := stateAwaitingModel
	for st != stateDone {
		var err error
		switch st {
		case stateAwaitingModel:
			if r.step >= uc.maxSteps {
				r.log.Warn("Step limit reached", "maxSteps", uc.maxSteps)
				return &input.ExecuteResult{
					FinalAnswer: StoppedAnswer,
					Steps:       r.step,
					Invocations: r.invocations,
					Stopped:     true,
				}, nil
			}
			st, err = uc.awaitModel(ctx, r, toolDefs)
		case stateExecutingTool:
			st, err = uc.executeTools(ctx, r)
		}
		if err != nil {
			r.log.Error("Agent execution failed", "step", r.step, "state", st.String(), "error", err)
			return nil, err
		}
	}

	r.log.Info("Agent execution completed", "steps", r.step, "toolCalls", len(r.invocations))
	return &input.ExecuteResult{
		FinalAnswer: r.final,
		Steps:       r.step,
		Invocations: r.invocations,
	}, nil
}

func (uc *UseCase) awaitModel(ctx context.Context, r *run, toolDefs []entity.ToolDefinition) (state, error) {
	r.step++
	r.log.WithField("step", r.step).Debug("Starting step")
	if uc.progress != nil {
		uc.progress.ShowStep(ctx, r.step, uc.maxSteps)
	}

	resp, err := uc.llm.Chat(ctx, output.ChatRequest{
		Messages:    r.messages,
		Tools:       toolDefs,
		Temperature: 0.0,
	})
	if err != nil {
		return stateAwaitingModel, fmt.Errorf("llm request failed: %w", err)
	}

	msg := resp.Message
	msg.Role = entity.RoleAssistant
	r.messages = append(r.messages, msg)

	if len(msg.ToolCalls) == 0 {
		r.final = msg.Content
		return stateDone, nil
	}

	if msg.Content != "" && uc.progress != nil {
		uc.progress.ShowThinking(ctx, msg.Content)
	}
	r.pending = msg.ToolCalls
	return stateExecutingTool, nil
}

func (uc *UseCase) executeTools(ctx context.Context, r *run) (state, error) {
	for _, tc := range r.pending {
		observation, err := uc.executeTool(ctx, r, tc)
		if err != nil {
			return stateExecutingTool, err
		}

		r.messages = append(r.messages, entity.Message{
			Role:       entity.RoleTool,
			ToolCallID: tc.ID,
			Name:       tc.Name,
			Content:    observation,
		})
	}
	r.pending = nil
	return stateAwaitingModel, nil
}

func (uc *UseCase) executeTool(ctx context.Context, r *run, tc entity.ToolCall) (string, error) {
	name := entity.ToolName(tc.Name)

	t, ok := uc.tools.Get(name)
	if !ok {
		r.log.Warn("Unknown tool called", "name", tc.Name)
		observation := fmt.Sprintf("%s is not a valid tool, try one of [%s].", tc.Name, strings.Join(uc.tools.Names(), ", "))
		if uc.progress != nil {
			uc.progress.ShowToolResult(ctx, tc.Name, observation, true)
		}
		return observation, nil
	}

	toolInput, err := entity.DecodeToolInput(tc.Arguments)
	if err != nil {
		toolInput = tc.Arguments
	}
	if uc.progress != nil {
		uc.progress.ShowToolStart(ctx, tc.Name, toolInput)
	}
	r.log.Info("Executing tool", "name", tc.Name, "args", tc.Arguments)

	result, err := t.Execute(ctx, tc.Arguments)
	if err != nil {
		if uc.progress != nil {
			uc.progress.ShowToolResult(ctx, tc.Name, err.Error(), true)
		}
		return "", fmt.Errorf("tool %s failed: %w", tc.Name, err)
	}

	r.invocations = append(r.invocations, entity.ToolInvocation{
		Name:   name,
		Input:  toolInput,
		Output: result,
	})

	result = truncateObservation(result)

	if uc.progress != nil {
		uc.progress.ShowToolResult(ctx, tc.Name, result, false)
	}
	r.log.Debug("Tool completed", "name", tc.Name, "resultLen", len(result))
	return result, nil
}

// truncateObservation caps s at maxObservationLen bytes without splitting a
// rune.
func truncateObservation(s string) string {
	if len(s) <= maxObservationLen {
		return s
	}
	n := maxObservationLen
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "\n... (truncated)"
}

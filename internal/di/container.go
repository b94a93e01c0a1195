package di

import (
	"context"
	"fmt"
	"io"

	"research-agent/internal/adapter/tool"
	"research-agent/internal/application/port/output"
	"research-agent/internal/application/service"
	"research-agent/internal/application/usecase"
	"research-agent/internal/infrastructure/env"
	"research-agent/internal/infrastructure/llm/anthropic"
	"research-agent/internal/infrastructure/llm/openrouter"
	"research-agent/internal/infrastructure/logger"
	"research-agent/internal/infrastructure/prompts"
	"research-agent/internal/infrastructure/search"
	"research-agent/internal/infrastructure/userinteraction"
	"research-agent/internal/usecase/executor"
	"research-agent/internal/usecase/structurer"
)

const searchResults = 5

type Container struct {
	Logger   output.LoggerPort
	Research *usecase.ResearchUseCase
}

// NewContainer wires one research session from cfg. Progress is written to
// progressOut when cfg.Verbose is set.
func NewContainer(ctx context.Context, cfg env.Config, progressOut io.Writer) (*Container, error) {
	log, err := logger.NewLoggerAdapter(cfg.LogDir, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	llm, err := newLLM(cfg, log)
	if err != nil {
		log.Close()
		return nil, err
	}

	setCfg := tool.SetConfig{
		WikiMaxChars: cfg.WikiMaxChars,
		SaveFile:     cfg.SaveFile,
	}
	switch cfg.SearchProvider {
	case env.SearchSerpAPI:
		setCfg.SerpAPIKey = cfg.SerpAPIKey
	case env.SearchTavily:
		setCfg.Search = search.NewTavily(cfg.TavilyAPIKey, searchResults)
	default:
		setCfg.Search = search.NewDuckDuckGo(searchResults)
	}

	toolList, err := tool.NewResearchTools(setCfg, log)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create tools: %w", err)
	}
	tools := service.NewToolRegistry(toolList...)

	systemPrompt, err := prompts.GenerateSystemPrompt(prompts.DefaultSystemPrompt, tools.Definitions())
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to render system prompt: %w", err)
	}

	var progress output.ProgressPort
	if cfg.Verbose {
		progress = userinteraction.NewConsoleProgress(progressOut)
	}

	exec := executor.New(llm, tools, log, progress, executor.Config{
		SystemPrompt: systemPrompt,
		MaxSteps:     cfg.MaxSteps,
	})

	st, err := structurer.New(llm, log)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create structurer: %w", err)
	}

	log.Info("Container initialized",
		"provider", cfg.Provider,
		"search", cfg.SearchProvider,
		"tools", tools.Names(),
		"maxSteps", cfg.MaxSteps,
	)

	return &Container{
		Logger:   log,
		Research: usecase.NewResearchUseCase(exec, st, log),
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}

func newLLM(cfg env.Config, log output.LoggerPort) (output.LLMPort, error) {
	switch cfg.Provider {
	case env.ProviderAnthropic:
		llm, err := anthropic.NewAnthropicAdapter(anthropic.Config{
			APIKey: cfg.AnthropicAPIKey,
			Model:  cfg.AnthropicModel,
			Logger: log,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create llm: %w", err)
		}
		return llm, nil
	default:
		llmCfg := openrouter.DefaultConfig(cfg.OpenRouterAPIKey, cfg.OpenRouterModel)
		if cfg.OpenRouterBaseURL != "" {
			llmCfg.BaseURL = cfg.OpenRouterBaseURL
		}
		llmCfg.Logger = log
		llmCfg.LogHTTP = cfg.LogHTTP
		return openrouter.NewOpenRouterAdapter(llmCfg), nil
	}
}

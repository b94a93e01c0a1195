package tool

import (
	"fmt"

	"github.com/tmc/langchaingo/tools/serpapi"

	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
)

type SetConfig struct {
	Search       output.SearchPort
	SerpAPIKey   string
	WikiMaxChars int
	SaveFile     string
}

// NewResearchTools builds the search, wikipedia and save tools. A SerpAPI key
// takes precedence over the Search backend.
func NewResearchTools(cfg SetConfig, logger output.LoggerPort) ([]output.ToolPort, error) {
	var search output.ToolPort
	switch {
	case cfg.SerpAPIKey != "":
		serp, err := serpapi.New(serpapi.WithAPIKey(cfg.SerpAPIKey))
		if err != nil {
			return nil, fmt.Errorf("create serpapi tool: %w", err)
		}
		search = NewLangchainTool(entity.ToolSearch, serp, logger)
	case cfg.Search != nil:
		search = NewLangchainTool(entity.ToolSearch, NewSearchTool(cfg.Search), logger)
	default:
		return nil, fmt.Errorf("no search backend configured")
	}

	return []output.ToolPort{
		search,
		NewLangchainTool(entity.ToolWikipedia, NewWikipediaTool(cfg.WikiMaxChars), logger),
		NewLangchainTool(entity.ToolSave, NewSaveTool(cfg.SaveFile), logger),
	}, nil
}

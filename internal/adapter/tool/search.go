package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/tools"

	"research-agent/internal/application/port/output"
)

var _ tools.Tool = (*SearchTool)(nil)

const noSearchResults = "No good search result found"

type SearchTool struct {
	backend output.SearchPort
}

func NewSearchTool(backend output.SearchPort) *SearchTool {
	return &SearchTool{backend: backend}
}

func (t *SearchTool) Name() string { return "search" }

func (t *SearchTool) Description() string {
	return "Search the web for information. Input is a search query; returns titles, URLs and snippets of the top results."
}

func (t *SearchTool) Call(ctx context.Context, input string) (string, error) {
	results, err := t.backend.Search(ctx, input)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return noSearchResults, nil
	}

	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "Title: %s\nURL: %s\n", r.Title, r.URL)
		if r.Snippet != "" {
			fmt.Fprintf(&sb, "Snippet: %s\n", r.Snippet)
		}
	}
	return sb.String(), nil
}

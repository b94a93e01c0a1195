package prompts

import (
	"strings"

	"github.com/tmc/langchaingo/prompts"

	"research-agent/internal/domain/entity"
)

type ToolInfo struct {
	Name        string
	Description string
}

func GenerateSystemPrompt(baseTemplate string, tools []entity.ToolDefinition) (string, error) {
	infos := make([]ToolInfo, 0, len(tools))
	for _, t := range tools {
		infos = append(infos, ToolInfo{Name: t.Name, Description: t.Description})
	}

	tmpl := prompts.NewPromptTemplate(baseTemplate, []string{"tools"})
	return tmpl.Format(map[string]any{
		"tools": infos,
	})
}

type StructuringPromptData struct {
	FormatInstructions string
	ResearchContent    string
	ToolsUsed          []string
}

func GenerateStructuringPrompt(baseTemplate string, data StructuringPromptData) (string, error) {
	tmpl := prompts.NewPromptTemplate(baseTemplate, []string{
		"format_instructions",
		"research_content",
		"tools_used",
	})
	return tmpl.Format(map[string]any{
		"format_instructions": data.FormatInstructions,
		"research_content":    data.ResearchContent,
		"tools_used":          strings.Join(data.ToolsUsed, ", "),
	})
}

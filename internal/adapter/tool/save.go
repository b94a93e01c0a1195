package tool

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tmc/langchaingo/tools"
)

var _ tools.Tool = (*SaveTool)(nil)

const DefaultSaveFile = "research_output.txt"

// SaveTool appends text with a timestamp header to a local file.
type SaveTool struct {
	path string
	now  func() time.Time
}

func NewSaveTool(path string) *SaveTool {
	if path == "" {
		path = DefaultSaveFile
	}
	return &SaveTool{path: path, now: time.Now}
}

func (t *SaveTool) Name() string { return "save_text_to_file" }

func (t *SaveTool) Description() string {
	return "Saves structured research data to a text file. Input is the text to save."
}

func (t *SaveTool) Call(_ context.Context, input string) (string, error) {
	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", t.path, err)
	}
	defer f.Close()

	entry := fmt.Sprintf("--- Research Output ---\nTimestamp: %s\n\n%s\n\n",
		t.now().Format("2006-01-02 15:04:05"), input)
	if _, err := f.WriteString(entry); err != nil {
		return "", fmt.Errorf("write %s: %w", t.path, err)
	}

	return fmt.Sprintf("Data successfully saved to %s", t.path), nil
}

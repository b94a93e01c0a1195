package tool

import (
	"github.com/tmc/langchaingo/tools"
	"github.com/tmc/langchaingo/tools/wikipedia"
)

const wikiUserAgent = "research-agent/1.0 (https://github.com/research-agent)"

// NewWikipediaTool returns the top Wikipedia entry for a query, cut to
// maxChars characters.
func NewWikipediaTool(maxChars int) tools.Tool {
	wiki := wikipedia.New(wikiUserAgent)
	wiki.TopK = 1
	if maxChars > 0 {
		wiki.DocMaxChars = maxChars
	}
	return &wiki
}

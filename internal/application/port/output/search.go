package output

import (
	"context"

	"research-agent/internal/domain/entity"
)

// SearchPort is a web search backend.
type SearchPort interface {
	Search(ctx context.Context, query string) ([]entity.SearchResult, error)
}

package input

import (
	"context"

	"research-agent/internal/domain/entity"
)

type Structurer interface {
	Structure(ctx context.Context, rawText string, toolsUsed []string) (*entity.ResearchResult, error)
}

package report

import (
	"context"

	"github.com/mkondratev/housing-assistant/internal/entity"
)

type Generator interface {
	Generate(ctx context.Context, contents []entity.GeminiContent, cfg entity.GenerationConfig) (string, error)
}

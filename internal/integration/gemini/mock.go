package gemini

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/mkondratev/housing-assistant/internal/entity"
	"go.uber.org/zap"
)

// MockConnector is a canned generator for local runs without an API key.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

// Generate returns a fixed reply with an empty fenced JSON block, so both
// conversational and extraction callers get a well-formed answer.
func (m *MockConnector) Generate(ctx context.Context, contents []entity.GeminiContent, genCfg entity.GenerationConfig) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating reply", zap.Int("content_count", len(contents)))

	reply := "That sounds like a lovely direction for your home. Could you tell me a bit more about what you have in mind?\n```json\n{}\n```"

	ctxzap.Info(ctx, "[MOCK] reply generated", zap.Int("result_length", len(reply)))
	return reply, nil
}

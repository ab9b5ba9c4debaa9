package gemini

import (
	"context"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/mkondratev/housing-assistant/internal/config"
	"github.com/mkondratev/housing-assistant/internal/entity"
	pkghttp "github.com/mkondratev/housing-assistant/pkg/http"
	"go.uber.org/zap"
)

// Connector talks to the generative-language service. One POST per turn:
// role-tagged contents plus a generation config in, first candidate text out.
type Connector struct {
	config    config.GeminiConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.GeminiConnectorConfig,
	logger *zap.Logger,
) *Connector {
	connCfg := &pkghttp.ConnectorConfig{
		Logger:  logger,
		BaseURL: cfg.Url,
	}

	connector := pkghttp.NewConnector(
		connCfg,
		pkghttp.WithRequestTimeout(cfg.RequestTimeout),
		pkghttp.WithConnClientTimeout(cfg.ConnTimeout),
		pkghttp.WithClientKeepAlive(cfg.KeepAlive),
		pkghttp.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkghttp.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkghttp.WithAPIKey("key", cfg.APIKey),
		pkghttp.WithRequestLogging(),
	)

	return &Connector{
		connector: connector,
		config:    cfg,
		logger:    logger,
	}
}

// Generate performs one generation request and extracts the first candidate
// text. Transport failures are retried per the configured policy; a
// malformed response body is a recoverable error for the caller, never a
// crash.
func (c *Connector) Generate(ctx context.Context, contents []entity.GeminiContent, genCfg entity.GenerationConfig) (string, error) {
	ctxzap.Debug(ctx, "calling generative service",
		zap.Int("content_count", len(contents)),
		zap.Float64("temperature", genCfg.Temperature),
	)

	req := &entity.GeminiGenerateRequest{
		Contents:         contents,
		GenerationConfig: genCfg,
	}

	text, err := retry.DoWithData(func() (string, error) {
		var resp entity.GeminiGenerateResponse
		if err := c.connector.DoRequest(ctx, http.MethodPost, c.config.GenerateEndpoint, req, &resp); err != nil {
			return "", err
		}
		return resp.FirstCandidateText()
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		return "", err
	}

	ctxzap.Debug(ctx, "generative service responded", zap.Int("text_length", len(text)))

	return text, nil
}

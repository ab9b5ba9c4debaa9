// Package extractor pulls structured JSON payloads out of generative-model
// replies. Models asked for JSON frequently wrap it in a fenced code block or
// pad it with prose; parse failures are the caller's signal to degrade to
// "no facts extracted", never to fail the turn.
package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/mkondratev/housing-assistant/internal/entity"
)

// Generator is the single generative call the extractor needs.
type Generator interface {
	Generate(ctx context.Context, contents []entity.GeminiContent, cfg entity.GenerationConfig) (string, error)
}

// Extraction runs at low temperature with room for long structured payloads.
var extractionConfig = entity.GenerationConfig{
	Temperature:     0.1,
	MaxOutputTokens: 1024,
}

// Extract sends prompt as a single user turn and decodes the reply into v.
func Extract(ctx context.Context, gen Generator, prompt string, v any) error {
	reply, err := gen.Generate(ctx, []entity.GeminiContent{entity.TextContent("user", prompt)}, extractionConfig)
	if err != nil {
		return fmt.Errorf("extraction call: %w", err)
	}

	return Unmarshal(reply, v)
}

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// Unmarshal decodes the JSON payload of a model reply into v. A fenced
// ```json block takes priority; otherwise the whole reply is tried as JSON.
func Unmarshal(reply string, v any) error {
	payload := strings.TrimSpace(reply)

	if m := fencedJSON.FindStringSubmatch(reply); m != nil {
		payload = m[1]
	}

	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return fmt.Errorf("decode extraction payload: %w", err)
	}

	return nil
}

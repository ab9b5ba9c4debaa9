package entity_test

import (
	"testing"

	"github.com/mkondratev/housing-assistant/internal/entity"
	"github.com/stretchr/testify/require"
)

func TestFirstCandidateText(t *testing.T) {
	resp := &entity.GeminiGenerateResponse{
		Candidates: []entity.GeminiCandidate{
			{Content: entity.TextContent("model", "generated reply")},
		},
	}

	text, err := resp.FirstCandidateText()
	require.NoError(t, err)
	require.Equal(t, "generated reply", text)
}

func TestFirstCandidateText_NoCandidates(t *testing.T) {
	resp := &entity.GeminiGenerateResponse{}

	_, err := resp.FirstCandidateText()
	require.ErrorIs(t, err, entity.ErrEmptyCandidates)
}

func TestFirstCandidateText_EmptyParts(t *testing.T) {
	resp := &entity.GeminiGenerateResponse{
		Candidates: []entity.GeminiCandidate{{Content: entity.GeminiContent{Role: "model"}}},
	}

	_, err := resp.FirstCandidateText()
	require.ErrorIs(t, err, entity.ErrEmptyCandidates)
}

func TestSetupActionValidate(t *testing.T) {
	require.NoError(t, entity.SetupActionNone.Validate())
	require.NoError(t, entity.SetupActionOuterArea.Validate())
	require.NoError(t, entity.SetupActionFinalize.Validate())
	require.ErrorIs(t, entity.SetupAction("demolish").Validate(), entity.ErrInvalidParameter)
}

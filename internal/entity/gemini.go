package entity

// Wire types for the generative-language service. The request is a list of
// role-tagged content parts plus a small generation configuration; the
// response nests the generated text inside the first candidate.

type GeminiPart struct {
	Text string `json:"text"`
}

type GeminiContent struct {
	Role  string       `json:"role"`
	Parts []GeminiPart `json:"parts"`
}

type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type GeminiGenerateRequest struct {
	Contents         []GeminiContent  `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type GeminiCandidate struct {
	Content GeminiContent `json:"content"`
}

type GeminiGenerateResponse struct {
	Candidates []GeminiCandidate `json:"candidates"`
}

// FirstCandidateText extracts the generated text from the first candidate.
// Any shape deviation is reported as an error, never a panic.
func (r *GeminiGenerateResponse) FirstCandidateText() (string, error) {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyCandidates
	}
	return r.Candidates[0].Content.Parts[0].Text, nil
}

// TextContent builds a single-part content entry.
func TextContent(role, text string) GeminiContent {
	return GeminiContent{Role: role, Parts: []GeminiPart{{Text: text}}}
}

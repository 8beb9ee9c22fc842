package port

import (
	"context"

	"carte/internal/domain"
)

// GenerateInput carries one vision-language request.
type GenerateInput struct {
	System    string
	Prompt    string
	Image     *domain.ImagePayload // nil for text-only requests
	MaxTokens int
}

// GenerateOutput is the raw text answer of a model backend.
type GenerateOutput struct {
	Text      string
	ModelUsed string
}

// LanguageModel abstracts a vision-capable model backend.
type LanguageModel interface {
	Generate(ctx context.Context, input GenerateInput) (*GenerateOutput, error)
	Name() string
}

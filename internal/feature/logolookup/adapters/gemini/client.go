// Package gemini provides a company brief generator backed by the
// Google Gemini API.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"broker_backend/internal/feature/logolookup/usecase"
)

// DefaultModel is the Gemini model used for brief generation.
const DefaultModel = "gemini-2.5-flash"

// GeminiAnalyzer generates company briefs using the Gemini API.
type GeminiAnalyzer struct {
	client *genai.Client
	model  string
}

// Compile-time check that GeminiAnalyzer implements CompanyAnalyzer.
var _ usecase.CompanyAnalyzer = (*GeminiAnalyzer)(nil)

// NewGeminiAnalyzer creates an analyzer using application default
// credentials. It expects GOOGLE_GENAI_USE_VERTEXAI,
// GOOGLE_CLOUD_PROJECT and GOOGLE_CLOUD_LOCATION to be set.
func NewGeminiAnalyzer(ctx context.Context) (*GeminiAnalyzer, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiAnalyzer{client: client, model: DefaultModel}, nil
}

// Analyze generates a text completion for the prompt.
func (g *GeminiAnalyzer) Analyze(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	return resp.Text(), nil
}

package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"google.golang.org/genai"

	"github.com/FACorreiaa/go-india-travel-guide/config"
)

// ErrMissingAPIKey is returned when no Gemini credential is configured.
var ErrMissingAPIKey = errors.New("gemini api key is not set (GOOGLE_GEMINI_API_KEY or GEMINI_API_KEY)")

type AIClient struct {
	client *genai.Client
	model  string
}

// NewAIClient fails fast when the credential is missing so the service never
// starts without one.
func NewAIClient(ctx context.Context, cfg config.GenAIConfig) (*AIClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	model := cfg.Model
	if model == "" {
		model = config.DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &AIClient{
		client: client,
		model:  model,
	}, nil
}

// Model returns the model identifier requests are sent to.
func (ai *AIClient) Model() string {
	return ai.model
}

// GenerateContent sends a single prompt and returns the response text.
func (ai *AIClient) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content with %s: %w", ai.model, err)
	}
	return result.Text(), nil
}

// GenerateContentStream yields the response text chunk by chunk. Iteration
// stops at the first error.
func (ai *AIClient) GenerateContentStream(ctx context.Context, prompt string, config *genai.GenerateContentConfig) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for result, err := range ai.client.Models.GenerateContentStream(ctx, ai.model, genai.Text(prompt), config) {
			if err != nil {
				yield("", fmt.Errorf("stream content with %s: %w", ai.model, err))
				return
			}
			if !yield(result.Text(), nil) {
				return
			}
		}
	}
}

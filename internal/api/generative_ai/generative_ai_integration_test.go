//go:build integration

package generativeAI

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-india-travel-guide/config"
)

func TestAIClient_GenerateContent_Integration(t *testing.T) {
	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: GOOGLE_GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := NewAIClient(ctx, config.GenAIConfig{APIKey: apiKey})
	require.NoError(t, err)

	t.Run("Generate markdown", func(t *testing.T) {
		response, err := client.GenerateContent(ctx, "In one sentence, which city is called the Pink City of India?", &genai.GenerateContentConfig{
			Temperature: genai.Ptr[float32](0.1),
		})
		require.NoError(t, err)
		assert.Contains(t, strings.ToLower(response), "jaipur")
	})

	t.Run("Generate strict JSON", func(t *testing.T) {
		response, err := client.GenerateContent(ctx, `Return ONLY a JSON array with one object {"name": "string"} naming a famous restaurant in Delhi, India.`, &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(strings.TrimSpace(response), "["))
	})
}

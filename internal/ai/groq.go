package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/sashabaranov/go-openai"

	"mediscribe/internal/model"
)

const groqModel = "llama-3.3-70b-versatile"

// GroqExtractor implements extraction using Groq's OpenAI-compatible
// chat completion API.
type GroqExtractor struct {
	client *openai.Client
}

// NewGroqExtractor creates a Groq extractor. baseURL points at Groq's
// OpenAI-compatible endpoint.
func NewGroqExtractor(apiKey, baseURL string) *GroqExtractor {
	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.BaseURL = baseURL
	return &GroqExtractor{client: openai.NewClientWithConfig(clientCfg)}
}

// Name returns the service name
func (e *GroqExtractor) Name() string {
	return "groq"
}

func (e *GroqExtractor) Extract(ctx context.Context, text string) (*model.ExtractionDraft, error) {
	log.Printf("[Groq] extracting from %d characters of clinical text", len(text))

	req := openai.ChatCompletionRequest{
		Model: groqModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildExtractionPrompt(text),
			},
		},
		Temperature: 0.2, // Low temperature for factual output
		MaxTokens:   1024,
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("groq API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("groq returned no choices")
	}

	content := resp.Choices[0].Message.Content
	log.Printf("[Groq] response length: %d characters", len(content))

	draft, err := ParseDraft(content)
	if err != nil {
		log.Printf("[Groq] unparseable response: %s", truncateString(content, 500))
		return nil, err
	}
	return draft, nil
}

// truncateString truncates string to max length
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

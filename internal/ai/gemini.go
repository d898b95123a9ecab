package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"mediscribe/internal/model"
)

const geminiModel = "gemini-2.0-flash-exp"

// GeminiExtractor implements extraction using the Google Gemini
// generateContent REST API.
type GeminiExtractor struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiExtractor(apiKey, baseURL string) *GeminiExtractor {
	return &GeminiExtractor{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Name returns the service name
func (e *GeminiExtractor) Name() string {
	return "gemini"
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (e *GeminiExtractor) Extract(ctx context.Context, text string) (*model.ExtractionDraft, error) {
	log.Printf("[Gemini] extracting from %d characters of clinical text", len(text))

	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: BuildExtractionPrompt(text)}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.2,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 1024,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", e.baseURL, geminiModel, e.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Gemini API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Gemini] API error: status %d, body: %s", resp.StatusCode, truncateString(string(respBody), 500))
		return nil, fmt.Errorf("gemini API returned status %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse Gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	content := parsed.Candidates[0].Content.Parts[0].Text
	log.Printf("[Gemini] response length: %d characters", len(content))

	draft, err := ParseDraft(content)
	if err != nil {
		log.Printf("[Gemini] unparseable response: %s", truncateString(content, 500))
		return nil, err
	}
	return draft, nil
}

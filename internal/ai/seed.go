package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/sashabaranov/go-openai"

	"mediscribe/internal/model"
)

// SampleGenerator generates fictional patient records for seeding an empty
// dashboard. It reuses the Groq chat endpoint.
type SampleGenerator struct {
	client *openai.Client
}

func NewSampleGenerator(apiKey, baseURL string) *SampleGenerator {
	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.BaseURL = baseURL
	return &SampleGenerator{client: openai.NewClientWithConfig(clientCfg)}
}

// Generate asks the model for count fictional records and maps them onto
// record inputs, dropping entries the model got structurally wrong.
func (g *SampleGenerator) Generate(ctx context.Context, count int) ([]model.PatientInput, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: groqModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildSeedPrompt(count),
			},
		},
		Temperature: 0.8, // Variety wanted here, unlike extraction
		MaxTokens:   2048,
	})
	if err != nil {
		return nil, fmt.Errorf("groq API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("groq returned no choices")
	}

	block, ok := extractJSONBlock(resp.Choices[0].Message.Content)
	if !ok {
		return nil, fmt.Errorf("no JSON object found in seed response")
	}

	var payload struct {
		Patients []map[string]interface{} `json:"patients"`
	}
	if err := json.Unmarshal([]byte(block), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse seed JSON: %w", err)
	}

	inputs := make([]model.PatientInput, 0, len(payload.Patients))
	for _, raw := range payload.Patients {
		in := model.PatientInput{
			Name:              coerceString(raw["name"]),
			Gender:            model.Gender(coerceString(raw["gender"])),
			History:           coerceString(raw["history"]),
			Symptoms:          coerceString(raw["symptoms"]),
			Tests:             coerceString(raw["tests"]),
			Allergies:         coerceString(raw["allergies"]),
			PossibleCondition: coerceString(raw["possibleCondition"]),
			Recommendations:   coerceString(raw["recommendations"]),
		}
		if age := coerceAge(raw["age"]); age != nil {
			in.Age = *age
		}
		if in.Name == "" {
			log.Printf("[Seed] dropping generated record without a name")
			continue
		}
		if !in.Gender.Valid() {
			in.Gender = model.GenderOther
		}
		inputs = append(inputs, in)
	}

	if len(inputs) == 0 {
		return nil, fmt.Errorf("seed response contained no usable records")
	}
	return inputs, nil
}

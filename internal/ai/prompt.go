package ai

import "fmt"

// BuildExtractionPrompt builds the instruction sent to an extraction service.
// The schema and wording are fixed: the services must answer with machine
// parseable JSON and nothing else.
func BuildExtractionPrompt(text string) string {
	return fmt.Sprintf(`You are a medical data extraction assistant. Extract structured patient information from this clinical note and respond with ONLY valid JSON (no markdown, no code blocks):

%s

Extract these exact fields:
- age (string number only, e.g., "54")
- history (string)
- symptoms (string)
- tests (string)
- allergies (string)
- possibleCondition (string)
- recommendations (string)

Omit a field entirely if the note contains no information for it. Do not invent information.`, text)
}

// BuildSeedPrompt builds the instruction for generating plausible sample
// patient records, used to seed an empty dashboard.
func BuildSeedPrompt(count int) string {
	return fmt.Sprintf(`Generate %d plausible but entirely fictional patient encounter records for testing a clinical dashboard. Respond with ONLY valid JSON (no markdown, no code blocks) of this shape:

{"patients": [{"name": "...", "age": "47", "gender": "male|female|other", "history": "...", "symptoms": "...", "tests": "...", "allergies": "...", "possibleCondition": "...", "recommendations": "..."}]}

Vary ages, genders and conditions. Use realistic-sounding but invented names.`, count)
}

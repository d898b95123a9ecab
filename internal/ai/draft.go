package ai

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"mediscribe/internal/model"
)

// ParseDraft turns raw extraction-service output into a draft. The services
// are instructed to answer with JSON only, but in practice wrap it in prose
// or markdown fences, so the first balanced JSON object is located before
// decoding. Unknown keys are ignored; type mismatches become unset fields.
func ParseDraft(content string) (*model.ExtractionDraft, error) {
	block, ok := extractJSONBlock(content)
	if !ok {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(block), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse extraction JSON: %w", err)
	}

	draft := &model.ExtractionDraft{
		Age:               coerceAge(payload["age"]),
		History:           coerceString(payload["history"]),
		Symptoms:          coerceString(payload["symptoms"]),
		Tests:             coerceString(payload["tests"]),
		Allergies:         coerceString(payload["allergies"]),
		PossibleCondition: coerceString(payload["possibleCondition"]),
		Recommendations:   coerceString(payload["recommendations"]),
	}
	return draft, nil
}

// extractJSONBlock returns the first balanced {...} block in content,
// skipping any leading commentary and ignoring braces inside JSON strings.
func extractJSONBlock(content string) (string, bool) {
	start := strings.IndexByte(content, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(content); i++ {
		c := content[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[start : i+1], true
			}
		}
	}
	return "", false
}

// coerceAge accepts a JSON number or a numeric string; anything else
// (including negative values) is treated as absent.
func coerceAge(v interface{}) *int {
	var age int
	switch n := v.(type) {
	case float64:
		age = int(n)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return nil
		}
		age = parsed
	default:
		return nil
	}
	if age < 0 {
		return nil
	}
	return &age
}

func coerceString(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// Package ai implements the intake pipeline: free clinical text goes to an
// external extraction service and comes back as a structured draft the user
// can accept, edit or discard. Services are tried in a configurable order
// until one yields a usable draft.
package ai

import (
	"context"
	"log"
	"strings"

	"mediscribe/internal/config"
	"mediscribe/internal/model"
)

// Extractor defines the interface for structured-field extraction services
type Extractor interface {
	// Extract sends the text to the service and maps its response onto a draft
	Extract(ctx context.Context, text string) (*model.ExtractionDraft, error)

	// Name returns the name of the service (e.g., "groq", "gemini")
	Name() string
}

// Pipeline tries each extractor in order until one returns a usable draft.
type Pipeline struct {
	extractors []Extractor
}

func NewPipeline(extractors ...Extractor) *Pipeline {
	return &Pipeline{extractors: extractors}
}

// Available reports whether at least one extraction service is configured.
func (p *Pipeline) Available() bool {
	return len(p.extractors) > 0
}

// Extract runs the fallback chain sequentially. Malformed responses and
// unreachable services never propagate as a panic or a hard failure of the
// form flow: when every service is exhausted the caller gets an empty draft
// together with model.ErrExtractionFailed and manual entry remains possible.
func (p *Pipeline) Extract(ctx context.Context, text string) (*model.ExtractionDraft, error) {
	for _, e := range p.extractors {
		draft, err := e.Extract(ctx, text)
		if err != nil {
			log.Printf("[Intake] %s extraction failed: %v", e.Name(), err)
			continue
		}
		if draft == nil || draft.Empty() {
			log.Printf("[Intake] %s returned no usable fields, trying next service", e.Name())
			continue
		}
		log.Printf("[Intake] extraction succeeded via %s", e.Name())
		return draft, nil
	}
	return &model.ExtractionDraft{}, model.ErrExtractionFailed
}

// CreatePipeline builds the extraction fallback chain from configuration.
// EXTRACTION_PROVIDERS orders the chain; services without an API key are
// skipped so the set of backends can change without code edits.
func CreatePipeline(cfg *config.Config) *Pipeline {
	var extractors []Extractor
	for _, name := range strings.Split(cfg.ExtractionProviders, ",") {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "groq":
			if cfg.GroqAPIKey == "" {
				log.Printf("[Intake] GROQ_API_KEY not set, skipping groq")
				continue
			}
			extractors = append(extractors, NewGroqExtractor(cfg.GroqAPIKey, cfg.GroqBaseURL))
		case "gemini":
			if cfg.GeminiAPIKey == "" {
				log.Printf("[Intake] GEMINI_API_KEY not set, skipping gemini")
				continue
			}
			extractors = append(extractors, NewGeminiExtractor(cfg.GeminiAPIKey, cfg.GeminiBaseURL))
		case "":
		default:
			log.Printf("[Intake] unknown extraction provider %q, skipping", name)
		}
	}

	if len(extractors) == 0 {
		log.Printf("[Intake] no extraction service configured; AI intake disabled, manual entry only")
	} else {
		names := make([]string, 0, len(extractors))
		for _, e := range extractors {
			names = append(names, e.Name())
		}
		log.Printf("[Intake] extraction chain: %s", strings.Join(names, " -> "))
	}
	return NewPipeline(extractors...)
}

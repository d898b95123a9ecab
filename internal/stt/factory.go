package stt

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// CreateProvider creates an STT provider based on environment configuration
func CreateProvider() (Provider, error) {
	providerName := strings.ToLower(os.Getenv("STT_PROVIDER"))

	// Default to Whisper if not specified
	if providerName == "" {
		providerName = "whisper"
		log.Printf("[STT Factory] STT_PROVIDER not set, defaulting to 'whisper'")
	}

	switch providerName {
	case "whisper":
		return createWhisperProvider()
	case "google":
		return createGoogleProvider()
	default:
		return nil, fmt.Errorf("unsupported STT provider: %s. Supported: whisper, google", providerName)
	}
}

func createWhisperProvider() (Provider, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	log.Printf("[STT Factory] Creating Whisper STT provider")
	return NewWhisperProvider(apiKey), nil
}

func createGoogleProvider() (Provider, error) {
	keyData := os.Getenv("GOOGLE_STT_KEY_FILE")
	if keyData == "" {
		return nil, fmt.Errorf("GOOGLE_STT_KEY_FILE environment variable is not set. It can be:\n  - An API key (39 characters)\n  - A file path to a JSON key file\n  - A JSON string containing service account credentials")
	}

	log.Printf("[STT Factory] Creating Google STT provider")
	return NewGoogleProvider(keyData)
}

package stt

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"mediscribe/internal/model"
)

const googleSpeechURL = "https://speech.googleapis.com/v1/speech:recognize"

// GoogleProvider implements STT using the Google Cloud Speech-to-Text REST API
type GoogleProvider struct {
	apiKey     string
	httpClient *http.Client
	useAPIKey  bool // true if using API key, false if using service account
}

// NewGoogleProvider creates a new Google STT provider
// keyData can be either:
//   - An API key (39 characters, typically starts with "AIzaSy")
//   - A file path to a JSON key file
//   - A JSON string containing the service account credentials
func NewGoogleProvider(keyData string) (*GoogleProvider, error) {
	keyData = strings.TrimSpace(keyData)

	if len(keyData) == 39 && strings.HasPrefix(keyData, "AIzaSy") {
		log.Printf("[Google STT] Using API key authentication")
		return &GoogleProvider{
			apiKey:     keyData,
			httpClient: &http.Client{Timeout: 90 * time.Second},
			useAPIKey:  true,
		}, nil
	}

	// Otherwise, treat as service account (JSON string or file path).
	ctx := context.Background()
	jsonData := []byte(keyData)
	if !strings.HasPrefix(keyData, "{") {
		log.Printf("[Google STT] Reading key file: %s", keyData)
		var err error
		jsonData, err = os.ReadFile(keyData)
		if err != nil {
			return nil, fmt.Errorf("failed to read key file %q: %w", keyData, err)
		}
	}

	creds, err := google.CredentialsFromJSON(ctx, jsonData, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return nil, fmt.Errorf("failed to create credentials from JSON: %w", err)
	}

	return &GoogleProvider{
		httpClient: oauth2.NewClient(ctx, creds.TokenSource),
		useAPIKey:  false,
	}, nil
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return "google"
}

type googleSTTRequest struct {
	Config googleSTTConfig `json:"config"`
	Audio  googleSTTAudio  `json:"audio"`
}

type googleSTTConfig struct {
	LanguageCode               string `json:"languageCode"`
	EnableAutomaticPunctuation bool   `json:"enableAutomaticPunctuation"`
}

type googleSTTAudio struct {
	Content string `json:"content"` // Base64 encoded
}

type googleSTTResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"results"`
}

// Transcribe sends the audio file to the Google Speech API and returns the transcript
func (p *GoogleProvider) Transcribe(audioPath string) (*Result, error) {
	startTime := time.Now()

	audioBytes, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}
	log.Printf("[Google STT] Processing audio file: %s, size: %d bytes", audioPath, len(audioBytes))

	payload := googleSTTRequest{
		Config: googleSTTConfig{
			LanguageCode:               "en-US",
			EnableAutomaticPunctuation: true,
		},
		Audio: googleSTTAudio{Content: base64.StdEncoding.EncodeToString(audioBytes)},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := googleSpeechURL
	if p.useAPIKey {
		url = googleSpeechURL + "?key=" + p.apiKey
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Google STT: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Google STT] API error: status %d, body: %s", resp.StatusCode, string(respBody))
		return &Result{
			Provider:    p.Name(),
			RawResponse: string(respBody),
		}, fmt.Errorf("google STT API returned status %d", resp.StatusCode)
	}

	var sttResp googleSTTResponse
	if err := json.Unmarshal(respBody, &sttResp); err != nil {
		return &Result{
			Provider:    p.Name(),
			RawResponse: string(respBody),
		}, fmt.Errorf("failed to parse Google STT response: %w", err)
	}

	var transcript strings.Builder
	confidence := 0.0
	for _, r := range sttResp.Results {
		if len(r.Alternatives) == 0 {
			continue
		}
		transcript.WriteString(r.Alternatives[0].Transcript)
		if r.Alternatives[0].Confidence > confidence {
			confidence = r.Alternatives[0].Confidence
		}
	}

	text := strings.TrimSpace(transcript.String())
	if text == "" {
		log.Printf("[Google STT] No speech recognized. Full response: %s", string(respBody))
		return &Result{
			Provider:    p.Name(),
			RawResponse: string(respBody),
		}, model.ErrNoSpeech
	}

	log.Printf("[Google STT] Transcription successful: confidence=%.2f, length=%d, duration=%v",
		confidence, len(text), time.Since(startTime))

	return &Result{
		Transcript:  text,
		Confidence:  confidence,
		Provider:    p.Name(),
		RawResponse: string(respBody),
	}, nil
}

package stt

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"mediscribe/internal/model"
)

// WhisperProvider implements STT using the OpenAI Whisper transcription API
type WhisperProvider struct {
	client *openai.Client
}

// NewWhisperProvider creates a new Whisper STT provider
func NewWhisperProvider(apiKey string) *WhisperProvider {
	return &WhisperProvider{client: openai.NewClient(apiKey)}
}

// Name returns the provider name
func (p *WhisperProvider) Name() string {
	return "whisper"
}

// Transcribe sends the audio file to the Whisper API and returns the transcript
func (p *WhisperProvider) Transcribe(audioPath string) (*Result, error) {
	startTime := time.Now()

	info, err := os.Stat(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat audio file: %w", err)
	}
	log.Printf("[Whisper] Processing audio file: %s, size: %d bytes", audioPath, info.Size())

	// Check if audio file is too small (likely empty or corrupted)
	if info.Size() < 1000 {
		return nil, fmt.Errorf("audio file too small (%d bytes), may be empty or corrupted", info.Size())
	}

	resp, err := p.client.CreateTranscription(context.Background(), openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
	})
	if err != nil {
		return nil, fmt.Errorf("whisper API error: %w", err)
	}

	transcript := strings.TrimSpace(resp.Text)
	if transcript == "" {
		log.Printf("[Whisper] Empty transcript returned")
		return &Result{Provider: p.Name(), RawResponse: resp.Text}, model.ErrNoSpeech
	}

	log.Printf("[Whisper] Transcription successful: length=%d, duration=%v",
		len(transcript), time.Since(startTime))

	// Whisper does not report confidence; leave it at 0.
	return &Result{
		Transcript:  transcript,
		Provider:    p.Name(),
		RawResponse: resp.Text,
	}, nil
}

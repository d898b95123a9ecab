package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"mediscribe/internal/model"
)

// mockExtractor records whether it was called and answers with a fixed
// draft or error.
type mockExtractor struct {
	name   string
	draft  *model.ExtractionDraft
	err    error
	called bool
}

var _ Extractor = (*mockExtractor)(nil)

func (m *mockExtractor) Extract(ctx context.Context, text string) (*model.ExtractionDraft, error) {
	m.called = true
	return m.draft, m.err
}

func (m *mockExtractor) Name() string { return m.name }

func TestPipelineFirstServiceWins(t *testing.T) {
	primary := &mockExtractor{name: "groq", draft: &model.ExtractionDraft{Symptoms: "fever"}}
	fallback := &mockExtractor{name: "gemini", draft: &model.ExtractionDraft{Symptoms: "other"}}
	p := NewPipeline(primary, fallback)

	draft, err := p.Extract(context.Background(), "some text")
	assert.NoError(t, err)
	assert.Equal(t, "fever", draft.Symptoms)
	assert.True(t, primary.called)
	assert.False(t, fallback.called)
}

func TestPipelineFallsBackOnError(t *testing.T) {
	primary := &mockExtractor{name: "groq", err: errors.New("rate limited")}
	fallback := &mockExtractor{name: "gemini", draft: &model.ExtractionDraft{Symptoms: "fever"}}
	p := NewPipeline(primary, fallback)

	draft, err := p.Extract(context.Background(), "some text")
	assert.NoError(t, err)
	assert.Equal(t, "fever", draft.Symptoms)
	assert.True(t, fallback.called)
}

func TestPipelineFallsBackOnEmptyDraft(t *testing.T) {
	primary := &mockExtractor{name: "groq", draft: &model.ExtractionDraft{}}
	fallback := &mockExtractor{name: "gemini", draft: &model.ExtractionDraft{History: "asthma"}}
	p := NewPipeline(primary, fallback)

	draft, err := p.Extract(context.Background(), "some text")
	assert.NoError(t, err)
	assert.Equal(t, "asthma", draft.History)
}

func TestPipelineAllServicesFail(t *testing.T) {
	primary := &mockExtractor{name: "groq", err: errors.New("unreachable")}
	fallback := &mockExtractor{name: "gemini", err: errors.New("bad response")}
	p := NewPipeline(primary, fallback)

	draft, err := p.Extract(context.Background(), "some text")
	assert.ErrorIs(t, err, model.ErrExtractionFailed)
	// The caller still gets a draft it can merge without nil checks.
	assert.NotNil(t, draft)
	assert.True(t, draft.Empty())
	assert.True(t, primary.called)
	assert.True(t, fallback.called)
}

func TestPipelineEmpty(t *testing.T) {
	p := NewPipeline()
	assert.False(t, p.Available())

	draft, err := p.Extract(context.Background(), "some text")
	assert.ErrorIs(t, err, model.ErrExtractionFailed)
	assert.NotNil(t, draft)
}

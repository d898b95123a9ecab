// Package capture models a dictation flow as an explicit state machine:
// idle -> recording -> processing -> idle. The machine exists so the rest of
// the system sees exactly one outward notification per capture, a transcript
// or a failure, regardless of how the audio actually arrived.
package capture

import (
	"strings"
	"sync"

	"mediscribe/internal/model"
)

type State string

const (
	StateIdle       State = "idle"
	StateRecording  State = "recording"
	StateProcessing State = "processing"
)

// Session is the capture state machine for one recording flow.
// All transitions are serialized; a start while not idle is rejected, so
// overlapping captures cannot happen.
type Session struct {
	mu       sync.Mutex
	state    State
	onResult func(text string, err error)
}

// NewSession creates an idle session. onResult is the single outward
// notification channel: it receives either a non-empty transcript or an
// error, exactly once per completed capture. It may be nil.
func NewSession(onResult func(text string, err error)) *Session {
	return &Session{state: StateIdle, onResult: onResult}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start moves idle -> recording. It requires a granted audio-input
// permission: denial keeps the session idle and reports
// model.ErrPermissionDenied. Starting while a capture is underway reports
// model.ErrCaptureBusy and leaves the running capture untouched.
func (s *Session) Start(permissionGranted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return model.ErrCaptureBusy
	}
	if !permissionGranted {
		return model.ErrPermissionDenied
	}
	s.state = StateRecording
	return nil
}

// Stop moves recording -> processing.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRecording {
		return model.ErrCaptureBusy
	}
	s.state = StateProcessing
	return nil
}

// Complete finishes a capture with the transcription outcome and returns to
// idle. An empty transcript is reported as model.ErrNoSpeech; there are no
// automatic retries, the user restarts explicitly.
func (s *Session) Complete(transcript string) error {
	s.mu.Lock()
	if s.state != StateProcessing {
		s.mu.Unlock()
		return model.ErrCaptureBusy
	}
	s.state = StateIdle
	s.mu.Unlock()

	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		s.emit("", model.ErrNoSpeech)
		return model.ErrNoSpeech
	}
	s.emit(transcript, nil)
	return nil
}

// Fail finishes a capture with a transcription error and returns to idle.
func (s *Session) Fail(err error) {
	s.mu.Lock()
	if s.state != StateProcessing {
		s.mu.Unlock()
		return
	}
	s.state = StateIdle
	s.mu.Unlock()

	s.emit("", err)
}

func (s *Session) emit(text string, err error) {
	if s.onResult != nil {
		s.onResult(text, err)
	}
}

// Manager hands out one session per recording id so concurrent transcribe
// requests for the same recording cannot overlap.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	onResult func(id, text string, err error)
}

// NewManager creates a manager. onResult receives every session outcome
// together with the owning recording id; it may be nil.
func NewManager(onResult func(id, text string, err error)) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		onResult: onResult,
	}
}

// Session returns the session for a recording, creating an idle one on
// first use.
func (m *Manager) Session(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		var cb func(text string, err error)
		if m.onResult != nil {
			cb = func(text string, err error) { m.onResult(id, text, err) }
		}
		s = NewSession(cb)
		m.sessions[id] = s
	}
	return s
}

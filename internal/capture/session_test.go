package capture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"mediscribe/internal/model"
)

func TestSessionHappyPath(t *testing.T) {
	var gotText string
	var gotErr error
	calls := 0
	s := NewSession(func(text string, err error) {
		calls++
		gotText, gotErr = text, err
	})

	assert.Equal(t, StateIdle, s.State())
	assert.NoError(t, s.Start(true))
	assert.Equal(t, StateRecording, s.State())
	assert.NoError(t, s.Stop())
	assert.Equal(t, StateProcessing, s.State())
	assert.NoError(t, s.Complete("patient reports chest pain"))
	assert.Equal(t, StateIdle, s.State())

	assert.Equal(t, 1, calls)
	assert.Equal(t, "patient reports chest pain", gotText)
	assert.NoError(t, gotErr)
}

func TestSessionPermissionDenied(t *testing.T) {
	s := NewSession(nil)

	assert.ErrorIs(t, s.Start(false), model.ErrPermissionDenied)
	// Denial leaves the session usable.
	assert.Equal(t, StateIdle, s.State())
	assert.NoError(t, s.Start(true))
}

func TestSessionRejectsOverlappingStart(t *testing.T) {
	s := NewSession(nil)

	assert.NoError(t, s.Start(true))
	assert.ErrorIs(t, s.Start(true), model.ErrCaptureBusy)
	// The running capture is untouched.
	assert.Equal(t, StateRecording, s.State())

	assert.NoError(t, s.Stop())
	assert.ErrorIs(t, s.Start(true), model.ErrCaptureBusy)
}

func TestSessionNoSpeech(t *testing.T) {
	var gotErr error
	calls := 0
	s := NewSession(func(text string, err error) {
		calls++
		gotErr = err
	})

	assert.NoError(t, s.Start(true))
	assert.NoError(t, s.Stop())
	assert.ErrorIs(t, s.Complete("   \n"), model.ErrNoSpeech)

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, gotErr, model.ErrNoSpeech)
	// Back to idle, ready for an explicit restart.
	assert.Equal(t, StateIdle, s.State())
}

func TestSessionFail(t *testing.T) {
	var gotErr error
	s := NewSession(func(text string, err error) { gotErr = err })

	assert.NoError(t, s.Start(true))
	assert.NoError(t, s.Stop())
	s.Fail(errors.New("provider unreachable"))

	assert.EqualError(t, gotErr, "provider unreachable")
	assert.Equal(t, StateIdle, s.State())
}

func TestSessionInvalidTransitions(t *testing.T) {
	s := NewSession(nil)

	assert.ErrorIs(t, s.Stop(), model.ErrCaptureBusy)
	assert.ErrorIs(t, s.Complete("text"), model.ErrCaptureBusy)

	// Fail outside processing is a no-op.
	s.Fail(errors.New("ignored"))
	assert.Equal(t, StateIdle, s.State())
}

func TestManagerSessionPerRecording(t *testing.T) {
	results := make(map[string]string)
	m := NewManager(func(id, text string, err error) {
		if err == nil {
			results[id] = text
		}
	})

	a := m.Session("rec_1")
	b := m.Session("rec_2")
	assert.NotSame(t, a, b)
	assert.Same(t, a, m.Session("rec_1"))

	assert.NoError(t, a.Start(true))
	assert.NoError(t, a.Stop())
	assert.NoError(t, a.Complete("first transcript"))

	// A busy session on one recording does not block another.
	assert.NoError(t, b.Start(true))
	assert.ErrorIs(t, b.Start(true), model.ErrCaptureBusy)
	assert.NoError(t, b.Stop())
	assert.NoError(t, b.Complete("second transcript"))

	assert.Equal(t, "first transcript", results["rec_1"])
	assert.Equal(t, "second transcript", results["rec_2"])
}

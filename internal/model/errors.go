// Sentinel errors shared across the service and API layers. Callers match
// them with errors.Is; ValidationError is matched with errors.As to recover
// the offending field names.
package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Store errors.
	ErrNotFound    = errors.New("record not found")
	ErrPersistence = errors.New("persistence failed")

	// Intake errors.
	ErrExtractionFailed = errors.New("extraction failed")

	// Capture errors.
	ErrPermissionDenied = errors.New("audio permission denied")
	ErrCaptureBusy      = errors.New("capture already in progress")
	ErrNoSpeech         = errors.New("no speech detected")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrEmailTaken   = errors.New("email is already registered")
)

// ValidationError names the required record fields missing at save time.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: missing or invalid field(s): %s",
		strings.Join(e.Fields, ", "))
}

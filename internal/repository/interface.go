package repository

import (
	"context"

	"mediscribe/internal/model"
)

// PatientRepository defines the interface for patient record data access.
// All methods are scoped to the owning user; Update, Delete and GetByID
// return model.ErrNotFound when the id is absent for that user.
type PatientRepository interface {
	// Create persists a fully populated new record.
	Create(ctx context.Context, p *model.Patient) error

	// Update persists the full current state of an existing record.
	Update(ctx context.Context, p *model.Patient) error

	// Delete removes the record.
	Delete(ctx context.Context, userID, id string) error

	// GetByID retrieves a single record.
	GetByID(ctx context.Context, userID, id string) (*model.Patient, error)

	// ListByUser retrieves all records for a user, newest-first by createdAt.
	ListByUser(ctx context.Context, userID string) ([]model.Patient, error)
}

// UserRepository defines the interface for clinician account data access.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// Store bundles the repositories a backend provides.
type Store struct {
	Patients PatientRepository
	Users    UserRepository
}

// Package service implements the patient record store contract on top of an
// interchangeable repository backend: creation assigns identity and
// timestamps, updates merge partial fields, every mutation is persisted
// before success is reported.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mediscribe/internal/model"
	"mediscribe/internal/repository"
)

type PatientService struct {
	repo repository.PatientRepository
}

func NewPatientService(repo repository.PatientRepository) *PatientService {
	return &PatientService{repo: repo}
}

// List returns all records for the user, newest-first by createdAt.
// No identity means no records.
func (s *PatientService) List(ctx context.Context, userID string) ([]model.Patient, error) {
	if userID == "" {
		return []model.Patient{}, nil
	}
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}
	return records, nil
}

func (s *PatientService) Get(ctx context.Context, userID, id string) (*model.Patient, error) {
	if userID == "" {
		return nil, model.ErrNotFound
	}
	p, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}
	return p, nil
}

// Create validates the input, assigns id and timestamps and persists the new
// record. The record only exists once the backing store accepted it.
func (s *PatientService) Create(ctx context.Context, userID string, in model.PatientInput) (*model.Patient, error) {
	if userID == "" {
		return nil, model.ErrUnauthorized
	}
	if err := ValidateInput(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	p := &model.Patient{
		ID:                uuid.New().String(),
		UserID:            userID,
		Name:              in.Name,
		Age:               in.Age,
		Gender:            in.Gender,
		History:           in.History,
		Symptoms:          in.Symptoms,
		Tests:             in.Tests,
		Allergies:         in.Allergies,
		PossibleCondition: in.PossibleCondition,
		Recommendations:   in.Recommendations,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}
	return p, nil
}

// Update merges the given partial fields into the existing record and
// refreshes updatedAt. The merged state is validated before it is written, so
// an update can never strip a required field.
func (s *PatientService) Update(ctx context.Context, userID, id string, upd model.PatientUpdate) (*model.Patient, error) {
	if userID == "" {
		return nil, model.ErrNotFound
	}

	p, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}

	upd.ApplyTo(p)
	if err := ValidateInput(model.PatientInput{Name: p.Name, Age: p.Age, Gender: p.Gender}); err != nil {
		return nil, err
	}

	// Timestamps are kept at millisecond precision, the coarsest any backing
	// store offers, so a stored record reads back as an equal instant.
	// updatedAt must still strictly increase on very fast successive updates.
	now := time.Now().UTC().Truncate(time.Millisecond)
	if !now.After(p.UpdatedAt) {
		now = p.UpdatedAt.Add(time.Millisecond)
	}
	p.UpdatedAt = now

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}
	return p, nil
}

// Delete removes the record permanently. Deleting an unknown id reports
// ErrNotFound rather than succeeding silently.
func (s *PatientService) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return model.ErrNotFound
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("%w: %v", model.ErrPersistence, err)
	}
	return nil
}

// Search lists the user's records filtered by the text query.
func (s *PatientService) Search(ctx context.Context, userID, query string) ([]model.Patient, error) {
	records, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return SearchRecords(records, query), nil
}

package service

import (
	"context"
	"sync"

	"mediscribe/internal/model"
	"mediscribe/internal/repository"
)

// MockPatientRepository is an in-memory PatientRepository with per-method
// override hooks for failure injection.
type MockPatientRepository struct {
	CreateFunc     func(ctx context.Context, p *model.Patient) error
	UpdateFunc     func(ctx context.Context, p *model.Patient) error
	DeleteFunc     func(ctx context.Context, userID, id string) error
	GetByIDFunc    func(ctx context.Context, userID, id string) (*model.Patient, error)
	ListByUserFunc func(ctx context.Context, userID string) ([]model.Patient, error)

	mu      sync.Mutex
	records []model.Patient
}

var _ repository.PatientRepository = (*MockPatientRepository)(nil)

func NewMockPatientRepository() *MockPatientRepository {
	return &MockPatientRepository{}
}

func (m *MockPatientRepository) Create(ctx context.Context, p *model.Patient) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append([]model.Patient{*p}, m.records...)
	return nil
}

func (m *MockPatientRepository) Update(ctx context.Context, p *model.Patient) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == p.ID && m.records[i].UserID == p.UserID {
			m.records[i] = *p
			return nil
		}
	}
	return model.ErrNotFound
}

func (m *MockPatientRepository) Delete(ctx context.Context, userID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == id && m.records[i].UserID == userID {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

func (m *MockPatientRepository) GetByID(ctx context.Context, userID, id string) (*model.Patient, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == id && m.records[i].UserID == userID {
			p := m.records[i]
			return &p, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *MockPatientRepository) ListByUser(ctx context.Context, userID string) ([]model.Patient, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Patient, 0, len(m.records))
	for _, p := range m.records {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

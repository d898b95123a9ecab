package repository

import (
	"context"
	"sync"

	"mediscribe/internal/model"
)

// NewMemoryStore creates an in-memory store. It is the default backend when
// no database is configured and doubles as the test store; records do not
// survive a restart.
func NewMemoryStore() *Store {
	return &Store{
		Patients: &memoryPatientRepository{byUser: make(map[string][]*model.Patient)},
		Users:    &memoryUserRepository{byID: make(map[string]*model.User)},
	}
}

type memoryPatientRepository struct {
	mu     sync.Mutex
	byUser map[string][]*model.Patient
}

// Create prepends so that ListByUser stays newest-first without sorting.
func (r *memoryPatientRepository) Create(ctx context.Context, p *model.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.byUser[p.UserID] = append([]*model.Patient{&cp}, r.byUser[p.UserID]...)
	return nil
}

func (r *memoryPatientRepository) Update(ctx context.Context, p *model.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.byUser[p.UserID] {
		if existing.ID == p.ID {
			cp := *p
			r.byUser[p.UserID][i] = &cp
			return nil
		}
	}
	return model.ErrNotFound
}

func (r *memoryPatientRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	records := r.byUser[userID]
	for i, existing := range records {
		if existing.ID == id {
			r.byUser[userID] = append(records[:i:i], records[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

func (r *memoryPatientRepository) GetByID(ctx context.Context, userID, id string) (*model.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byUser[userID] {
		if existing.ID == id {
			// Return a copy to avoid race conditions
			cp := *existing
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r *memoryPatientRepository) ListByUser(ctx context.Context, userID string) ([]model.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	records := r.byUser[userID]
	out := make([]model.Patient, 0, len(records))
	for _, p := range records {
		out = append(out, *p)
	}
	return out, nil
}

type memoryUserRepository struct {
	mu   sync.Mutex
	byID map[string]*model.User
}

// Create enforces email uniqueness under the lock, standing in for the SQL
// backends' unique index.
func (r *memoryUserRepository) Create(ctx context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return model.ErrEmailTaken
		}
	}
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

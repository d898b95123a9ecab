package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mediscribe/internal/model"
)

func validInput() model.PatientInput {
	return model.PatientInput{
		Name:     "Jane Doe",
		Age:      54,
		Gender:   model.GenderFemale,
		History:  "type 2 diabetes",
		Symptoms: "chest pain",
	}
}

func TestCreateAssignsIdentityAndTimestamps(t *testing.T) {
	svc := NewPatientService(NewMockPatientRepository())

	p, err := svc.Create(context.Background(), "user-1", validInput())
	assert.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "user-1", p.UserID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	svc := NewPatientService(NewMockPatientRepository())

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		p, err := svc.Create(context.Background(), "user-1", validInput())
		assert.NoError(t, err)
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestCreateRoundTrip(t *testing.T) {
	svc := NewPatientService(NewMockPatientRepository())

	created, err := svc.Create(context.Background(), "user-1", validInput())
	assert.NoError(t, err)

	got, err := svc.Get(context.Background(), "user-1", created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateValidation(t *testing.T) {
	svc := NewPatientService(NewMockPatientRepository())

	tests := []struct {
		name   string
		mutate func(*model.PatientInput)
		fields []string
	}{
		{"missing name", func(in *model.PatientInput) { in.Name = "" }, []string{"name"}},
		{"negative age", func(in *model.PatientInput) { in.Age = -3 }, []string{"age"}},
		{"bad gender", func(in *model.PatientInput) { in.Gender = "unknown" }, []string{"gender"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := svc.Create(context.Background(), "user-1", in)
			var verr *model.ValidationError
			assert.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.fields, verr.Fields)
		})
	}
}

func TestCreateWithoutUser(t *testing.T) {
	svc := NewPatientService(NewMockPatientRepository())

	_, err := svc.Create(context.Background(), "", validInput())
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}

func TestCreateSurfacesPersistenceFailure(t *testing.T) {
	repo := NewMockPatientRepository()
	repo.CreateFunc = func(ctx context.Context, p *model.Patient) error {
		return errors.New("connection refused")
	}
	svc := NewPatientService(repo)

	_, err := svc.Create(context.Background(), "user-1", validInput())
	assert.ErrorIs(t, err, model.ErrPersistence)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestUpdateMergesPartialFields(t *testing.T) {
	svc := NewPatientService(NewMockPatientRepository())

	created, err := svc.Create(context.Background(), "user-1", validInput())
	assert.NoError(t, err)

	symptoms := "chest pain, shortness of breath"
	updated, err := svc.Update(context.Background(), "user-1", created.ID,
		model.PatientUpdate{Symptoms: &symptoms})
	assert.NoError(t, err)

	assert.Equal(t, symptoms, updated.Symptoms)
	// Untouched fields survive the merge.
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Age, updated.Age)
	assert.Equal(t, created.History, updated.History)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateRefreshesUpdatedAt(t *testing.T) {
	svc := NewPatientService(NewMockPatientRepository())

	created, err := svc.Create(context.Background(), "user-1", validInput())
	assert.NoError(t, err)

	prev := created.UpdatedAt
	for i := 0; i < 3; i++ {
		name := "Jane Doe"
		updated, err := svc.Update(context.Background(), "user-1", created.ID,
			model.PatientUpdate{Name: &name})
		assert.NoError(t, err)
		assert.True(t, updated.UpdatedAt.After(prev),
			"updatedAt %v not after %v", updated.UpdatedAt, prev)
		prev = updated.UpdatedAt
	}
}

func TestTimestampsAtStorablePrecision(t *testing.T) {
	svc := NewPatientService(NewMockPatientRepository())

	created, err := svc.Create(context.Background(), "user-1", validInput())
	assert.NoError(t, err)
	// Millisecond alignment: the SQL backends store at millisecond (MySQL
	// DATETIME(3)) or finer (Postgres TIMESTAMPTZ) resolution, so an aligned
	// timestamp reads back as an equal instant from any of them.
	assert.True(t, created.CreatedAt.Equal(created.CreatedAt.Truncate(time.Millisecond)))
	assert.True(t, created.UpdatedAt.Equal(created.UpdatedAt.Truncate(time.Millisecond)))

	// Strictly increasing updatedAt must hold at that same resolution, even
	// for updates faster than the clock tick.
	prev := created.UpdatedAt
	name := "Jane Doe"
	for i := 0; i < 3; i++ {
		updated, err := svc.Update(context.Background(), "user-1", created.ID,
			model.PatientUpdate{Name: &name})
		assert.NoError(t, err)
		assert.True(t, updated.UpdatedAt.Equal(updated.UpdatedAt.Truncate(time.Millisecond)))
		assert.True(t, updated.UpdatedAt.Truncate(time.Millisecond).After(prev))
		prev = updated.UpdatedAt
	}
}

func TestUpdateCannotStripRequiredFields(t *testing.T) {
	svc := NewPatientService(NewMockPatientRepository())

	created, err := svc.Create(context.Background(), "user-1", validInput())
	assert.NoError(t, err)

	empty := ""
	_, err = svc.Update(context.Background(), "user-1", created.ID,
		model.PatientUpdate{Name: &empty})
	var verr *model.ValidationError
	assert.ErrorAs(t, err, &verr)

	// The stored record is untouched.
	got, err := svc.Get(context.Background(), "user-1", created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.UpdatedAt, got.UpdatedAt)
}

func TestUpdateUnknownID(t *testing.T) {
	svc := NewPatientService(NewMockPatientRepository())

	name := "x"
	_, err := svc.Update(context.Background(), "user-1", "nope",
		model.PatientUpdate{Name: &name})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc := NewPatientService(NewMockPatientRepository())

	created, err := svc.Create(context.Background(), "user-1", validInput())
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(context.Background(), "user-1", created.ID))

	_, err = svc.Get(context.Background(), "user-1", created.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	// Deleting again is not a silent success.
	assert.ErrorIs(t, svc.Delete(context.Background(), "user-1", created.ID), model.ErrNotFound)
}

func TestDeleteUnknownID(t *testing.T) {
	svc := NewPatientService(NewMockPatientRepository())
	assert.ErrorIs(t, svc.Delete(context.Background(), "user-1", "nope"), model.ErrNotFound)
}

func TestListScopedToUser(t *testing.T) {
	svc := NewPatientService(NewMockPatientRepository())

	mine, err := svc.Create(context.Background(), "user-1", validInput())
	assert.NoError(t, err)
	_, err = svc.Create(context.Background(), "user-2", validInput())
	assert.NoError(t, err)

	records, err := svc.List(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, mine.ID, records[0].ID)

	// Another user's id is invisible, not just filtered from lists.
	_, err = svc.Get(context.Background(), "user-2", mine.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestListWithoutUser(t *testing.T) {
	svc := NewPatientService(NewMockPatientRepository())

	records, err := svc.List(context.Background(), "")
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestListNewestFirst(t *testing.T) {
	repo := NewMockPatientRepository()
	svc := NewPatientService(repo)

	base := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		repo.records = append([]model.Patient{{
			ID:        string(rune('a' + i)),
			UserID:    "user-1",
			Name:      "p",
			Gender:    model.GenderOther,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}}, repo.records...)
	}

	records, err := svc.List(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Len(t, records, 3)
	for i := 1; i < len(records); i++ {
		assert.True(t, !records[i-1].CreatedAt.Before(records[i].CreatedAt))
	}
}

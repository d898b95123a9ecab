package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mediscribe/internal/model"
)

func record(name, symptoms, history string, createdAt time.Time) model.Patient {
	return model.Patient{
		Name:      name,
		Symptoms:  symptoms,
		History:   history,
		CreatedAt: createdAt,
	}
}

func TestSearchRecords(t *testing.T) {
	now := time.Now().UTC()
	records := []model.Patient{
		record("Jane Doe", "chest pain", "diabetes", now),
		record("John Smith", "headache", "none", now),
		record("Ana Diaz", "fever", "Chest surgery in 2019", now),
	}

	t.Run("matches name", func(t *testing.T) {
		got := SearchRecords(records, "smith")
		assert.Len(t, got, 1)
		assert.Equal(t, "John Smith", got[0].Name)
	})

	t.Run("matches symptoms and history case-insensitively", func(t *testing.T) {
		got := SearchRecords(records, "CHEST")
		assert.Len(t, got, 2)
		assert.Equal(t, "Jane Doe", got[0].Name)
		assert.Equal(t, "Ana Diaz", got[1].Name)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, SearchRecords(records, "xyz"))
	})

	t.Run("blank query returns all in order", func(t *testing.T) {
		got := SearchRecords(records, "   ")
		assert.Equal(t, records, got)
	})
}

func TestFilterByDay(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	records := []model.Patient{
		record("morning", "", "", day.Add(8*time.Hour)),
		record("evening", "", "", day.Add(22*time.Hour)),
		record("next day", "", "", day.Add(25*time.Hour)),
	}

	t.Run("short year form", func(t *testing.T) {
		got := FilterByDay(records, "05/03/24")
		assert.Len(t, got, 2)
		assert.Equal(t, "morning", got[0].Name)
		assert.Equal(t, "evening", got[1].Name)
	})

	t.Run("long year form", func(t *testing.T) {
		got := FilterByDay(records, "05/03/2024")
		assert.Len(t, got, 2)
	})

	t.Run("unmatched day", func(t *testing.T) {
		assert.Empty(t, FilterByDay(records, "07/03/24"))
	})

	t.Run("blank filter keeps everything", func(t *testing.T) {
		assert.Equal(t, records, FilterByDay(records, ""))
	})
}

func TestSearchAndDateCompose(t *testing.T) {
	day := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	records := []model.Patient{
		record("Jane Doe", "chest pain", "", day),
		record("Jane Roe", "fever", "", day),
		record("Jane Poe", "chest pain", "", day.AddDate(0, 0, 1)),
	}

	got := FilterByDay(SearchRecords(records, "chest"), "05/03/24")
	assert.Len(t, got, 1)
	assert.Equal(t, "Jane Doe", got[0].Name)
}

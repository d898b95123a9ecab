package service

import (
	"strings"

	"mediscribe/internal/model"
)

// SearchRecords filters records by a case-insensitive substring match over
// name, symptoms and history. An empty or blank query returns the full list
// in unchanged order.
func SearchRecords(records []model.Patient, query string) []model.Patient {
	query = strings.TrimSpace(query)
	if query == "" {
		return records
	}
	q := strings.ToLower(query)

	out := make([]model.Patient, 0, len(records))
	for _, p := range records {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Symptoms), q) ||
			strings.Contains(strings.ToLower(p.History), q) {
			out = append(out, p)
		}
	}
	return out
}

// FilterByDay keeps records created on the calendar day named by filter,
// which accepts both dd/mm/yy and dd/mm/yyyy literals. Time of day is
// ignored. A blank filter keeps everything, so the date filter composes with
// the text search as a logical AND.
func FilterByDay(records []model.Patient, filter string) []model.Patient {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return records
	}

	out := make([]model.Patient, 0, len(records))
	for _, p := range records {
		if p.CreatedAt.Format("02/01/06") == filter ||
			p.CreatedAt.Format("02/01/2006") == filter {
			out = append(out, p)
		}
	}
	return out
}

package model

import (
	"time"
)

// Gender is the recorded patient gender
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is one of the accepted gender values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Patient represents a single patient encounter record owned by one user.
// ID and CreatedAt are set once at creation and never change; UpdatedAt is
// refreshed on every mutation.
type Patient struct {
	ID                string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID            string    `json:"-" gorm:"size:36;index;not null"`
	Name              string    `json:"name" gorm:"size:255;not null"`
	Age               int       `json:"age" gorm:"not null"`
	Gender            Gender    `json:"gender" gorm:"size:10;not null"`
	History           string    `json:"history" gorm:"type:text"`
	Symptoms          string    `json:"symptoms" gorm:"type:text"`
	Tests             string    `json:"tests" gorm:"type:text"`
	Allergies         string    `json:"allergies" gorm:"type:text"`
	PossibleCondition string    `json:"possibleCondition,omitempty" gorm:"type:text"`
	Recommendations   string    `json:"recommendations,omitempty" gorm:"type:text"`
	CreatedAt         time.Time `json:"createdAt" gorm:"type:datetime(3)"`
	UpdatedAt         time.Time `json:"updatedAt" gorm:"type:datetime(3)"`
}

// PatientInput holds the caller-supplied fields for creating a record.
// Identity and timestamps are assigned by the store.
type PatientInput struct {
	Name              string `json:"name"`
	Age               int    `json:"age"`
	Gender            Gender `json:"gender"`
	History           string `json:"history"`
	Symptoms          string `json:"symptoms"`
	Tests             string `json:"tests"`
	Allergies         string `json:"allergies"`
	PossibleCondition string `json:"possibleCondition"`
	Recommendations   string `json:"recommendations"`
}

// PatientUpdate holds a partial update. Nil fields are left untouched.
type PatientUpdate struct {
	Name              *string `json:"name"`
	Age               *int    `json:"age"`
	Gender            *Gender `json:"gender"`
	History           *string `json:"history"`
	Symptoms          *string `json:"symptoms"`
	Tests             *string `json:"tests"`
	Allergies         *string `json:"allergies"`
	PossibleCondition *string `json:"possibleCondition"`
	Recommendations   *string `json:"recommendations"`
}

// ApplyTo merges the non-nil update fields into p.
func (u PatientUpdate) ApplyTo(p *Patient) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Age != nil {
		p.Age = *u.Age
	}
	if u.Gender != nil {
		p.Gender = *u.Gender
	}
	if u.History != nil {
		p.History = *u.History
	}
	if u.Symptoms != nil {
		p.Symptoms = *u.Symptoms
	}
	if u.Tests != nil {
		p.Tests = *u.Tests
	}
	if u.Allergies != nil {
		p.Allergies = *u.Allergies
	}
	if u.PossibleCondition != nil {
		p.PossibleCondition = *u.PossibleCondition
	}
	if u.Recommendations != nil {
		p.Recommendations = *u.Recommendations
	}
}

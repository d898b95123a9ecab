package model

// ExtractionDraft is a provisional, possibly partial AI guess at record
// fields, pending user confirmation. A nil Age or empty string means the
// field was not extracted; drafts never carry identity or timestamps.
type ExtractionDraft struct {
	Age               *int   `json:"age,omitempty"`
	History           string `json:"history,omitempty"`
	Symptoms          string `json:"symptoms,omitempty"`
	Tests             string `json:"tests,omitempty"`
	Allergies         string `json:"allergies,omitempty"`
	PossibleCondition string `json:"possibleCondition,omitempty"`
	Recommendations   string `json:"recommendations,omitempty"`
}

// Empty reports whether no field was extracted at all.
func (d ExtractionDraft) Empty() bool {
	return d.Age == nil && d.History == "" && d.Symptoms == "" &&
		d.Tests == "" && d.Allergies == "" &&
		d.PossibleCondition == "" && d.Recommendations == ""
}

// MergeInto applies the draft onto in-progress form fields. Extracted values
// overwrite, absent ones leave user-entered data untouched.
func (d ExtractionDraft) MergeInto(in *PatientInput) {
	if d.Age != nil {
		in.Age = *d.Age
	}
	if d.History != "" {
		in.History = d.History
	}
	if d.Symptoms != "" {
		in.Symptoms = d.Symptoms
	}
	if d.Tests != "" {
		in.Tests = d.Tests
	}
	if d.Allergies != "" {
		in.Allergies = d.Allergies
	}
	if d.PossibleCondition != "" {
		in.PossibleCondition = d.PossibleCondition
	}
	if d.Recommendations != "" {
		in.Recommendations = d.Recommendations
	}
}

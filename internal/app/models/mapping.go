package models

// MappedItem is one form answer resolved to a measure item. Ephemeral,
// per-request.
type MappedItem struct {
	MeasureID      string      `json:"measure_id"`
	MeasureVersion string      `json:"measure_version"`
	ItemID         string      `json:"item_id"`
	RawAnswer      AnswerValue `json:"raw_answer"`
	FieldKey       *string     `json:"field_key,omitempty"`
	Position       *int        `json:"position,omitempty"`
}

// MappedSection groups mapped items for a single measure.
type MappedSection struct {
	MeasureID      string       `json:"measure_id"`
	MeasureVersion string       `json:"measure_version"`
	Items          []MappedItem `json:"items"`
}

// MappingResult is the output of the mapping stage. UnmappedFields lists the
// form fields (by field key) that no binding consumed.
type MappingResult struct {
	FormID           string          `json:"form_id"`
	FormSubmissionID string          `json:"form_submission_id"`
	SubjectID        string          `json:"subject_id"`
	Timestamp        string          `json:"timestamp"`
	Sections         []MappedSection `json:"sections"`
	UnmappedFields   []string        `json:"unmapped_fields"`
}

package models

// RecodedItem carries the canonical numeric value derived from a raw answer.
// Missing is true iff Value is nil.
type RecodedItem struct {
	MeasureID      string      `json:"measure_id"`
	MeasureVersion string      `json:"measure_version"`
	ItemID         string      `json:"item_id"`
	Value          *float64    `json:"value"`
	RawAnswer      AnswerValue `json:"raw_answer"`
	Missing        bool        `json:"missing"`
	FieldKey       *string     `json:"field_key,omitempty"`
	Position       *int        `json:"position,omitempty"`
}

// RecodedSection groups recoded items for a single measure.
type RecodedSection struct {
	MeasureID      string        `json:"measure_id"`
	MeasureVersion string        `json:"measure_version"`
	Items          []RecodedItem `json:"items"`
}

// RecodingResult is the output of the recoding stage.
type RecodingResult struct {
	FormID           string           `json:"form_id"`
	FormSubmissionID string           `json:"form_submission_id"`
	SubjectID        string           `json:"subject_id"`
	Timestamp        string           `json:"timestamp"`
	Sections         []RecodedSection `json:"sections"`
}

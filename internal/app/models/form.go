package models

// FormItem is one answered field of an incoming form response. Answer is
// preferred; Value is accepted as a fallback key from older exporters.
type FormItem struct {
	FieldKey *string      `json:"field_key,omitempty"`
	Position *int         `json:"position,omitempty"`
	Answer   *AnswerValue `json:"answer,omitempty"`
	Value    *AnswerValue `json:"value,omitempty"`
}

// RawAnswer resolves the item's answer, falling back to the value key.
func (i *FormItem) RawAnswer() AnswerValue {
	if i.Answer != nil {
		return *i.Answer
	}
	if i.Value != nil {
		return *i.Value
	}
	return NullAnswer()
}

// FormResponse is the canonical form submission consumed by the pipeline
// entrypoint.
type FormResponse struct {
	FormID            string     `json:"form_id" validate:"required"`
	FormSubmissionID  string     `json:"form_submission_id" validate:"required"`
	SubjectID         string     `json:"subject_id" validate:"required"`
	Timestamp         string     `json:"timestamp" validate:"required"`
	FormCorrelationID *string    `json:"form_correlation_id,omitempty"`
	Items             []FormItem `json:"items"`
}

// ProcessingResult is the unified return type of all domain processors.
// Success means the finalized diagnostic status is success or partial.
type ProcessingResult struct {
	FormSubmissionID string             `json:"form_submission_id"`
	Events           []MeasurementEvent `json:"events"`
	Diagnostics      *FormDiagnostic    `json:"diagnostics"`
	Success          bool               `json:"success"`
}

// CanonicalRespondent identifies the person who filled in a canonical form
// submission.
type CanonicalRespondent struct {
	ID      string `json:"id"`
	Display string `json:"display,omitempty"`
}

// CanonicalFormItem is one answered field of a canonical form submission as
// emitted by upstream form connectors.
type CanonicalFormItem struct {
	FieldID      string      `json:"field_id"`
	QuestionText *string     `json:"question_text,omitempty"`
	RawValue     AnswerValue `json:"raw_value"`
}

// CanonicalFormSubmission is the upstream submission shape consumed by the
// single-measure entrypoint; it is adapted into a FormResponse plus a
// synthetic binding spec before processing.
type CanonicalFormSubmission struct {
	FormID       string              `json:"form_id"`
	SubmissionID string              `json:"submission_id"`
	Respondent   CanonicalRespondent `json:"respondent"`
	SubmittedAt  string              `json:"submitted_at"`
	Items        []CanonicalFormItem `json:"items"`
	Meta         map[string]any      `json:"meta,omitempty"`
}

// CallableStats summarizes a callable-adapter invocation.
type CallableStats struct {
	Input   int `json:"input"`
	Output  int `json:"output"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// CallableResult is the wire shape returned to external orchestrators through
// the callable adapter.
type CallableResult struct {
	SchemaVersion string             `json:"schema_version"`
	Items         []MeasurementEvent `json:"items"`
	Stats         CallableStats      `json:"stats"`
}

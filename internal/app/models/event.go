package models

// Source records which form and binding produced a measurement event.
type Source struct {
	FormID            string  `json:"form_id"`
	FormSubmissionID  string  `json:"form_submission_id"`
	FormCorrelationID *string `json:"form_correlation_id,omitempty"`
	BindingID         string  `json:"binding_id"`
	BindingVersion    string  `json:"binding_version"`
}

// Telemetry captures processing provenance for a measurement event.
type Telemetry struct {
	ProcessedAt      string   `json:"processed_at"`
	FinalFormVersion string   `json:"final_form_version"`
	MeasureSpec      string   `json:"measure_spec"`
	FormBindingSpec  string   `json:"form_binding_spec"`
	Warnings         []string `json:"warnings"`
}

// Observation is one scored or recoded data point (item or scale) inside a
// measurement event. Field names are a wire contract.
type Observation struct {
	SchemaTag     string  `json:"schema"`
	ObservationID string  `json:"observation_id"`
	MeasureID     string  `json:"measure_id"`
	Code          string  `json:"code"`
	Kind          string  `json:"kind"`
	Value         any     `json:"value"`
	ValueType     string  `json:"value_type"`
	Label         *string `json:"label,omitempty"`
	RawAnswer     *string `json:"raw_answer,omitempty"`
	Position      *int    `json:"position,omitempty"`
	Missing       bool    `json:"missing"`
}

// Observation kinds.
const (
	ObservationKindItem  = "item"
	ObservationKindScale = "scale"
)

// Observation value types.
const (
	ValueTypeInteger = "integer"
	ValueTypeFloat   = "float"
	ValueTypeString  = "string"
	ValueTypeNull    = "null"
)

// MeasurementEvent is the terminal output artifact for one measure applied to
// one form submission. Constructed once, never mutated afterward.
type MeasurementEvent struct {
	SchemaTag          string        `json:"schema"`
	MeasurementEventID string        `json:"measurement_event_id"`
	MeasureID          string        `json:"measure_id"`
	MeasureVersion     string        `json:"measure_version"`
	SubjectID          string        `json:"subject_id"`
	Timestamp          string        `json:"timestamp"`
	Source             Source        `json:"source"`
	Observations       []Observation `json:"observations"`
	Telemetry          Telemetry     `json:"telemetry"`
}

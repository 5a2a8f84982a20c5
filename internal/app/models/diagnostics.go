package models

import "finalform-service/internal/pkg/constvars"

// ProcessingStatus is the terminal status of a processed form or measure.
type ProcessingStatus string

const (
	ProcessingSuccess ProcessingStatus = constvars.StatusSuccess
	ProcessingPartial ProcessingStatus = constvars.StatusPartial
	ProcessingFailed  ProcessingStatus = constvars.StatusFailed
)

// DiagnosticError is a hard problem recorded during processing.
type DiagnosticError struct {
	Stage    string         `json:"stage"`
	Code     string         `json:"code"`
	Message  string         `json:"message"`
	ItemID   *string        `json:"item_id,omitempty"`
	FieldKey *string        `json:"field_key,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}

// DiagnosticWarning is a soft problem recorded during processing.
type DiagnosticWarning struct {
	Stage    string         `json:"stage"`
	Code     string         `json:"code"`
	Message  string         `json:"message"`
	ItemID   *string        `json:"item_id,omitempty"`
	FieldKey *string        `json:"field_key,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}

// QualityMetrics summarizes data quality for a processed form or measure.
type QualityMetrics struct {
	Completeness    float64  `json:"completeness"`
	MissingItems    []string `json:"missing_items"`
	OutOfRangeItems []string `json:"out_of_range_items"`
	ProratedScales  []string `json:"prorated_scales"`
	ItemsTotal      int      `json:"items_total"`
	ItemsPresent    int      `json:"items_present"`
}

// MeasureDiagnostic accumulates errors, warnings and quality for one measure
// within a form submission.
type MeasureDiagnostic struct {
	MeasureID      string              `json:"measure_id"`
	MeasureVersion string              `json:"measure_version"`
	Status         ProcessingStatus    `json:"status"`
	Errors         []DiagnosticError   `json:"errors"`
	Warnings       []DiagnosticWarning `json:"warnings"`
	Quality        *QualityMetrics     `json:"quality,omitempty"`
}

// FormDiagnostic is the finalized diagnostic report for a form submission.
type FormDiagnostic struct {
	FormSubmissionID string              `json:"form_submission_id"`
	FormID           string              `json:"form_id"`
	BindingID        string              `json:"binding_id"`
	BindingVersion   string              `json:"binding_version"`
	Status           ProcessingStatus    `json:"status"`
	Measures         []MeasureDiagnostic `json:"measures"`
	Errors           []DiagnosticError   `json:"errors"`
	Warnings         []DiagnosticWarning `json:"warnings"`
	Quality          *QualityMetrics     `json:"quality,omitempty"`
}

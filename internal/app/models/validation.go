package models

// ValidationResult reports completeness and range conformance for a recoded
// section. Errors here are soft: collected into diagnostics, never raised.
type ValidationResult struct {
	MeasureID       string   `json:"measure_id"`
	Valid           bool     `json:"valid"`
	Completeness    float64  `json:"completeness"`
	MissingItems    []string `json:"missing_items"`
	OutOfRangeItems []string `json:"out_of_range_items"`
	Errors          []string `json:"errors"`
}

func (v *ValidationResult) MissingCount() int {
	return len(v.MissingItems)
}

func (v *ValidationResult) HasErrors() bool {
	return len(v.Errors) > 0 || len(v.OutOfRangeItems) > 0
}

package models

// InterpretedScore pairs a scale score with the label of the first
// interpretation band whose inclusive range contains the value.
type InterpretedScore struct {
	ScaleID           string   `json:"scale_id"`
	Name              string   `json:"name"`
	Value             *float64 `json:"value"`
	Label             *string  `json:"label"`
	InterpretationMin *int     `json:"interpretation_min,omitempty"`
	InterpretationMax *int     `json:"interpretation_max,omitempty"`
	Error             string   `json:"error,omitempty"`
}

// InterpretationResult holds interpreted scores for all scales of a measure.
type InterpretationResult struct {
	MeasureID      string             `json:"measure_id"`
	MeasureVersion string             `json:"measure_version"`
	Scores         []InterpretedScore `json:"scores"`
}

func (r *InterpretationResult) GetScore(scaleID string) *InterpretedScore {
	for idx := range r.Scores {
		if r.Scores[idx].ScaleID == scaleID {
			return &r.Scores[idx]
		}
	}
	return nil
}

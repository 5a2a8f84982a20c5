package models

// ScaleScore is one computed scale score. Value is nil iff Error is set or
// the scale's skip policy silently produced no score. Prorated is true iff
// any item was missing and scoring still proceeded.
type ScaleScore struct {
	ScaleID       string   `json:"scale_id"`
	Name          string   `json:"name"`
	Value         *float64 `json:"value"`
	Method        string   `json:"method"`
	ItemsUsed     int      `json:"items_used"`
	ItemsTotal    int      `json:"items_total"`
	MissingItems  []string `json:"missing_items"`
	ReversedItems []string `json:"reversed_items"`
	Prorated      bool     `json:"prorated"`
	Error         string   `json:"error,omitempty"`
}

// ScoringResult holds the scores for all scales declared on a measure.
type ScoringResult struct {
	MeasureID      string       `json:"measure_id"`
	MeasureVersion string       `json:"measure_version"`
	Scales         []ScaleScore `json:"scales"`
}

func (r *ScoringResult) GetScale(scaleID string) *ScaleScore {
	for idx := range r.Scales {
		if r.Scales[idx].ScaleID == scaleID {
			return &r.Scales[idx]
		}
	}
	return nil
}

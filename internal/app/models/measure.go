package models

// Interpretation is a single score interpretation band. Bounds are inclusive
// on both ends; bands are matched in declared order.
type Interpretation struct {
	Min         int     `json:"min"`
	Max         int     `json:"max"`
	Label       string  `json:"label" validate:"required"`
	Severity    *int    `json:"severity,omitempty"`
	Description *string `json:"description,omitempty"`
}

// MeasureScale is a scoring rule over a subset of a measure's items.
type MeasureScale struct {
	ScaleID         string           `json:"scale_id" validate:"required"`
	Name            string           `json:"name" validate:"required"`
	Items           []string         `json:"items" validate:"required,min=1"`
	Method          string           `json:"method" validate:"required,oneof=sum average sum_then_double"`
	ReversedItems   []string         `json:"reversed_items,omitempty"`
	Min             *int             `json:"min,omitempty"`
	Max             *int             `json:"max,omitempty"`
	MissingAllowed  int              `json:"missing_allowed"`
	MissingStrategy string           `json:"missing_strategy,omitempty" validate:"omitempty,oneof=fail skip prorate"`
	Interpretations []Interpretation `json:"interpretations" validate:"dive"`
}

// MeasureItem is a single question with a response map from textual answer to
// canonical integer value. Aliases map normalized alternate phrasings to
// canonical response text.
type MeasureItem struct {
	ItemID      string            `json:"item_id" validate:"required"`
	Position    int               `json:"position"`
	Text        string            `json:"text" validate:"required"`
	ResponseMap map[string]int    `json:"response_map" validate:"required,min=1"`
	Aliases     map[string]string `json:"aliases,omitempty"`
}

// ResponseRange returns the numeric range spanned by the item's response map.
func (i *MeasureItem) ResponseRange() (min, max int) {
	first := true
	for _, v := range i.ResponseMap {
		if first {
			min, max = v, v
			first = false
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// MeasureSpec is the complete declarative definition of a clinical
// instrument. Immutable once loaded; registries cache it by
// (measure_id, version).
type MeasureSpec struct {
	Type        string         `json:"type" validate:"required,eq=measure_spec"`
	MeasureID   string         `json:"measure_id" validate:"required"`
	Version     string         `json:"version" validate:"required"`
	Name        string         `json:"name" validate:"required"`
	Kind        string         `json:"kind" validate:"required,oneof=questionnaire scale inventory checklist lab_panel vital wearable"`
	Locale      *string        `json:"locale,omitempty"`
	Aliases     []string       `json:"aliases,omitempty"`
	Description *string        `json:"description,omitempty"`
	Items       []MeasureItem  `json:"items" validate:"dive"`
	Scales      []MeasureScale `json:"scales" validate:"dive"`
}

func (m *MeasureSpec) GetItem(itemID string) *MeasureItem {
	for idx := range m.Items {
		if m.Items[idx].ItemID == itemID {
			return &m.Items[idx]
		}
	}
	return nil
}

func (m *MeasureSpec) GetScale(scaleID string) *MeasureScale {
	for idx := range m.Scales {
		if m.Scales[idx].ScaleID == scaleID {
			return &m.Scales[idx]
		}
	}
	return nil
}

// CheckScaleReferences verifies that every scale references only items
// declared on the measure. Enforced at registration time, not at runtime.
func (m *MeasureSpec) CheckScaleReferences() []string {
	itemIDs := make(map[string]struct{}, len(m.Items))
	for _, item := range m.Items {
		itemIDs[item.ItemID] = struct{}{}
	}

	var problems []string
	for _, scale := range m.Scales {
		for _, itemID := range scale.Items {
			if _, ok := itemIDs[itemID]; !ok {
				problems = append(problems, "scale "+scale.ScaleID+" references unknown item: "+itemID)
			}
		}
	}
	return problems
}

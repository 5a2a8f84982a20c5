package models

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// BindingValue is a binding selector value: a field key (string) or a
// position (integer), depending on the binding's `by` discriminator.
type BindingValue struct {
	str   string
	num   int
	isNum bool
}

func FieldKeyValue(key string) BindingValue { return BindingValue{str: key} }
func PositionValue(pos int) BindingValue    { return BindingValue{num: pos, isNum: true} }

// AsString renders the selector as a field key.
func (v BindingValue) AsString() string {
	if v.isNum {
		return strconv.Itoa(v.num)
	}
	return v.str
}

// AsInt renders the selector as a position.
func (v BindingValue) AsInt() (int, bool) {
	if v.isNum {
		return v.num, true
	}
	parsed, err := strconv.Atoi(v.str)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func (v BindingValue) MarshalJSON() ([]byte, error) {
	if v.isNum {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.str)
}

func (v *BindingValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = FieldKeyValue(s)
		return nil
	}
	var n int
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("binding value must be a string or integer: %w", err)
	}
	*v = PositionValue(n)
	return nil
}

// Binding maps one form field to one measure item.
type Binding struct {
	ItemID string       `json:"item_id" validate:"required"`
	By     string       `json:"by" validate:"required,oneof=field_key position"`
	Value  BindingValue `json:"value"`
}

// BindingSection groups the bindings targeting a single measure.
type BindingSection struct {
	Name           *string   `json:"name,omitempty"`
	MeasureID      string    `json:"measure_id" validate:"required"`
	MeasureVersion string    `json:"measure_version" validate:"required"`
	Bindings       []Binding `json:"bindings" validate:"required,min=1,dive"`
}

// FormBindingSpec declares how one form's fields bind to measure items.
// Immutable once loaded; registries cache it by (binding_id, version).
type FormBindingSpec struct {
	Type        string           `json:"type" validate:"required,eq=form_binding_spec"`
	FormID      string           `json:"form_id" validate:"required"`
	BindingID   string           `json:"binding_id" validate:"required"`
	Version     string           `json:"version" validate:"required"`
	Description *string          `json:"description,omitempty"`
	Sections    []BindingSection `json:"sections" validate:"required,min=1,dive"`
}

func (f *FormBindingSpec) GetSectionForMeasure(measureID string) *BindingSection {
	for idx := range f.Sections {
		if f.Sections[idx].MeasureID == measureID {
			return &f.Sections[idx]
		}
	}
	return nil
}

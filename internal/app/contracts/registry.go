package contracts

import "finalform-service/internal/app/models"

// MeasureRegistry loads and caches measure specifications from a versioned
// file-per-(id,version) layout. Specs are immutable for the process lifetime.
type MeasureRegistry interface {
	Get(measureID, version string) (*models.MeasureSpec, error)
	GetLatest(measureID string) (*models.MeasureSpec, error)
	ListMeasures() []string
	ListVersions(measureID string) []string
}

// BindingRegistry loads and caches form binding specifications.
type BindingRegistry interface {
	Get(bindingID, version string) (*models.FormBindingSpec, error)
	GetLatest(bindingID string) (*models.FormBindingSpec, error)
	ListBindings() []string
	ListVersions(bindingID string) []string
}

// FormInputClient stores and retrieves field_id -> item_id maps per
// (form_id, measure_id) pair.
type FormInputClient interface {
	GetItemMap(formID, measureID string) (map[string]string, error)
	SaveItemMap(formID, measureID string, itemMap map[string]string) error
	ListMappings(formID string) ([]string, error)
	DeleteItemMap(formID, measureID string) (bool, error)
	RecordResolutionEvent(event *ResolutionEvent) error
	GetResolutionEvents(formID, measureID string) ([]ResolutionEvent, error)
}

// ResolutionEvent is one append-only record of a field resolution decision.
type ResolutionEvent struct {
	Timestamp       string  `json:"timestamp"`
	FormID          string  `json:"form_id"`
	MeasureID       string  `json:"measure_id"`
	FieldID         string  `json:"field_id"`
	CandidateItemID string  `json:"candidate_item_id"`
	Accepted        bool    `json:"accepted"`
	Reason          *string `json:"reason,omitempty"`
}

package contracts

import "finalform-service/internal/app/models"

// ProcessInput is the per-submission input handed to a domain processor.
type ProcessInput struct {
	FormResponse     *models.FormResponse
	BindingSpec      *models.FormBindingSpec
	Measures         map[string]*models.MeasureSpec
	DeterministicIDs bool
}

// DomainProcessor handles one family of measure kinds. Dispatch is an
// explicit tagged table keyed by kind, selected once per batch of
// homogeneous-kind measures.
type DomainProcessor interface {
	SupportedKinds() []string
	Process(input *ProcessInput) *models.ProcessingResult
	ValidateMeasure(measure *models.MeasureSpec) []string
}

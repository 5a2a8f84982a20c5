package pipeline

import (
	"sort"

	"finalform-service/internal/app/contracts"
	"finalform-service/internal/app/models"
	"finalform-service/internal/pkg/constvars"
	"finalform-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

// Router dispatches form processing to domain processors keyed by measure
// kind. Registration order decides nothing; the kind does.
type Router struct {
	Log        *zap.Logger
	processors map[string]contracts.DomainProcessor
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		Log:        logger,
		processors: make(map[string]contracts.DomainProcessor),
	}
}

func (r *Router) Register(processor contracts.DomainProcessor) {
	for _, kind := range processor.SupportedKinds() {
		r.processors[kind] = processor
	}
}

func (r *Router) GetProcessor(kind string) (contracts.DomainProcessor, error) {
	processor, ok := r.processors[kind]
	if !ok {
		return nil, exceptions.ErrDomainNotFound(kind)
	}
	return processor, nil
}

func (r *Router) HasProcessor(kind string) bool {
	_, ok := r.processors[kind]
	return ok
}

func (r *Router) SupportedKinds() []string {
	kinds := make([]string, 0, len(r.processors))
	for kind := range r.processors {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Process routes one submission. All measures of a form are handed to a
// single processor; current binding specs carry homogeneous measure kinds.
func (r *Router) Process(input *contracts.ProcessInput) (*models.ProcessingResult, error) {
	if len(input.Measures) == 0 {
		return emptyResult(input), nil
	}

	kind := r.pickKind(input)
	processor, err := r.GetProcessor(kind)
	if err != nil {
		r.Log.Error("pipeline.Router.Process no processor for kind",
			zap.String(constvars.LoggingMeasureKindKey, kind),
			zap.String(constvars.LoggingFormSubmissionIDKey, input.FormResponse.FormSubmissionID),
		)
		return nil, err
	}

	return processor.Process(input), nil
}

// pickKind selects the kind of the first bound measure, walking binding
// sections in declared order so the choice does not depend on map iteration.
func (r *Router) pickKind(input *contracts.ProcessInput) string {
	for _, section := range input.BindingSpec.Sections {
		if measure, ok := input.Measures[section.MeasureID]; ok {
			return measure.Kind
		}
	}

	measureIDs := make([]string, 0, len(input.Measures))
	for measureID := range input.Measures {
		measureIDs = append(measureIDs, measureID)
	}
	sort.Strings(measureIDs)
	return input.Measures[measureIDs[0]].Kind
}

func emptyResult(input *contracts.ProcessInput) *models.ProcessingResult {
	formResponse := input.FormResponse
	return &models.ProcessingResult{
		FormSubmissionID: formResponse.FormSubmissionID,
		Events:           make([]models.MeasurementEvent, 0),
		Diagnostics: &models.FormDiagnostic{
			FormSubmissionID: formResponse.FormSubmissionID,
			FormID:           formResponse.FormID,
			BindingID:        input.BindingSpec.BindingID,
			BindingVersion:   input.BindingSpec.Version,
			Status:           models.ProcessingSuccess,
			Measures:         make([]models.MeasureDiagnostic, 0),
			Errors:           make([]models.DiagnosticError, 0),
			Warnings:         make([]models.DiagnosticWarning, 0),
		},
		Success: true,
	}
}

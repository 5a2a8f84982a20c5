package contracts

import "finalform-service/internal/app/models"

// MapperUsecase resolves raw form fields to measure items via explicit
// bindings. Purely mechanical; it never interprets question text.
type MapperUsecase interface {
	// Map skips individual missing bindings; sections that resolve no items
	// are omitted from the result.
	Map(formResponse *models.FormResponse, bindingSpec *models.FormBindingSpec) *models.MappingResult
	// MapStrict additionally fails when a declared section resolves no items
	// at all.
	MapStrict(formResponse *models.FormResponse, bindingSpec *models.FormBindingSpec) (*models.MappingResult, error)
	MapSection(formResponse *models.FormResponse, bindingSpec *models.FormBindingSpec, measureID string) *models.MappedSection
}

// RecoderUsecase converts raw answers into canonical numeric values per item.
// Strict by design: no fuzzy matching, no defaulting.
type RecoderUsecase interface {
	Recode(mappingResult *models.MappingResult, measures map[string]*models.MeasureSpec) (*models.RecodingResult, error)
	RecodeSection(section *models.MappedSection, measure *models.MeasureSpec) (*models.RecodedSection, error)
}

// ValidatorUsecase checks completeness and range conformance independently of
// scoring.
type ValidatorUsecase interface {
	Validate(section *models.RecodedSection, measure *models.MeasureSpec) *models.ValidationResult
	ValidateForScale(section *models.RecodedSection, measure *models.MeasureSpec, scaleID string) *models.ValidationResult
}

// ScoringUsecase computes scale scores from recoded values using the
// declarative rules on the measure spec.
type ScoringUsecase interface {
	Score(section *models.RecodedSection, measure *models.MeasureSpec) *models.ScoringResult
	ScoreScale(section *models.RecodedSection, measure *models.MeasureSpec, scaleID string) *models.ScaleScore
}

// InterpreterUsecase maps numeric scale scores to interpretation labels.
type InterpreterUsecase interface {
	Interpret(scoringResult *models.ScoringResult, measure *models.MeasureSpec) *models.InterpretationResult
	InterpretScale(scaleScore *models.ScaleScore, measure *models.MeasureSpec) *models.InterpretedScore
	GetLabel(scaleID string, value float64, measure *models.MeasureSpec) *string
}

// EventBuilder assembles recoded items, scores and interpretations into a
// measurement event. Builders are per-request: the deterministic ID counter
// must start fresh for each one.
type EventBuilder interface {
	Build(input *BuildInput) *models.MeasurementEvent
}

// BuildInput carries everything the event builder needs for one measure
// section.
type BuildInput struct {
	RecodedSection       *models.RecodedSection
	ScoringResult        *models.ScoringResult
	InterpretationResult *models.InterpretationResult
	BindingSpec          *models.FormBindingSpec
	FormID               string
	FormSubmissionID     string
	SubjectID            string
	Timestamp            string
	FormCorrelationID    *string
	Warnings             []string
}

// PipelineUsecase is the entrypoint boundary consumed by the CLI and the
// callable adapter.
type PipelineUsecase interface {
	Process(formResponse *models.FormResponse) *models.ProcessingResult
	ProcessBatch(formResponses []*models.FormResponse) []*models.ProcessingResult
	BindingSpec() *models.FormBindingSpec
	Measures() map[string]*models.MeasureSpec
}

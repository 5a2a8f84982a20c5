package vital

import (
	"finalform-service/internal/app/contracts"
	"finalform-service/internal/app/models"
	"finalform-service/internal/app/services/core/diagnostics"
	"finalform-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

const notImplementedMessage = "Vital domain processor not yet implemented"

// processor is a placeholder for vital sign measurements (blood pressure,
// heart rate, temperature). It reports a failed result instead of processing.
type processor struct {
	Log *zap.Logger
}

func NewProcessor(logger *zap.Logger) contracts.DomainProcessor {
	return &processor{Log: logger}
}

func (p *processor) SupportedKinds() []string {
	return []string{"vital"}
}

func (p *processor) Process(input *contracts.ProcessInput) *models.ProcessingResult {
	formResponse := input.FormResponse
	p.Log.Warn("vital.processor.Process called on stub",
		zap.String(constvars.LoggingFormSubmissionIDKey, formResponse.FormSubmissionID),
	)

	collector := diagnostics.NewCollector(
		formResponse.FormSubmissionID,
		formResponse.FormID,
		input.BindingSpec.BindingID,
		input.BindingSpec.Version,
		p.Log,
	)
	collector.AddError(diagnostics.Entry{
		Stage:   constvars.StageBuilding,
		Code:    constvars.CodePipelineError,
		Message: notImplementedMessage,
	})

	return &models.ProcessingResult{
		FormSubmissionID: formResponse.FormSubmissionID,
		Events:           make([]models.MeasurementEvent, 0),
		Diagnostics:      collector.Finalize(),
		Success:          false,
	}
}

func (p *processor) ValidateMeasure(*models.MeasureSpec) []string {
	return []string{notImplementedMessage}
}

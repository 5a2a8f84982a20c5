package questionnaire

import (
	"fmt"
	"strings"

	"finalform-service/internal/app/contracts"
	"finalform-service/internal/app/models"
	"finalform-service/internal/app/services/core/builders"
	"finalform-service/internal/app/services/core/diagnostics"
	"finalform-service/internal/app/services/core/interpretation"
	"finalform-service/internal/app/services/core/mapping"
	"finalform-service/internal/app/services/core/recoding"
	"finalform-service/internal/app/services/core/scoring"
	"finalform-service/internal/app/services/core/validation"
	"finalform-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

var supportedKinds = []string{"questionnaire", "scale", "inventory", "checklist"}

// processor runs questionnaire-family measures through the full mapping,
// recoding, validation, scoring, interpretation and event building sequence.
type processor struct {
	Log         *zap.Logger
	mapper      contracts.MapperUsecase
	recoder     contracts.RecoderUsecase
	validator   contracts.ValidatorUsecase
	scorer      contracts.ScoringUsecase
	interpreter contracts.InterpreterUsecase
}

func NewProcessor(logger *zap.Logger) contracts.DomainProcessor {
	return &processor{
		Log:         logger,
		mapper:      mapping.NewMapperUsecase(logger),
		recoder:     recoding.NewRecoderUsecase(logger),
		validator:   validation.NewValidatorUsecase(logger),
		scorer:      scoring.NewScoringUsecase(logger),
		interpreter: interpretation.NewInterpreterUsecase(logger),
	}
}

func (p *processor) SupportedKinds() []string {
	kinds := make([]string, len(supportedKinds))
	copy(kinds, supportedKinds)
	return kinds
}

func (p *processor) Process(input *contracts.ProcessInput) *models.ProcessingResult {
	formResponse := input.FormResponse

	p.Log.Info("questionnaire.processor.Process called",
		zap.String(constvars.LoggingFormSubmissionIDKey, formResponse.FormSubmissionID),
		zap.String(constvars.LoggingBindingIDKey, input.BindingSpec.BindingID),
		zap.Int(constvars.LoggingMeasureCountKey, len(input.Measures)),
	)

	builder := builders.NewEventBuilder(input.DeterministicIDs)
	collector := diagnostics.NewCollector(
		formResponse.FormSubmissionID,
		formResponse.FormID,
		input.BindingSpec.BindingID,
		input.BindingSpec.Version,
		p.Log,
	)

	events := make([]models.MeasurementEvent, 0)

	mappingResult := p.mapper.Map(formResponse, input.BindingSpec)
	collector.CollectFromMapping(mappingResult)

	recodingResult, err := p.recoder.Recode(mappingResult, input.Measures)
	if err != nil {
		collector.AddError(diagnostics.Entry{
			Stage:   constvars.StageBuilding,
			Code:    constvars.CodePipelineError,
			Message: err.Error(),
		})
	} else {
		collector.CollectFromRecoding(recodingResult)

		for idx := range recodingResult.Sections {
			section := &recodingResult.Sections[idx]
			measure := input.Measures[section.MeasureID]

			validationResult := p.validator.Validate(section, measure)
			collector.CollectFromValidation(validationResult, section.MeasureID)

			itemsPresent := countPresent(section)
			collector.SetMeasureQuality(
				section.MeasureID,
				len(measure.Items),
				itemsPresent,
				validationResult.MissingItems,
				validationResult.OutOfRangeItems,
				[]string{},
			)

			scoringResult := p.scorer.Score(section, measure)
			collector.CollectFromScoring(scoringResult)

			proratedScales := make([]string, 0)
			sectionWarnings := make([]string, 0)
			for scaleIdx := range scoringResult.Scales {
				scale := &scoringResult.Scales[scaleIdx]
				if !scale.Prorated {
					continue
				}
				proratedScales = append(proratedScales, scale.ScaleID)
				sectionWarnings = append(sectionWarnings, fmt.Sprintf(
					"Scale %s was prorated (missing: [%s])",
					scale.ScaleID, strings.Join(scale.MissingItems, ", "),
				))
			}
			if len(proratedScales) > 0 {
				collector.SetMeasureQuality(
					section.MeasureID,
					len(measure.Items),
					itemsPresent,
					validationResult.MissingItems,
					validationResult.OutOfRangeItems,
					proratedScales,
				)
			}

			interpretationResult := p.interpreter.Interpret(scoringResult, measure)

			event := builder.Build(&contracts.BuildInput{
				RecodedSection:       section,
				ScoringResult:        scoringResult,
				InterpretationResult: interpretationResult,
				BindingSpec:          input.BindingSpec,
				FormID:               formResponse.FormID,
				FormSubmissionID:     formResponse.FormSubmissionID,
				SubjectID:            formResponse.SubjectID,
				Timestamp:            formResponse.Timestamp,
				FormCorrelationID:    formResponse.FormCorrelationID,
				Warnings:             sectionWarnings,
			})
			events = append(events, *event)
		}
	}

	diagnostic := collector.Finalize()
	success := diagnostic.Status == models.ProcessingSuccess || diagnostic.Status == models.ProcessingPartial

	p.Log.Info("questionnaire.processor.Process finished",
		zap.String(constvars.LoggingFormSubmissionIDKey, formResponse.FormSubmissionID),
		zap.String(constvars.LoggingStatusKey, string(diagnostic.Status)),
		zap.Int(constvars.LoggingEventCountKey, len(events)),
	)

	return &models.ProcessingResult{
		FormSubmissionID: formResponse.FormSubmissionID,
		Events:           events,
		Diagnostics:      diagnostic,
		Success:          success,
	}
}

func (p *processor) ValidateMeasure(measure *models.MeasureSpec) []string {
	errors := make([]string, 0)

	if !kindSupported(measure.Kind) {
		errors = append(errors, fmt.Sprintf(
			"Measure kind '%s' is not supported by questionnaire domain. Supported kinds: %s",
			measure.Kind, strings.Join(supportedKinds, ", "),
		))
		return errors
	}

	if len(measure.Items) == 0 {
		errors = append(errors, "Questionnaire measures must have at least one item")
	}

	for idx := range measure.Items {
		if len(measure.Items[idx].ResponseMap) == 0 {
			errors = append(errors, fmt.Sprintf("Item %s must have a response_map", measure.Items[idx].ItemID))
		}
	}

	itemIDs := make(map[string]struct{}, len(measure.Items))
	for idx := range measure.Items {
		itemIDs[measure.Items[idx].ItemID] = struct{}{}
	}
	for scaleIdx := range measure.Scales {
		scale := &measure.Scales[scaleIdx]
		for _, itemID := range scale.Items {
			if _, ok := itemIDs[itemID]; !ok {
				errors = append(errors, fmt.Sprintf("Scale %s references unknown item: %s", scale.ScaleID, itemID))
			}
		}
	}

	return errors
}

func kindSupported(kind string) bool {
	for _, supported := range supportedKinds {
		if kind == supported {
			return true
		}
	}
	return false
}

func countPresent(section *models.RecodedSection) int {
	present := 0
	for idx := range section.Items {
		if !section.Items[idx].Missing {
			present++
		}
	}
	return present
}

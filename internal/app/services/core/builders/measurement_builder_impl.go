package builders

import (
	"fmt"
	"time"

	"finalform-service/internal/app/contracts"
	"finalform-service/internal/app/models"
	"finalform-service/internal/pkg/constvars"
	"finalform-service/internal/pkg/utils"
)

// measurementEventBuilder assembles recoded items, scores and interpretations
// into one measurement event per measure. Builders are per-request: the
// deterministic counter must start at zero for every submission, so there is
// no singleton here.
type measurementEventBuilder struct {
	ids idGenerator
}

func NewEventBuilder(deterministicIDs bool) contracts.EventBuilder {
	if deterministicIDs {
		return &measurementEventBuilder{ids: &deterministicIDGenerator{}}
	}
	return &measurementEventBuilder{ids: &randomIDGenerator{}}
}

func (b *measurementEventBuilder) Build(input *contracts.BuildInput) *models.MeasurementEvent {
	section := input.RecodedSection
	seed := fmt.Sprintf("%s:%s", input.FormSubmissionID, section.MeasureID)

	observations := b.buildItemObservations(section, seed)
	observations = append(observations, b.buildScaleObservations(input.ScoringResult, input.InterpretationResult, seed)...)

	warnings := input.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	// The event ID is generated after all observation IDs; reordering these
	// calls changes every deterministic ID downstream.
	return &models.MeasurementEvent{
		SchemaTag:          constvars.SchemaMeasurementEvent,
		MeasurementEventID: b.ids.Generate(seed),
		MeasureID:          section.MeasureID,
		MeasureVersion:     section.MeasureVersion,
		SubjectID:          input.SubjectID,
		Timestamp:          input.Timestamp,
		Source: models.Source{
			FormID:            input.FormID,
			FormSubmissionID:  input.FormSubmissionID,
			FormCorrelationID: input.FormCorrelationID,
			BindingID:         input.BindingSpec.BindingID,
			BindingVersion:    input.BindingSpec.Version,
		},
		Observations: observations,
		Telemetry: models.Telemetry{
			ProcessedAt:      time.Now().UTC().Format(time.RFC3339Nano),
			FinalFormVersion: constvars.FinalFormVersion,
			MeasureSpec:      fmt.Sprintf("%s@%s", section.MeasureID, section.MeasureVersion),
			FormBindingSpec:  fmt.Sprintf("%s@%s", input.BindingSpec.BindingID, input.BindingSpec.Version),
			Warnings:         warnings,
		},
	}
}

func (b *measurementEventBuilder) buildItemObservations(section *models.RecodedSection, seed string) []models.Observation {
	observations := make([]models.Observation, 0, len(section.Items))

	for idx := range section.Items {
		item := &section.Items[idx]
		value, valueType := observationValue(item.Value)

		var rawAnswer *string
		if !item.RawAnswer.IsNull() {
			display := item.RawAnswer.Display()
			rawAnswer = &display
		}

		observations = append(observations, models.Observation{
			SchemaTag:     constvars.SchemaObservation,
			ObservationID: b.ids.Generate(fmt.Sprintf("%s:item:%s", seed, item.ItemID)),
			MeasureID:     item.MeasureID,
			Code:          item.ItemID,
			Kind:          models.ObservationKindItem,
			Value:         value,
			ValueType:     valueType,
			RawAnswer:     rawAnswer,
			Position:      item.Position,
			Missing:       item.Missing,
		})
	}
	return observations
}

func (b *measurementEventBuilder) buildScaleObservations(scoringResult *models.ScoringResult, interpretationResult *models.InterpretationResult, seed string) []models.Observation {
	observations := make([]models.Observation, 0, len(scoringResult.Scales))

	for idx := range scoringResult.Scales {
		scale := &scoringResult.Scales[idx]

		var label *string
		if interpreted := interpretationResult.GetScore(scale.ScaleID); interpreted != nil {
			label = interpreted.Label
		}

		value, valueType := observationValue(scale.Value)

		observations = append(observations, models.Observation{
			SchemaTag:     constvars.SchemaObservation,
			ObservationID: b.ids.Generate(fmt.Sprintf("%s:scale:%s", seed, scale.ScaleID)),
			MeasureID:     scoringResult.MeasureID,
			Code:          scale.ScaleID,
			Kind:          models.ObservationKindScale,
			Value:         value,
			ValueType:     valueType,
			Label:         label,
		})
	}
	return observations
}

// observationValue narrows a recoded value for the wire: whole floats are
// emitted as integers, fractional floats stay floats.
func observationValue(value *float64) (any, string) {
	if value == nil {
		return nil, models.ValueTypeNull
	}
	if utils.IsWholeNumber(*value) {
		return int64(*value), models.ValueTypeInteger
	}
	return *value, models.ValueTypeFloat
}

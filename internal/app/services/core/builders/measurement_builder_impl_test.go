package builders

import (
	"testing"

	"finalform-service/internal/app/contracts"
	"finalform-service/internal/app/models"
	"finalform-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func buildInput() *contracts.BuildInput {
	value1 := 2.0
	value2 := 1.5
	label := "Mild"
	total := 3.5

	return &contracts.BuildInput{
		RecodedSection: &models.RecodedSection{
			MeasureID:      "phq2",
			MeasureVersion: "1.0.0",
			Items: []models.RecodedItem{
				{
					MeasureID: "phq2", MeasureVersion: "1.0.0", ItemID: "item1",
					Value: &value1, RawAnswer: models.StringAnswer("more than half the days"),
				},
				{
					MeasureID: "phq2", MeasureVersion: "1.0.0", ItemID: "item2",
					Value: &value2, RawAnswer: models.FloatAnswer(1.5),
				},
				{
					MeasureID: "phq2", MeasureVersion: "1.0.0", ItemID: "item3",
					Value: nil, RawAnswer: models.NullAnswer(), Missing: true,
				},
			},
		},
		ScoringResult: &models.ScoringResult{
			MeasureID:      "phq2",
			MeasureVersion: "1.0.0",
			Scales: []models.ScaleScore{{
				ScaleID: "total", Name: "Total", Value: &total, Method: "sum",
			}},
		},
		InterpretationResult: &models.InterpretationResult{
			MeasureID:      "phq2",
			MeasureVersion: "1.0.0",
			Scores: []models.InterpretedScore{{
				ScaleID: "total", Name: "Total", Value: &total, Label: &label,
			}},
		},
		BindingSpec: &models.FormBindingSpec{
			Type: "form_binding_spec", FormID: "intake_v1",
			BindingID: "intake_v1", Version: "1.0.0",
			Sections: []models.BindingSection{{
				MeasureID: "phq2", MeasureVersion: "1.0.0",
				Bindings: []models.Binding{{ItemID: "item1", By: "field_key", Value: models.FieldKeyValue("q1")}},
			}},
		},
		FormID:            "intake_v1",
		FormSubmissionID:  "sub-001",
		SubjectID:         "subject-abc",
		Timestamp:         "2026-08-01T10:00:00Z",
		FormCorrelationID: strPtr("corr-1"),
	}
}

func TestBuildEventShape(t *testing.T) {
	builder := NewEventBuilder(false)
	event := builder.Build(buildInput())

	assert.Equal(t, constvars.SchemaMeasurementEvent, event.SchemaTag)
	assert.Equal(t, "phq2", event.MeasureID)
	assert.Equal(t, "1.0.0", event.MeasureVersion)
	assert.Equal(t, "subject-abc", event.SubjectID)
	assert.Equal(t, "2026-08-01T10:00:00Z", event.Timestamp)
	assert.Equal(t, "intake_v1", event.Source.BindingID)
	require.NotNil(t, event.Source.FormCorrelationID)
	assert.Equal(t, "corr-1", *event.Source.FormCorrelationID)

	// 3 item observations followed by 1 scale observation
	require.Len(t, event.Observations, 4)
	for _, obs := range event.Observations {
		assert.Equal(t, constvars.SchemaObservation, obs.SchemaTag)
		assert.NotEmpty(t, obs.ObservationID)
	}

	assert.Equal(t, "phq2@1.0.0", event.Telemetry.MeasureSpec)
	assert.Equal(t, "intake_v1@1.0.0", event.Telemetry.FormBindingSpec)
	assert.Equal(t, constvars.FinalFormVersion, event.Telemetry.FinalFormVersion)
	assert.NotNil(t, event.Telemetry.Warnings)
	assert.NotEmpty(t, event.Telemetry.ProcessedAt)
}

func TestBuildObservationValues(t *testing.T) {
	builder := NewEventBuilder(false)
	event := builder.Build(buildInput())

	t.Run("WholeFloatsBecomeIntegers", func(t *testing.T) {
		obs := event.Observations[0]
		assert.Equal(t, models.ObservationKindItem, obs.Kind)
		assert.Equal(t, int64(2), obs.Value)
		assert.Equal(t, models.ValueTypeInteger, obs.ValueType)
		require.NotNil(t, obs.RawAnswer)
		assert.Equal(t, "more than half the days", *obs.RawAnswer)
	})

	t.Run("FractionalFloatsStayFloats", func(t *testing.T) {
		obs := event.Observations[1]
		assert.Equal(t, 1.5, obs.Value)
		assert.Equal(t, models.ValueTypeFloat, obs.ValueType)
	})

	t.Run("MissingItemsAreNull", func(t *testing.T) {
		obs := event.Observations[2]
		assert.Nil(t, obs.Value)
		assert.Equal(t, models.ValueTypeNull, obs.ValueType)
		assert.True(t, obs.Missing)
		assert.Nil(t, obs.RawAnswer)
	})

	t.Run("ScaleObservationCarriesLabel", func(t *testing.T) {
		obs := event.Observations[3]
		assert.Equal(t, models.ObservationKindScale, obs.Kind)
		assert.Equal(t, "total", obs.Code)
		assert.Equal(t, 3.5, obs.Value)
		assert.Equal(t, models.ValueTypeFloat, obs.ValueType)
		require.NotNil(t, obs.Label)
		assert.Equal(t, "Mild", *obs.Label)
	})
}

func TestDeterministicIDs(t *testing.T) {
	t.Run("FreshBuildersAgree", func(t *testing.T) {
		first := NewEventBuilder(true).Build(buildInput())
		second := NewEventBuilder(true).Build(buildInput())

		assert.Equal(t, first.MeasurementEventID, second.MeasurementEventID)
		require.Len(t, second.Observations, len(first.Observations))
		for idx := range first.Observations {
			assert.Equal(t, first.Observations[idx].ObservationID, second.Observations[idx].ObservationID)
		}
	})

	t.Run("DistinctWithinOneEvent", func(t *testing.T) {
		event := NewEventBuilder(true).Build(buildInput())
		seen := map[string]struct{}{event.MeasurementEventID: {}}
		for _, obs := range event.Observations {
			_, dup := seen[obs.ObservationID]
			assert.False(t, dup, "observation ID reused: %s", obs.ObservationID)
			seen[obs.ObservationID] = struct{}{}
		}
	})

	t.Run("RandomBuildersDiffer", func(t *testing.T) {
		first := NewEventBuilder(false).Build(buildInput())
		second := NewEventBuilder(false).Build(buildInput())
		assert.NotEqual(t, first.MeasurementEventID, second.MeasurementEventID)
	})
}

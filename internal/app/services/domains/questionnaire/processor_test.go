package questionnaire

import (
	"fmt"
	"testing"

	"finalform-service/internal/app/contracts"
	"finalform-service/internal/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func answerPtr(answer models.AnswerValue) *models.AnswerValue { return &answer }

func gad7Measure() *models.MeasureSpec {
	responseMap := map[string]int{
		"not at all":              0,
		"several days":            1,
		"more than half the days": 2,
		"nearly every day":        3,
	}

	items := make([]models.MeasureItem, 0, 7)
	scaleItems := make([]string, 0, 7)
	for i := 1; i <= 7; i++ {
		itemID := fmt.Sprintf("gad7_item%d", i)
		items = append(items, models.MeasureItem{
			ItemID: itemID, Position: i, Text: itemID, ResponseMap: responseMap,
		})
		scaleItems = append(scaleItems, itemID)
	}

	return &models.MeasureSpec{
		Type:      "measure_spec",
		MeasureID: "gad7",
		Version:   "1.0.0",
		Name:      "GAD-7",
		Kind:      "questionnaire",
		Items:     items,
		Scales: []models.MeasureScale{{
			ScaleID:         "gad7_total",
			Name:            "GAD-7 Total Score",
			Items:           scaleItems,
			Method:          "sum",
			MissingAllowed:  0,
			MissingStrategy: "fail",
			Interpretations: []models.Interpretation{
				{Min: 0, Max: 4, Label: "Minimal"},
				{Min: 5, Max: 9, Label: "Mild"},
				{Min: 10, Max: 14, Label: "Moderate"},
				{Min: 15, Max: 21, Label: "Severe"},
			},
		}},
	}
}

func gad7Binding() *models.FormBindingSpec {
	bindings := make([]models.Binding, 0, 7)
	for i := 1; i <= 7; i++ {
		bindings = append(bindings, models.Binding{
			ItemID: fmt.Sprintf("gad7_item%d", i),
			By:     "field_key",
			Value:  models.FieldKeyValue(fmt.Sprintf("g%d", i)),
		})
	}
	return &models.FormBindingSpec{
		Type:      "form_binding_spec",
		FormID:    "anxiety_screen",
		BindingID: "anxiety_screen",
		Version:   "1.0.0",
		Sections: []models.BindingSection{{
			MeasureID:      "gad7",
			MeasureVersion: "1.0.0",
			Bindings:       bindings,
		}},
	}
}

func gad7Submission(answers map[string]string) *models.FormResponse {
	items := make([]models.FormItem, 0, len(answers))
	for i := 1; i <= 7; i++ {
		fieldKey := fmt.Sprintf("g%d", i)
		answer, ok := answers[fieldKey]
		if !ok {
			continue
		}
		items = append(items, models.FormItem{
			FieldKey: strPtr(fieldKey),
			Answer:   answerPtr(models.StringAnswer(answer)),
		})
	}
	return &models.FormResponse{
		FormID:           "anxiety_screen",
		FormSubmissionID: "sub-001",
		SubjectID:        "subject-abc",
		Timestamp:        "2026-08-01T10:00:00Z",
		Items:            items,
	}
}

func allAnswers(text string) map[string]string {
	answers := make(map[string]string, 7)
	for i := 1; i <= 7; i++ {
		answers[fmt.Sprintf("g%d", i)] = text
	}
	return answers
}

func scaleObservation(t *testing.T, event *models.MeasurementEvent) models.Observation {
	t.Helper()
	for _, obs := range event.Observations {
		if obs.Kind == models.ObservationKindScale {
			return obs
		}
	}
	t.Fatal("event carries no scale observation")
	return models.Observation{}
}

func processInput(formResponse *models.FormResponse, measure *models.MeasureSpec, deterministic bool) *contracts.ProcessInput {
	return &contracts.ProcessInput{
		FormResponse:     formResponse,
		BindingSpec:      gad7Binding(),
		Measures:         map[string]*models.MeasureSpec{"gad7": measure},
		DeterministicIDs: deterministic,
	}
}

func TestProcessorProcess(t *testing.T) {
	processor := NewProcessor(zap.NewNop())

	t.Run("CleanSubmission", func(t *testing.T) {
		answers := allAnswers("several days")
		answers["g6"] = "not at all"
		answers["g7"] = "not at all"

		result := processor.Process(processInput(gad7Submission(answers), gad7Measure(), false))
		assert.True(t, result.Success)
		assert.Equal(t, models.ProcessingSuccess, result.Diagnostics.Status)

		require.Len(t, result.Events, 1)
		event := result.Events[0]
		assert.Equal(t, "gad7", event.MeasureID)
		// 7 item observations plus the total scale
		require.Len(t, event.Observations, 8)

		scale := scaleObservation(t, &event)
		assert.Equal(t, int64(5), scale.Value)
		require.NotNil(t, scale.Label)
		assert.Equal(t, "Mild", *scale.Label)
	})

	t.Run("SevereSubmission", func(t *testing.T) {
		result := processor.Process(processInput(gad7Submission(allAnswers("nearly every day")), gad7Measure(), false))
		require.Len(t, result.Events, 1)
		scale := scaleObservation(t, &result.Events[0])
		assert.Equal(t, int64(21), scale.Value)
		require.NotNil(t, scale.Label)
		assert.Equal(t, "Severe", *scale.Label)
	})

	t.Run("MissingItemFailsStrictScale", func(t *testing.T) {
		answers := allAnswers("several days")
		delete(answers, "g7")

		result := processor.Process(processInput(gad7Submission(answers), gad7Measure(), false))
		assert.False(t, result.Success)
		assert.Equal(t, models.ProcessingFailed, result.Diagnostics.Status)

		// The event is still built: 6 answered items plus a null scale score.
		require.Len(t, result.Events, 1)
		require.Len(t, result.Events[0].Observations, 7)
		scale := scaleObservation(t, &result.Events[0])
		assert.Nil(t, scale.Value)
		assert.Equal(t, models.ValueTypeNull, scale.ValueType)

		require.Len(t, result.Diagnostics.Measures, 1)
		require.NotEmpty(t, result.Diagnostics.Measures[0].Errors)
		assert.Contains(t, result.Diagnostics.Measures[0].Errors[len(result.Diagnostics.Measures[0].Errors)-1].Message, "Too many missing items")
	})

	t.Run("MissingItemProrates", func(t *testing.T) {
		measure := gad7Measure()
		measure.Scales[0].MissingAllowed = 1
		measure.Scales[0].MissingStrategy = "prorate"

		answers := allAnswers("more than half the days")
		delete(answers, "g7")

		result := processor.Process(processInput(gad7Submission(answers), measure, false))
		assert.True(t, result.Success)
		assert.Equal(t, models.ProcessingPartial, result.Diagnostics.Status)

		require.Len(t, result.Events, 1)
		event := result.Events[0]
		scale := scaleObservation(t, &event)
		// 6 items of 2 = 12, scaled by 7/6 = 14
		assert.Equal(t, int64(14), scale.Value)

		require.Len(t, event.Telemetry.Warnings, 1)
		assert.Contains(t, event.Telemetry.Warnings[0], "prorated")

		require.Len(t, result.Diagnostics.Measures, 1)
		quality := result.Diagnostics.Measures[0].Quality
		require.NotNil(t, quality)
		assert.Equal(t, []string{"gad7_total"}, quality.ProratedScales)
		assert.Equal(t, []string{"gad7_item7"}, quality.MissingItems)
	})

	t.Run("UnmappedFieldMakesPartial", func(t *testing.T) {
		submission := gad7Submission(allAnswers("not at all"))
		submission.Items = append(submission.Items, models.FormItem{
			FieldKey: strPtr("comments"),
			Answer:   answerPtr(models.StringAnswer("feeling okay lately")),
		})

		result := processor.Process(processInput(submission, gad7Measure(), false))
		assert.True(t, result.Success)
		assert.Equal(t, models.ProcessingPartial, result.Diagnostics.Status)
		require.Len(t, result.Diagnostics.Warnings, 1)
		require.NotNil(t, result.Diagnostics.Warnings[0].FieldKey)
		assert.Equal(t, "comments", *result.Diagnostics.Warnings[0].FieldKey)
	})

	t.Run("DeterministicIDsReproduce", func(t *testing.T) {
		answers := allAnswers("several days")

		first := processor.Process(processInput(gad7Submission(answers), gad7Measure(), true))
		second := processor.Process(processInput(gad7Submission(answers), gad7Measure(), true))

		require.Len(t, first.Events, 1)
		require.Len(t, second.Events, 1)
		assert.Equal(t, first.Events[0].MeasurementEventID, second.Events[0].MeasurementEventID)
		for idx := range first.Events[0].Observations {
			assert.Equal(t,
				first.Events[0].Observations[idx].ObservationID,
				second.Events[0].Observations[idx].ObservationID,
			)
		}
	})
}

func TestProcessorSupportedKinds(t *testing.T) {
	processor := NewProcessor(zap.NewNop())
	assert.Equal(t, []string{"questionnaire", "scale", "inventory", "checklist"}, processor.SupportedKinds())
}

func TestProcessorValidateMeasure(t *testing.T) {
	processor := NewProcessor(zap.NewNop())

	t.Run("ValidMeasure", func(t *testing.T) {
		assert.Empty(t, processor.ValidateMeasure(gad7Measure()))
	})

	t.Run("UnsupportedKind", func(t *testing.T) {
		measure := gad7Measure()
		measure.Kind = "lab_panel"
		errors := processor.ValidateMeasure(measure)
		require.Len(t, errors, 1)
		assert.Contains(t, errors[0], "not supported by questionnaire domain")
	})

	t.Run("NoItems", func(t *testing.T) {
		measure := gad7Measure()
		measure.Items = nil
		errors := processor.ValidateMeasure(measure)
		assert.Contains(t, errors, "Questionnaire measures must have at least one item")
	})

	t.Run("EmptyResponseMap", func(t *testing.T) {
		measure := gad7Measure()
		measure.Items[0].ResponseMap = nil
		errors := processor.ValidateMeasure(measure)
		require.NotEmpty(t, errors)
		assert.Contains(t, errors[0], "must have a response_map")
	})

	t.Run("ScaleReferencesUnknownItem", func(t *testing.T) {
		measure := gad7Measure()
		measure.Scales[0].Items = append(measure.Scales[0].Items, "gad7_item99")
		errors := processor.ValidateMeasure(measure)
		require.NotEmpty(t, errors)
		assert.Contains(t, errors[0], "references unknown item: gad7_item99")
	})
}

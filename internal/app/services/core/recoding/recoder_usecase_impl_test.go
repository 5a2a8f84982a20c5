package recoding

import (
	"testing"

	"finalform-service/internal/app/models"
	"finalform-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testMeasure() *models.MeasureSpec {
	return &models.MeasureSpec{
		Type:      "measure_spec",
		MeasureID: "phq2",
		Version:   "1.0.0",
		Name:      "PHQ-2",
		Kind:      "questionnaire",
		Items: []models.MeasureItem{
			{
				ItemID:   "phq2_item1",
				Position: 1,
				Text:     "Little interest or pleasure in doing things",
				ResponseMap: map[string]int{
					"not at all":              0,
					"several days":            1,
					"more than half the days": 2,
					"nearly every day":        3,
				},
				Aliases: map[string]string{
					"never": "not at all",
				},
			},
			{
				ItemID:   "phq2_item2",
				Position: 2,
				Text:     "Feeling down, depressed, or hopeless",
				ResponseMap: map[string]int{
					"not at all":              0,
					"several days":            1,
					"more than half the days": 2,
					"nearly every day":        3,
				},
			},
		},
	}
}

func mappedItem(itemID string, answer models.AnswerValue) models.MappedItem {
	return models.MappedItem{
		MeasureID:      "phq2",
		MeasureVersion: "1.0.0",
		ItemID:         itemID,
		RawAnswer:      answer,
	}
}

func mappedSection(items ...models.MappedItem) *models.MappedSection {
	return &models.MappedSection{
		MeasureID:      "phq2",
		MeasureVersion: "1.0.0",
		Items:          items,
	}
}

func TestRecoderRecodeSection(t *testing.T) {
	recoder := NewRecoderUsecase(zap.NewNop())
	measure := testMeasure()

	t.Run("RecodesCanonicalText", func(t *testing.T) {
		section, err := recoder.RecodeSection(mappedSection(
			mappedItem("phq2_item1", models.StringAnswer("several days")),
		), measure)
		require.NoError(t, err)
		require.Len(t, section.Items, 1)
		require.NotNil(t, section.Items[0].Value)
		assert.Equal(t, 1.0, *section.Items[0].Value)
		assert.False(t, section.Items[0].Missing)
	})

	t.Run("NormalizesCaseAndWhitespace", func(t *testing.T) {
		section, err := recoder.RecodeSection(mappedSection(
			mappedItem("phq2_item1", models.StringAnswer("  Nearly Every Day  ")),
		), measure)
		require.NoError(t, err)
		require.NotNil(t, section.Items[0].Value)
		assert.Equal(t, 3.0, *section.Items[0].Value)
	})

	t.Run("ResolvesAliases", func(t *testing.T) {
		section, err := recoder.RecodeSection(mappedSection(
			mappedItem("phq2_item1", models.StringAnswer("Never")),
		), measure)
		require.NoError(t, err)
		require.NotNil(t, section.Items[0].Value)
		assert.Equal(t, 0.0, *section.Items[0].Value)
	})

	t.Run("AcceptsNumericAnswers", func(t *testing.T) {
		section, err := recoder.RecodeSection(mappedSection(
			mappedItem("phq2_item1", models.IntAnswer(2)),
		), measure)
		require.NoError(t, err)
		require.NotNil(t, section.Items[0].Value)
		assert.Equal(t, 2.0, *section.Items[0].Value)
	})

	t.Run("AcceptsNumericStrings", func(t *testing.T) {
		section, err := recoder.RecodeSection(mappedSection(
			mappedItem("phq2_item1", models.StringAnswer("2.0")),
		), measure)
		require.NoError(t, err)
		require.NotNil(t, section.Items[0].Value)
		assert.Equal(t, 2.0, *section.Items[0].Value)
	})

	t.Run("RejectsOutOfRangeNumbers", func(t *testing.T) {
		_, err := recoder.RecodeSection(mappedSection(
			mappedItem("phq2_item1", models.IntAnswer(9)),
		), measure)
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindRecoding))
	})

	t.Run("RejectsUnknownResponses", func(t *testing.T) {
		_, err := recoder.RecodeSection(mappedSection(
			mappedItem("phq2_item1", models.StringAnswer("sometimes")),
		), measure)
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindRecoding))
		assert.Contains(t, err.Error(), "Valid responses")
	})

	t.Run("RejectsBoolAnswers", func(t *testing.T) {
		_, err := recoder.RecodeSection(mappedSection(
			mappedItem("phq2_item1", models.BoolAnswer(true)),
		), measure)
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindRecoding))
	})

	t.Run("NullAndEmptyAreMissing", func(t *testing.T) {
		section, err := recoder.RecodeSection(mappedSection(
			mappedItem("phq2_item1", models.NullAnswer()),
			mappedItem("phq2_item2", models.StringAnswer("")),
		), measure)
		require.NoError(t, err)
		assert.True(t, section.Items[0].Missing)
		assert.Nil(t, section.Items[0].Value)
		assert.True(t, section.Items[1].Missing)
	})

	t.Run("UnknownItemFails", func(t *testing.T) {
		_, err := recoder.RecodeSection(mappedSection(
			mappedItem("phq2_item99", models.IntAnswer(1)),
		), measure)
		require.Error(t, err)
	})
}

func TestRecoderRecode(t *testing.T) {
	recoder := NewRecoderUsecase(zap.NewNop())

	t.Run("FailsWhenMeasureSpecMissing", func(t *testing.T) {
		mappingResult := &models.MappingResult{
			FormID:           "intake_v1",
			FormSubmissionID: "sub-001",
			SubjectID:        "subject-abc",
			Timestamp:        "2026-08-01T10:00:00Z",
			Sections:         []models.MappedSection{*mappedSection(mappedItem("phq2_item1", models.IntAnswer(1)))},
		}

		_, err := recoder.Recode(mappingResult, map[string]*models.MeasureSpec{})
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindRecoding))
	})

	t.Run("CarriesSubmissionMetadata", func(t *testing.T) {
		mappingResult := &models.MappingResult{
			FormID:           "intake_v1",
			FormSubmissionID: "sub-001",
			SubjectID:        "subject-abc",
			Timestamp:        "2026-08-01T10:00:00Z",
			Sections:         []models.MappedSection{*mappedSection(mappedItem("phq2_item1", models.IntAnswer(1)))},
		}

		result, err := recoder.Recode(mappingResult, map[string]*models.MeasureSpec{"phq2": testMeasure()})
		require.NoError(t, err)
		assert.Equal(t, "sub-001", result.FormSubmissionID)
		assert.Equal(t, "subject-abc", result.SubjectID)
		require.Len(t, result.Sections, 1)
	})
}

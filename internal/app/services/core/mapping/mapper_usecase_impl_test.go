package mapping

import (
	"testing"

	"finalform-service/internal/app/models"
	"finalform-service/internal/pkg/constvars"
	"finalform-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func testBindingSpec() *models.FormBindingSpec {
	return &models.FormBindingSpec{
		Type:      constvars.SpecTypeFormBinding,
		FormID:    "intake_v1",
		BindingID: "intake_v1",
		Version:   "1.0.0",
		Sections: []models.BindingSection{{
			MeasureID:      "phq2",
			MeasureVersion: "1.0.0",
			Bindings: []models.Binding{
				{ItemID: "phq2_item1", By: constvars.BindingByFieldKey, Value: models.FieldKeyValue("q1")},
				{ItemID: "phq2_item2", By: constvars.BindingByFieldKey, Value: models.FieldKeyValue("q2")},
			},
		}},
	}
}

func testFormResponse(items []models.FormItem) *models.FormResponse {
	return &models.FormResponse{
		FormID:           "intake_v1",
		FormSubmissionID: "sub-001",
		SubjectID:        "subject-abc",
		Timestamp:        "2026-08-01T10:00:00Z",
		Items:            items,
	}
}

func TestMapperMap(t *testing.T) {
	mapper := NewMapperUsecase(zap.NewNop())

	t.Run("MapsByFieldKey", func(t *testing.T) {
		answer1 := models.StringAnswer("several days")
		answer2 := models.IntAnswer(2)
		formResponse := testFormResponse([]models.FormItem{
			{FieldKey: strPtr("q1"), Answer: &answer1},
			{FieldKey: strPtr("q2"), Answer: &answer2},
		})

		result := mapper.Map(formResponse, testBindingSpec())
		require.Len(t, result.Sections, 1)
		section := result.Sections[0]
		assert.Equal(t, "phq2", section.MeasureID)
		require.Len(t, section.Items, 2)
		assert.Equal(t, "phq2_item1", section.Items[0].ItemID)
		assert.Equal(t, "several days", section.Items[0].RawAnswer.Str())
		assert.Equal(t, int64(2), section.Items[1].RawAnswer.Int())
		assert.Empty(t, result.UnmappedFields)
	})

	t.Run("MapsByPosition", func(t *testing.T) {
		bindingSpec := testBindingSpec()
		bindingSpec.Sections[0].Bindings = []models.Binding{
			{ItemID: "phq2_item1", By: constvars.BindingByPosition, Value: models.PositionValue(1)},
		}
		answer := models.StringAnswer("not at all")
		formResponse := testFormResponse([]models.FormItem{
			{FieldKey: strPtr("q1"), Position: intPtr(1), Answer: &answer},
		})

		result := mapper.Map(formResponse, bindingSpec)
		require.Len(t, result.Sections, 1)
		require.Len(t, result.Sections[0].Items, 1)
		assert.Equal(t, "phq2_item1", result.Sections[0].Items[0].ItemID)
		assert.Empty(t, result.UnmappedFields)
	})

	t.Run("SkipsAbsentFields", func(t *testing.T) {
		answer := models.StringAnswer("several days")
		formResponse := testFormResponse([]models.FormItem{
			{FieldKey: strPtr("q1"), Answer: &answer},
		})

		result := mapper.Map(formResponse, testBindingSpec())
		require.Len(t, result.Sections, 1)
		assert.Len(t, result.Sections[0].Items, 1)
	})

	t.Run("ReportsUnmappedFieldsSorted", func(t *testing.T) {
		answer := models.StringAnswer("yes")
		formResponse := testFormResponse([]models.FormItem{
			{FieldKey: strPtr("q1"), Answer: &answer},
			{FieldKey: strPtr("zz_extra"), Answer: &answer},
			{FieldKey: strPtr("aa_extra"), Answer: &answer},
		})

		result := mapper.Map(formResponse, testBindingSpec())
		assert.Equal(t, []string{"aa_extra", "zz_extra"}, result.UnmappedFields)
	})

	t.Run("OmitsEmptySections", func(t *testing.T) {
		formResponse := testFormResponse([]models.FormItem{})
		result := mapper.Map(formResponse, testBindingSpec())
		assert.Empty(t, result.Sections)
	})

	t.Run("FallsBackToValueKey", func(t *testing.T) {
		value := models.StringAnswer("nearly every day")
		formResponse := testFormResponse([]models.FormItem{
			{FieldKey: strPtr("q1"), Value: &value},
		})

		result := mapper.Map(formResponse, testBindingSpec())
		require.Len(t, result.Sections, 1)
		assert.Equal(t, "nearly every day", result.Sections[0].Items[0].RawAnswer.Str())
	})
}

func TestMapperMapStrict(t *testing.T) {
	mapper := NewMapperUsecase(zap.NewNop())

	t.Run("FailsWhenSectionResolvesNothing", func(t *testing.T) {
		formResponse := testFormResponse([]models.FormItem{})
		result, err := mapper.MapStrict(formResponse, testBindingSpec())
		assert.Nil(t, result)
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindMapping))
	})

	t.Run("SucceedsWhenAnyItemResolves", func(t *testing.T) {
		answer := models.StringAnswer("several days")
		formResponse := testFormResponse([]models.FormItem{
			{FieldKey: strPtr("q1"), Answer: &answer},
		})
		result, err := mapper.MapStrict(formResponse, testBindingSpec())
		require.NoError(t, err)
		assert.Len(t, result.Sections, 1)
	})
}

func TestMapperMapSection(t *testing.T) {
	mapper := NewMapperUsecase(zap.NewNop())
	answer := models.StringAnswer("several days")
	formResponse := testFormResponse([]models.FormItem{
		{FieldKey: strPtr("q1"), Answer: &answer},
	})

	section := mapper.MapSection(formResponse, testBindingSpec(), "phq2")
	require.NotNil(t, section)
	assert.Equal(t, "phq2", section.MeasureID)

	assert.Nil(t, mapper.MapSection(formResponse, testBindingSpec(), "missing"))
}

package validation

import (
	"testing"

	"finalform-service/internal/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func floatPtr(f float64) *float64 { return &f }

func testMeasure() *models.MeasureSpec {
	responseMap := map[string]int{
		"not at all":              0,
		"several days":            1,
		"more than half the days": 2,
		"nearly every day":        3,
	}
	return &models.MeasureSpec{
		Type:      "measure_spec",
		MeasureID: "phq4",
		Version:   "1.0.0",
		Name:      "PHQ-4",
		Kind:      "questionnaire",
		Items: []models.MeasureItem{
			{ItemID: "item1", Position: 1, Text: "q1", ResponseMap: responseMap},
			{ItemID: "item2", Position: 2, Text: "q2", ResponseMap: responseMap},
			{ItemID: "item3", Position: 3, Text: "q3", ResponseMap: responseMap},
			{ItemID: "item4", Position: 4, Text: "q4", ResponseMap: responseMap},
		},
		Scales: []models.MeasureScale{{
			ScaleID:         "total",
			Name:            "Total",
			Items:           []string{"item1", "item2", "item3", "item4"},
			Method:          "sum",
			MissingAllowed:  1,
			MissingStrategy: "prorate",
		}},
	}
}

func recodedSection(items ...models.RecodedItem) *models.RecodedSection {
	return &models.RecodedSection{
		MeasureID:      "phq4",
		MeasureVersion: "1.0.0",
		Items:          items,
	}
}

func recodedItem(itemID string, value *float64, missing bool) models.RecodedItem {
	return models.RecodedItem{
		MeasureID:      "phq4",
		MeasureVersion: "1.0.0",
		ItemID:         itemID,
		Value:          value,
		Missing:        missing,
	}
}

func TestValidatorValidate(t *testing.T) {
	validator := NewValidatorUsecase(zap.NewNop())
	measure := testMeasure()

	t.Run("CompleteSectionIsValid", func(t *testing.T) {
		result := validator.Validate(recodedSection(
			recodedItem("item1", floatPtr(1), false),
			recodedItem("item2", floatPtr(2), false),
			recodedItem("item3", floatPtr(0), false),
			recodedItem("item4", floatPtr(3), false),
		), measure)

		assert.True(t, result.Valid)
		assert.Equal(t, 1.0, result.Completeness)
		assert.Empty(t, result.MissingItems)
		assert.Empty(t, result.OutOfRangeItems)
		assert.Empty(t, result.Errors)
	})

	t.Run("AbsentItemsAreMissing", func(t *testing.T) {
		result := validator.Validate(recodedSection(
			recodedItem("item1", floatPtr(1), false),
			recodedItem("item2", floatPtr(2), false),
		), measure)

		assert.True(t, result.Valid, "missing items alone do not invalidate")
		assert.Equal(t, 0.5, result.Completeness)
		assert.Equal(t, []string{"item3", "item4"}, result.MissingItems)
	})

	t.Run("FlaggedMissingItemsCount", func(t *testing.T) {
		result := validator.Validate(recodedSection(
			recodedItem("item1", nil, true),
			recodedItem("item2", floatPtr(2), false),
			recodedItem("item3", floatPtr(0), false),
			recodedItem("item4", floatPtr(1), false),
		), measure)

		assert.Equal(t, []string{"item1"}, result.MissingItems)
		assert.Equal(t, 0.75, result.Completeness)
	})

	t.Run("OutOfRangeInvalidates", func(t *testing.T) {
		result := validator.Validate(recodedSection(
			recodedItem("item1", floatPtr(7), false),
			recodedItem("item2", floatPtr(2), false),
			recodedItem("item3", floatPtr(0), false),
			recodedItem("item4", floatPtr(1), false),
		), measure)

		assert.False(t, result.Valid)
		assert.Equal(t, []string{"item1"}, result.OutOfRangeItems)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "out of range")
	})
}

func TestValidatorValidateForScale(t *testing.T) {
	validator := NewValidatorUsecase(zap.NewNop())
	measure := testMeasure()

	t.Run("UnknownScale", func(t *testing.T) {
		result := validator.ValidateForScale(recodedSection(), measure, "nope")
		assert.False(t, result.Valid)
		assert.Equal(t, 0.0, result.Completeness)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "Unknown scale")
	})

	t.Run("WithinMissingAllowance", func(t *testing.T) {
		result := validator.ValidateForScale(recodedSection(
			recodedItem("item1", floatPtr(1), false),
			recodedItem("item2", floatPtr(2), false),
			recodedItem("item3", floatPtr(0), false),
		), measure, "total")

		assert.True(t, result.Valid)
		assert.Equal(t, []string{"item4"}, result.MissingItems)
		assert.Equal(t, 0.75, result.Completeness)
	})

	t.Run("TooManyMissing", func(t *testing.T) {
		result := validator.ValidateForScale(recodedSection(
			recodedItem("item1", floatPtr(1), false),
		), measure, "total")

		assert.False(t, result.Valid)
		assert.Len(t, result.MissingItems, 3)
		require.NotEmpty(t, result.Errors)
		assert.Contains(t, result.Errors[len(result.Errors)-1], "Too many missing items")
	})
}

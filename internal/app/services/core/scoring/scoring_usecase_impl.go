package scoring

import (
	"fmt"
	"sync"

	"finalform-service/internal/app/contracts"
	"finalform-service/internal/app/models"
	"finalform-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// scoringUsecase computes scale scores purely from the declarative rules on
// the measure spec. No per-questionnaire code exists anywhere in this package.
type scoringUsecase struct {
	Log *zap.Logger
}

var (
	scoringUsecaseInstance contracts.ScoringUsecase
	onceScoringUsecase     sync.Once
)

func NewScoringUsecase(logger *zap.Logger) contracts.ScoringUsecase {
	onceScoringUsecase.Do(func() {
		scoringUsecaseInstance = &scoringUsecase{Log: logger}
	})
	return scoringUsecaseInstance
}

func (uc *scoringUsecase) Score(section *models.RecodedSection, measure *models.MeasureSpec) *models.ScoringResult {
	uc.Log.Debug("scoringUsecase.Score called",
		zap.String(constvars.LoggingMeasureIDKey, section.MeasureID),
		zap.Int(constvars.LoggingScaleCountKey, len(measure.Scales)),
	)

	itemValues := uc.collectItemValues(section)

	scales := make([]models.ScaleScore, 0, len(measure.Scales))
	for idx := range measure.Scales {
		scales = append(scales, *uc.scoreScale(&measure.Scales[idx], itemValues, measure))
	}

	return &models.ScoringResult{
		MeasureID:      section.MeasureID,
		MeasureVersion: section.MeasureVersion,
		Scales:         scales,
	}
}

func (uc *scoringUsecase) ScoreScale(section *models.RecodedSection, measure *models.MeasureSpec, scaleID string) *models.ScaleScore {
	scale := measure.GetScale(scaleID)
	if scale == nil {
		return nil
	}
	return uc.scoreScale(scale, uc.collectItemValues(section), measure)
}

func (uc *scoringUsecase) collectItemValues(section *models.RecodedSection) map[string]*float64 {
	itemValues := make(map[string]*float64, len(section.Items))
	for idx := range section.Items {
		itemValues[section.Items[idx].ItemID] = section.Items[idx].Value
	}
	return itemValues
}

func (uc *scoringUsecase) scoreScale(scale *models.MeasureScale, itemValues map[string]*float64, measure *models.MeasureSpec) *models.ScaleScore {
	values := make(map[string]float64, len(scale.Items))
	missingItems := make([]string, 0)

	for _, itemID := range scale.Items {
		value, present := itemValues[itemID]
		if !present || value == nil {
			missingItems = append(missingItems, itemID)
			continue
		}
		values[itemID] = *value
	}

	reversedItems := scale.ReversedItems
	if reversedItems == nil {
		reversedItems = []string{}
	}

	score := &models.ScaleScore{
		ScaleID:       scale.ScaleID,
		Name:          scale.Name,
		Method:        scale.Method,
		ItemsUsed:     len(values),
		ItemsTotal:    len(scale.Items),
		MissingItems:  missingItems,
		ReversedItems: reversedItems,
	}

	if len(missingItems) > scale.MissingAllowed {
		if scale.MissingStrategy == constvars.MissingStrategySkip {
			// Skip silently, null score with no error.
			return score
		}
		score.Error = fmt.Sprintf("Too many missing items: %d missing, %d allowed", len(missingItems), scale.MissingAllowed)
		uc.Log.Warn("scoringUsecase.Score too many missing items",
			zap.String(constvars.LoggingScaleIDKey, scale.ScaleID),
			zap.Int("missing_count", len(missingItems)),
			zap.Int("missing_allowed", scale.MissingAllowed),
		)
		return score
	}

	if len(values) == 0 {
		score.Error = "No values available for scoring"
		return score
	}

	if len(reversedItems) > 0 {
		// Response range taken from the first scale item; all items of a
		// reversed scale share one response range.
		if firstItemSpec := measure.GetItem(scale.Items[0]); firstItemSpec != nil {
			minValue, maxValue := firstItemSpec.ResponseRange()
			values = applyReverseScoring(values, reversedItems, minValue, maxValue)
		}
	}

	valueList := make([]float64, 0, len(values))
	for _, itemID := range scale.Items {
		if v, ok := values[itemID]; ok {
			valueList = append(valueList, v)
		}
	}

	prorated := len(missingItems) > 0
	var scoreValue float64
	if prorated {
		scoreValue = prorateScore(valueList, scale.Method, len(scale.Items))
	} else {
		scoreValue = computeScore(valueList, scale.Method)
	}

	score.Value = &scoreValue
	score.Prorated = prorated
	return score
}

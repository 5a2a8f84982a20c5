package interpretation

import (
	"fmt"
	"sync"

	"finalform-service/internal/app/contracts"
	"finalform-service/internal/app/models"
	"finalform-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// interpreterUsecase resolves scale scores against the interpretation bands
// declared on the measure spec. The first band whose inclusive range contains
// the value wins.
type interpreterUsecase struct {
	Log *zap.Logger
}

var (
	interpreterUsecaseInstance contracts.InterpreterUsecase
	onceInterpreterUsecase     sync.Once
)

func NewInterpreterUsecase(logger *zap.Logger) contracts.InterpreterUsecase {
	onceInterpreterUsecase.Do(func() {
		interpreterUsecaseInstance = &interpreterUsecase{Log: logger}
	})
	return interpreterUsecaseInstance
}

func (uc *interpreterUsecase) Interpret(scoringResult *models.ScoringResult, measure *models.MeasureSpec) *models.InterpretationResult {
	uc.Log.Debug("interpreterUsecase.Interpret called",
		zap.String(constvars.LoggingMeasureIDKey, scoringResult.MeasureID),
		zap.Int(constvars.LoggingScaleCountKey, len(scoringResult.Scales)),
	)

	scores := make([]models.InterpretedScore, 0, len(scoringResult.Scales))
	for idx := range scoringResult.Scales {
		scores = append(scores, *uc.InterpretScale(&scoringResult.Scales[idx], measure))
	}

	return &models.InterpretationResult{
		MeasureID:      scoringResult.MeasureID,
		MeasureVersion: scoringResult.MeasureVersion,
		Scores:         scores,
	}
}

func (uc *interpreterUsecase) InterpretScale(scaleScore *models.ScaleScore, measure *models.MeasureSpec) *models.InterpretedScore {
	interpreted := &models.InterpretedScore{
		ScaleID: scaleScore.ScaleID,
		Name:    scaleScore.Name,
		Value:   scaleScore.Value,
	}

	if scaleScore.Value == nil {
		interpreted.Error = scaleScore.Error
		if interpreted.Error == "" {
			interpreted.Error = "No score available"
		}
		return interpreted
	}

	scaleSpec := measure.GetScale(scaleScore.ScaleID)
	if scaleSpec == nil {
		interpreted.Error = fmt.Sprintf("Scale not found in measure spec: %s", scaleScore.ScaleID)
		return interpreted
	}

	value := *scaleScore.Value
	for idx := range scaleSpec.Interpretations {
		band := &scaleSpec.Interpretations[idx]
		if float64(band.Min) <= value && value <= float64(band.Max) {
			label := band.Label
			bandMin := band.Min
			bandMax := band.Max
			interpreted.Label = &label
			interpreted.InterpretationMin = &bandMin
			interpreted.InterpretationMax = &bandMax
			return interpreted
		}
	}

	interpreted.Error = fmt.Sprintf("Score %v does not match any interpretation range", value)
	uc.Log.Warn("interpreterUsecase.InterpretScale no matching band",
		zap.String(constvars.LoggingScaleIDKey, scaleScore.ScaleID),
		zap.Float64("value", value),
	)
	return interpreted
}

func (uc *interpreterUsecase) GetLabel(scaleID string, value float64, measure *models.MeasureSpec) *string {
	scaleSpec := measure.GetScale(scaleID)
	if scaleSpec == nil {
		return nil
	}
	for idx := range scaleSpec.Interpretations {
		band := &scaleSpec.Interpretations[idx]
		if float64(band.Min) <= value && value <= float64(band.Max) {
			label := band.Label
			return &label
		}
	}
	return nil
}

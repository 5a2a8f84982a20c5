package recoding

import (
	"sort"
	"sync"

	"finalform-service/internal/app/contracts"
	"finalform-service/internal/app/models"
	"finalform-service/internal/pkg/constvars"
	"finalform-service/internal/pkg/exceptions"
	"finalform-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// recoderUsecase converts raw answers into canonical numeric values. Text
// must match the response map exactly after normalization and alias
// resolution; anything unrecognized is a hard error.
type recoderUsecase struct {
	Log *zap.Logger
}

var (
	recoderUsecaseInstance contracts.RecoderUsecase
	onceRecoderUsecase     sync.Once
)

func NewRecoderUsecase(logger *zap.Logger) contracts.RecoderUsecase {
	onceRecoderUsecase.Do(func() {
		recoderUsecaseInstance = &recoderUsecase{Log: logger}
	})
	return recoderUsecaseInstance
}

func (uc *recoderUsecase) Recode(mappingResult *models.MappingResult, measures map[string]*models.MeasureSpec) (*models.RecodingResult, error) {
	uc.Log.Debug("recoderUsecase.Recode called",
		zap.String(constvars.LoggingFormSubmissionIDKey, mappingResult.FormSubmissionID),
		zap.Int(constvars.LoggingSectionCountKey, len(mappingResult.Sections)),
	)

	sections := make([]models.RecodedSection, 0, len(mappingResult.Sections))
	for idx := range mappingResult.Sections {
		mappedSection := &mappingResult.Sections[idx]
		measure := measures[mappedSection.MeasureID]
		if measure == nil {
			uc.Log.Error("recoderUsecase.Recode measure spec missing",
				zap.String(constvars.LoggingMeasureIDKey, mappedSection.MeasureID),
			)
			return nil, exceptions.ErrRecodingMeasureSpecMissing(mappedSection.MeasureID)
		}

		recodedSection, err := uc.RecodeSection(mappedSection, measure)
		if err != nil {
			return nil, err
		}
		sections = append(sections, *recodedSection)
	}

	return &models.RecodingResult{
		FormID:           mappingResult.FormID,
		FormSubmissionID: mappingResult.FormSubmissionID,
		SubjectID:        mappingResult.SubjectID,
		Timestamp:        mappingResult.Timestamp,
		Sections:         sections,
	}, nil
}

func (uc *recoderUsecase) RecodeSection(section *models.MappedSection, measure *models.MeasureSpec) (*models.RecodedSection, error) {
	items := make([]models.RecodedItem, 0, len(section.Items))
	for idx := range section.Items {
		recoded, err := uc.recodeItem(&section.Items[idx], measure)
		if err != nil {
			return nil, err
		}
		items = append(items, *recoded)
	}
	return &models.RecodedSection{
		MeasureID:      section.MeasureID,
		MeasureVersion: section.MeasureVersion,
		Items:          items,
	}, nil
}

func (uc *recoderUsecase) recodeItem(mappedItem *models.MappedItem, measure *models.MeasureSpec) (*models.RecodedItem, error) {
	itemSpec := measure.GetItem(mappedItem.ItemID)
	if itemSpec == nil {
		return nil, exceptions.ErrRecodingItemNotFound(mappedItem.ItemID, measure.MeasureID)
	}

	raw := mappedItem.RawAnswer
	var value *float64
	missing := false

	switch {
	case raw.IsEmpty():
		missing = true
	case raw.Kind() == models.AnswerInt || raw.Kind() == models.AnswerFloat:
		numeric, _ := raw.Numeric()
		validated, err := uc.validateNumeric(numeric, itemSpec, mappedItem.ItemID)
		if err != nil {
			return nil, err
		}
		value = &validated
	case raw.Kind() == models.AnswerString:
		recoded, err := uc.recodeString(raw.Str(), itemSpec, mappedItem.ItemID)
		if err != nil {
			return nil, err
		}
		value = &recoded
	default:
		return nil, exceptions.ErrRecodingUnsupportedType(mappedItem.ItemID, raw.TypeName())
	}

	return &models.RecodedItem{
		MeasureID:      mappedItem.MeasureID,
		MeasureVersion: mappedItem.MeasureVersion,
		ItemID:         mappedItem.ItemID,
		Value:          value,
		RawAnswer:      mappedItem.RawAnswer,
		Missing:        missing,
		FieldKey:       mappedItem.FieldKey,
		Position:       mappedItem.Position,
	}, nil
}

func (uc *recoderUsecase) validateNumeric(value float64, itemSpec *models.MeasureItem, itemID string) (float64, error) {
	minVal, maxVal := itemSpec.ResponseRange()
	if value < float64(minVal) || value > float64(maxVal) {
		uc.Log.Error("recoderUsecase value out of range",
			zap.String(constvars.LoggingItemIDKey, itemID),
			zap.Float64("value", value),
		)
		return 0, exceptions.ErrRecodingOutOfRange(value, float64(minVal), float64(maxVal), itemID)
	}
	return value, nil
}

func (uc *recoderUsecase) recodeString(rawAnswer string, itemSpec *models.MeasureItem, itemID string) (float64, error) {
	if numeric, ok := utils.ParseNumericAnswer(rawAnswer); ok {
		return uc.validateNumeric(numeric, itemSpec, itemID)
	}

	normalized := utils.NormalizeResponseText(rawAnswer)

	// Aliases resolve to canonical response text before lookup.
	if canonical, ok := itemSpec.Aliases[normalized]; ok {
		normalized = utils.NormalizeResponseText(canonical)
	}

	for text, mapped := range itemSpec.ResponseMap {
		if utils.NormalizeResponseText(text) == normalized {
			return float64(mapped), nil
		}
	}

	validResponses := make([]string, 0, len(itemSpec.ResponseMap))
	for text := range itemSpec.ResponseMap {
		validResponses = append(validResponses, text)
	}
	sort.Strings(validResponses)

	uc.Log.Error("recoderUsecase unknown response",
		zap.String(constvars.LoggingItemIDKey, itemID),
		zap.String("raw_answer", rawAnswer),
	)
	return 0, exceptions.ErrRecodingUnknownResponse(rawAnswer, itemID, validResponses)
}

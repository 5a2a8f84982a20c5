package validation

import (
	"fmt"
	"sort"
	"sync"

	"finalform-service/internal/app/contracts"
	"finalform-service/internal/app/models"
	"finalform-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// validatorUsecase checks completeness and numeric range conformance of
// recoded sections. Findings are collected, never raised: the range check is
// a defensive re-check independent of the recoder.
type validatorUsecase struct {
	Log *zap.Logger
}

var (
	validatorUsecaseInstance contracts.ValidatorUsecase
	onceValidatorUsecase     sync.Once
)

func NewValidatorUsecase(logger *zap.Logger) contracts.ValidatorUsecase {
	onceValidatorUsecase.Do(func() {
		validatorUsecaseInstance = &validatorUsecase{Log: logger}
	})
	return validatorUsecaseInstance
}

func (uc *validatorUsecase) Validate(section *models.RecodedSection, measure *models.MeasureSpec) *models.ValidationResult {
	uc.Log.Debug("validatorUsecase.Validate called",
		zap.String(constvars.LoggingMeasureIDKey, section.MeasureID),
		zap.Int(constvars.LoggingItemCountKey, len(section.Items)),
	)

	errors := make([]string, 0)
	missingItems := make([]string, 0)
	outOfRangeItems := make([]string, 0)

	recodedItemIDs := make(map[string]struct{}, len(section.Items))
	for idx := range section.Items {
		recodedItemIDs[section.Items[idx].ItemID] = struct{}{}
	}

	missingSet := make(map[string]struct{})
	for idx := range measure.Items {
		itemID := measure.Items[idx].ItemID
		if _, ok := recodedItemIDs[itemID]; !ok {
			missingItems = append(missingItems, itemID)
			missingSet[itemID] = struct{}{}
		}
	}
	for idx := range section.Items {
		item := &section.Items[idx]
		if item.Missing {
			if _, ok := missingSet[item.ItemID]; !ok {
				missingItems = append(missingItems, item.ItemID)
				missingSet[item.ItemID] = struct{}{}
			}
		}
	}

	for idx := range section.Items {
		item := &section.Items[idx]
		if item.Missing || item.Value == nil {
			continue
		}

		itemSpec := measure.GetItem(item.ItemID)
		if itemSpec == nil {
			errors = append(errors, fmt.Sprintf("Unknown item: %s", item.ItemID))
			continue
		}

		minVal, maxVal := itemSpec.ResponseRange()
		if *item.Value < float64(minVal) || *item.Value > float64(maxVal) {
			outOfRangeItems = append(outOfRangeItems, item.ItemID)
			errors = append(errors, fmt.Sprintf("Item %s: value %v out of range [%d, %d]", item.ItemID, *item.Value, minVal, maxVal))
		}
	}

	totalItems := len(measure.Items)
	presentItems := totalItems - len(missingItems)
	completeness := 1.0
	if totalItems > 0 {
		completeness = float64(presentItems) / float64(totalItems)
	}

	sort.Strings(missingItems)
	sort.Strings(outOfRangeItems)

	// Missing items alone do not invalidate at the whole-measure level.
	valid := len(errors) == 0 && len(outOfRangeItems) == 0

	return &models.ValidationResult{
		MeasureID:       section.MeasureID,
		Valid:           valid,
		Completeness:    completeness,
		MissingItems:    missingItems,
		OutOfRangeItems: outOfRangeItems,
		Errors:          errors,
	}
}

func (uc *validatorUsecase) ValidateForScale(section *models.RecodedSection, measure *models.MeasureSpec, scaleID string) *models.ValidationResult {
	scale := measure.GetScale(scaleID)
	if scale == nil {
		return &models.ValidationResult{
			MeasureID:       section.MeasureID,
			Valid:           false,
			Completeness:    0.0,
			MissingItems:    []string{},
			OutOfRangeItems: []string{},
			Errors:          []string{fmt.Sprintf("Unknown scale: %s", scaleID)},
		}
	}

	errors := make([]string, 0)
	missingItems := make([]string, 0)
	outOfRangeItems := make([]string, 0)

	recodedItemsByID := make(map[string]*models.RecodedItem, len(section.Items))
	for idx := range section.Items {
		recodedItemsByID[section.Items[idx].ItemID] = &section.Items[idx]
	}

	for _, itemID := range scale.Items {
		recodedItem := recodedItemsByID[itemID]
		if recodedItem == nil || recodedItem.Missing || recodedItem.Value == nil {
			missingItems = append(missingItems, itemID)
			continue
		}

		itemSpec := measure.GetItem(itemID)
		if itemSpec == nil {
			errors = append(errors, fmt.Sprintf("Unknown item in scale: %s", itemID))
			continue
		}

		minVal, maxVal := itemSpec.ResponseRange()
		if *recodedItem.Value < float64(minVal) || *recodedItem.Value > float64(maxVal) {
			outOfRangeItems = append(outOfRangeItems, itemID)
			errors = append(errors, fmt.Sprintf("Item %s: value %v out of range [%d, %d]", itemID, *recodedItem.Value, minVal, maxVal))
		}
	}

	totalItems := len(scale.Items)
	presentItems := totalItems - len(missingItems)
	completeness := 1.0
	if totalItems > 0 {
		completeness = float64(presentItems) / float64(totalItems)
	}

	tooManyMissing := len(missingItems) > scale.MissingAllowed
	if tooManyMissing {
		errors = append(errors, fmt.Sprintf("Too many missing items for scale %s: %d missing, %d allowed", scaleID, len(missingItems), scale.MissingAllowed))
	}

	sort.Strings(missingItems)
	sort.Strings(outOfRangeItems)

	valid := len(errors) == 0 && len(outOfRangeItems) == 0 && !tooManyMissing

	return &models.ValidationResult{
		MeasureID:       section.MeasureID,
		Valid:           valid,
		Completeness:    completeness,
		MissingItems:    missingItems,
		OutOfRangeItems: outOfRangeItems,
		Errors:          errors,
	}
}

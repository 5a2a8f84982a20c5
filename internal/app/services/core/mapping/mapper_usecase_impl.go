package mapping

import (
	"sort"
	"sync"

	"finalform-service/internal/app/contracts"
	"finalform-service/internal/app/models"
	"finalform-service/internal/pkg/constvars"
	"finalform-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

// mapperUsecase resolves form fields to measure items through explicit
// bindings. It never interprets question text and never guesses.
type mapperUsecase struct {
	Log *zap.Logger
}

var (
	mapperUsecaseInstance contracts.MapperUsecase
	onceMapperUsecase     sync.Once
)

func NewMapperUsecase(logger *zap.Logger) contracts.MapperUsecase {
	onceMapperUsecase.Do(func() {
		mapperUsecaseInstance = &mapperUsecase{Log: logger}
	})
	return mapperUsecaseInstance
}

func (uc *mapperUsecase) Map(formResponse *models.FormResponse, bindingSpec *models.FormBindingSpec) *models.MappingResult {
	result, _ := uc.doMap(formResponse, bindingSpec, false)
	return result
}

func (uc *mapperUsecase) MapStrict(formResponse *models.FormResponse, bindingSpec *models.FormBindingSpec) (*models.MappingResult, error) {
	return uc.doMap(formResponse, bindingSpec, true)
}

func (uc *mapperUsecase) MapSection(formResponse *models.FormResponse, bindingSpec *models.FormBindingSpec, measureID string) *models.MappedSection {
	result := uc.Map(formResponse, bindingSpec)
	for idx := range result.Sections {
		if result.Sections[idx].MeasureID == measureID {
			return &result.Sections[idx]
		}
	}
	return nil
}

func (uc *mapperUsecase) doMap(formResponse *models.FormResponse, bindingSpec *models.FormBindingSpec, strict bool) (*models.MappingResult, error) {
	uc.Log.Debug("mapperUsecase.Map called",
		zap.String(constvars.LoggingFormSubmissionIDKey, formResponse.FormSubmissionID),
		zap.String(constvars.LoggingBindingIDKey, bindingSpec.BindingID),
	)

	itemsByFieldKey := make(map[string]*models.FormItem)
	itemsByPosition := make(map[int]*models.FormItem)
	for idx := range formResponse.Items {
		item := &formResponse.Items[idx]
		if item.FieldKey != nil {
			itemsByFieldKey[*item.FieldKey] = item
		}
		if item.Position != nil {
			itemsByPosition[*item.Position] = item
		}
	}

	sections := make([]models.MappedSection, 0, len(bindingSpec.Sections))
	usedFieldKeys := make(map[string]struct{})

	for _, section := range bindingSpec.Sections {
		mappedItems := make([]models.MappedItem, 0, len(section.Bindings))

		for _, binding := range section.Bindings {
			var formItem *models.FormItem

			switch binding.By {
			case constvars.BindingByFieldKey:
				fieldKey := binding.Value.AsString()
				formItem = itemsByFieldKey[fieldKey]
				if formItem == nil {
					// Absent fields surface later as missing recoded
					// values, not as mapping failures.
					continue
				}
				usedFieldKeys[fieldKey] = struct{}{}
			case constvars.BindingByPosition:
				position, ok := binding.Value.AsInt()
				if !ok {
					continue
				}
				formItem = itemsByPosition[position]
				if formItem == nil {
					continue
				}
				if formItem.FieldKey != nil {
					usedFieldKeys[*formItem.FieldKey] = struct{}{}
				}
			default:
				continue
			}

			mappedItems = append(mappedItems, models.MappedItem{
				MeasureID:      section.MeasureID,
				MeasureVersion: section.MeasureVersion,
				ItemID:         binding.ItemID,
				RawAnswer:      formItem.RawAnswer(),
				FieldKey:       formItem.FieldKey,
				Position:       formItem.Position,
			})
		}

		if len(mappedItems) == 0 {
			if strict && len(section.Bindings) > 0 {
				uc.Log.Error("mapperUsecase.MapStrict no items resolved",
					zap.String(constvars.LoggingFormSubmissionIDKey, formResponse.FormSubmissionID),
					zap.String(constvars.LoggingMeasureIDKey, section.MeasureID),
				)
				return nil, exceptions.ErrMappingNoItemsResolved(section.MeasureID, len(section.Bindings))
			}
			continue
		}

		sections = append(sections, models.MappedSection{
			MeasureID:      section.MeasureID,
			MeasureVersion: section.MeasureVersion,
			Items:          mappedItems,
		})
	}

	unmappedFields := make([]string, 0)
	for fieldKey := range itemsByFieldKey {
		if _, ok := usedFieldKeys[fieldKey]; !ok {
			unmappedFields = append(unmappedFields, fieldKey)
		}
	}
	sort.Strings(unmappedFields)

	uc.Log.Debug("mapperUsecase.Map succeeded",
		zap.String(constvars.LoggingFormSubmissionIDKey, formResponse.FormSubmissionID),
		zap.Int(constvars.LoggingSectionCountKey, len(sections)),
		zap.Int("unmapped_field_count", len(unmappedFields)),
	)

	return &models.MappingResult{
		FormID:           formResponse.FormID,
		FormSubmissionID: formResponse.FormSubmissionID,
		SubjectID:        formResponse.SubjectID,
		Timestamp:        formResponse.Timestamp,
		Sections:         sections,
		UnmappedFields:   unmappedFields,
	}, nil
}

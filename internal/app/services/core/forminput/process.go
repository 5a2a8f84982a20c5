package forminput

import (
	"fmt"
	"sort"

	"finalform-service/internal/app/contracts"
	"finalform-service/internal/app/models"
	"finalform-service/internal/app/services/domains/questionnaire"
	"finalform-service/internal/pkg/constvars"
	"finalform-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

// ProcessOptions tunes single-measure processing of a canonical submission.
type ProcessOptions struct {
	MeasureID string
	// MeasureVersion pins a specific spec version; empty means latest.
	MeasureVersion string
	// FormID overrides the submission's own form_id.
	FormID string
	// ItemMapOverride bypasses the stored item map entirely.
	ItemMapOverride map[string]string
	// Strict fails on unmapped fields instead of skipping them.
	Strict bool
}

// ProcessFormSubmission scores one canonical form submission against a single
// measure. The field_id -> item_id map comes from the form input client (or
// an override), and a synthetic single-section binding spec is built from it.
func ProcessFormSubmission(
	submission *models.CanonicalFormSubmission,
	opts *ProcessOptions,
	client contracts.FormInputClient,
	measureRegistry contracts.MeasureRegistry,
	logger *zap.Logger,
) (*models.ProcessingResult, error) {
	formID := opts.FormID
	if formID == "" {
		formID = submission.FormID
	}
	if formID == "" {
		return nil, exceptions.ErrMissingFormID()
	}

	itemMap := opts.ItemMapOverride
	if itemMap == nil {
		stored, err := client.GetItemMap(formID, opts.MeasureID)
		if err != nil {
			return nil, err
		}
		itemMap = stored
	}
	if itemMap == nil {
		return nil, exceptions.ErrMissingItemMap(formID, opts.MeasureID)
	}

	var measure *models.MeasureSpec
	var err error
	if opts.MeasureVersion != "" {
		measure, err = measureRegistry.Get(opts.MeasureID, opts.MeasureVersion)
	} else {
		measure, err = measureRegistry.GetLatest(opts.MeasureID)
	}
	if err != nil {
		return nil, err
	}

	formItems := make([]models.FormItem, 0, len(submission.Items))
	unmappedFields := make([]string, 0)
	for idx := range submission.Items {
		item := &submission.Items[idx]
		if item.FieldID == "" {
			continue
		}
		if _, ok := itemMap[item.FieldID]; !ok {
			unmappedFields = append(unmappedFields, item.FieldID)
			continue
		}
		fieldKey := item.FieldID
		answer := item.RawValue
		formItems = append(formItems, models.FormItem{
			FieldKey: &fieldKey,
			Answer:   &answer,
		})
	}
	sort.Strings(unmappedFields)

	if opts.Strict && len(unmappedFields) > 0 {
		logger.Error("forminput.ProcessFormSubmission unmapped fields in strict mode",
			zap.String(constvars.LoggingFormIDKey, formID),
			zap.String(constvars.LoggingMeasureIDKey, opts.MeasureID),
			zap.Strings("unmapped_fields", unmappedFields),
		)
		return nil, exceptions.ErrUnmappedFields(opts.MeasureID, unmappedFields)
	}

	formResponse := &models.FormResponse{
		FormID:           formID,
		FormSubmissionID: orUnknown(submission.SubmissionID),
		SubjectID:        orUnknown(submission.Respondent.ID),
		Timestamp:        submission.SubmittedAt,
		Items:            formItems,
	}

	bindingSpec := buildSyntheticBinding(formID, opts.MeasureID, measure.Version, itemMap)

	processor := questionnaire.NewProcessor(logger)
	result := processor.Process(&contracts.ProcessInput{
		FormResponse: formResponse,
		BindingSpec:  bindingSpec,
		Measures:     map[string]*models.MeasureSpec{opts.MeasureID: measure},
	})

	// Non-strict mode reports skipped fields after the fact. The diagnostic
	// status is already final at this point and stays as computed.
	if len(unmappedFields) > 0 && result.Diagnostics != nil {
		for _, fieldID := range unmappedFields {
			key := fieldID
			result.Diagnostics.Warnings = append(result.Diagnostics.Warnings, models.DiagnosticWarning{
				Stage:    constvars.StageMapping,
				Code:     constvars.CodeUnmappedField,
				Message:  fmt.Sprintf("Unmapped field in form submission: %s", fieldID),
				FieldKey: &key,
			})
		}
	}

	return result, nil
}

// buildSyntheticBinding turns an item map into a one-section binding spec.
// Bindings are ordered by field ID so generated specs are reproducible.
func buildSyntheticBinding(formID, measureID, measureVersion string, itemMap map[string]string) *models.FormBindingSpec {
	fieldIDs := make([]string, 0, len(itemMap))
	for fieldID := range itemMap {
		fieldIDs = append(fieldIDs, fieldID)
	}
	sort.Strings(fieldIDs)

	bindings := make([]models.Binding, 0, len(fieldIDs))
	for _, fieldID := range fieldIDs {
		bindings = append(bindings, models.Binding{
			ItemID: itemMap[fieldID],
			By:     constvars.BindingByFieldKey,
			Value:  models.FieldKeyValue(fieldID),
		})
	}

	return &models.FormBindingSpec{
		Type:      constvars.SpecTypeFormBinding,
		FormID:    formID,
		BindingID: fmt.Sprintf("_auto_%s_%s", formID, measureID),
		Version:   "1.0.0",
		Sections: []models.BindingSection{{
			MeasureID:      measureID,
			MeasureVersion: measureVersion,
			Bindings:       bindings,
		}},
	}
}

func orUnknown(value string) string {
	if value == "" {
		return constvars.ResponseUnknown
	}
	return value
}

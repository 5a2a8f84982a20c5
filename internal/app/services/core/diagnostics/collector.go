package diagnostics

import (
	"fmt"
	"strings"

	"finalform-service/internal/app/models"
	"finalform-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// Collector accumulates errors, warnings and quality metrics for one form
// submission. Not a singleton: each submission gets a fresh collector so the
// measure ordering and counters start clean.
type Collector struct {
	Log *zap.Logger

	formSubmissionID string
	formID           string
	bindingID        string
	bindingVersion   string

	formErrors   []models.DiagnosticError
	formWarnings []models.DiagnosticWarning

	// Measures keep first-seen order so reports are stable across runs.
	measureOrder []string
	measures     map[string]*models.MeasureDiagnostic
}

// Entry describes a single diagnostic finding. An empty MeasureID attaches
// the finding at the form level.
type Entry struct {
	Stage     string
	Code      string
	Message   string
	MeasureID string
	ItemID    string
	FieldKey  string
	Details   map[string]any
}

func NewCollector(formSubmissionID, formID, bindingID, bindingVersion string, logger *zap.Logger) *Collector {
	return &Collector{
		Log:              logger,
		formSubmissionID: formSubmissionID,
		formID:           formID,
		bindingID:        bindingID,
		bindingVersion:   bindingVersion,
		formErrors:       make([]models.DiagnosticError, 0),
		formWarnings:     make([]models.DiagnosticWarning, 0),
		measures:         make(map[string]*models.MeasureDiagnostic),
	}
}

func (c *Collector) AddError(entry Entry) {
	diagErr := models.DiagnosticError{
		Stage:    entry.Stage,
		Code:     entry.Code,
		Message:  entry.Message,
		ItemID:   optional(entry.ItemID),
		FieldKey: optional(entry.FieldKey),
		Details:  entry.Details,
	}

	c.Log.Warn("diagnostics.Collector error recorded",
		zap.String(constvars.LoggingStageKey, entry.Stage),
		zap.String("code", entry.Code),
		zap.String(constvars.LoggingMeasureIDKey, entry.MeasureID),
	)

	if entry.MeasureID != "" {
		c.ensureMeasure(entry.MeasureID, "")
		measure := c.measures[entry.MeasureID]
		measure.Errors = append(measure.Errors, diagErr)
		return
	}
	c.formErrors = append(c.formErrors, diagErr)
}

func (c *Collector) AddWarning(entry Entry) {
	diagWarn := models.DiagnosticWarning{
		Stage:    entry.Stage,
		Code:     entry.Code,
		Message:  entry.Message,
		ItemID:   optional(entry.ItemID),
		FieldKey: optional(entry.FieldKey),
		Details:  entry.Details,
	}

	if entry.MeasureID != "" {
		c.ensureMeasure(entry.MeasureID, "")
		measure := c.measures[entry.MeasureID]
		measure.Warnings = append(measure.Warnings, diagWarn)
		return
	}
	c.formWarnings = append(c.formWarnings, diagWarn)
}

func (c *Collector) ensureMeasure(measureID, measureVersion string) {
	if _, ok := c.measures[measureID]; ok {
		return
	}
	version := measureVersion
	if version == "" {
		version = constvars.ResponseUnknown
	}
	c.measures[measureID] = &models.MeasureDiagnostic{
		MeasureID:      measureID,
		MeasureVersion: version,
		Status:         models.ProcessingSuccess,
		Errors:         make([]models.DiagnosticError, 0),
		Warnings:       make([]models.DiagnosticWarning, 0),
	}
	c.measureOrder = append(c.measureOrder, measureID)
}

func (c *Collector) CollectFromMapping(mappingResult *models.MappingResult) {
	for idx := range mappingResult.Sections {
		section := &mappingResult.Sections[idx]
		c.ensureMeasure(section.MeasureID, section.MeasureVersion)
		c.measures[section.MeasureID].MeasureVersion = section.MeasureVersion
	}

	for _, fieldKey := range mappingResult.UnmappedFields {
		c.AddWarning(Entry{
			Stage:    constvars.StageMapping,
			Code:     constvars.CodeUnmappedField,
			Message:  fmt.Sprintf("Field %s was not mapped to any measure item", fieldKey),
			FieldKey: fieldKey,
		})
	}
}

func (c *Collector) CollectFromRecoding(recodingResult *models.RecodingResult) {
	for idx := range recodingResult.Sections {
		section := &recodingResult.Sections[idx]
		c.ensureMeasure(section.MeasureID, section.MeasureVersion)

		for itemIdx := range section.Items {
			item := &section.Items[itemIdx]
			if !item.Missing {
				continue
			}
			c.AddWarning(Entry{
				Stage:     constvars.StageRecoding,
				Code:      constvars.CodeMissingValue,
				Message:   fmt.Sprintf("Item %s has missing value", item.ItemID),
				MeasureID: section.MeasureID,
				ItemID:    item.ItemID,
			})
		}
	}
}

func (c *Collector) CollectFromValidation(validationResult *models.ValidationResult, measureID string) {
	c.ensureMeasure(measureID, "")

	for _, errMsg := range validationResult.Errors {
		c.AddError(Entry{
			Stage:     constvars.StageValidation,
			Code:      constvars.CodeValidationError,
			Message:   errMsg,
			MeasureID: measureID,
		})
	}

	for _, itemID := range validationResult.MissingItems {
		c.AddWarning(Entry{
			Stage:     constvars.StageValidation,
			Code:      constvars.CodeValidationMissing,
			Message:   fmt.Sprintf("Item %s is missing", itemID),
			MeasureID: measureID,
			ItemID:    itemID,
		})
	}

	for _, itemID := range validationResult.OutOfRangeItems {
		if containsItemReference(validationResult.Errors, itemID) {
			continue
		}
		c.AddError(Entry{
			Stage:     constvars.StageValidation,
			Code:      constvars.CodeValidationRange,
			Message:   fmt.Sprintf("Item %s has out-of-range value", itemID),
			MeasureID: measureID,
			ItemID:    itemID,
		})
	}
}

func (c *Collector) CollectFromScoring(scoringResult *models.ScoringResult) {
	c.ensureMeasure(scoringResult.MeasureID, scoringResult.MeasureVersion)

	for idx := range scoringResult.Scales {
		scale := &scoringResult.Scales[idx]
		if scale.Error != "" {
			c.AddError(Entry{
				Stage:     constvars.StageScoring,
				Code:      constvars.CodeScoringError,
				Message:   scale.Error,
				MeasureID: scoringResult.MeasureID,
				Details:   map[string]any{"scale_id": scale.ScaleID},
			})
		}
		if scale.Prorated {
			c.AddWarning(Entry{
				Stage:     constvars.StageScoring,
				Code:      constvars.CodeProratedScore,
				Message:   fmt.Sprintf("Scale %s was prorated due to missing items", scale.ScaleID),
				MeasureID: scoringResult.MeasureID,
				Details: map[string]any{
					"scale_id":      scale.ScaleID,
					"missing_items": scale.MissingItems,
				},
			})
		}
	}
}

func (c *Collector) SetMeasureQuality(measureID string, itemsTotal, itemsPresent int, missingItems, outOfRangeItems, proratedScales []string) {
	c.ensureMeasure(measureID, "")

	completeness := 0.0
	if itemsTotal > 0 {
		completeness = float64(itemsPresent) / float64(itemsTotal)
	}

	c.measures[measureID].Quality = &models.QualityMetrics{
		Completeness:    completeness,
		MissingItems:    nonNil(missingItems),
		OutOfRangeItems: nonNil(outOfRangeItems),
		ProratedScales:  nonNil(proratedScales),
		ItemsTotal:      itemsTotal,
		ItemsPresent:    itemsPresent,
	}
}

// Finalize computes measure statuses bottom-up, derives the overall form
// status and aggregates quality metrics.
func (c *Collector) Finalize() *models.FormDiagnostic {
	measures := make([]models.MeasureDiagnostic, 0, len(c.measureOrder))
	for _, measureID := range c.measureOrder {
		measure := c.measures[measureID]
		switch {
		case len(measure.Errors) > 0:
			measure.Status = models.ProcessingFailed
		case len(measure.Warnings) > 0:
			measure.Status = models.ProcessingPartial
		default:
			measure.Status = models.ProcessingSuccess
		}
		measures = append(measures, *measure)
	}

	formStatus := models.ProcessingSuccess
	switch {
	case len(c.formErrors) > 0 || anyStatus(measures, models.ProcessingFailed):
		formStatus = models.ProcessingFailed
	case len(c.formWarnings) > 0 || anyStatus(measures, models.ProcessingPartial):
		formStatus = models.ProcessingPartial
	}

	totalItems := 0
	presentItems := 0
	allMissing := make([]string, 0)
	allOutOfRange := make([]string, 0)
	allProrated := make([]string, 0)
	for idx := range measures {
		quality := measures[idx].Quality
		if quality == nil {
			continue
		}
		totalItems += quality.ItemsTotal
		presentItems += quality.ItemsPresent
		allMissing = append(allMissing, quality.MissingItems...)
		allOutOfRange = append(allOutOfRange, quality.OutOfRangeItems...)
		allProrated = append(allProrated, quality.ProratedScales...)
	}

	completeness := 1.0
	if totalItems > 0 {
		completeness = float64(presentItems) / float64(totalItems)
	}

	c.Log.Info("diagnostics.Collector finalized",
		zap.String(constvars.LoggingFormSubmissionIDKey, c.formSubmissionID),
		zap.String(constvars.LoggingStatusKey, string(formStatus)),
		zap.Int(constvars.LoggingMeasureCountKey, len(measures)),
	)

	return &models.FormDiagnostic{
		FormSubmissionID: c.formSubmissionID,
		FormID:           c.formID,
		BindingID:        c.bindingID,
		BindingVersion:   c.bindingVersion,
		Status:           formStatus,
		Measures:         measures,
		Errors:           c.formErrors,
		Warnings:         c.formWarnings,
		Quality: &models.QualityMetrics{
			Completeness:    completeness,
			MissingItems:    allMissing,
			OutOfRangeItems: allOutOfRange,
			ProratedScales:  allProrated,
			ItemsTotal:      totalItems,
			ItemsPresent:    presentItems,
		},
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func containsItemReference(errorMessages []string, itemID string) bool {
	for _, msg := range errorMessages {
		if strings.Contains(msg, itemID) {
			return true
		}
	}
	return false
}

func anyStatus(measures []models.MeasureDiagnostic, status models.ProcessingStatus) bool {
	for idx := range measures {
		if measures[idx].Status == status {
			return true
		}
	}
	return false
}

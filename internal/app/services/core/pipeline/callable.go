package pipeline

import (
	"finalform-service/internal/app/contracts"
	"finalform-service/internal/app/models"
	"finalform-service/internal/pkg/constvars"
)

// Execute is the in-process entrypoint for external orchestrators. It runs a
// batch through the pipeline and flattens successful events into one result
// payload. Submissions that succeed without producing events count as
// skipped; failed submissions count as errors and contribute no items.
func Execute(usecase contracts.PipelineUsecase, formResponses []*models.FormResponse) *models.CallableResult {
	results := usecase.ProcessBatch(formResponses)

	items := make([]models.MeasurementEvent, 0)
	stats := models.CallableStats{Input: len(results)}

	for _, result := range results {
		if !result.Success {
			stats.Errors++
			continue
		}
		if len(result.Events) == 0 {
			stats.Skipped++
			continue
		}
		items = append(items, result.Events...)
		stats.Output += len(result.Events)
	}

	return &models.CallableResult{
		SchemaVersion: constvars.CallableSchemaVersion,
		Items:         items,
		Stats:         stats,
	}
}

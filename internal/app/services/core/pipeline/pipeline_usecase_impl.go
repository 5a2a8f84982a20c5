package pipeline

import (
	"finalform-service/internal/app/config"
	"finalform-service/internal/app/contracts"
	"finalform-service/internal/app/models"
	"finalform-service/internal/pkg/constvars"
	"finalform-service/internal/pkg/exceptions"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// pipelineUsecase is the process-wide entrypoint. The binding spec and every
// measure it references are resolved once at construction; submissions then
// flow through the router without further registry access.
type pipelineUsecase struct {
	Log              *zap.Logger
	router           *Router
	bindingSpec      *models.FormBindingSpec
	measures         map[string]*models.MeasureSpec
	deterministicIDs bool
	validate         *validator.Validate
}

func NewPipelineUsecase(
	cfg *config.Pipeline,
	router *Router,
	measureRegistry contracts.MeasureRegistry,
	bindingRegistry contracts.BindingRegistry,
	logger *zap.Logger,
) (contracts.PipelineUsecase, error) {
	var bindingSpec *models.FormBindingSpec
	var err error
	if cfg.BindingVersion != "" {
		bindingSpec, err = bindingRegistry.Get(cfg.BindingID, cfg.BindingVersion)
	} else {
		bindingSpec, err = bindingRegistry.GetLatest(cfg.BindingID)
	}
	if err != nil {
		return nil, err
	}

	measures := make(map[string]*models.MeasureSpec)
	for _, section := range bindingSpec.Sections {
		if _, ok := measures[section.MeasureID]; ok {
			continue
		}
		measure, err := measureRegistry.Get(section.MeasureID, section.MeasureVersion)
		if err != nil {
			return nil, err
		}
		measures[section.MeasureID] = measure
	}

	logger.Info("pipelineUsecase initialized",
		zap.String(constvars.LoggingBindingIDKey, bindingSpec.BindingID),
		zap.String(constvars.LoggingBindingVersionKey, bindingSpec.Version),
		zap.Int(constvars.LoggingMeasureCountKey, len(measures)),
	)

	return &pipelineUsecase{
		Log:              logger,
		router:           router,
		bindingSpec:      bindingSpec,
		measures:         measures,
		deterministicIDs: cfg.DeterministicIDs,
		validate:         validator.New(),
	}, nil
}

func (uc *pipelineUsecase) Process(formResponse *models.FormResponse) *models.ProcessingResult {
	if err := uc.validate.Struct(formResponse); err != nil {
		uc.Log.Error("pipelineUsecase.Process invalid form response",
			zap.String(constvars.LoggingFormSubmissionIDKey, formResponse.FormSubmissionID),
			zap.Error(err),
		)
		return uc.failedResult(formResponse, exceptions.ErrInvalidFormResponse(err))
	}

	result, err := uc.router.Process(&contracts.ProcessInput{
		FormResponse:     formResponse,
		BindingSpec:      uc.bindingSpec,
		Measures:         uc.measures,
		DeterministicIDs: uc.deterministicIDs,
	})
	if err != nil {
		uc.Log.Error("pipelineUsecase.Process routing failed",
			zap.String(constvars.LoggingFormSubmissionIDKey, formResponse.FormSubmissionID),
			zap.Error(err),
		)
		return uc.failedResult(formResponse, err)
	}
	return result
}

// ProcessBatch processes submissions sequentially. One bad submission never
// aborts the batch; its failure is carried in its own result.
func (uc *pipelineUsecase) ProcessBatch(formResponses []*models.FormResponse) []*models.ProcessingResult {
	uc.Log.Info("pipelineUsecase.ProcessBatch called",
		zap.Int("submission_count", len(formResponses)),
	)

	results := make([]*models.ProcessingResult, 0, len(formResponses))
	for _, formResponse := range formResponses {
		results = append(results, uc.Process(formResponse))
	}
	return results
}

func (uc *pipelineUsecase) BindingSpec() *models.FormBindingSpec {
	return uc.bindingSpec
}

func (uc *pipelineUsecase) Measures() map[string]*models.MeasureSpec {
	return uc.measures
}

func (uc *pipelineUsecase) failedResult(formResponse *models.FormResponse, err error) *models.ProcessingResult {
	return &models.ProcessingResult{
		FormSubmissionID: formResponse.FormSubmissionID,
		Events:           make([]models.MeasurementEvent, 0),
		Diagnostics: &models.FormDiagnostic{
			FormSubmissionID: formResponse.FormSubmissionID,
			FormID:           formResponse.FormID,
			BindingID:        uc.bindingSpec.BindingID,
			BindingVersion:   uc.bindingSpec.Version,
			Status:           models.ProcessingFailed,
			Measures:         make([]models.MeasureDiagnostic, 0),
			Errors: []models.DiagnosticError{{
				Stage:   constvars.StageBuilding,
				Code:    constvars.CodePipelineError,
				Message: err.Error(),
			}},
			Warnings: make([]models.DiagnosticWarning, 0),
		},
		Success: false,
	}
}

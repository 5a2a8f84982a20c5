package main

import (
	"flag"
	"os"

	"finalform-service/internal/app/config"
	"finalform-service/internal/app/contracts"
	"finalform-service/internal/app/drivers/logger"
	"finalform-service/internal/app/drivers/storage"
	"finalform-service/internal/app/models"
	"finalform-service/internal/app/services/core/forminput"
	"finalform-service/internal/app/services/core/pipeline"
	"finalform-service/internal/app/services/core/registries"
	"finalform-service/internal/pkg/constvars"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

func main() {
	inputPath := flag.String("in", "", "input JSONL file of form responses")
	outputPath := flag.String("out", "events.jsonl", "output JSONL file for measurement events")
	diagnosticsPath := flag.String("diagnostics", "", "optional output JSONL file for diagnostics")
	bindingID := flag.String("binding", "", "binding spec ID (overrides FINALFORM_BINDING_ID)")
	bindingVersion := flag.String("binding-version", "", "binding spec version (default: latest)")
	measureRegistryPath := flag.String("measure-registry", "", "measure registry root (overrides FINALFORM_MEASURE_REGISTRY)")
	bindingRegistryPath := flag.String("binding-registry", "", "binding registry root (overrides FINALFORM_BINDING_REGISTRY)")
	measureID := flag.String("measure", "", "single-measure mode: score canonical submissions against this measure using stored item maps")
	measureVersion := flag.String("measure-version", "", "measure spec version for single-measure mode (default: latest)")
	formID := flag.String("form", "", "form ID override for single-measure mode")
	formInputPath := flag.String("form-input", "", "item map storage root for single-measure mode (overrides FINALFORM_FORM_INPUT_PATH)")
	flag.Parse()

	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()
	cliLogger := logger.NewLogrusLogger(internalConfig)

	pipelineConfig := internalConfig.Pipeline
	if *bindingID != "" {
		pipelineConfig.BindingID = *bindingID
	}
	if *bindingVersion != "" {
		pipelineConfig.BindingVersion = *bindingVersion
	}
	if *measureRegistryPath != "" {
		pipelineConfig.MeasureRegistryPath = *measureRegistryPath
	}
	if *bindingRegistryPath != "" {
		pipelineConfig.BindingRegistryPath = *bindingRegistryPath
	}
	if *formInputPath != "" {
		pipelineConfig.FormInputPath = *formInputPath
	}

	if *inputPath == "" {
		cliLogger.Error("missing required flag: -in")
		flag.Usage()
		os.Exit(1)
	}

	measureRegistry, err := registries.NewMeasureRegistry(pipelineConfig.MeasureRegistryPath, pipelineConfig.MeasureSchemaPath, zapLogger)
	if err != nil {
		cliLogger.WithError(err).Error("cannot initialize measure registry")
		os.Exit(1)
	}

	if *measureID != "" {
		runSingleMeasure(&pipelineConfig, measureRegistry, zapLogger, cliLogger, singleMeasureArgs{
			inputPath:       *inputPath,
			outputPath:      *outputPath,
			diagnosticsPath: *diagnosticsPath,
			measureID:       *measureID,
			measureVersion:  *measureVersion,
			formID:          *formID,
		})
		return
	}

	if pipelineConfig.BindingID == "" {
		cliLogger.Error("missing binding ID: pass -binding or set FINALFORM_BINDING_ID")
		os.Exit(1)
	}

	bindingRegistry, err := registries.NewBindingRegistry(pipelineConfig.BindingRegistryPath, pipelineConfig.BindingSchemaPath, zapLogger)
	if err != nil {
		cliLogger.WithError(err).Error("cannot initialize binding registry")
		os.Exit(1)
	}

	router := pipeline.NewDefaultRouter(zapLogger)
	usecase, err := pipeline.NewPipelineUsecase(&pipelineConfig, router, measureRegistry, bindingRegistry, zapLogger)
	if err != nil {
		cliLogger.WithError(err).Error("cannot initialize pipeline")
		os.Exit(1)
	}

	formResponses, err := storage.ReadFormResponses(*inputPath)
	if err != nil {
		cliLogger.WithError(err).WithField("path", *inputPath).Error("cannot read form responses")
		os.Exit(1)
	}

	results := usecase.ProcessBatch(formResponses)

	statusCounts, eventCount := writeResults(results, *outputPath, *diagnosticsPath, cliLogger)

	cliLogger.WithFields(logrus.Fields{
		"submissions": len(formResponses),
		"events":      eventCount,
		"success":     statusCounts[models.ProcessingSuccess],
		"partial":     statusCounts[models.ProcessingPartial],
		"failed":      statusCounts[models.ProcessingFailed],
		"binding":     pipelineConfig.BindingID,
		"version":     constvars.FinalFormVersion,
	}).Info("processing complete")

	if len(formResponses) > 0 && statusCounts[models.ProcessingFailed] == len(formResponses) {
		os.Exit(1)
	}
}

type singleMeasureArgs struct {
	inputPath       string
	outputPath      string
	diagnosticsPath string
	measureID       string
	measureVersion  string
	formID          string
}

// runSingleMeasure scores canonical submissions against one measure, using
// the item maps stored under the form input path instead of a binding spec.
func runSingleMeasure(
	pipelineConfig *config.Pipeline,
	measureRegistry contracts.MeasureRegistry,
	zapLogger *zap.Logger,
	cliLogger *logrus.Logger,
	args singleMeasureArgs,
) {
	client, err := forminput.NewFormInputClient(pipelineConfig.FormInputPath, zapLogger)
	if err != nil {
		cliLogger.WithError(err).Error("cannot initialize form input storage")
		os.Exit(1)
	}

	submissions, err := storage.ReadCanonicalSubmissions(args.inputPath)
	if err != nil {
		cliLogger.WithError(err).WithField("path", args.inputPath).Error("cannot read canonical submissions")
		os.Exit(1)
	}

	opts := &forminput.ProcessOptions{
		MeasureID:      args.measureID,
		MeasureVersion: args.measureVersion,
		FormID:         args.formID,
		Strict:         pipelineConfig.Strict,
	}

	results := make([]*models.ProcessingResult, 0, len(submissions))
	rejected := 0
	for _, submission := range submissions {
		result, err := forminput.ProcessFormSubmission(submission, opts, client, measureRegistry, zapLogger)
		if err != nil {
			cliLogger.WithError(err).WithField("submission", submission.SubmissionID).Error("cannot process submission")
			rejected++
			continue
		}
		results = append(results, result)
	}

	statusCounts, eventCount := writeResults(results, args.outputPath, args.diagnosticsPath, cliLogger)

	cliLogger.WithFields(logrus.Fields{
		"submissions": len(submissions),
		"events":      eventCount,
		"success":     statusCounts[models.ProcessingSuccess],
		"partial":     statusCounts[models.ProcessingPartial],
		"failed":      statusCounts[models.ProcessingFailed],
		"rejected":    rejected,
		"measure":     args.measureID,
		"version":     constvars.FinalFormVersion,
	}).Info("processing complete")

	if len(submissions) > 0 && statusCounts[models.ProcessingFailed]+rejected == len(submissions) {
		os.Exit(1)
	}
}

func writeResults(results []*models.ProcessingResult, outputPath, diagnosticsPath string, cliLogger *logrus.Logger) (map[models.ProcessingStatus]int, int) {
	events := make([]models.MeasurementEvent, 0)
	diagnostics := make([]*models.FormDiagnostic, 0, len(results))
	statusCounts := map[models.ProcessingStatus]int{}
	for _, result := range results {
		events = append(events, result.Events...)
		if result.Diagnostics != nil {
			diagnostics = append(diagnostics, result.Diagnostics)
			statusCounts[result.Diagnostics.Status]++
		}
	}

	eventCount, err := storage.WriteEvents(outputPath, events)
	if err != nil {
		cliLogger.WithError(err).WithField("path", outputPath).Error("cannot write events")
		os.Exit(1)
	}

	if diagnosticsPath != "" {
		if _, err := storage.WriteDiagnostics(diagnosticsPath, diagnostics); err != nil {
			cliLogger.WithError(err).WithField("path", diagnosticsPath).Error("cannot write diagnostics")
			os.Exit(1)
		}
	}

	return statusCounts, eventCount
}

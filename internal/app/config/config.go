package config

import (
	"finalform-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Logger: Logger{
			Driver:              utils.GetEnvString("LOGGER_DRIVER", "zap"),
			Level:               utils.GetEnvString("LOGGER_LEVEL", "info"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "finalform.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "finalform_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:     utils.GetEnvString("APP_ENV", "development"),
			Version: utils.GetEnvString("APP_VERSION", "v0.3.0"),
		},
		Pipeline: Pipeline{
			MeasureRegistryPath: utils.GetEnvString("FINALFORM_MEASURE_REGISTRY", "measure-registry"),
			BindingRegistryPath: utils.GetEnvString("FINALFORM_BINDING_REGISTRY", "form-binding-registry"),
			MeasureSchemaPath:   utils.GetEnvString("FINALFORM_MEASURE_SCHEMA", "schemas/measure_spec.schema.json"),
			BindingSchemaPath:   utils.GetEnvString("FINALFORM_BINDING_SCHEMA", "schemas/form_binding_spec.schema.json"),
			BindingID:           utils.GetEnvString("FINALFORM_BINDING_ID", ""),
			BindingVersion:      utils.GetEnvString("FINALFORM_BINDING_VERSION", ""),
			FormInputPath:       utils.GetEnvString("FINALFORM_FORM_INPUT_PATH", "form-input"),
			DeterministicIDs:    utils.GetEnvBool("FINALFORM_DETERMINISTIC_IDS", false),
			Strict:              utils.GetEnvBool("FINALFORM_STRICT", true),
		},
	}
}

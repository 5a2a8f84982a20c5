package config

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

type (
	Bootstrap struct {
		Logger         *zap.Logger
		CLILogger      *logrus.Logger
		DriverConfig   *DriverConfig
		InternalConfig *InternalConfig
	}

	InternalConfig struct {
		App      App
		Pipeline Pipeline
	}

	DriverConfig struct {
		Logger Logger
	}

	App struct {
		Env     string
		Version string
	}

	Pipeline struct {
		MeasureRegistryPath string
		BindingRegistryPath string
		MeasureSchemaPath   string
		BindingSchemaPath   string
		BindingID           string
		BindingVersion      string
		FormInputPath       string
		DeterministicIDs    bool
		Strict              bool
	}

	Logger struct {
		Driver              string
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)

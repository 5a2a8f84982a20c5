package constvars

const (
	AppName = "finalform"

	// FinalFormVersion is the fixed version tag stamped into event telemetry.
	FinalFormVersion = "0.3.0"

	ResponseUnknown = "unknown"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

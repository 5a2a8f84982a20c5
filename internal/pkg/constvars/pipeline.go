package constvars

// Processing stages, used to tag diagnostics.
const (
	StageMapping        = "mapping"
	StageRecoding       = "recoding"
	StageValidation     = "validation"
	StageScoring        = "scoring"
	StageInterpretation = "interpretation"
	StageBuilding       = "building"
)

// Terminal processing statuses.
const (
	StatusSuccess = "success"
	StatusPartial = "partial"
	StatusFailed  = "failed"
)

// Diagnostic codes.
const (
	CodeUnmappedField     = "UNMAPPED_FIELD"
	CodeMissingValue      = "MISSING_VALUE"
	CodeValidationError   = "VALIDATION_ERROR"
	CodeValidationMissing = "VALIDATION_MISSING"
	CodeValidationRange   = "VALIDATION_RANGE"
	CodeScoringError      = "SCORING_ERROR"
	CodeProratedScore     = "PRORATED_SCORE"
	CodePipelineError     = "PIPELINE_ERROR"
)

// Wire schema tags. Field names on these payloads are a storage contract,
// do not rename.
const (
	SchemaMeasurementEvent = "com.lifeos.measurement_event.v1"
	SchemaObservation      = "com.lifeos.observation.v1"
)

// Scoring methods.
const (
	MethodSum           = "sum"
	MethodAverage       = "average"
	MethodSumThenDouble = "sum_then_double"
)

// Missing-data strategies.
const (
	MissingStrategyFail    = "fail"
	MissingStrategySkip    = "skip"
	MissingStrategyProrate = "prorate"
)

// Binding selector kinds.
const (
	BindingByFieldKey = "field_key"
	BindingByPosition = "position"
)

// Spec document type tags.
const (
	SpecTypeMeasure     = "measure_spec"
	SpecTypeFormBinding = "form_binding_spec"
)

// CallableSchemaVersion tags results returned through the callable adapter.
const CallableSchemaVersion = "1.0"

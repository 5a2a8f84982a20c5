package constvars

const (
	LoggingFormIDKey           = "form_id"
	LoggingFormSubmissionIDKey = "form_submission_id"
	LoggingSubjectIDKey        = "subject_id"
	LoggingMeasureIDKey        = "measure_id"
	LoggingMeasureVersionKey   = "measure_version"
	LoggingMeasureKindKey      = "measure_kind"
	LoggingBindingIDKey        = "binding_id"
	LoggingBindingVersionKey   = "binding_version"
	LoggingScaleIDKey          = "scale_id"
	LoggingItemIDKey           = "item_id"
	LoggingFieldKeyKey         = "field_key"
	LoggingSectionCountKey     = "section_count"
	LoggingScaleCountKey       = "scale_count"
	LoggingItemCountKey        = "item_count"
	LoggingEventCountKey       = "event_count"
	LoggingMeasureCountKey     = "measure_count"
	LoggingStatusKey           = "status"
	LoggingStageKey            = "stage"
	LoggingPathKey             = "path"
	LoggingVersionKey          = "version"
)

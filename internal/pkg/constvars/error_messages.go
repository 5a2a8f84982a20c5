package constvars

const (
	ErrClientCannotProcessSubmission = "Unable to process form submission"
	ErrClientSpecNotFound            = "Referenced specification was not found"
	ErrClientInvalidSpec             = "Specification failed validation"
	ErrClientInvalidAnswer           = "Answer could not be recoded"

	ErrDevMeasureNotFound        = "measure spec not found: %s@%s (expected at %s)"
	ErrDevMeasureNoVersions      = "no versions found for measure: %s"
	ErrDevMeasureSchemaFailed    = "measure spec validation failed for %s@%s"
	ErrDevBindingNotFound        = "binding spec not found: %s@%s (expected at %s)"
	ErrDevBindingNoVersions      = "no versions found for binding: %s"
	ErrDevBindingSchemaFailed    = "binding spec validation failed for %s@%s"
	ErrDevMeasureSpecMissing     = "measure spec not found: %s"
	ErrDevItemNotInMeasure       = "item not found in measure spec: %s in measure %s"
	ErrDevValueOutOfRange        = "value %v out of range [%v, %v] for item %s"
	ErrDevUnknownResponse        = "unknown response %q for item %s. Valid responses: %v"
	ErrDevUnsupportedAnswerType  = "unsupported answer type for item %s: %s"
	ErrDevNoItemsResolved        = "no form items resolved for section %s (%d bindings declared)"
	ErrDevDomainNotFound         = "no domain processor registered for kind: %s"
	ErrDevDomainNotImplemented   = "%s domain processor not yet implemented"
	ErrDevMissingFormID          = "form_id not provided and not found in form submission"
	ErrDevMissingItemMap         = "no item mapping configured for (form_id=%q, measure_id=%q)"
	ErrDevUnmappedFields         = "form contains fields not in item map for measure %q: %v"
	ErrDevInvalidJSONLine        = "invalid JSON on line %d"
	ErrDevInvalidFormResponse    = "form response failed validation"
)

package exceptions

import (
	"fmt"

	"finalform-service/internal/pkg/constvars"
)

var (
	ErrMeasureNotFound = func(measureID, version, path string) *CustomError {
		return WrapWithoutError(KindMeasureNotFound, "", constvars.ErrClientSpecNotFound, fmt.Sprintf(constvars.ErrDevMeasureNotFound, measureID, version, path))
	}
	ErrMeasureNoVersions = func(measureID string) *CustomError {
		return WrapWithoutError(KindMeasureNotFound, "", constvars.ErrClientSpecNotFound, fmt.Sprintf(constvars.ErrDevMeasureNoVersions, measureID))
	}
	ErrMeasureValidation = func(err error, measureID, version string) *CustomError {
		return WrapWithError(err, KindMeasureValidation, "", constvars.ErrClientInvalidSpec, fmt.Sprintf(constvars.ErrDevMeasureSchemaFailed, measureID, version))
	}
	ErrBindingNotFound = func(bindingID, version, path string) *CustomError {
		return WrapWithoutError(KindBindingNotFound, "", constvars.ErrClientSpecNotFound, fmt.Sprintf(constvars.ErrDevBindingNotFound, bindingID, version, path))
	}
	ErrBindingNoVersions = func(bindingID string) *CustomError {
		return WrapWithoutError(KindBindingNotFound, "", constvars.ErrClientSpecNotFound, fmt.Sprintf(constvars.ErrDevBindingNoVersions, bindingID))
	}
	ErrBindingValidation = func(err error, bindingID, version string) *CustomError {
		return WrapWithError(err, KindBindingValidation, "", constvars.ErrClientInvalidSpec, fmt.Sprintf(constvars.ErrDevBindingSchemaFailed, bindingID, version))
	}
	ErrMappingNoItemsResolved = func(measureID string, bindingCount int) *CustomError {
		return WrapWithoutError(KindMapping, constvars.StageMapping, constvars.ErrClientCannotProcessSubmission, fmt.Sprintf(constvars.ErrDevNoItemsResolved, measureID, bindingCount))
	}
	ErrRecodingMeasureSpecMissing = func(measureID string) *CustomError {
		return WrapWithoutError(KindRecoding, constvars.StageRecoding, constvars.ErrClientCannotProcessSubmission, fmt.Sprintf(constvars.ErrDevMeasureSpecMissing, measureID))
	}
	ErrRecodingItemNotFound = func(itemID, measureID string) *CustomError {
		return WrapWithoutError(KindRecoding, constvars.StageRecoding, constvars.ErrClientInvalidAnswer, fmt.Sprintf(constvars.ErrDevItemNotInMeasure, itemID, measureID))
	}
	ErrRecodingOutOfRange = func(value any, min, max float64, itemID string) *CustomError {
		return WrapWithoutError(KindRecoding, constvars.StageRecoding, constvars.ErrClientInvalidAnswer, fmt.Sprintf(constvars.ErrDevValueOutOfRange, value, min, max, itemID))
	}
	ErrRecodingUnknownResponse = func(rawAnswer, itemID string, validResponses []string) *CustomError {
		return WrapWithoutError(KindRecoding, constvars.StageRecoding, constvars.ErrClientInvalidAnswer, fmt.Sprintf(constvars.ErrDevUnknownResponse, rawAnswer, itemID, validResponses))
	}
	ErrRecodingUnsupportedType = func(itemID, typeName string) *CustomError {
		return WrapWithoutError(KindRecoding, constvars.StageRecoding, constvars.ErrClientInvalidAnswer, fmt.Sprintf(constvars.ErrDevUnsupportedAnswerType, itemID, typeName))
	}
	ErrDomainNotFound = func(kind string) *CustomError {
		return WrapWithoutError(KindDomainNotFound, "", constvars.ErrClientCannotProcessSubmission, fmt.Sprintf(constvars.ErrDevDomainNotFound, kind))
	}
	ErrDomainNotImplemented = func(domain string) *CustomError {
		return WrapWithoutError(KindDomainNotFound, "", constvars.ErrClientCannotProcessSubmission, fmt.Sprintf(constvars.ErrDevDomainNotImplemented, domain))
	}
	ErrMissingFormID = func() *CustomError {
		return WrapWithoutError(KindMissingFormID, "", constvars.ErrClientCannotProcessSubmission, constvars.ErrDevMissingFormID)
	}
	ErrMissingItemMap = func(formID, measureID string) *CustomError {
		return WrapWithoutError(KindMissingItemMap, "", constvars.ErrClientCannotProcessSubmission, fmt.Sprintf(constvars.ErrDevMissingItemMap, formID, measureID))
	}
	ErrUnmappedFields = func(measureID string, fields []string) *CustomError {
		return WrapWithoutError(KindUnmappedField, constvars.StageMapping, constvars.ErrClientCannotProcessSubmission, fmt.Sprintf(constvars.ErrDevUnmappedFields, measureID, fields))
	}
	ErrInvalidFormResponse = func(err error) *CustomError {
		return WrapWithError(err, KindMapping, constvars.StageMapping, constvars.ErrClientCannotProcessSubmission, constvars.ErrDevInvalidFormResponse)
	}
	ErrInvalidJSONLine = func(err error, line int) *CustomError {
		return WrapWithError(err, KindStorage, "", constvars.ErrClientCannotProcessSubmission, fmt.Sprintf(constvars.ErrDevInvalidJSONLine, line))
	}
	ErrStorage = func(err error, devMessage string) *CustomError {
		return WrapWithError(err, KindStorage, "", constvars.ErrClientCannotProcessSubmission, devMessage)
	}
)

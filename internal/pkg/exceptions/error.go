package exceptions

import (
	"errors"
	"fmt"
	"runtime"

	"finalform-service/internal/pkg/constvars"
)

// Kind classifies pipeline errors. Hard errors raised by the stages carry a
// kind so the per-submission boundary can record them without string matching.
type Kind string

const (
	KindMapping           Kind = "mapping"
	KindRecoding          Kind = "recoding"
	KindMeasureNotFound   Kind = "measure_not_found"
	KindMeasureValidation Kind = "measure_validation"
	KindBindingNotFound   Kind = "binding_not_found"
	KindBindingValidation Kind = "binding_validation"
	KindDomainNotFound    Kind = "domain_not_found"
	KindUnmappedField     Kind = "unmapped_field"
	KindMissingItemMap    Kind = "missing_item_map"
	KindMissingFormID     Kind = "missing_form_id"
	KindStorage           Kind = "storage"
)

type CustomError struct {
	Kind          Kind     `json:"kind"`
	Stage         string   `json:"stage,omitempty"`
	ClientMessage string   `json:"message"`
	DevMessage    string   `json:"-"`
	Location      Location `json:"-"`
}

type Location struct {
	File         string
	Line         int
	FunctionName string
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, e.Location.File, e.Location.Line, e.Location.FunctionName)
}

func WrapWithoutError(kind Kind, stage, clientMessage, devMessage string) *CustomError {
	location := getLocation(2)
	return &CustomError{
		Kind:          kind,
		Stage:         stage,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Location:      location,
	}
}

func WrapWithError(err error, kind Kind, stage, clientMessage, devMessage string) *CustomError {
	location := getLocation(2)
	return &CustomError{
		Kind:          kind,
		Stage:         stage,
		ClientMessage: clientMessage,
		DevMessage:    fmt.Sprintf("%s: %s", devMessage, err.Error()),
		Location:      location,
	}
}

// IsKind reports whether err is a CustomError of the given kind.
func IsKind(err error, kind Kind) bool {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Kind == kind
	}
	return false
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}

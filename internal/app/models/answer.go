package models

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// AnswerKind discriminates the closed set of JSON scalar shapes a raw form
// answer may take. Keeping the set closed makes the recoder's type dispatch
// exhaustive.
type AnswerKind int

const (
	AnswerNull AnswerKind = iota
	AnswerBool
	AnswerInt
	AnswerFloat
	AnswerString
)

// AnswerValue is a raw form answer: exactly one of null, bool, integer,
// float, or string.
type AnswerValue struct {
	kind     AnswerKind
	boolVal  bool
	intVal   int64
	floatVal float64
	strVal   string
}

func NullAnswer() AnswerValue           { return AnswerValue{kind: AnswerNull} }
func BoolAnswer(v bool) AnswerValue     { return AnswerValue{kind: AnswerBool, boolVal: v} }
func IntAnswer(v int64) AnswerValue     { return AnswerValue{kind: AnswerInt, intVal: v} }
func FloatAnswer(v float64) AnswerValue { return AnswerValue{kind: AnswerFloat, floatVal: v} }
func StringAnswer(v string) AnswerValue { return AnswerValue{kind: AnswerString, strVal: v} }

func (a AnswerValue) Kind() AnswerKind { return a.kind }

func (a AnswerValue) IsNull() bool { return a.kind == AnswerNull }

// IsEmpty reports whether the answer counts as missing: JSON null or the
// empty string.
func (a AnswerValue) IsEmpty() bool {
	return a.kind == AnswerNull || (a.kind == AnswerString && a.strVal == "")
}

func (a AnswerValue) Bool() bool     { return a.boolVal }
func (a AnswerValue) Int() int64     { return a.intVal }
func (a AnswerValue) Float() float64 { return a.floatVal }
func (a AnswerValue) Str() string    { return a.strVal }

// Numeric returns the answer as a float64 for the numeric kinds.
func (a AnswerValue) Numeric() (float64, bool) {
	switch a.kind {
	case AnswerInt:
		return float64(a.intVal), true
	case AnswerFloat:
		return a.floatVal, true
	default:
		return 0, false
	}
}

// Display renders the raw answer for observation provenance. Null answers
// render as the empty string; callers decide whether to omit them.
func (a AnswerValue) Display() string {
	switch a.kind {
	case AnswerBool:
		return strconv.FormatBool(a.boolVal)
	case AnswerInt:
		return strconv.FormatInt(a.intVal, 10)
	case AnswerFloat:
		return strconv.FormatFloat(a.floatVal, 'g', -1, 64)
	case AnswerString:
		return a.strVal
	default:
		return ""
	}
}

// TypeName names the kind for error messages.
func (a AnswerValue) TypeName() string {
	switch a.kind {
	case AnswerBool:
		return "bool"
	case AnswerInt:
		return "int"
	case AnswerFloat:
		return "float"
	case AnswerString:
		return "string"
	default:
		return "null"
	}
}

func (a AnswerValue) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case AnswerBool:
		return json.Marshal(a.boolVal)
	case AnswerInt:
		return json.Marshal(a.intVal)
	case AnswerFloat:
		return json.Marshal(a.floatVal)
	case AnswerString:
		return json.Marshal(a.strVal)
	default:
		return []byte("null"), nil
	}
}

func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*a = NullAnswer()
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*a = StringAnswer(s)
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return err
		}
		*a = BoolAnswer(b)
		return nil
	case '{', '[':
		return fmt.Errorf("answer must be a JSON scalar, got %s", string(trimmed[0]))
	}

	if !bytes.ContainsAny(trimmed, ".eE") {
		var i int64
		if err := json.Unmarshal(trimmed, &i); err == nil {
			*a = IntAnswer(i)
			return nil
		}
	}
	var f float64
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return err
	}
	*a = FloatAnswer(f)
	return nil
}

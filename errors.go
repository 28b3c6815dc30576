package nls

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. A *ValidationError unwraps to exactly one of these, so callers
// can test the kind with errors.Is.
var (
	ErrMissingField            = errors.New("missing field")
	ErrMutuallyExclusiveFields = errors.New("mutually exclusive fields")
	ErrMalformedDate           = errors.New("malformed date")
	ErrMalformedTime           = errors.New("malformed time")
	ErrMalformedTimestamp      = errors.New("malformed timestamp")
	ErrOrdering                = errors.New("ordering violation")
	ErrInvalidEnumValue        = errors.New("invalid enum value")
	ErrMalformedIdentifier     = errors.New("malformed identifier")
	ErrMalformedValue          = errors.New("malformed value")
	ErrWrongType               = errors.New("wrong type")
	ErrUnknownField            = errors.New("unknown field")
)

// ValidationError describes why a record or one of its parts was rejected.
// Field is a dotted path from the type being constructed down to the
// offending value, e.g. "contact[0].phone".
type ValidationError struct {
	Kind  error
	Field string
	Value interface{}
	Msg   string
}

func (e *ValidationError) Error() string {
	sb := strings.Builder{}
	if len(e.Field) > 0 {
		sb.WriteString(e.Field)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Kind.Error())
	if len(e.Msg) > 0 {
		sb.WriteString(": ")
		sb.WriteString(e.Msg)
	}
	if e.Value != nil {
		sb.WriteString(fmt.Sprintf(" (got %#v)", e.Value))
	}
	return sb.String()
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func newError(kind error, field string, value interface{}, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Kind:  kind,
		Field: field,
		Value: value,
		Msg:   fmt.Sprintf(format, args...),
	}
}

func missing(field string) *ValidationError {
	return &ValidationError{Kind: ErrMissingField, Field: field, Msg: "value is required"}
}

// nest prefixes the field path of a validation error with the name of the
// containing field. Other errors pass through untouched.
func nest(err error, prefix string) error {
	var verr *ValidationError
	if err == nil || !errors.As(err, &verr) {
		return err
	}

	nested := *verr
	switch {
	case len(nested.Field) == 0:
		nested.Field = prefix
	case strings.HasPrefix(nested.Field, "["):
		nested.Field = prefix + nested.Field
	default:
		nested.Field = prefix + "." + nested.Field
	}
	return &nested
}

func nestIndex(err error, field string, idx int) error {
	return nest(err, fmt.Sprintf("%s[%d]", field, idx))
}

package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a document file does not exist.
var ErrNotFound = errors.New("file does not exist")

// ErrMissingField is the kind of a FieldError for an absent or null field.
var ErrMissingField = errors.New("field is missing")

// ErrTypeMismatch is the kind of a FieldError for a field of the wrong type.
var ErrTypeMismatch = errors.New("field has wrong type")

// ParseError reports a document whose content is not a JSON object.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse JSON from %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// FieldError reports a problem with a field of the global config document.
type FieldError struct {
	Field string
	Kind  error  // ErrMissingField or ErrTypeMismatch
	Want  string // expected JSON type, set for ErrTypeMismatch
	Got   string // actual JSON type, set for ErrTypeMismatch
}

func (e *FieldError) Error() string {
	if errors.Is(e.Kind, ErrTypeMismatch) {
		return fmt.Sprintf("field %q is expected to be of type %s, but got %s", e.Field, e.Want, e.Got)
	}
	return fmt.Sprintf("field %q is missing in the config file", e.Field)
}

// Unwrap returns the error kind so callers can use errors.Is.
func (e *FieldError) Unwrap() error {
	return e.Kind
}

// jsonType names the JSON type of a decoded value.
func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64, float32:
		return "number"
	case []any, []string:
		return "array"
	case map[string]any, Document:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

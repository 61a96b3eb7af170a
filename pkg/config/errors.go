package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrUnknownPreset is returned when a rotor or reflector name has no preset.
var ErrUnknownPreset = errors.New("unknown preset")

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Key    string // Field path, e.g. "rotors[1].notch"
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %v)", e.Key, e.Reason, e.Value)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}

// fromValidator converts struct tag failures into ValidationErrors.
func fromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	aggr := &AggregateError{}
	for _, e := range verrs {
		aggr.Errors = append(aggr.Errors, &ValidationError{
			Key:    fieldPath(e.Namespace()),
			Reason: reason(e),
			Value:  e.Value(),
		})
	}
	return aggr
}

func reason(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", e.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s letters long", e.Param())
	case "alpha":
		return "must contain letters only"
	case "gte", "lt":
		return "must be between 0 and 25"
	case "required_without":
		return fmt.Sprintf("is required when %s is not set", e.Param())
	default:
		return fmt.Sprintf("validation failed (%s)", e.Tag())
	}
}

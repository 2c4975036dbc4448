package layout

import (
	"errors"
	"strings"
)

var (
	// ErrUnknownObstructionType indicates category text outside the closed set.
	ErrUnknownObstructionType = errors.New("layout: unknown obstruction type")

	// ErrInvalidInput indicates a solver input that failed validation.
	ErrInvalidInput = errors.New("layout: invalid input")
)

// FieldError names one input field that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string { return e.Field + " " + e.Reason }

// ValidationError collects every failing field of an input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

package services

import "errors"

// Failure kinds of the submission pipeline. Callers classify with errors.Is;
// the concrete cause is wrapped alongside.
var (
	ErrValidation        = errors.New("validation failed")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrExtraction        = errors.New("text extraction failed")
	ErrGeneration        = errors.New("feedback generation failed")
)

// FieldError names a required input field that is missing or blank. It
// matches ErrValidation.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return "missing required field " + e.Field
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

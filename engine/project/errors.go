package project

import "errors"

var (
	// ErrInvalidForm marks a creation form with a missing or malformed field.
	ErrInvalidForm = errors.New("invalid project form")
	// ErrProjectExists is returned when the project name is already taken.
	ErrProjectExists = errors.New("Project name already exists.") //nolint:staticcheck // shown to users verbatim
)

// FormError reports the first invalid field of a creation form. Message is
// meant for the person who filled the form.
type FormError struct {
	Field   string
	Message string
}

func (e *FormError) Error() string {
	return e.Message
}

func (e *FormError) Unwrap() error {
	return ErrInvalidForm
}

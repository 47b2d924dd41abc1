package importer

import (
	"errors"
	"fmt"
)

var (
	ErrNoItemFile            = errors.New("No item file.") //nolint:staticcheck // shown to users verbatim
	ErrImproperFormat        = errors.New("improper formatting")
	ErrUnknownCategory       = errors.New("unknown category")
	ErrUnknownAttribute      = errors.New("unknown attribute")
	ErrUnknownAttributeValue = errors.New("unknown attribute value")
	ErrAttributeType         = errors.New("attribute value does not match tool type")
	ErrDuplicateLabelID      = errors.New("duplicate label id")
)

// FormatError reports an upload that could not be decoded.
type FormatError struct {
	File string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("Improper formatting for %s file", e.File)
}

func (e *FormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrImproperFormat}
	}
	return []error{ErrImproperFormat, e.Err}
}

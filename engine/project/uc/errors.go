package uc

import (
	"errors"

	"github.com/labelforge/labelforge/engine/project"
	"github.com/labelforge/labelforge/engine/resources/importer"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrProjectMissing = errors.New("project missing")
	ErrTaskMissing    = errors.New("task missing")
)

// errorKind buckets creation failures for the import error counter.
func errorKind(err error) string {
	switch {
	case errors.Is(err, project.ErrInvalidForm):
		return "invalid_form"
	case errors.Is(err, project.ErrProjectExists):
		return "project_exists"
	case errors.Is(err, importer.ErrNoItemFile):
		return "no_item_file"
	case errors.Is(err, importer.ErrImproperFormat):
		return "improper_format"
	case errors.Is(err, importer.ErrUnknownCategory):
		return "unknown_category"
	case errors.Is(err, importer.ErrUnknownAttribute),
		errors.Is(err, importer.ErrUnknownAttributeValue),
		errors.Is(err, importer.ErrAttributeType):
		return "attribute"
	case errors.Is(err, importer.ErrDuplicateLabelID):
		return "duplicate_label"
	default:
		return "internal"
	}
}

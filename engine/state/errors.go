package state

import "errors"

var (
	ErrUnknownShapeType = errors.New("unknown shape type")
	ErrMissingShape     = errors.New("shape payload missing")
	ErrShapeMismatch    = errors.New("shape payload does not match its type")
	ErrAttributeValue   = errors.New("attribute value must be a list of strings or a boolean")
)

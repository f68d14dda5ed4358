package datamodel

import "errors"

// Common errors
var (
	ErrAttributeNotAllowed = errors.New("attribute name not in allowed list")
	ErrDuplicateAttribute  = errors.New("attribute name already registered")
	ErrUnknownNodeKind     = errors.New("store node is neither group nor dataset")
	ErrNoJSONHeader        = errors.New("no valid JSON header block")
)

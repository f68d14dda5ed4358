// Package store implements a simple self-describing hierarchical container
// file: a tree of attribute-carrying groups and typed datasets, addressed
// by /-separated paths. The on-disk format is a small fixed header followed
// by a CBOR-encoded node tree, optionally zstd-compressed.
package store

import "errors"

// Common errors
var (
	ErrNotStoreFile    = errors.New("not a container store file")
	ErrNotFound        = errors.New("object not found")
	ErrNotDataset      = errors.New("object is not a dataset")
	ErrNotGroup        = errors.New("object is not a group")
	ErrObjectExists    = errors.New("object already exists")
	ErrFileExists      = errors.New("file already exists")
	ErrReadOnly        = errors.New("file is not writable")
	ErrClosed          = errors.New("file is closed")
	ErrUnsupportedType = errors.New("unsupported value type")
	ErrInvalidName     = errors.New("invalid object name")
)

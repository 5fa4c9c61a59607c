package catalogfile

import "errors"

// Sentinel kinds for catalog loading errors.
var (
	ErrEmptyCatalog  = errors.New("catalog has no items")
	ErrInvalidItem   = errors.New("invalid catalog item")
	ErrDuplicateItem = errors.New("duplicate catalog item id")
)

package repository

import "errors"

// Sentinel kinds for vault errors.
var (
	ErrNotFound     = errors.New("build not found")
	ErrInvalidLimit = errors.New("invalid ranking limit")
)

package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoCatalog  = errors.New("service requires a catalog provider")
	ErrNotStarted = errors.New("service is not started")
)

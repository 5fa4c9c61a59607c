package compose

import "errors"

// Sentinel kinds for composition errors. Only exotic conflicts and an
// unhonorable lock are fatal; catalog gaps leave slots empty instead.
var (
	// ErrExoticConflict reports that honoring the locked exotic would force
	// a second exotic into the same category.
	ErrExoticConflict = errors.New("exotic conflict")

	// ErrLockedItemNotFound reports that the locked exotic is not in the
	// catalog view. Silently dropping a user's explicit choice would be
	// worse than failing.
	ErrLockedItemNotFound = errors.New("locked exotic not found in catalog")

	// ErrLockedClassMismatch reports that the locked exotic cannot be worn
	// by the requested class.
	ErrLockedClassMismatch = errors.New("locked exotic not wearable by requested class")
)

package interfaces

import "errors"

var (
	// ErrNotFound is returned when the requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when a user insert hits the unique email index.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrNoSeat is returned when the conditional seat claim matches no document:
	// the ride is gone, inactive, full, or the user is the driver or already aboard.
	ErrNoSeat = errors.New("seat unavailable")
)

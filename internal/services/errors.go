package services

import "errors"

var (
	// Auth
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")

	// Rides
	ErrRideNotFound   = errors.New("ride not found")
	ErrOwnRide        = errors.New("cannot join your own ride")
	ErrRideNotActive  = errors.New("ride is not active")
	ErrRideFull       = errors.New("no available seats")
	ErrAlreadyJoined  = errors.New("already joined this ride")
	ErrGenderMismatch = errors.New("gender preference does not match")
	ErrNotDriver      = errors.New("only the driver may perform this action")
	ErrSeatConflict   = errors.New("seat no longer available")
	ErrSeatsBelowLoad = errors.New("total seats cannot be less than current passengers")

	ErrInvalidDate       = errors.New("invalid ride date")
	ErrInvalidStatus     = errors.New("invalid ride status")
	ErrInvalidPreference = errors.New("invalid gender preference")

	// Uploads
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedFile = errors.New("unsupported file type")

	// Chat
	ErrNotParticipant = errors.New("not a participant of this ride")
	ErrInvalidMessage = errors.New("message must be between 1 and 500 characters")
)

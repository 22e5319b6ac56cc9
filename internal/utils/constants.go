package utils

import "time"

// Application Constants
const (
	AppName    = "Carpool"
	AppVersion = "1.0.0"

	// Pagination
	DefaultPageSize = 10
	MaxPageSize     = 50
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 6
	PasswordMaxLength  = 128
	BcryptCost         = 10

	// Ride Constants
	MinTotalSeats = 1
	MaxTotalSeats = 8
	MinRating     = 0.0
	MaxRating     = 5.0

	// Chat
	MinMessageLength = 1
	MaxMessageLength = 500

	// Upload
	MaxProfilePictureSize = 5 * 1024 * 1024 // 5MB

	// Cache
	RideCacheTTL = 5 * time.Minute
)

// Response status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Common error messages
const (
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
	ErrUnauthorized     = "Unauthorized"
	ErrForbidden        = "Forbidden"
)

package entity

import "errors"

// Domain errors
var (
	// Auth errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")

	// Project errors
	ErrProjectNotFound = errors.New("project not found")
	ErrProjectAccess   = errors.New("project not owned by user")

	// Room errors
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomAccess   = errors.New("room not owned by user")

	// Generative service errors
	ErrEmptyCandidates = errors.New("generative response contains no candidates")
	ErrReportFailed    = errors.New("report generation failed")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidFormat    = errors.New("invalid format")
)

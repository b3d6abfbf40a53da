package apperr

import "errors"

var (

	// validation errors
	ErrInvalidInput = errors.New("invalid input")

	// auth-specific errors
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// domain errors
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("already exists")
	ErrInsufficientBalance = errors.New("insufficient points balance")
	ErrInvalidState        = errors.New("operation not allowed in current state")
)

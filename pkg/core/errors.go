package core

import "errors"

// Common errors.
var (
	// ErrUnauthorized marks a response indicating the bearer token is
	// invalid or expired. The controller recovers from it by clearing the
	// session and redirecting to the login view.
	ErrUnauthorized = errors.New("session invalid or expired")

	// ErrNotFound is returned when the server knows no note with the
	// requested ID.
	ErrNotFound = errors.New("note not found")

	// ErrClosed is returned when an operation resolves after the
	// controller has been torn down. Its response is discarded.
	ErrClosed = errors.New("controller is closed")
)

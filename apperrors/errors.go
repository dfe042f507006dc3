package apperrors

import "errors"

// Sentinel errors for the failure kinds the API layer knows how to map to
// HTTP status codes. Services wrap these with fmt.Errorf and %w; handlers
// match with errors.Is and translate at the boundary.
var (
	// ErrValidation indicates bad client input (400).
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a missing conversation or user (404).
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a duplicate resource, e.g. an email that is
	// already registered (400).
	ErrConflict = errors.New("conflict")

	// ErrConfiguration indicates missing or invalid startup configuration,
	// such as an absent API credential (503 on health, 500 elsewhere).
	ErrConfiguration = errors.New("configuration error")

	// ErrUpstream indicates a failed call to the language-model API.
	ErrUpstream = errors.New("upstream error")

	// ErrProcessing wraps an upstream failure surfaced from the chat
	// pipeline (500, generic message to the client).
	ErrProcessing = errors.New("processing error")
)

package domain

import "errors"

// Sentinel errors used across all layers. Repositories map store errors
// onto these, services wrap them with context, and the transport layer
// translates them into HTTP status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

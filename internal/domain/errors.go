package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, negative distance).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write collides with an existing unique
// value (e.g. registering an email that is already taken).
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized is returned when credentials cannot be verified.
// The same sentinel covers unknown email and wrong password so responses
// do not leak which accounts exist.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

package core

import "errors"

// Authentication related errors
var (
	// User errors
	ErrUserExists         = errors.New("user already exists")       // 409 Conflict
	ErrUserNotFound       = errors.New("user not found")            // 404 Not Found
	ErrInvalidCredentials = errors.New("invalid email or password") // 401 Unauthorized
)

// Session errors. An expired session behaves exactly like a missing one, so
// both surface as ErrSessionNotFound.
var (
	ErrMissingAuthHeader = errors.New("missing authorization header") // 401
	ErrInvalidToken      = errors.New("invalid session token")        // 401
	ErrSessionNotFound   = errors.New("session not found")            // 401
	ErrCacheNotFound     = errors.New("session not found in cache")
)

// Resource errors
var (
	ErrTaskNotFound = errors.New("task not found") // 404
	ErrForbidden    = errors.New("forbidden")      // 403
)

// Validation errors (client input)
var (
	ErrEmailRequired    = errors.New("email is required")        // 400
	ErrEmailTooLong     = errors.New("email is too long")        // 400
	ErrInvalidEmail     = errors.New("invalid email format")     // 400
	ErrPasswordRequired = errors.New("password is required")     // 400
	ErrPasswordTooShort = errors.New("password is too short")    // 400
	ErrPasswordTooLong  = errors.New("password is too long")     // 400
	ErrTitleRequired    = errors.New("title is required")        // 400
	ErrTagNameRequired  = errors.New("tag name is required")     // 400
	ErrInvalidStatus    = errors.New("invalid task status")      // 400
	ErrInvalidPriority  = errors.New("invalid task priority")    // 400
)

// Integrity and infrastructure errors
var (
	// ErrCorruptCredential means a stored credential field could not be
	// split into digest and salt. This is a data defect, not a wrong
	// password, and must never be reported as one.
	ErrCorruptCredential = errors.New("stored credential is malformed") // 500

	ErrStorageUnavailable = errors.New("storage unavailable") // 503
)

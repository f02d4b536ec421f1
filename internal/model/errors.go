package model

import "errors"

// ErrNotFound is returned by stores when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// Authentication failure kinds. The HTTP layer collapses every one of these
// into the same unauthenticated response; the distinction exists for logging
// and for tests asserting which check rejected a token.
var (
	ErrNoCredential   = errors.New("no session credential presented")
	ErrMalformedToken = errors.New("malformed session token")
	ErrBadSignature   = errors.New("invalid session token signature")
	ErrTokenExpired   = errors.New("session token expired")
	ErrTokenRevoked   = errors.New("session token revoked")
	ErrVersionStale   = errors.New("session token version stale")
)

// CSRF failures are a different attack class than authentication failures
// and surface as forbidden rather than unauthenticated.
var (
	ErrCSRFMissing  = errors.New("csrf token missing")
	ErrCSRFMismatch = errors.New("csrf token mismatch")
)

// ErrStoreUnavailable means a revocation or version check could not be
// completed. Requests fail closed on it.
var ErrStoreUnavailable = errors.New("session store unavailable")

// Credential flow errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already taken")
)

package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionClaims are the immutable claims embedded in a signed session token.
type SessionClaims struct {
	UserID       uuid.UUID
	Email        string
	TokenVersion int64
	JTI          string
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

// TokenCodec signs and verifies session tokens.
type TokenCodec interface {
	// Issue produces a signed token for the user, embedding the user's
	// current token version and a fresh jti.
	Issue(user User) (token string, claims SessionClaims, err error)
	// Verify checks the signature and expiry and returns the claims.
	// Failures are one of ErrMalformedToken, ErrBadSignature, ErrTokenExpired.
	Verify(token string) (SessionClaims, error)
	// ExtractID returns the jti without verifying the signature. It exists so
	// the revocation list can be consulted before the more expensive
	// cryptographic check; the claims must not be trusted until Verify ran.
	ExtractID(token string) (string, error)
}

package model

import (
	"context"
	"time"
)

// RevokedTokenStore persists individually revoked session tokens by jti.
type RevokedTokenStore interface {
	// Create inserts a revocation entry. Idempotent on duplicate jti.
	Create(ctx context.Context, entry RevokedToken) error
	// ListActive returns all entries whose expiry is after now. Used to
	// hydrate and refresh the in-memory revocation cache.
	ListActive(ctx context.Context, now time.Time) ([]RevokedToken, error)
	// DeleteExpired removes entries whose expiry has passed and returns the
	// number of rows deleted. An expired entry is redundant because the token
	// itself is rejected by the expiry check.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// RevokedToken records a single logged-out session.
type RevokedToken struct {
	JTI       string
	ExpiresAt time.Time
	RevokedAt time.Time
}

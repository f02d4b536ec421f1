package model

import (
	"context"

	"github.com/google/uuid"
)

// VersionStore reads and bumps the per-user token version counter.
type VersionStore interface {
	// CurrentVersion returns the persisted counter for the user, or
	// ErrNotFound when no live user row exists. Callers treat a missing row
	// as a rejection, not as version 0: a token for a deleted account must
	// never pass the version check.
	CurrentVersion(ctx context.Context, userID uuid.UUID) (int64, error)
	// InvalidateAll atomically increments the counter and returns the new
	// value. The increment happens in the database so concurrent calls for
	// the same user cannot lose updates.
	InvalidateAll(ctx context.Context, userID uuid.UUID) (int64, error)
}

package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Identity is the authenticated principal attached to a request context
// after every session check succeeded.
type Identity struct {
	UserID       uuid.UUID
	Email        string
	JTI          string
	TokenVersion int64
	ExpiresAt    time.Time
	// FromBearer is true when the token arrived in the Authorization header
	// rather than the session cookie. Such requests skip the CSRF check:
	// the browser never attaches bearer headers ambiently.
	FromBearer bool
}

// ContextManager stores and retrieves the authenticated identity on a
// request context.
type ContextManager interface {
	SetIdentityToContext(ctx context.Context, identity Identity) context.Context
	GetIdentityFromContext(ctx context.Context) (Identity, bool)
}

package httpctx

import (
	"context"

	"github.com/JLawMcGraw/alchemix-server/internal/model"
)

type contextKey int

const identityKey contextKey = iota

// Manager stores and retrieves the authenticated identity on a request
// context using an unexported key so other packages cannot collide with it.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetIdentityToContext returns a child context carrying the identity.
func (m *Manager) SetIdentityToContext(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentityFromContext retrieves the identity attached by the
// authentication middleware.
func (m *Manager) GetIdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(model.Identity)
	return identity, ok
}

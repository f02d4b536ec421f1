package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/JLawMcGraw/alchemix-server/internal/api/http/cookie"
	"github.com/JLawMcGraw/alchemix-server/internal/logger"
	"github.com/JLawMcGraw/alchemix-server/internal/model"
)

// SessionService authenticates raw session tokens.
type SessionService interface {
	Authenticate(ctx context.Context, rawToken string) (model.Identity, error)
}

// Authenticate validates session tokens and injects the identity into the
// request context. The cookie is checked first; a bearer Authorization
// header is the fallback for non-browser clients and marks the identity as
// exempt from the CSRF check.
type Authenticate struct {
	sessions       SessionService
	cookies        *cookie.Manager
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(sessions SessionService, cookies *cookie.Manager, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		sessions:       sessions,
		cookies:        cookies,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handle rejects the request unless every session check passes. All
// rejection kinds produce the same external response so a caller cannot
// distinguish a forged token from an expired or revoked one.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawToken, fromBearer := m.extractToken(r)

		identity, err := m.sessions.Authenticate(r.Context(), rawToken)
		if err != nil {
			if errors.Is(err, model.ErrStoreUnavailable) {
				m.logger.Error("authenticate middleware: store unavailable, failing closed",
					"path", r.URL.Path)
			} else {
				m.logger.Debug("authenticate middleware: rejected",
					"path", r.URL.Path,
					"reason", err.Error())
			}
			writeUnauthenticated(w)
			return
		}

		identity.FromBearer = fromBearer
		ctx := m.contextManager.SetIdentityToContext(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken returns the raw token and whether it came from the
// Authorization header rather than the session cookie.
func (m *Authenticate) extractToken(r *http.Request) (string, bool) {
	if token, ok := m.cookies.Session(r); ok {
		return token, false
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), true
	}

	return "", false
}

func writeUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"invalid session"}`))
}

package router

import (
	"net/http"

	"github.com/JLawMcGraw/alchemix-server/internal/api/http/cookie"
	"github.com/JLawMcGraw/alchemix-server/internal/api/http/handler"
	"github.com/JLawMcGraw/alchemix-server/internal/api/http/middleware"
	"github.com/JLawMcGraw/alchemix-server/internal/logger"
	"github.com/JLawMcGraw/alchemix-server/internal/model"
	"github.com/JLawMcGraw/alchemix-server/internal/service"
)

// Router wires handlers and middleware into one http.Handler.
type Router struct {
	authService    *service.Auth
	sessionService *service.Session
	cookies        *cookie.Manager
	contextManager model.ContextManager
	db             handler.Pinger
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	sessionService *service.Session,
	cookies *cookie.Manager,
	contextManager model.ContextManager,
	db handler.Pinger,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		sessionService: sessionService,
		cookies:        cookies,
		contextManager: contextManager,
		db:             db,
		logger:         logger,
	}
}

// Register builds the route table. Login and signup are public; everything
// under the session requires authentication, and state-changing routes pass
// the CSRF check after it (the exemption for bearer clients needs the
// identity already attached).
func (r *Router) Register() http.Handler {
	authHandler := handler.NewAuth(r.authService, r.cookies, r.contextManager, r.logger)
	healthHandler := handler.NewHealth(r.db)

	authenticate := middleware.NewAuthenticate(r.sessionService, r.cookies, r.contextManager, r.logger)
	csrf := middleware.NewCSRF(r.cookies, r.contextManager, r.logger)
	logging := middleware.NewLogging(r.logger)

	protected := func(h http.HandlerFunc) http.Handler {
		return authenticate.Handle(csrf.Handle(h))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler.Check)

	mux.HandleFunc("POST /api/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	mux.Handle("POST /api/auth/logout", protected(authHandler.Logout))
	mux.Handle("POST /api/auth/logout-all", protected(authHandler.LogoutAll))
	mux.Handle("POST /api/auth/change-password", protected(authHandler.ChangePassword))
	mux.Handle("DELETE /api/auth/account", protected(authHandler.DeleteAccount))
	mux.Handle("GET /api/auth/me", protected(authHandler.Me))

	return logging.Handle(mux)
}

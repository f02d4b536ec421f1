package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/JLawMcGraw/alchemix-server/internal/api/http/cookie"
	"github.com/JLawMcGraw/alchemix-server/internal/logger"
	"github.com/JLawMcGraw/alchemix-server/internal/model"
)

// AuthService defines the account flows exposed over HTTP.
type AuthService interface {
	Signup(ctx context.Context, email, password string) (model.User, model.IssuedSession, error)
	Login(ctx context.Context, email, password string) (model.User, model.IssuedSession, error)
	Logout(ctx context.Context, identity model.Identity) error
	LogoutAll(ctx context.Context, userID uuid.UUID) error
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) (model.IssuedSession, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID, password string) error
}

// Auth handles the HTTP endpoints for authentication.
type Auth struct {
	authService    AuthService
	cookies        *cookie.Manager
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, cookies *cookie.Manager, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		cookies:        cookies,
		contextManager: contextManager,
		logger:         logger,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type deleteAccountRequest struct {
	Password string `json:"password"`
}

type sessionResponse struct {
	User      userResponse `json:"user"`
	CSRFToken string       `json:"csrf_token"`
}

type userResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Signup registers a new user and sets the session and CSRF cookies.
func (h *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeCredentials(w, r, &req) {
		return
	}

	user, session, err := h.authService.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Debug("auth handler: signup failed", "error", err.Error())
		handleError(w, err)
		return
	}

	h.setSessionCookies(w, session)
	writeJSON(w, http.StatusCreated, sessionResponse{
		User:      userResponse{ID: user.ID, Email: user.Email},
		CSRFToken: session.CSRFToken,
	})
}

// Login authenticates credentials and sets the session and CSRF cookies.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeCredentials(w, r, &req) {
		return
	}

	user, session, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Debug("auth handler: login failed", "error", err.Error())
		handleError(w, err)
		return
	}

	h.setSessionCookies(w, session)
	writeJSON(w, http.StatusOK, sessionResponse{
		User:      userResponse{ID: user.ID, Email: user.Email},
		CSRFToken: session.CSRFToken,
	})
}

// Logout revokes the current session and clears both cookies. The user's
// other sessions stay valid.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.contextManager.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	if err := h.authService.Logout(r.Context(), identity); err != nil {
		handleError(w, err)
		return
	}

	h.clearSessionCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

// LogoutAll invalidates every session issued to the user.
func (h *Auth) LogoutAll(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.contextManager.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	if err := h.authService.LogoutAll(r.Context(), identity.UserID); err != nil {
		handleError(w, err)
		return
	}

	h.clearSessionCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

// ChangePassword rotates the password, invalidates existing sessions, and
// installs a fresh session so the caller stays logged in on this device.
func (h *Auth) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.contextManager.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "current and new password are required")
		return
	}

	session, err := h.authService.ChangePassword(r.Context(), identity.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		handleError(w, err)
		return
	}

	h.setSessionCookies(w, session)
	writeJSON(w, http.StatusOK, sessionResponse{
		User:      userResponse{ID: identity.UserID, Email: identity.Email},
		CSRFToken: session.CSRFToken,
	})
}

// DeleteAccount removes the account after a password confirmation and clears
// the cookies.
func (h *Auth) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.contextManager.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	var req deleteAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.DeleteAccount(r.Context(), identity.UserID, req.Password); err != nil {
		handleError(w, err)
		return
	}

	h.clearSessionCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated user.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.contextManager.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid session")
		return
	}

	writeJSON(w, http.StatusOK, userResponse{ID: identity.UserID, Email: identity.Email})
}

func (h *Auth) setSessionCookies(w http.ResponseWriter, session model.IssuedSession) {
	h.cookies.SetSession(w, session.Token)
	h.cookies.SetCSRF(w, session.CSRFToken)
}

func (h *Auth) clearSessionCookies(w http.ResponseWriter) {
	h.cookies.ClearSession(w)
	h.cookies.ClearCSRF(w)
}

func decodeCredentials(w http.ResponseWriter, r *http.Request, req *credentialsRequest) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "valid email is required")
		return false
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "password is required")
		return false
	}
	return true
}

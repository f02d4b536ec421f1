package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/JLawMcGraw/alchemix-server/internal/api/http/cookie"
	"github.com/JLawMcGraw/alchemix-server/internal/api/http/httpctx"
	"github.com/JLawMcGraw/alchemix-server/internal/api/http/middleware"
	"github.com/JLawMcGraw/alchemix-server/internal/mocks"
	"github.com/JLawMcGraw/alchemix-server/internal/model"
	"github.com/JLawMcGraw/alchemix-server/internal/service"
	"github.com/JLawMcGraw/alchemix-server/internal/testutil"
	"github.com/JLawMcGraw/alchemix-server/internal/token"
)

type nopPinger struct{}

func (nopPinger) Ping(context.Context) error { return nil }

type routerDeps struct {
	users        *mocks.UserStore
	versions     *mocks.VersionStore
	revokedStore *mocks.RevokedTokenStore
}

func newTestRouter(t *testing.T) (http.Handler, routerDeps) {
	t.Helper()
	log := testutil.MakeNoopLogger()
	deps := routerDeps{
		users:        mocks.NewUserStore(t),
		versions:     mocks.NewVersionStore(t),
		revokedStore: mocks.NewRevokedTokenStore(t),
	}

	revocations := service.NewRevocationList(deps.revokedStore, log)
	codec := token.NewJWT([]byte("0123456789abcdef0123456789abcdef"))
	sessions := service.NewSession(codec, deps.versions, revocations, time.Second, log)
	auth := service.NewAuth(deps.users, sessions, log)

	r := New(auth, sessions, cookie.NewManager(false, time.Hour), httpctx.NewManager(), nopPinger{}, log)
	return r.Register(), deps
}

func attachSession(r *http.Request, cookies []*http.Cookie, withCSRFHeader bool) {
	var csrfValue string
	for _, c := range cookies {
		if c.Name == cookie.SessionName || c.Name == cookie.CSRFName {
			r.AddCookie(c)
		}
		if c.Name == cookie.CSRFName {
			csrfValue = c.Value
		}
	}
	if withCSRFHeader {
		r.Header.Set(middleware.CSRFHeaderName, csrfValue)
	}
}

func TestRouter_Health(t *testing.T) {
	h, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ProtectedWithoutSession(t *testing.T) {
	h, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid session"}`, w.Body.String())
}

// TestRouter_SessionLifecycle walks one browser session end to end: signup
// sets the cookie pair, the cookies authenticate follow-up requests, logout
// revokes the session, and the revoked cookie is rejected afterwards.
func TestRouter_SessionLifecycle(t *testing.T) {
	h, deps := newTestRouter(t)

	deps.users.On("GetByEmail", mock.Anything, "user@example.com").
		Return(model.User{}, model.ErrNotFound).Once()
	deps.users.On("Create", mock.Anything, mock.Anything).
		Return(model.User{Email: "user@example.com"}, nil).Once()

	// Signup.
	signupRec := httptest.NewRecorder()
	h.ServeHTTP(signupRec, httptest.NewRequest(http.MethodPost, "/api/auth/signup",
		strings.NewReader(`{"email":"user@example.com","password":"password123"}`)))
	require.Equal(t, http.StatusCreated, signupRec.Code)

	sessionCookies := signupRec.Result().Cookies()
	require.NotEmpty(t, sessionCookies)

	// The cookie pair authenticates a read.
	deps.versions.On("CurrentVersion", mock.Anything, mock.Anything).Return(int64(0), nil).Once()
	meRec := httptest.NewRecorder()
	meReq := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	attachSession(meReq, sessionCookies, false)
	h.ServeHTTP(meRec, meReq)
	require.Equal(t, http.StatusOK, meRec.Code)

	var me struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.NewDecoder(meRec.Body).Decode(&me))
	assert.Equal(t, "user@example.com", me.Email)

	// A state-changing request without the CSRF header is forbidden even
	// though the session cookie is valid.
	deps.versions.On("CurrentVersion", mock.Anything, mock.Anything).Return(int64(0), nil).Once()
	forbiddenRec := httptest.NewRecorder()
	forbiddenReq := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	attachSession(forbiddenReq, sessionCookies, false)
	h.ServeHTTP(forbiddenRec, forbiddenReq)
	require.Equal(t, http.StatusForbidden, forbiddenRec.Code)

	// With the header echoed, logout succeeds and revokes the session.
	deps.versions.On("CurrentVersion", mock.Anything, mock.Anything).Return(int64(0), nil).Once()
	deps.revokedStore.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	logoutRec := httptest.NewRecorder()
	logoutReq := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	attachSession(logoutReq, sessionCookies, true)
	h.ServeHTTP(logoutRec, logoutReq)
	require.Equal(t, http.StatusNoContent, logoutRec.Code)

	// The revoked cookie no longer authenticates. The version store is not
	// consulted: the revocation check runs first.
	rejectedRec := httptest.NewRecorder()
	rejectedReq := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	attachSession(rejectedReq, sessionCookies, false)
	h.ServeHTTP(rejectedRec, rejectedReq)
	require.Equal(t, http.StatusUnauthorized, rejectedRec.Code)
	assert.JSONEq(t, `{"error":"invalid session"}`, rejectedRec.Body.String())
}

// TestRouter_BearerClientSkipsCSRF covers non-browser clients: the token in
// the Authorization header authenticates state-changing requests without the
// cookie/header pair.
func TestRouter_BearerClientSkipsCSRF(t *testing.T) {
	h, deps := newTestRouter(t)

	deps.users.On("GetByEmail", mock.Anything, "user@example.com").
		Return(model.User{}, model.ErrNotFound).Once()
	deps.users.On("Create", mock.Anything, mock.Anything).
		Return(model.User{Email: "user@example.com"}, nil).Once()

	signupRec := httptest.NewRecorder()
	h.ServeHTTP(signupRec, httptest.NewRequest(http.MethodPost, "/api/auth/signup",
		strings.NewReader(`{"email":"user@example.com","password":"password123"}`)))
	require.Equal(t, http.StatusCreated, signupRec.Code)

	var rawToken string
	for _, c := range signupRec.Result().Cookies() {
		if c.Name == cookie.SessionName {
			rawToken = c.Value
		}
	}
	require.NotEmpty(t, rawToken)

	deps.versions.On("CurrentVersion", mock.Anything, mock.Anything).Return(int64(0), nil).Once()
	deps.versions.On("InvalidateAll", mock.Anything, mock.Anything).Return(int64(1), nil).Once()

	logoutAllRec := httptest.NewRecorder()
	logoutAllReq := httptest.NewRequest(http.MethodPost, "/api/auth/logout-all", nil)
	logoutAllReq.Header.Set("Authorization", "Bearer "+rawToken)
	h.ServeHTTP(logoutAllRec, logoutAllReq)

	require.Equal(t, http.StatusNoContent, logoutAllRec.Code)
}

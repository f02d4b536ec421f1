package cookie

import (
	"net/http"
	"time"
)

// Cookie names on the wire.
const (
	SessionName = "session"
	CSRFName    = "csrf"
)

// Manager constructs and clears the session and CSRF cookies with one
// consistent attribute set. Clearing reuses the same attributes because
// browsers only drop a cookie when they match.
type Manager struct {
	secure bool
	maxAge time.Duration
}

// NewManager creates a cookie manager. secure toggles the Secure attribute
// (off only for local plain-HTTP development); maxAge mirrors the session
// token lifetime.
func NewManager(secure bool, maxAge time.Duration) *Manager {
	return &Manager{secure: secure, maxAge: maxAge}
}

// SetSession writes the httpOnly cookie carrying the signed session token.
func (m *Manager) SetSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, m.build(SessionName, token, true, int(m.maxAge.Seconds())))
}

// SetCSRF writes the script-readable cookie carrying the CSRF value. It is
// identical to the session cookie except for httpOnly: client code must be
// able to read it to echo it into the request header.
func (m *Manager) SetCSRF(w http.ResponseWriter, value string) {
	http.SetCookie(w, m.build(CSRFName, value, false, int(m.maxAge.Seconds())))
}

// ClearSession expires the session cookie.
func (m *Manager) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, m.build(SessionName, "", true, -1))
}

// ClearCSRF expires the CSRF cookie.
func (m *Manager) ClearCSRF(w http.ResponseWriter) {
	http.SetCookie(w, m.build(CSRFName, "", false, -1))
}

// Session reads the raw session token from the request cookie.
func (m *Manager) Session(r *http.Request) (string, bool) {
	return read(r, SessionName)
}

// CSRF reads the CSRF value from the request cookie.
func (m *Manager) CSRF(r *http.Request) (string, bool) {
	return read(r, CSRFName)
}

func (m *Manager) build(name, value string, httpOnly bool, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: httpOnly,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func read(r *http.Request, name string) (string, bool) {
	c, err := r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

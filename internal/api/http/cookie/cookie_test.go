package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestManager_SetSession(t *testing.T) {
	m := NewManager(true, 7*24*time.Hour)
	w := httptest.NewRecorder()

	m.SetSession(w, "signed-token")

	c := findCookie(t, w, SessionName)
	assert.Equal(t, "signed-token", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 604800, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
}

func TestManager_SetCSRF(t *testing.T) {
	m := NewManager(true, 7*24*time.Hour)
	w := httptest.NewRecorder()

	m.SetCSRF(w, "csrf-value")

	c := findCookie(t, w, CSRFName)
	assert.Equal(t, "csrf-value", c.Value)
	// Script must be able to read this one to echo it into the header.
	assert.False(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.Equal(t, 604800, c.MaxAge)
}

func TestManager_InsecureForLocalDev(t *testing.T) {
	m := NewManager(false, time.Hour)
	w := httptest.NewRecorder()

	m.SetSession(w, "signed-token")

	c := findCookie(t, w, SessionName)
	assert.False(t, c.Secure)
}

func TestManager_Clear(t *testing.T) {
	m := NewManager(true, time.Hour)
	w := httptest.NewRecorder()

	m.ClearSession(w)
	m.ClearCSRF(w)

	session := findCookie(t, w, SessionName)
	assert.Empty(t, session.Value)
	assert.Equal(t, -1, session.MaxAge)
	assert.Equal(t, "/", session.Path)
	assert.True(t, session.HttpOnly)
	assert.True(t, session.Secure)

	csrf := findCookie(t, w, CSRFName)
	assert.Empty(t, csrf.Value)
	assert.Equal(t, -1, csrf.MaxAge)
	assert.False(t, csrf.HttpOnly)
}

func TestManager_Read(t *testing.T) {
	m := NewManager(true, time.Hour)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: SessionName, Value: "signed-token"})
	r.AddCookie(&http.Cookie{Name: CSRFName, Value: "csrf-value"})

	token, ok := m.Session(r)
	require.True(t, ok)
	assert.Equal(t, "signed-token", token)

	value, ok := m.CSRF(r)
	require.True(t, ok)
	assert.Equal(t, "csrf-value", value)
}

func TestManager_Read_Missing(t *testing.T) {
	m := NewManager(true, time.Hour)
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := m.Session(r)
	assert.False(t, ok)

	_, ok = m.CSRF(r)
	assert.False(t, ok)
}

func TestManager_Read_EmptyValue(t *testing.T) {
	m := NewManager(true, time.Hour)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: SessionName, Value: ""})

	_, ok := m.Session(r)
	assert.False(t, ok)
}

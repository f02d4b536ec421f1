package token

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const csrfTokenBytes = 32

// NewCSRFToken returns a URL-safe random value for the double-submit cookie.
// The value is never stored server-side: validity is proven by the cookie and
// the request header carrying the same bytes.
func NewCSRFToken() (string, error) {
	buf := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

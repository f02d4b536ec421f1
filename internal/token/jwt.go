package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/JLawMcGraw/alchemix-server/internal/model"
)

// Claims represents session JWT claims carrying the user identity and the
// token version current at issuance.
type Claims struct {
	jwt.RegisteredClaims
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	TokenVersion int64     `json:"token_version"`
}

// JWT implements TokenCodec backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
}

// NewJWT creates a new JWT session codec with the provided secret key.
// The secret length is enforced at config load; the codec assumes it is sane.
func NewJWT(secretKey []byte) model.TokenCodec {
	return &JWT{secretKey: secretKey}
}

// SessionTTL is the fixed lifetime of a session token, mirrored by the
// cookie max-age.
const SessionTTL = 7 * 24 * time.Hour

// Issue creates a signed session token embedding the user's current token
// version and a fresh jti.
func (j *JWT) Issue(user model.User) (string, model.SessionClaims, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
		UserID:       user.ID,
		Email:        user.Email,
		TokenVersion: user.TokenVersion,
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secretKey)
	if err != nil {
		return "", model.SessionClaims{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, sessionClaims(claims), nil
}

// Verify validates the MAC and expiry and returns the embedded claims. A
// token without an exp claim is rejected outright: the codec never issues
// one, so it cannot be ours, and accepting it would create a session that
// never expires.
func (j *JWT) Verify(tokenString string) (model.SessionClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return model.SessionClaims{}, classifyParseError(err)
	}
	if !token.Valid {
		return model.SessionClaims{}, model.ErrBadSignature
	}

	return sessionClaims(*claims), nil
}

// ExtractID returns the jti without checking the signature. The revocation
// list is keyed by jti and consulted before the cryptographic check; nothing
// else from the unverified claims may be used.
func (j *JWT) ExtractID(tokenString string) (string, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return "", model.ErrMalformedToken
	}
	if claims.ID == "" {
		return "", model.ErrMalformedToken
	}
	return claims.ID, nil
}

func sessionClaims(c Claims) model.SessionClaims {
	sc := model.SessionClaims{
		UserID:       c.UserID,
		Email:        c.Email,
		TokenVersion: c.TokenVersion,
		JTI:          c.ID,
	}
	// iat and exp are optional registered claims; nil means absent.
	if c.IssuedAt != nil {
		sc.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		sc.ExpiresAt = c.ExpiresAt.Time
	}
	return sc
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return model.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return model.ErrBadSignature
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return model.ErrMalformedToken
	case errors.Is(err, jwt.ErrTokenMalformed):
		return model.ErrMalformedToken
	default:
		// Unknown signing methods and unverifiable tokens count as bad
		// signatures: the token cannot be trusted.
		return model.ErrBadSignature
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JLawMcGraw/alchemix-server/internal/logger"
	"github.com/JLawMcGraw/alchemix-server/internal/model"
	"github.com/JLawMcGraw/alchemix-server/internal/token"
)

// Session composes the token codec, the version store, and the revocation
// list into the single contract the HTTP layer authenticates against.
type Session struct {
	codec        model.TokenCodec
	versions     model.VersionStore
	revocations  *RevocationList
	storeTimeout time.Duration
	logger       *logger.Logger
}

func NewSession(
	codec model.TokenCodec,
	versions model.VersionStore,
	revocations *RevocationList,
	storeTimeout time.Duration,
	logger *logger.Logger,
) *Session {
	return &Session{
		codec:        codec,
		versions:     versions,
		revocations:  revocations,
		storeTimeout: storeTimeout,
		logger:       logger,
	}
}

// Issue signs a session token for the user and generates the paired CSRF
// value. The claims embed the user's current token version.
func (s *Session) Issue(ctx context.Context, user model.User) (model.IssuedSession, error) {
	signed, claims, err := s.codec.Issue(user)
	if err != nil {
		return model.IssuedSession{}, fmt.Errorf("failed to issue session: %w", err)
	}

	csrfValue, err := token.NewCSRFToken()
	if err != nil {
		return model.IssuedSession{}, fmt.Errorf("failed to generate csrf token: %w", err)
	}

	s.logger.Debug("session service: session issued",
		"user_id", user.ID,
		"jti", claims.JTI)

	return model.IssuedSession{
		Token:     signed,
		CSRFToken: csrfValue,
		Claims:    claims,
	}, nil
}

// Authenticate runs the full verification chain: revocation lookup first
// (cheapest), then signature and expiry, then the version comparison against
// the store. Every rejection maps to one of the model error kinds; the HTTP
// layer renders them all as the same unauthenticated response.
func (s *Session) Authenticate(ctx context.Context, rawToken string) (model.Identity, error) {
	if rawToken == "" {
		return model.Identity{}, model.ErrNoCredential
	}

	jti, err := s.codec.ExtractID(rawToken)
	if err != nil {
		return model.Identity{}, err
	}

	if s.revocations.IsRevoked(jti) {
		return model.Identity{}, model.ErrTokenRevoked
	}

	claims, err := s.codec.Verify(rawToken)
	if err != nil {
		return model.Identity{}, err
	}

	current, err := s.currentVersion(ctx, claims.UserID)
	if err != nil {
		return model.Identity{}, err
	}

	if claims.TokenVersion != current {
		return model.Identity{}, model.ErrVersionStale
	}

	return model.Identity{
		UserID:       claims.UserID,
		Email:        claims.Email,
		JTI:          claims.JTI,
		TokenVersion: claims.TokenVersion,
		ExpiresAt:    claims.ExpiresAt,
	}, nil
}

// RevokeSession logs out a single session by jti, leaving the user's other
// sessions untouched.
func (s *Session) RevokeSession(ctx context.Context, jti string, expiresAt time.Time) error {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.revocations.Revoke(storeCtx, jti, expiresAt); err != nil {
		s.logger.Error("session service: failed to revoke session",
			"jti", jti,
			"error", err.Error())
		return model.ErrStoreUnavailable
	}

	s.logger.Info("session service: session revoked", "jti", jti)
	return nil
}

// InvalidateAllSessions bumps the user's token version, rejecting every
// previously issued token regardless of its cryptographic validity.
func (s *Session) InvalidateAllSessions(ctx context.Context, userID uuid.UUID) (int64, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	version, err := s.versions.InvalidateAll(storeCtx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return 0, model.ErrNotFound
		}
		s.logger.Error("session service: failed to invalidate sessions",
			"user_id", userID,
			"error", err.Error())
		return 0, model.ErrStoreUnavailable
	}

	s.logger.Info("session service: all sessions invalidated",
		"user_id", userID,
		"token_version", version)
	return version, nil
}

// currentVersion reads the persisted counter under a bounded timeout. A
// missing user row is a hard rejection, not a default to zero: the token may
// belong to a deleted account. A store error fails closed.
func (s *Session) currentVersion(ctx context.Context, userID uuid.UUID) (int64, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	version, err := s.versions.CurrentVersion(storeCtx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return 0, model.ErrVersionStale
		}
		s.logger.Error("session service: version store unavailable",
			"user_id", userID,
			"error", err.Error())
		return 0, model.ErrStoreUnavailable
	}

	return version, nil
}

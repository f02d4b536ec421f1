package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/JLawMcGraw/alchemix-server/internal/logger"
	"github.com/JLawMcGraw/alchemix-server/internal/model"
)

// Auth implements the account flows that issue and tear down sessions:
// signup, login, logout, logout everywhere, password change, and account
// deletion.
type Auth struct {
	userStore model.UserStore
	sessions  *Session
	logger    *logger.Logger
}

func NewAuth(userStore model.UserStore, sessions *Session, logger *logger.Logger) *Auth {
	return &Auth{
		userStore: userStore,
		sessions:  sessions,
		logger:    logger,
	}
}

// Signup creates a user and issues their first session.
func (a *Auth) Signup(ctx context.Context, email, password string) (model.User, model.IssuedSession, error) {
	a.logger.Debug("auth service: starting signup", "email", email)

	existing, err := a.userStore.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.IssuedSession{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if existing.ID != uuid.Nil {
		a.logger.Info("auth service: email already taken", "email", email)
		return model.User{}, model.IssuedSession{}, model.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, model.IssuedSession{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		TokenVersion: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// Two concurrent signups can both pass the email check; the unique
		// constraint settles the race.
		if errors.Is(err, model.ErrEmailTaken) {
			a.logger.Info("auth service: email already taken", "email", email)
			return model.User{}, model.IssuedSession{}, model.ErrEmailTaken
		}
		a.logger.Error("auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.User{}, model.IssuedSession{}, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := a.sessions.Issue(ctx, user)
	if err != nil {
		return model.User{}, model.IssuedSession{}, err
	}

	a.logger.Info("auth service: signup completed", "user_id", user.ID)
	return user, session, nil
}

// Login verifies credentials and issues a session carrying the user's
// current token version.
func (a *Auth) Login(ctx context.Context, email, password string) (model.User, model.IssuedSession, error) {
	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.IssuedSession{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, model.IssuedSession{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		a.logger.Info("auth service: password mismatch", "user_id", user.ID)
		return model.User{}, model.IssuedSession{}, model.ErrInvalidCredentials
	}

	session, err := a.sessions.Issue(ctx, user)
	if err != nil {
		return model.User{}, model.IssuedSession{}, err
	}

	a.logger.Info("auth service: login completed", "user_id", user.ID)
	return user, session, nil
}

// Logout revokes the single session the request was authenticated with.
func (a *Auth) Logout(ctx context.Context, identity model.Identity) error {
	return a.sessions.RevokeSession(ctx, identity.JTI, identity.ExpiresAt)
}

// LogoutAll invalidates every session issued to the user.
func (a *Auth) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	_, err := a.sessions.InvalidateAllSessions(ctx, userID)
	return err
}

// ChangePassword updates the password hash, invalidates every existing
// session, and issues a fresh session carrying the new token version.
func (a *Auth) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) (model.IssuedSession, error) {
	user, err := a.userStore.GetByID(ctx, userID)
	if err != nil {
		return model.IssuedSession{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(currentPassword)); err != nil {
		return model.IssuedSession{}, model.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return model.IssuedSession{}, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.userStore.UpdatePassword(ctx, userID, hash); err != nil {
		return model.IssuedSession{}, fmt.Errorf("failed to update password: %w", err)
	}

	version, err := a.sessions.InvalidateAllSessions(ctx, userID)
	if err != nil {
		return model.IssuedSession{}, err
	}

	user.TokenVersion = version
	session, err := a.sessions.Issue(ctx, user)
	if err != nil {
		return model.IssuedSession{}, err
	}

	a.logger.Info("auth service: password changed", "user_id", userID)
	return session, nil
}

// DeleteAccount verifies the password, invalidates every session, and soft
// deletes the user. After deletion the version check rejects any leftover
// token: a missing user row is never treated as version zero.
func (a *Auth) DeleteAccount(ctx context.Context, userID uuid.UUID, password string) error {
	user, err := a.userStore.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return model.ErrInvalidCredentials
	}

	if _, err := a.sessions.InvalidateAllSessions(ctx, userID); err != nil {
		return err
	}

	if err := a.userStore.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	a.logger.Info("auth service: account deleted", "user_id", userID)
	return nil
}

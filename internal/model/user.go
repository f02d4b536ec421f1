package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash []byte) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// User represents a stored user with authentication material.
// TokenVersion starts at 0 and only ever grows; every session token carries
// the version current at issuance, so bumping it invalidates all of them.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash []byte
	TokenVersion int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

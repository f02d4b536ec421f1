//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/JLawMcGraw/alchemix-server/internal/model"
	repo "github.com/JLawMcGraw/alchemix-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "alchemix_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/alchemix_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newUser(email string) model.User {
	now := time.Now()
	return model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: []byte("$2a$10$hash"),
		TokenVersion: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	u := newUser("user@example.com")
	saved, err := ur.Create(ctx, u)
	require.NoError(t, err)
	require.Equal(t, u.ID, saved.ID)
	require.Equal(t, int64(0), saved.TokenVersion)

	byEmail, err := ur.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	byID, err := ur.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)

	_, err = ur.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)

	// The unique constraint on email maps to the sentinel, not a raw pg error.
	_, err = ur.Create(ctx, newUser(u.Email))
	require.ErrorIs(t, err, model.ErrEmailTaken)

	require.NoError(t, ur.UpdatePassword(ctx, u.ID, []byte("$2a$10$newhash")))
	require.ErrorIs(t, ur.UpdatePassword(ctx, uuid.New(), []byte("x")), model.ErrNotFound)

	require.NoError(t, ur.Delete(ctx, u.ID))

	// Soft-deleted users vanish from every read path.
	_, err = ur.GetByEmail(ctx, u.Email)
	require.ErrorIs(t, err, model.ErrNotFound)
	require.ErrorIs(t, ur.Delete(ctx, u.ID), model.ErrNotFound)
}

func TestUserRepository_TokenVersion(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	u := newUser("versions@example.com")
	_, err = ur.Create(ctx, u)
	require.NoError(t, err)

	version, err := ur.CurrentVersion(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), version)

	bumped, err := ur.InvalidateAll(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), bumped)

	bumped, err = ur.InvalidateAll(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), bumped)

	version, err = ur.CurrentVersion(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), version)

	_, err = ur.CurrentVersion(ctx, uuid.New())
	require.ErrorIs(t, err, model.ErrNotFound)

	// A deleted user's version is unreadable: the caller must reject, not
	// default to zero.
	require.NoError(t, ur.Delete(ctx, u.ID))
	_, err = ur.CurrentVersion(ctx, u.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
	_, err = ur.InvalidateAll(ctx, u.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestRevokedTokenRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	rr := repo.NewRevokedTokenRepository(conn)

	active := model.RevokedToken{
		JTI:       uuid.NewString(),
		ExpiresAt: time.Now().Add(time.Hour),
		RevokedAt: time.Now(),
	}
	expired := model.RevokedToken{
		JTI:       uuid.NewString(),
		ExpiresAt: time.Now().Add(-time.Hour),
		RevokedAt: time.Now().Add(-2 * time.Hour),
	}

	require.NoError(t, rr.Create(ctx, active))
	require.NoError(t, rr.Create(ctx, expired))

	// Revoking the same jti twice is a no-op, not an error.
	require.NoError(t, rr.Create(ctx, active))

	entries, err := rr.ListActive(ctx, time.Now())
	require.NoError(t, err)

	jtis := make(map[string]bool, len(entries))
	for _, e := range entries {
		jtis[e.JTI] = true
	}
	require.True(t, jtis[active.JTI])
	require.False(t, jtis[expired.JTI])

	deleted, err := rr.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	require.GreaterOrEqual(t, deleted, int64(1))

	entries, err = rr.ListActive(ctx, time.Now())
	require.NoError(t, err)
	for _, e := range entries {
		require.NotEqual(t, expired.JTI, e.JTI)
	}
}

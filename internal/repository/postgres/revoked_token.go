package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/JLawMcGraw/alchemix-server/internal/model"
)

var _ model.RevokedTokenStore = (*RevokedTokenRepository)(nil)

type RevokedTokenRepository struct {
	db *Connection
}

func NewRevokedTokenRepository(db *Connection) *RevokedTokenRepository {
	return &RevokedTokenRepository{db: db}
}

func (r *RevokedTokenRepository) Create(ctx context.Context, entry model.RevokedToken) error {
	const query = `
        INSERT INTO revoked_tokens (jti, expires_at, revoked_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (jti) DO NOTHING
    `

	revokedAt := entry.RevokedAt
	if revokedAt.IsZero() {
		revokedAt = time.Now()
	}

	if _, err := r.db.Exec(ctx, query, entry.JTI, entry.ExpiresAt, revokedAt); err != nil {
		return fmt.Errorf("failed to create revoked token: %w", err)
	}
	return nil
}

func (r *RevokedTokenRepository) ListActive(ctx context.Context, now time.Time) ([]model.RevokedToken, error) {
	const query = `
        SELECT jti, expires_at, revoked_at FROM revoked_tokens WHERE expires_at > $1
    `

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list revoked tokens: %w", err)
	}
	defer rows.Close()

	var entries []model.RevokedToken
	for rows.Next() {
		var entry model.RevokedToken
		if err := rows.Scan(&entry.JTI, &entry.ExpiresAt, &entry.RevokedAt); err != nil {
			return nil, fmt.Errorf("failed to scan revoked token: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read revoked tokens: %w", err)
	}

	return entries, nil
}

func (r *RevokedTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM revoked_tokens WHERE expires_at <= $1`

	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired revoked tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}

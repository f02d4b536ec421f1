package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/JLawMcGraw/alchemix-server/internal/logger"
	"github.com/JLawMcGraw/alchemix-server/internal/model"
)

// RevocationList answers "is this jti revoked" on every request without a
// store round trip. The persistent store is the source of truth; the map is a
// cache hydrated at startup, written through on every Revoke, and rebuilt on
// every sweep so entries revoked by another instance converge within one
// sweep interval.
type RevocationList struct {
	store  model.RevokedTokenStore
	logger *logger.Logger

	mu      sync.RWMutex
	revoked map[string]time.Time // jti -> expiry
}

func NewRevocationList(store model.RevokedTokenStore, logger *logger.Logger) *RevocationList {
	return &RevocationList{
		store:   store,
		logger:  logger,
		revoked: make(map[string]time.Time),
	}
}

// Hydrate loads all unexpired revocation entries from the store. It must
// complete before the server accepts traffic, otherwise a token revoked just
// before a restart could transiently be accepted again.
func (l *RevocationList) Hydrate(ctx context.Context) error {
	entries, err := l.store.ListActive(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to hydrate revocation list: %w", err)
	}

	revoked := make(map[string]time.Time, len(entries))
	for _, entry := range entries {
		revoked[entry.JTI] = entry.ExpiresAt
	}

	l.mu.Lock()
	l.revoked = revoked
	l.mu.Unlock()

	l.logger.Info("revocation list: hydrated", "entries", len(revoked))
	return nil
}

// Revoke persists a revocation entry and then mirrors it into the cache. The
// store write comes first: a failed insert must not leave a cache-only entry
// that would vanish on restart.
func (l *RevocationList) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	entry := model.RevokedToken{
		JTI:       jti,
		ExpiresAt: expiresAt,
		RevokedAt: time.Now(),
	}
	if err := l.store.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	l.mu.Lock()
	l.revoked[jti] = expiresAt
	l.mu.Unlock()

	return nil
}

// IsRevoked reports whether the jti has been individually logged out. The
// check is cache-only: hydration plus write-through keeps the map complete
// for this process, and the sweep rebuild bounds staleness across instances.
func (l *RevocationList) IsRevoked(jti string) bool {
	l.mu.RLock()
	_, ok := l.revoked[jti]
	l.mu.RUnlock()
	return ok
}

// Len returns the number of cached revocation entries.
func (l *RevocationList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.revoked)
}

// Sweep deletes expired entries from the store and rebuilds the cache from
// what remains. An un-swept expired entry causes no incorrect behavior, only
// wasted space: the token it names is already rejected by the expiry check.
func (l *RevocationList) Sweep(ctx context.Context) error {
	deleted, err := l.store.DeleteExpired(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to sweep revoked tokens: %w", err)
	}

	if err := l.Hydrate(ctx); err != nil {
		return err
	}

	l.logger.Debug("revocation list: sweep completed", "deleted", deleted)
	return nil
}

// Sweeper runs Sweep on a fixed cadence, independent of request traffic. It
// is owned by main: started after hydration, stopped by cancelling the
// context passed to Run.
type Sweeper struct {
	list     *RevocationList
	interval time.Duration
	timeout  time.Duration
	logger   *logger.Logger
}

func NewSweeper(list *RevocationList, interval, timeout time.Duration, logger *logger.Logger) *Sweeper {
	return &Sweeper{
		list:     list,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled, sweeping once per interval. Each sweep
// gets its own bounded timeout so a slow store cannot stall the loop past
// shutdown.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("revocation sweeper: stopped")
			return
		case <-ticker.C:
			sweepCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
			if err := s.list.Sweep(sweepCtx); err != nil {
				s.logger.Error("revocation sweeper: sweep failed", "error", err.Error())
			}
			cancel()
		}
	}
}

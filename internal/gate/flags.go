package gate

import (
	"context"
	"database/sql"
	"sync"

	"github.com/brewsterlabs/brewtrack/internal/store"
)

// FlagStore persists the per-session "verified" boolean. The flag is only
// ever set to true, so the write is idempotent and safe under reload races.
type FlagStore interface {
	Verified(ctx context.Context, sessionKey string) (bool, error)
	SetVerified(ctx context.Context, sessionKey string) error
}

type PGFlagStore struct {
	db *sql.DB
}

func NewPGFlagStore(db *sql.DB) *PGFlagStore {
	return &PGFlagStore{db: db}
}

func (s *PGFlagStore) Verified(ctx context.Context, sessionKey string) (bool, error) {
	ctx, cancel := store.WithTimeout(ctx)
	defer cancel()

	var verified bool
	err := s.db.QueryRowContext(ctx, `
		SELECT verified FROM gate_flags WHERE session_key = $1
	`, sessionKey).Scan(&verified)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, store.Classify(err)
	}

	return verified, nil
}

func (s *PGFlagStore) SetVerified(ctx context.Context, sessionKey string) error {
	ctx, cancel := store.WithTimeout(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO gate_flags (session_key, verified, updated_at)
		VALUES ($1, TRUE, now())
		ON CONFLICT (session_key) DO UPDATE SET verified = TRUE, updated_at = now()
	`, sessionKey)
	return store.Classify(err)
}

// MemFlagStore keeps flags in memory, for tests.
type MemFlagStore struct {
	mu    sync.Mutex
	flags map[string]bool
}

func NewMemFlagStore() *MemFlagStore {
	return &MemFlagStore{flags: make(map[string]bool)}
}

func (s *MemFlagStore) Verified(_ context.Context, sessionKey string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags[sessionKey], nil
}

func (s *MemFlagStore) SetVerified(_ context.Context, sessionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[sessionKey] = true
	return nil
}

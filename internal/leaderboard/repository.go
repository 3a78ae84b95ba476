package leaderboard

import (
	"context"
	"database/sql"

	"github.com/brewsterlabs/brewtrack/internal/domain"
	"github.com/brewsterlabs/brewtrack/internal/store"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// TopUsers returns at most n users ordered by total_cups descending. Ties
// break on created_at ascending (whoever reached the counter first stays
// ahead), then username, so the ordering is deterministic. Ranks are
// sequential 1-based positions.
func (r *UserRepository) TopUsers(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	ctx, cancel := store.WithTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT username, total_cups
		FROM users
		ORDER BY total_cups DESC, created_at ASC, username ASC
		LIMIT $1
	`, n)
	if err != nil {
		return nil, store.Classify(err)
	}
	defer func() { _ = rows.Close() }()

	entries := []domain.LeaderboardEntry{}
	for rows.Next() {
		var entry domain.LeaderboardEntry
		if err := rows.Scan(&entry.Username, &entry.TotalCups); err != nil {
			return nil, store.Classify(err)
		}
		entry.Rank = len(entries) + 1
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, store.Classify(err)
	}

	return entries, nil
}

// ReconcileCups forces total_cups back to the actual order count for the
// username. Idempotent: re-running it for the same user is a no-op once the
// counter matches. Returns true when a repair (or late creation) happened.
func (r *UserRepository) ReconcileCups(ctx context.Context, username string) (bool, error) {
	ctx, cancel := store.WithTimeout(ctx)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, total_cups, created_at)
		VALUES ($1, (SELECT COUNT(*) FROM orders WHERE username = $1), now())
		ON CONFLICT (username) DO UPDATE SET total_cups = EXCLUDED.total_cups
		WHERE users.total_cups IS DISTINCT FROM EXCLUDED.total_cups
	`, username)
	if err != nil {
		return false, store.Classify(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, store.Classify(err)
	}

	return affected > 0, nil
}

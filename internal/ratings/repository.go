package ratings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/brewsterlabs/brewtrack/internal/domain"
	"github.com/brewsterlabs/brewtrack/internal/store"
)

type RatingRepository struct {
	db *sql.DB
}

func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Submit verifies inside one transaction that the referenced order exists
// and belongs to the rating user, then inserts the rating. A second rating
// for the same (username, order) pair trips the unique constraint and comes
// back as domain.ErrConflict.
func (r *RatingRepository) Submit(ctx context.Context, rating *domain.Rating) error {
	ctx, cancel := store.WithTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Classify(err)
	}
	defer func() { _ = tx.Rollback() }()

	var owner string
	err = tx.QueryRowContext(ctx, `
		SELECT username FROM orders WHERE id = $1
	`, rating.OrderID).Scan(&owner)
	if err == sql.ErrNoRows {
		return fmt.Errorf("order %s: %w", rating.OrderID, domain.ErrNotFound)
	}
	if err != nil {
		return store.Classify(err)
	}
	if owner != rating.Username {
		return fmt.Errorf("order %s does not belong to %s: %w", rating.OrderID, rating.Username, domain.ErrNotFound)
	}

	rating.ID = uuid.New().String()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO ratings (id, username, order_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rating.ID, rating.Username, rating.OrderID, rating.Rating, rating.Comment, rating.CreatedAt)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return fmt.Errorf("order %s already rated: %w", rating.OrderID, domain.ErrConflict)
		}
		return store.Classify(err)
	}

	return store.Classify(tx.Commit())
}

// ListByUsername returns the user's ratings, newest first.
func (r *RatingRepository) ListByUsername(ctx context.Context, username string) ([]domain.Rating, error) {
	ctx, cancel := store.WithTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, order_id, rating, comment, created_at
		FROM ratings
		WHERE username = $1
		ORDER BY created_at DESC
	`, username)
	if err != nil {
		return nil, store.Classify(err)
	}
	defer func() { _ = rows.Close() }()

	ratings := []domain.Rating{}
	for rows.Next() {
		var rating domain.Rating
		if err := rows.Scan(&rating.ID, &rating.Username, &rating.OrderID, &rating.Rating, &rating.Comment, &rating.CreatedAt); err != nil {
			return nil, store.Classify(err)
		}
		ratings = append(ratings, rating)
	}

	if err := rows.Err(); err != nil {
		return nil, store.Classify(err)
	}

	return ratings, nil
}

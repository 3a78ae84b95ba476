package orders

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/brewsterlabs/brewtrack/internal/domain"
	"github.com/brewsterlabs/brewtrack/internal/store"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Place inserts the order and increments the owner's cup counter in a
// single transaction. The increment is an atomic upsert at the store level
// (INSERT ... ON CONFLICT DO UPDATE), never read-then-write, so concurrent
// orders for the same username cannot lose updates. A committed order
// always carries exactly one counter increment.
func (r *OrderRepository) Place(ctx context.Context, order *domain.Order) error {
	ctx, cancel := store.WithTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Classify(err)
	}
	defer func() { _ = tx.Rollback() }()

	order.ID = uuid.New().String()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, username, coffee_type, sugar, size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, order.ID, order.Username, order.CoffeeType, order.Sugar, order.Size, order.CreatedAt)
	if err != nil {
		return store.Classify(err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (username, total_cups, created_at)
		VALUES ($1, 1, $2)
		ON CONFLICT (username) DO UPDATE SET total_cups = users.total_cups + 1
	`, order.Username, order.CreatedAt)
	if err != nil {
		return store.Classify(err)
	}

	return store.Classify(tx.Commit())
}

// ListByUsername returns the user's orders, newest first.
func (r *OrderRepository) ListByUsername(ctx context.Context, username string) ([]domain.Order, error) {
	ctx, cancel := store.WithTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, coffee_type, sugar, size, created_at
		FROM orders
		WHERE username = $1
		ORDER BY created_at DESC
	`, username)
	if err != nil {
		return nil, store.Classify(err)
	}
	defer func() { _ = rows.Close() }()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.Username, &order.CoffeeType, &order.Sugar, &order.Size, &order.CreatedAt); err != nil {
			return nil, store.Classify(err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, store.Classify(err)
	}

	return orders, nil
}

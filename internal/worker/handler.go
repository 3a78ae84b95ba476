// Package worker holds the order.placed consumer logic: audit the
// order/counter invariant and keep the cached leaderboard fresh.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/brewsterlabs/brewtrack/internal/domain"
)

var meter = otel.Meter("worker")

// CupReconciler matches leaderboard.UserRepository.
type CupReconciler interface {
	ReconcileCups(ctx context.Context, username string) (bool, error)
}

// CacheInvalidator matches leaderboard.Cache.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// LeaderboardHandler processes order.placed events. The reconcile step is
// idempotent (it recounts from the orders table), so replayed or duplicate
// events cannot double-count; normally the counter already matches because
// the API writes both rows in one transaction, and a repair here means
// something outside that path touched the data.
type LeaderboardHandler struct {
	users    CupReconciler
	cache    CacheInvalidator
	logger   *slog.Logger
	repaired metric.Int64Counter
}

func NewLeaderboardHandler(users CupReconciler, cache CacheInvalidator, logger *slog.Logger) (*LeaderboardHandler, error) {
	repaired, err := meter.Int64Counter("leaderboard.counter_repairs",
		metric.WithDescription("Number of cup-counter drift repairs applied by the worker"),
	)
	if err != nil {
		return nil, err
	}

	return &LeaderboardHandler{
		users:    users,
		cache:    cache,
		logger:   logger,
		repaired: repaired,
	}, nil
}

func (h *LeaderboardHandler) Handle(ctx context.Context, payload []byte) error {
	var event domain.OrderPlacedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal order placed event: %w", err)
	}

	h.logger.Info("processing order placed event", "order_id", event.OrderID, "username", event.Username)

	changed, err := h.users.ReconcileCups(ctx, event.Username)
	if err != nil {
		return fmt.Errorf("reconcile cups for %s: %w", event.Username, err)
	}
	if changed {
		h.repaired.Add(ctx, 1)
		h.logger.Warn("cup counter drift repaired", "username", event.Username, "order_id", event.OrderID)
	}

	if err := h.cache.Invalidate(ctx); err != nil {
		h.logger.Error("failed to invalidate leaderboard cache", "error", err)
	}

	return nil
}

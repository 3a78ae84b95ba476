package leaderboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/brewsterlabs/brewtrack/internal/api"
	"github.com/brewsterlabs/brewtrack/internal/domain"
)

// TopN is how many users the leaderboard shows.
const TopN = 10

type UserStore interface {
	TopUsers(ctx context.Context, n int) ([]domain.LeaderboardEntry, error)
}

type Handler struct {
	repo   UserStore
	cache  *Cache
	logger *slog.Logger
}

func NewHandler(repo UserStore, cache *Cache, logger *slog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

type leaderboardResponse struct {
	Success     bool                      `json:"success"`
	Leaderboard []domain.LeaderboardEntry `json:"leaderboard"`
}

func (h *Handler) HandleTop(w http.ResponseWriter, r *http.Request) {
	if entries, ok := h.cache.Get(r.Context()); ok {
		api.WriteJSON(w, h.logger, http.StatusOK, leaderboardResponse{Success: true, Leaderboard: entries})
		return
	}

	entries, err := h.repo.TopUsers(r.Context(), TopN)
	if err != nil {
		h.logger.Error("failed to read leaderboard", "error", err)
		api.WriteError(w, h.logger, err)
		return
	}

	if err := h.cache.Set(r.Context(), entries); err != nil {
		h.logger.Error("failed to cache leaderboard", "error", err)
	}

	api.WriteJSON(w, h.logger, http.StatusOK, leaderboardResponse{Success: true, Leaderboard: entries})
}

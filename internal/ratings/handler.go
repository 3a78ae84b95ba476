package ratings

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/brewsterlabs/brewtrack/internal/api"
	"github.com/brewsterlabs/brewtrack/internal/domain"
)

type RatingStore interface {
	Submit(ctx context.Context, rating *domain.Rating) error
	ListByUsername(ctx context.Context, username string) ([]domain.Rating, error)
}

type Handler struct {
	repo   RatingStore
	logger *slog.Logger
}

func NewHandler(repo RatingStore, logger *slog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

type submitRatingRequest struct {
	Username string `json:"username"`
	OrderID  string `json:"orderId"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

type submitRatingResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Rating  *domain.Rating `json:"rating"`
}

func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, h.logger, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}

	rating := &domain.Rating{
		Username:  req.Username,
		OrderID:   req.OrderID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}

	if err := rating.Validate(); err != nil {
		api.WriteError(w, h.logger, err)
		return
	}

	if err := h.repo.Submit(r.Context(), rating); err != nil {
		h.logger.Error("failed to submit rating", "error", err, "username", rating.Username, "order_id", rating.OrderID)
		api.WriteError(w, h.logger, err)
		return
	}

	h.logger.Info("rating submitted", "rating_id", rating.ID, "order_id", rating.OrderID, "rating", rating.Rating)
	api.WriteJSON(w, h.logger, http.StatusCreated, submitRatingResponse{
		Success: true,
		Message: "Rating submitted!",
		Rating:  rating,
	})
}

type listRatingsResponse struct {
	Success bool            `json:"success"`
	Ratings []domain.Rating `json:"ratings"`
}

func (h *Handler) HandleListByUsername(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		api.WriteError(w, h.logger, &domain.ValidationError{Field: "username", Reason: "must not be empty"})
		return
	}

	ratings, err := h.repo.ListByUsername(r.Context(), username)
	if err != nil {
		h.logger.Error("failed to list ratings", "error", err, "username", username)
		api.WriteError(w, h.logger, err)
		return
	}

	api.WriteJSON(w, h.logger, http.StatusOK, listRatingsResponse{Success: true, Ratings: ratings})
}

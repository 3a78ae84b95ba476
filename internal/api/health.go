package api

import (
	"database/sql"
	"log/slog"
	"net/http"
)

type HealthHandler struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewHealthHandler(db *sql.DB, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		h.logger.Error("health check failed", "error", err)
		WriteJSON(w, h.logger, http.StatusServiceUnavailable, healthResponse{Status: "DOWN", Message: "database unreachable"})
		return
	}

	WriteJSON(w, h.logger, http.StatusOK, healthResponse{Status: "OK", Message: "Running!"})
}

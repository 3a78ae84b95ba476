// Package api carries the JSON response envelope shared by every handler:
// {success:true, ...} on success, {success:false, message} on failure, with
// the failure taxonomy mapped to status codes (validation 400, missing
// reference 404, duplicate 409, store trouble 503, anything else 500).
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/brewsterlabs/brewtrack/internal/domain"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, logger *slog.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, logger *slog.Logger, err error) {
	WriteJSON(w, logger, StatusFor(err), errorResponse{Success: false, Message: err.Error()})
}

func StatusFor(err error) int {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

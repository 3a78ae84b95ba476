package gate

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/brewsterlabs/brewtrack/internal/api"
	"github.com/brewsterlabs/brewtrack/internal/domain"
)

type Handler struct {
	registry *Registry
	logger   *slog.Logger
}

func NewHandler(registry *Registry, logger *slog.Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger,
	}
}

type sessionView struct {
	SessionKey string     `json:"sessionKey"`
	Mode       Mode       `json:"mode"`
	State      State      `json:"state"`
	PassCount  int        `json:"passCount"`
	Total      int        `json:"total"`
	Challenge  *Challenge `json:"challenge,omitempty"`
}

type sessionResponse struct {
	Success bool        `json:"success"`
	Session sessionView `json:"session"`
}

func viewOf(sessionKey string, g *Gate) sessionView {
	view := sessionView{
		SessionKey: sessionKey,
		Mode:       g.Mode(),
		State:      g.State(),
		PassCount:  g.PassCount(),
		Total:      g.Total(),
	}
	if challenge, ok := g.Current(); ok {
		view.Challenge = &challenge
	}
	return view
}

type startSessionRequest struct {
	SessionKey string `json:"sessionKey"`
	Mode       Mode   `json:"mode"`
}

func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, h.logger, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}
	if req.SessionKey == "" {
		api.WriteError(w, h.logger, &domain.ValidationError{Field: "sessionKey", Reason: "must not be empty"})
		return
	}

	g, err := h.registry.Start(r.Context(), req.SessionKey, req.Mode)
	if err != nil {
		h.logger.Error("failed to start gate session", "error", err, "session_key", req.SessionKey)
		api.WriteError(w, h.logger, err)
		return
	}

	h.logger.Info("gate session started", "session_key", req.SessionKey, "mode", g.Mode(), "state", g.State())
	api.WriteJSON(w, h.logger, http.StatusCreated, sessionResponse{Success: true, Session: viewOf(req.SessionKey, g)})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sessionKey := r.PathValue("sessionKey")

	g, err := h.registry.Get(sessionKey)
	if err != nil {
		api.WriteError(w, h.logger, err)
		return
	}

	api.WriteJSON(w, h.logger, http.StatusOK, sessionResponse{Success: true, Session: viewOf(sessionKey, g)})
}

func (h *Handler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	sessionKey := r.PathValue("sessionKey")

	var answer Answer
	if err := json.NewDecoder(r.Body).Decode(&answer); err != nil {
		api.WriteError(w, h.logger, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}

	g, err := h.registry.Submit(r.Context(), sessionKey, answer)
	if err != nil {
		h.logger.Error("failed to submit gate answer", "error", err, "session_key", sessionKey)
		api.WriteError(w, h.logger, err)
		return
	}

	h.logger.Info("gate answer processed", "session_key", sessionKey, "state", g.State(), "pass_count", g.PassCount())
	api.WriteJSON(w, h.logger, http.StatusOK, sessionResponse{Success: true, Session: viewOf(sessionKey, g)})
}

package orders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/brewsterlabs/brewtrack/internal/api"
	"github.com/brewsterlabs/brewtrack/internal/domain"
)

var meter = otel.Meter("orders")

// OrderStore is the slice of the repository the handler needs.
type OrderStore interface {
	Place(ctx context.Context, order *domain.Order) error
	ListByUsername(ctx context.Context, username string) ([]domain.Order, error)
}

// EventPublisher matches messaging.Producer.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type Handler struct {
	repo         OrderStore
	producer     EventPublisher
	logger       *slog.Logger
	ordersPlaced metric.Int64Counter
}

func NewHandler(repo OrderStore, producer EventPublisher, logger *slog.Logger) (*Handler, error) {
	ordersPlaced, err := meter.Int64Counter("orders.placed",
		metric.WithDescription("Number of successfully placed orders"),
	)
	if err != nil {
		return nil, err
	}

	return &Handler{
		repo:         repo,
		producer:     producer,
		logger:       logger,
		ordersPlaced: ordersPlaced,
	}, nil
}

type placeOrderRequest struct {
	Username   string            `json:"username"`
	CoffeeType domain.CoffeeType `json:"coffeeType"`
	Sugar      domain.SugarLevel `json:"sugar"`
	Size       domain.CupSize    `json:"size"`
}

type placeOrderResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Order   *domain.Order `json:"order"`
}

func (h *Handler) HandlePlace(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, h.logger, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}

	order := &domain.Order{
		Username:   req.Username,
		CoffeeType: req.CoffeeType,
		Sugar:      req.Sugar,
		Size:       req.Size,
		CreatedAt:  time.Now().UTC(),
	}

	if err := order.Validate(); err != nil {
		api.WriteError(w, h.logger, err)
		return
	}

	if err := h.repo.Place(r.Context(), order); err != nil {
		h.logger.Error("failed to place order", "error", err, "username", order.Username)
		api.WriteError(w, h.logger, err)
		return
	}

	h.ordersPlaced.Add(r.Context(), 1,
		metric.WithAttributes(attribute.String("coffee.type", string(order.CoffeeType))),
	)

	if h.producer != nil {
		event := domain.OrderPlacedEvent{
			OrderID:    order.ID,
			Username:   order.Username,
			CoffeeType: order.CoffeeType,
			Timestamp:  order.CreatedAt,
		}
		if err := h.producer.Publish(r.Context(), order.ID, event); err != nil {
			h.logger.Error("failed to publish order placed event", "error", err, "order_id", order.ID)
		}
	}

	h.logger.Info("order placed", "order_id", order.ID, "username", order.Username, "coffee_type", order.CoffeeType)
	api.WriteJSON(w, h.logger, http.StatusCreated, placeOrderResponse{
		Success: true,
		Message: "Order placed!",
		Order:   order,
	})
}

type listOrdersResponse struct {
	Success bool           `json:"success"`
	Orders  []domain.Order `json:"orders"`
}

func (h *Handler) HandleListByUsername(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		api.WriteError(w, h.logger, &domain.ValidationError{Field: "username", Reason: "must not be empty"})
		return
	}

	orders, err := h.repo.ListByUsername(r.Context(), username)
	if err != nil {
		h.logger.Error("failed to list orders", "error", err, "username", username)
		api.WriteError(w, h.logger, err)
		return
	}

	api.WriteJSON(w, h.logger, http.StatusOK, listOrdersResponse{Success: true, Orders: orders})
}

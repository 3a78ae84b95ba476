package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/brewsterlabs/brewtrack/internal/domain"
)

type stubOrderStore struct {
	placed    []*domain.Order
	listErr   error
	placeErr  error
	listItems []domain.Order
}

func (s *stubOrderStore) Place(_ context.Context, order *domain.Order) error {
	if s.placeErr != nil {
		return s.placeErr
	}
	order.ID = fmt.Sprintf("order-%d", len(s.placed)+1)
	s.placed = append(s.placed, order)
	return nil
}

func (s *stubOrderStore) ListByUsername(_ context.Context, _ string) ([]domain.Order, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listItems, nil
}

type stubPublisher struct {
	keys []string
}

func (p *stubPublisher) Publish(_ context.Context, key string, _ any) error {
	p.keys = append(p.keys, key)
	return nil
}

func newTestHandler(t *testing.T, repo OrderStore, producer EventPublisher) *Handler {
	t.Helper()
	h, err := NewHandler(repo, producer, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("failed to create handler: %v", err)
	}
	return h
}

func TestHandlePlace(t *testing.T) {
	t.Run("places a valid order and publishes the event", func(t *testing.T) {
		repo := &stubOrderStore{}
		producer := &stubPublisher{}
		handler := newTestHandler(t, repo, producer)

		body := `{"username":"alice","coffeeType":"Latte","sugar":"Medium","size":"Large"}`
		req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandlePlace(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp placeOrderResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if !resp.Success {
			t.Error("expected success=true")
		}
		if resp.Order == nil || resp.Order.ID == "" {
			t.Fatal("expected order with assigned id")
		}
		if resp.Order.Username != "alice" {
			t.Errorf("expected username alice, got %s", resp.Order.Username)
		}
		if resp.Order.CreatedAt.IsZero() {
			t.Error("expected createdAt to be set")
		}

		if len(producer.keys) != 1 || producer.keys[0] != resp.Order.ID {
			t.Errorf("expected one published event keyed by order id, got %v", producer.keys)
		}
	})

	t.Run("rejects unknown coffee type before any write", func(t *testing.T) {
		repo := &stubOrderStore{}
		handler := newTestHandler(t, repo, nil)

		body := `{"username":"alice","coffeeType":"Tea","sugar":"Medium","size":"Large"}`
		req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandlePlace(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
		if len(repo.placed) != 0 {
			t.Error("store must not be touched on validation failure")
		}
	})

	t.Run("rejects empty username", func(t *testing.T) {
		repo := &stubOrderStore{}
		handler := newTestHandler(t, repo, nil)

		body := `{"username":"","coffeeType":"Latte","sugar":"None","size":"Small"}`
		req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandlePlace(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
		if len(repo.placed) != 0 {
			t.Error("store must not be touched on validation failure")
		}
	})

	t.Run("maps store unavailability to 503", func(t *testing.T) {
		repo := &stubOrderStore{placeErr: fmt.Errorf("dial: %w", domain.ErrStoreUnavailable)}
		handler := newTestHandler(t, repo, nil)

		body := `{"username":"alice","coffeeType":"Latte","sugar":"Medium","size":"Large"}`
		req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandlePlace(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected status 503, got %d", rec.Code)
		}

		var resp map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp["success"] != false {
			t.Error("expected success=false")
		}
	})

	t.Run("accepts every enumerated option", func(t *testing.T) {
		repo := &stubOrderStore{}
		handler := newTestHandler(t, repo, nil)

		for _, coffee := range []string{"Espresso", "Latte", "Cappuccino", "Americano", "Mocha", "Cold Brew", "Flat White"} {
			body := fmt.Sprintf(`{"username":"alice","coffeeType":"%s","sugar":"None","size":"Small"}`, coffee)
			req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
			rec := httptest.NewRecorder()

			handler.HandlePlace(rec, req)

			if rec.Code != http.StatusCreated {
				t.Errorf("coffee type %q: expected 201, got %d", coffee, rec.Code)
			}
		}
	})
}

func TestHandleListByUsername(t *testing.T) {
	t.Run("returns the user's orders", func(t *testing.T) {
		now := time.Now().UTC()
		repo := &stubOrderStore{listItems: []domain.Order{
			{ID: "o2", Username: "alice", CoffeeType: domain.CoffeeMocha, Sugar: domain.SugarExtra, Size: domain.SizeSmall, CreatedAt: now},
			{ID: "o1", Username: "alice", CoffeeType: domain.CoffeeLatte, Sugar: domain.SugarNone, Size: domain.SizeLarge, CreatedAt: now.Add(-time.Hour)},
		}}
		handler := newTestHandler(t, repo, nil)

		mux := http.NewServeMux()
		mux.HandleFunc("GET /orders/{username}", handler.HandleListByUsername)

		req := httptest.NewRequest(http.MethodGet, "/orders/alice", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}

		var resp listOrdersResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(resp.Orders) != 2 {
			t.Fatalf("expected 2 orders, got %d", len(resp.Orders))
		}
		if resp.Orders[0].ID != "o2" {
			t.Errorf("expected newest order first, got %s", resp.Orders[0].ID)
		}
	})

	t.Run("maps store failure to 503", func(t *testing.T) {
		repo := &stubOrderStore{listErr: fmt.Errorf("timeout: %w", domain.ErrStoreUnavailable)}
		handler := newTestHandler(t, repo, nil)

		mux := http.NewServeMux()
		mux.HandleFunc("GET /orders/{username}", handler.HandleListByUsername)

		req := httptest.NewRequest(http.MethodGet, "/orders/alice", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected status 503, got %d", rec.Code)
		}
	})
}

package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brewsterlabs/brewtrack/internal/domain"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &domain.ValidationError{Field: "rating", Reason: "out of range"}, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("submit: %w", &domain.ValidationError{Field: "size", Reason: "unknown"}), http.StatusBadRequest},
		{"not found", fmt.Errorf("order o1: %w", domain.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("already rated: %w", domain.ErrConflict), http.StatusConflict},
		{"store unavailable", fmt.Errorf("dial tcp: %w", domain.ErrStoreUnavailable), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusFor(tc.err))
		})
	}
}

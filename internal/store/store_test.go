package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/brewsterlabs/brewtrack/internal/domain"
)

func TestClassify(t *testing.T) {
	assert.NoError(t, Classify(nil))

	err := Classify(context.DeadlineExceeded)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	err = Classify(fmt.Errorf("query: %w", context.DeadlineExceeded))
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	plain := errors.New("syntax error")
	assert.Equal(t, plain, Classify(plain))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("nope")))
}

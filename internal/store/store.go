// Package store holds the small shared pieces of the persistence layer:
// the per-call timeout every repository query is bounded by, and the
// mapping from driver errors to the domain failure taxonomy.
package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/lib/pq"

	"github.com/brewsterlabs/brewtrack/internal/domain"
)

// Timeout bounds every individual persistence call. An operation that
// exceeds it fails as store-unavailable instead of hanging.
const Timeout = 5 * time.Second

func WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, Timeout)
}

// Classify maps driver-level failures onto domain.ErrStoreUnavailable so
// handlers can answer 503 and clients know the call is retryable. Other
// errors pass through untouched.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, driver.ErrBadConn),
		errors.As(err, &netErr):
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return err
}

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

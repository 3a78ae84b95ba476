package domain

import "time"

// OrderPlacedEvent is published to the order.placed topic after the order
// and its counter increment commit. Keyed by OrderID so consumers can
// process it idempotently.
type OrderPlacedEvent struct {
	OrderID    string     `json:"order_id"`
	Username   string     `json:"username"`
	CoffeeType CoffeeType `json:"coffee_type"`
	Timestamp  time.Time  `json:"timestamp"`
}

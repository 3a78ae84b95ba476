package domain

import "time"

const MaxCommentLength = 500

// Rating references an Order by id. The write path verifies the order
// exists and belongs to the rating user, and at most one rating per
// (username, order) pair is allowed.
type Rating struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	OrderID   string    `json:"orderId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *Rating) Validate() error {
	if r.Username == "" {
		return &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if r.OrderID == "" {
		return &ValidationError{Field: "orderId", Reason: "must not be empty"}
	}
	if r.Rating < 1 || r.Rating > 5 {
		return &ValidationError{Field: "rating", Reason: "must be an integer between 1 and 5"}
	}
	if len(r.Comment) > MaxCommentLength {
		return &ValidationError{Field: "comment", Reason: "must be at most 500 characters"}
	}
	return nil
}

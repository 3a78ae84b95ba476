package domain

import "time"

// User is created implicitly on a player's first order and never deleted.
// TotalCups tracks the lifetime number of orders placed under the username.
type User struct {
	Username  string    `json:"username"`
	TotalCups int       `json:"totalCups"`
	CreatedAt time.Time `json:"createdAt"`
}

// LeaderboardEntry is a 1-based position in the ranked view over the user
// counters. Ties get sequential ranks, not a shared dense rank.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	Username  string `json:"username"`
	TotalCups int    `json:"totalCups"`
}

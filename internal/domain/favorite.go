package domain

import "time"

// Favorite marks a game as saved by a user, unique per (user, game).
type Favorite struct {
	UserID    string    `json:"-"`
	GameID    string    `json:"gameId"`
	GameTitle string    `json:"gameTitle,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

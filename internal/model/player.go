package model

import "time"

// PlayerID uniquely identifies the local player profile
type PlayerID string

// Player is the local player profile. A node stores at most one player
// record, under a single fixed storage key.
type Player struct {
	ID        PlayerID  `json:"id"`
	Name      string    `json:"name"`
	OpenCount int       `json:"open_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package response

import (
	"time"

	"github.com/pdlabs/pdgame/internal/model"
	"github.com/pdlabs/pdgame/internal/services/connection"
)

// Player represents the player record in API responses
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OpenCount int       `json:"open_count"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		ID:        string(p.ID),
		Name:      p.Name,
		OpenCount: p.OpenCount,
		CreatedAt: p.CreatedAt,
	}
}

// RegisterPlayerResponse is the response for registering the player
type RegisterPlayerResponse struct {
	ID string `json:"id"`
}

// Connection represents a connection record
type Connection struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Status        string    `json:"status"`
	InitiatedByMe bool      `json:"initiated_by_me"`
	CreatedAt     time.Time `json:"created_at"`
}

// ConnectionFromModel converts model.Connection
func ConnectionFromModel(c model.Connection) Connection {
	return Connection{
		ID:            string(c.ID),
		Name:          c.Name,
		Status:        string(c.Status),
		InitiatedByMe: c.InitiatedByMe,
		CreatedAt:     c.CreatedAt,
	}
}

// ConnectionList wraps a list of connections
type ConnectionList struct {
	Connections []Connection `json:"connections"`
}

// ConnectionListFromModel converts a slice of model.Connection
func ConnectionListFromModel(conns []model.Connection) ConnectionList {
	out := make([]Connection, len(conns))
	for i, c := range conns {
		out[i] = ConnectionFromModel(c)
	}
	return ConnectionList{Connections: out}
}

// Invite is the response for generating an invite link
type Invite struct {
	Connection Connection `json:"connection"`
	URL        string     `json:"url"`
}

// InviteFromModel converts connection.Invite
func InviteFromModel(inv connection.Invite) Invite {
	return Invite{
		Connection: ConnectionFromModel(inv.Connection),
		URL:        inv.URL,
	}
}

// Theme is the response for theme endpoints
type Theme struct {
	Theme string `json:"theme"`
}

// Round represents a played round
type Round struct {
	ID           string    `json:"id"`
	ConnectionID string    `json:"connection_id"`
	MyMove       string    `json:"my_move"`
	TheirMove    string    `json:"their_move"`
	MyScore      int       `json:"my_score"`
	TheirScore   int       `json:"their_score"`
	PlayedAt     time.Time `json:"played_at"`
}

// RoundFromModel converts model.Round
func RoundFromModel(r model.Round) Round {
	return Round{
		ID:           string(r.ID),
		ConnectionID: string(r.ConnectionID),
		MyMove:       string(r.MyMove),
		TheirMove:    string(r.TheirMove),
		MyScore:      r.MyScore,
		TheirScore:   r.TheirScore,
		PlayedAt:     r.PlayedAt,
	}
}

// RoundList wraps round history
type RoundList struct {
	Rounds []Round `json:"rounds"`
}

// RoundListFromModel converts a slice of model.Round
func RoundListFromModel(rounds []model.Round) RoundList {
	out := make([]Round, len(rounds))
	for i, r := range rounds {
		out[i] = RoundFromModel(r)
	}
	return RoundList{Rounds: out}
}

package model

import "time"

// ConnectionID uniquely identifies a friend connection. The id is minted
// by whichever side generates the invite and shared through the invite
// link, so both sides store the connection under the same id.
type ConnectionID string

// ConnectionStatus is the lifecycle state of a connection
type ConnectionStatus string

const (
	ConnectionPending ConnectionStatus = "pending"
	ConnectionActive  ConnectionStatus = "active"
)

// ValidConnectionStatus reports whether s is one of the enumerated states
func ValidConnectionStatus(s ConnectionStatus) bool {
	return s == ConnectionPending || s == ConnectionActive
}

// Connection is one entry in the friend connection list
type Connection struct {
	ID            ConnectionID     `json:"id"`
	Name          string           `json:"name"`
	Status        ConnectionStatus `json:"status"`
	InitiatedByMe bool             `json:"initiated_by_me"`
	CreatedAt     time.Time        `json:"created_at"`
}

// Valid reports whether the record has the expected shape
func (c Connection) Valid() bool {
	return c.ID != "" && c.Name != "" && ValidConnectionStatus(c.Status)
}

package ws

import "encoding/json"

// Envelope is the wire format for every message in both directions.
// Requests carry a request id; the response echoes it. Push events have
// no request id.
type Envelope struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}

// Request types, client to server
const (
	TypeGetConnections   = "get_connections"
	TypeGenerateInvite   = "generate_invite"
	TypeAcceptConnection = "accept_connection"
	TypeRegisterIncoming = "register_incoming"
	TypeDeleteConnection = "delete_connection"
)

// Event types, server to client
const (
	TypeConnectionCreated = "connection_created"
	TypeStatusUpdated     = "status_updated"
	TypeConnectionsList   = "connections_list"
	TypeError             = "error"
)

// GenerateInvitePayload is the data for generate_invite requests
type GenerateInvitePayload struct {
	FriendName string `json:"friend_name"`
}

// ConnectionRefPayload is the data for requests addressing one connection
type ConnectionRefPayload struct {
	ID string `json:"id"`
}

// RegisterIncomingPayload is the data for register_incoming requests
type RegisterIncomingPayload struct {
	ID         string `json:"id"`
	FriendName string `json:"friend_name"`
}

// ErrorPayload is the data for error envelopes
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// mustMarshal marshals data for an envelope; payload types here cannot
// fail to marshal
func mustMarshal(data any) json.RawMessage {
	b, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	return b
}

// NewEvent builds a push event envelope
func NewEvent(eventType string, data any) Envelope {
	return Envelope{Type: eventType, Data: mustMarshal(data)}
}

// NewResponse builds a response envelope echoing the request id
func NewResponse(eventType, requestID string, data any) Envelope {
	return Envelope{Type: eventType, Data: mustMarshal(data), RequestID: requestID}
}

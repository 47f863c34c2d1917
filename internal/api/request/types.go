package request

// RegisterPlayerRequest is the request body for registering the player
type RegisterPlayerRequest struct {
	Name string `json:"name"`
}

// RenamePlayerRequest is the request body for renaming the player
type RenamePlayerRequest struct {
	Name string `json:"name"`
}

// GenerateInviteRequest is the request body for generating an invite link
type GenerateInviteRequest struct {
	FriendName string `json:"friend_name"`
}

// RegisterIncomingRequest is the request body for registering a received
// invite. Either the raw id or the full invite URL may be supplied.
type RegisterIncomingRequest struct {
	ID         string `json:"id,omitempty"`
	InviteURL  string `json:"invite_url,omitempty"`
	FriendName string `json:"friend_name"`
}

// SetThemeRequest is the request body for setting the theme
type SetThemeRequest struct {
	Theme string `json:"theme"`
}

// PlayRoundRequest is the request body for playing a round
type PlayRoundRequest struct {
	ConnectionID string `json:"connection_id"`
	MyMove       string `json:"my_move"`
	TheirMove    string `json:"their_move"`
}

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case RegisterResult:
		fmt.Printf("Registered player %s\n", v.ID)
	case Connection:
		o.printConnection(v)
	case ConnectionList:
		o.printConnectionList(v)
	case Invite:
		o.printInvite(v)
	case ThemeResult:
		fmt.Printf("Theme: %s\n", v.Theme)
	case Round:
		o.printRound(v)
	case RoundList:
		o.printRoundList(v)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OpenCount int       `json:"open_count"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterResult response type
type RegisterResult struct {
	ID string `json:"id"`
}

// Connection response type
type Connection struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Status        string    `json:"status"`
	InitiatedByMe bool      `json:"initiated_by_me"`
	CreatedAt     time.Time `json:"created_at"`
}

// ConnectionList response type
type ConnectionList struct {
	Connections []Connection `json:"connections"`
}

// Invite response type
type Invite struct {
	Connection Connection `json:"connection"`
	URL        string     `json:"url"`
}

// ThemeResult response type
type ThemeResult struct {
	Theme string `json:"theme"`
}

// Round response type
type Round struct {
	ID           string    `json:"id"`
	ConnectionID string    `json:"connection_id"`
	MyMove       string    `json:"my_move"`
	TheirMove    string    `json:"their_move"`
	MyScore      int       `json:"my_score"`
	TheirScore   int       `json:"their_score"`
	PlayedAt     time.Time `json:"played_at"`
}

// RoundList response type
type RoundList struct {
	Rounds []Round `json:"rounds"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.Name, p.ID)
	fmt.Printf("Opened: %d times\n", p.OpenCount)
}

func (o *Output) printConnection(c Connection) {
	direction := "incoming"
	if c.InitiatedByMe {
		direction = "outgoing"
	}
	fmt.Printf("Connection: %s (%s)\n", c.Name, c.ID)
	fmt.Printf("Status: %s (%s)\n", c.Status, direction)
	fmt.Printf("Created: %s\n", c.CreatedAt.Format(time.RFC3339))
}

func (o *Output) printConnectionList(l ConnectionList) {
	if len(l.Connections) == 0 {
		fmt.Println("No connections")
		return
	}
	fmt.Printf("Connections (%d):\n", len(l.Connections))
	for _, c := range l.Connections {
		marker := "<-"
		if c.InitiatedByMe {
			marker = "->"
		}
		fmt.Printf("  %s %s (%s) - %s\n", marker, c.Name, c.ID, c.Status)
	}
}

func (o *Output) printInvite(inv Invite) {
	fmt.Printf("Invite for %s created\n", inv.Connection.Name)
	fmt.Printf("Share this link: %s\n", inv.URL)
}

func (o *Output) printRound(r Round) {
	fmt.Printf("Round vs %s: you played %s, they played %s\n", r.ConnectionID, r.MyMove, r.TheirMove)
	fmt.Printf("Score: you %d, them %d\n", r.MyScore, r.TheirScore)
}

func (o *Output) printRoundList(l RoundList) {
	if len(l.Rounds) == 0 {
		fmt.Println("No rounds played")
		return
	}
	fmt.Printf("Rounds (%d):\n", len(l.Rounds))
	for _, r := range l.Rounds {
		fmt.Printf("  %s: %s vs %s -> %d/%d\n", r.PlayedAt.Format(time.RFC3339), r.MyMove, r.TheirMove, r.MyScore, r.TheirScore)
	}
}

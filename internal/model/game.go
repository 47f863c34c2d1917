package model

import "time"

// Move is a single Prisoner's Dilemma choice
type Move string

const (
	MoveCooperate Move = "cooperate"
	MoveDefect    Move = "defect"
)

// ValidMove reports whether m is one of the two enumerated moves
func ValidMove(m Move) bool {
	return m == MoveCooperate || m == MoveDefect
}

// Classic payoff values: temptation, reward, punishment, sucker
const (
	PayoffTemptation = 5
	PayoffReward     = 3
	PayoffPunishment = 1
	PayoffSucker     = 0
)

// Payoff returns the scores for both players given their moves
func Payoff(mine, theirs Move) (myScore, theirScore int) {
	switch {
	case mine == MoveCooperate && theirs == MoveCooperate:
		return PayoffReward, PayoffReward
	case mine == MoveCooperate && theirs == MoveDefect:
		return PayoffSucker, PayoffTemptation
	case mine == MoveDefect && theirs == MoveCooperate:
		return PayoffTemptation, PayoffSucker
	default:
		return PayoffPunishment, PayoffPunishment
	}
}

// RoundID identifies a recorded game round
type RoundID string

// Round is the recorded outcome of a single game against a connection
type Round struct {
	ID           RoundID      `json:"id"`
	ConnectionID ConnectionID `json:"connection_id"`
	MyMove       Move         `json:"my_move"`
	TheirMove    Move         `json:"their_move"`
	MyScore      int          `json:"my_score"`
	TheirScore   int          `json:"their_score"`
	PlayedAt     time.Time    `json:"played_at"`
}

// Valid reports whether the record has the expected shape
func (r Round) Valid() bool {
	return r.ID != "" && r.ConnectionID != "" && ValidMove(r.MyMove) && ValidMove(r.TheirMove)
}

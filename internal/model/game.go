package model

import "time"

// BoardStatus is the phase a board is in
type BoardStatus string

const (
	StatusPlaying  BoardStatus = "playing"   // At least one direction can move
	StatusGameOver BoardStatus = "game_over" // No direction can move
)

// SessionID identifies one play session of the controller
type SessionID string

// GameSummary is a lightweight record of a play session
type GameSummary struct {
	ID        SessionID
	Status    BoardStatus
	Score     int
	MaxTile   int
	Moves     int // Successful moves, undone moves included
	Undos     int
	StartedAt time.Time
	Duration  time.Duration
}

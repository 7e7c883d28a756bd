package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventMoved        EventType = "moved"
	EventMoveBlocked  EventType = "move_blocked"
	EventTileSpawned  EventType = "tile_spawned"
	EventUndone       EventType = "undone"
	EventUndoSkipped  EventType = "undo_skipped"
	EventRotated      EventType = "rotated"
	EventSaved        EventType = "saved"
	EventSaveFailed   EventType = "save_failed"
	EventGameOver     EventType = "game_over"
	EventInputIgnored EventType = "input_ignored"
)

// Event describes one thing that happened while handling a player input
type Event struct {
	Type      EventType
	Timestamp time.Time
	Payload   any // Type-specific data
}

// MovedPayload contains data for moved and move_blocked events
type MovedPayload struct {
	Direction  Direction `json:"direction"`
	ScoreDelta int       `json:"score_delta"`
}

// TileSpawnedPayload contains data for tile_spawned events
type TileSpawnedPayload struct {
	Position Position `json:"position"`
	Value    int      `json:"value"`
}

// RotatedPayload contains data for rotated events
type RotatedPayload struct {
	Clockwise bool `json:"clockwise"`
}

// SavedPayload contains data for saved and save_failed events
type SavedPayload struct {
	Name  string `json:"name"`
	Error string `json:"error,omitempty"`
}

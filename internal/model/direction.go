package model

import (
	"fmt"
	"strings"
)

// Direction is one of the four move directions
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// AllDirections lists every direction in a fixed order
var AllDirections = []Direction{Up, Down, Left, Right}

// Edge is the end of a line that tiles compact toward
type Edge int

const (
	EdgeStart Edge = iota // toward index 0
	EdgeEnd               // toward index N-1
)

// Orientation is everything a move needs to know about its direction.
// Rotated moves are applied by turning the grid counter-clockwise,
// compacting rows, then turning it back clockwise.
type Orientation struct {
	Rotated bool
	Toward  Edge
}

var orientations = [...]Orientation{
	Up:    {Rotated: true, Toward: EdgeStart},
	Down:  {Rotated: true, Toward: EdgeEnd},
	Left:  {Rotated: false, Toward: EdgeStart},
	Right: {Rotated: false, Toward: EdgeEnd},
}

var directionNames = [...]string{
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
}

// IsValid reports whether d is one of the four directions
func (d Direction) IsValid() bool {
	return d >= Up && d <= Right
}

// Orientation returns the rotation parameters for d
func (d Direction) Orientation() Orientation {
	if !d.IsValid() {
		return Orientation{}
	}
	return orientations[d]
}

func (d Direction) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// MarshalText implements encoding.TextMarshaler
func (d Direction) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, ErrInvalidDirection
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection parses a direction name, case-insensitively
func ParseDirection(s string) (Direction, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d, n := range directionNames {
		if n == name {
			return Direction(d), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

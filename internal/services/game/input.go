package game

import (
	"fmt"
	"strings"

	"github.com/mcoot/merge2048/internal/model"
)

// Action is what a player input asks the controller to do
type Action string

const (
	ActionMove   Action = "move"
	ActionUndo   Action = "undo"
	ActionRotate Action = "rotate"
	ActionSave   Action = "save"
	ActionQuit   Action = "quit"
)

// Input is a single player input
type Input struct {
	Action    Action
	Direction model.Direction // ActionMove only
	Clockwise bool            // ActionRotate only
}

func MoveInput(d model.Direction) Input { return Input{Action: ActionMove, Direction: d} }
func UndoInput() Input                  { return Input{Action: ActionUndo} }
func RotateInput(clockwise bool) Input  { return Input{Action: ActionRotate, Clockwise: clockwise} }
func SaveInput() Input                  { return Input{Action: ActionSave} }
func QuitInput() Input                  { return Input{Action: ActionQuit} }

// ParseCommand parses a typed command. Directions are accepted bare ("left")
// or after "move"; "rotate" takes an optional "ccw".
func ParseCommand(s string) (Input, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return Input{}, fmt.Errorf("%w: empty input", model.ErrUnknownCommand)
	}

	switch fields[0] {
	case "move":
		if len(fields) != 2 {
			return Input{}, fmt.Errorf("%w: move needs one direction", model.ErrUnknownCommand)
		}
		d, err := model.ParseDirection(fields[1])
		if err != nil {
			return Input{}, err
		}
		return MoveInput(d), nil
	case "undo":
		return UndoInput(), nil
	case "rotate":
		if len(fields) > 1 && fields[1] == "ccw" {
			return RotateInput(false), nil
		}
		return RotateInput(true), nil
	case "save":
		return SaveInput(), nil
	case "quit", "exit":
		return QuitInput(), nil
	}

	if d, err := model.ParseDirection(fields[0]); err == nil && len(fields) == 1 {
		return MoveInput(d), nil
	}
	return Input{}, fmt.Errorf("%w: %q", model.ErrUnknownCommand, s)
}

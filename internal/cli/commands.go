package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/merge2048/internal/model"
	"github.com/mcoot/merge2048/internal/services/board"
	"github.com/mcoot/merge2048/internal/services/game"
)

var errInputRequired = errors.New("a board file is required: pass -i <file>")

const (
	moveResultMoved   = "moved"
	moveResultBlocked = "blocked"
	moveResultIgnored = "ignored"
)

func newPlayCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play interactively (the default command)",
		Long: `Play interactively. On a terminal single key presses are read:
arrows or h/j/k/l move, u undo, r rotate clockwise, R rotate counter-clockwise,
s save, q quit. Otherwise one command is read per line: up, down, left, right,
undo, rotate [ccw], save, quit.

With -i the board is loaded from a file; a malformed file is reported and a
new board is started instead.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runPlay(cmd.Context())
		},
	}
}

func newNewCmd(e *env) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new board and save it to the output file",
		Long: `Create a new board and save it to -o. An existing file is left alone
unless --force is given.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := e.app.BoardService.Create(cmd.Context(), e.cfg.Output, e.cfg.Size, force)
			if err != nil {
				return err
			}
			e.output.Print(newBoardView(b.State(), b.IsGameOver(), b.CanUndo()))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing board file")
	return cmd
}

func newListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved boards in the board directory",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := e.app.BoardService.List(cmd.Context())
			if err != nil {
				return err
			}
			if names == nil {
				names = []string{}
			}
			dir := e.cfg.BoardDir
			if dir == "" {
				dir = "."
			}
			e.output.Print(BoardList{Dir: dir, Boards: names})
			return nil
		},
	}
}

func newShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show [file]",
		Short: "Show a saved board",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := e.inputName(args)
			if err != nil {
				return err
			}
			b, err := e.app.BoardService.Load(cmd.Context(), name)
			if err != nil {
				return err
			}
			e.output.Print(newBoardView(b.State(), b.IsGameOver(), b.CanUndo()))
			return nil
		},
	}
}

func newMoveCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "move <direction>...",
		Short: "Apply moves to a saved board and save the result",
		Long: `Apply moves to the -i board, spawning a tile after each successful
move, then save to -o. Blocked moves are reported and skipped.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			directions := make([]model.Direction, 0, len(args))
			for _, arg := range args {
				d, err := model.ParseDirection(arg)
				if err != nil {
					return newUsageError(err)
				}
				directions = append(directions, d)
			}

			name, err := e.inputName(nil)
			if err != nil {
				return err
			}
			b, err := e.app.BoardService.Load(cmd.Context(), name)
			if err != nil {
				return err
			}
			return e.runMoves(cmd.Context(), b, directions)
		},
	}
}

func newValidateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check that board files are well formed",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			report := ValidationReport{Results: make([]ValidationResult, 0, len(args))}
			var firstErr error
			invalid := 0

			for _, name := range args {
				err := e.app.BoardService.Validate(cmd.Context(), name)
				result := ValidationResult{File: name, Valid: err == nil}
				if err != nil {
					result.Error = err.Error()
					invalid++
					if firstErr == nil {
						firstErr = err
					}
				}
				report.Results = append(report.Results, result)
			}

			e.output.Print(report)
			if firstErr != nil {
				return fmt.Errorf("%d of %d board files invalid: %w", invalid, len(args), firstErr)
			}
			return nil
		},
	}
}

func (e *env) inputName(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if e.cfg.Input == "" {
		return "", newUsageError(errInputRequired)
	}
	return e.cfg.Input, nil
}

func (e *env) runMoves(ctx context.Context, b *board.Board, directions []model.Direction) error {
	session := e.app.NewSession(b, e.cfg.Output)
	result := MoveResult{Output: e.cfg.Output}

	for _, d := range directions {
		events, err := session.Handle(ctx, game.MoveInput(d))
		if err != nil {
			return err
		}
		result.Steps = append(result.Steps, moveStep(d, events))
	}

	if err := session.Save(ctx); err != nil {
		return err
	}

	result.Board = newBoardView(session.State(), session.IsGameOver(), session.CanUndo())
	e.output.Print(result)
	return nil
}

func moveStep(d model.Direction, events []model.Event) MoveStep {
	step := MoveStep{Direction: d, Result: moveResultIgnored}
	for _, ev := range events {
		switch ev.Type {
		case model.EventMoved:
			step.Result = moveResultMoved
			step.Delta = ev.Payload.(model.MovedPayload).ScoreDelta
		case model.EventMoveBlocked:
			step.Result = moveResultBlocked
		}
	}
	return step
}

func newBoardView(state model.BoardState, over, canUndo bool) BoardView {
	status := model.StatusPlaying
	if over {
		status = model.StatusGameOver
	}
	return BoardView{
		Size:    state.Grid.Size,
		Score:   state.Score,
		MaxTile: state.Grid.MaxTile(),
		Status:  status,
		CanUndo: canUndo,
		Grid:    state.Grid.Rows(),
	}
}

package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/merge2048/internal/dependencies/clock"
	"github.com/mcoot/merge2048/internal/model"
	"github.com/mcoot/merge2048/internal/services/board"
)

// Controller runs one play session. It applies inputs one at a time, spawning
// a tile after every successful move, and reports what happened as events.
// It is safe for concurrent use.
type Controller struct {
	mu           sync.Mutex
	boardService *board.Service
	board        *board.Board
	output       string
	clock        clock.Clock
	logger       *slog.Logger

	id        model.SessionID
	startedAt time.Time
	moves     int
	undos     int
	ended     bool
}

// NewController creates a Controller for b. Saves go to output.
func NewController(
	boardService *board.Service,
	b *board.Board,
	output string,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	now := clock.Now()
	id := model.SessionID(fmt.Sprintf("session-%s", now.UTC().Format("20060102T150405.000")))
	c := &Controller{
		boardService: boardService,
		board:        b,
		output:       output,
		clock:        clock,
		logger:       logger.With(slog.String("session_id", string(id))),
		id:           id,
		startedAt:    now,
	}
	c.logger.Info("session started",
		slog.Int("size", b.Size()),
		slog.Int("score", b.Score()),
		slog.String("output", output),
	)
	return c
}

// Handle applies one input. Once the board is over only undo, save and quit
// are honoured; other inputs produce an input_ignored event.
func (c *Controller) Handle(ctx context.Context, in Input) ([]model.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ended {
		return nil, model.ErrSessionEnded
	}

	switch in.Action {
	case ActionMove:
		if !in.Direction.IsValid() {
			return nil, fmt.Errorf("%w: %s", model.ErrInvalidDirection, in.Direction)
		}
		if c.board.IsGameOver() {
			return []model.Event{c.event(model.EventInputIgnored, in)}, nil
		}
		return c.move(in.Direction), nil
	case ActionUndo:
		return c.undo(), nil
	case ActionRotate:
		if c.board.IsGameOver() {
			return []model.Event{c.event(model.EventInputIgnored, in)}, nil
		}
		c.board.Rotate(in.Clockwise)
		c.logger.Debug("board rotated", slog.Bool("clockwise", in.Clockwise))
		return []model.Event{c.event(model.EventRotated, model.RotatedPayload{Clockwise: in.Clockwise})}, nil
	case ActionSave:
		return []model.Event{c.save(ctx)}, nil
	case ActionQuit:
		c.ended = true
		c.logger.Info("session ended",
			slog.Int("score", c.board.Score()),
			slog.Int("moves", c.moves),
		)
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownCommand, in.Action)
	}
}

func (c *Controller) move(d model.Direction) []model.Event {
	if !c.board.CanMove(d) {
		return []model.Event{c.event(model.EventMoveBlocked, model.MovedPayload{Direction: d})}
	}

	delta, _ := c.board.MoveWithDelta(d)
	c.moves++
	events := []model.Event{c.event(model.EventMoved, model.MovedPayload{Direction: d, ScoreDelta: delta})}

	if pos, value, ok := c.board.SpawnTile(); ok {
		events = append(events, c.event(model.EventTileSpawned, model.TileSpawnedPayload{Position: pos, Value: value}))
	}

	c.logger.Debug("moved",
		slog.String("direction", d.String()),
		slog.Int("score_delta", delta),
		slog.Int("score", c.board.Score()),
	)

	if c.board.IsGameOver() {
		c.logger.Info("game over",
			slog.Int("score", c.board.Score()),
			slog.Int("max_tile", c.board.MaxTile()),
		)
		events = append(events, c.event(model.EventGameOver, nil))
	}
	return events
}

func (c *Controller) undo() []model.Event {
	if !c.board.Undo() {
		return []model.Event{c.event(model.EventUndoSkipped, nil)}
	}
	c.undos++
	c.logger.Debug("undone", slog.Int("score", c.board.Score()))
	return []model.Event{c.event(model.EventUndone, nil)}
}

func (c *Controller) save(ctx context.Context) model.Event {
	if err := c.boardService.Save(ctx, c.output, c.board); err != nil {
		return c.event(model.EventSaveFailed, model.SavedPayload{Name: c.output, Error: err.Error()})
	}
	return c.event(model.EventSaved, model.SavedPayload{Name: c.output})
}

// Save writes the board to the output file, returning any storage error
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.boardService.Save(ctx, c.output, c.board)
}

func (c *Controller) event(t model.EventType, payload any) model.Event {
	return model.Event{Type: t, Timestamp: c.clock.Now(), Payload: payload}
}

// State returns a copy of the board's grid and score
func (c *Controller) State() model.BoardState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.board.State()
}

// IsGameOver reports whether no direction can move
func (c *Controller) IsGameOver() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.board.IsGameOver()
}

// CanUndo reports whether an undo snapshot is held
func (c *Controller) CanUndo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.board.CanUndo()
}

// Ended reports whether a quit input has been handled
func (c *Controller) Ended() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ended
}

// Output returns the save target
func (c *Controller) Output() string {
	return c.output
}

// Summary returns a record of the session so far
func (c *Controller) Summary() model.GameSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.GameSummary{
		ID:        c.id,
		Status:    c.board.Status(),
		Score:     c.board.Score(),
		MaxTile:   c.board.MaxTile(),
		Moves:     c.moves,
		Undos:     c.undos,
		StartedAt: c.startedAt,
		Duration:  c.clock.Since(c.startedAt),
	}
}

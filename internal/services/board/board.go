package board

import (
	"github.com/mcoot/merge2048/internal/dependencies/random"
	"github.com/mcoot/merge2048/internal/model"
	"github.com/mcoot/merge2048/internal/services/line"
)

const (
	// StartTiles is the number of tiles spawned on a fresh board
	StartTiles = 2
	// TwoProbability is the percentage chance a spawned tile is a 2 rather than a 4
	TwoProbability = 90
)

// Board owns one puzzle grid, its score and a single level of undo.
// A Board is meant to be driven by one caller at a time and does no locking.
type Board struct {
	grid   *model.Grid
	score  int
	undo   *model.BoardState // nil when there is nothing to undo
	random random.Random
}

// New creates a size x size board with StartTiles random tiles on it
func New(size int, rnd random.Random) (*Board, error) {
	if size < model.MinSize {
		return nil, model.ErrInvalidSize
	}
	b := &Board{
		grid:   model.NewGrid(size),
		random: rnd,
	}
	for i := 0; i < StartTiles; i++ {
		b.AddRandomTile()
	}
	return b, nil
}

// FromState creates a board holding a copy of state. No tiles are spawned.
func FromState(state model.BoardState, rnd random.Random) (*Board, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}
	clone := state.Clone()
	return &Board{
		grid:   clone.Grid,
		score:  clone.Score,
		random: rnd,
	}, nil
}

// Size returns the grid dimension
func (b *Board) Size() int {
	return b.grid.Size
}

// Grid returns a copy of the current grid
func (b *Board) Grid() *model.Grid {
	return b.grid.Clone()
}

// Score returns the current score
func (b *Board) Score() int {
	return b.score
}

// State returns a copy of the current grid and score
func (b *Board) State() model.BoardState {
	return model.BoardState{Grid: b.grid.Clone(), Score: b.score}
}

// MaxTile returns the largest tile on the grid
func (b *Board) MaxTile() int {
	return b.grid.MaxTile()
}

// TileCount returns the number of occupied cells
func (b *Board) TileCount() int {
	return b.grid.TileCount()
}

// CanMove reports whether moving in d would change the grid. Rows are scanned
// for Left/Right and columns for Up/Down; the grid is never rotated.
func (b *Board) CanMove(d model.Direction) bool {
	if !d.IsValid() {
		return false
	}
	o := d.Orientation()
	for i := 0; i < b.grid.Size; i++ {
		var values []int
		if o.Rotated {
			values = b.grid.Col(i)
		} else {
			values = b.grid.Row(i)
		}
		if line.CanCompact(values, o.Toward) {
			return true
		}
	}
	return false
}

// Move slides and merges every line toward d. It returns false, leaving the
// board untouched, when the move is not legal. A legal move replaces the undo
// snapshot with the pre-move state.
func (b *Board) Move(d model.Direction) bool {
	_, ok := b.MoveWithDelta(d)
	return ok
}

// MoveWithDelta is Move that also reports the score gained
func (b *Board) MoveWithDelta(d model.Direction) (int, bool) {
	if !b.CanMove(d) {
		return 0, false
	}
	b.undo = &model.BoardState{Grid: b.grid.Clone(), Score: b.score}

	o := d.Orientation()
	grid := b.grid
	if o.Rotated {
		grid = grid.Rotate(false)
	}

	delta := 0
	for r := 0; r < grid.Size; r++ {
		compacted, gained := line.Compact(grid.Row(r), o.Toward)
		grid.SetRow(r, compacted)
		delta = model.AddScore(delta, gained)
	}

	if o.Rotated {
		grid = grid.Rotate(true)
	}
	b.grid = grid
	b.score = model.AddScore(b.score, delta)
	return delta, true
}

// IsGameOver reports whether no direction can move
func (b *Board) IsGameOver() bool {
	for _, d := range model.AllDirections {
		if b.CanMove(d) {
			return false
		}
	}
	return true
}

// Status returns StatusGameOver when no direction can move
func (b *Board) Status() model.BoardStatus {
	if b.IsGameOver() {
		return model.StatusGameOver
	}
	return model.StatusPlaying
}

// AddRandomTile places a 2 (90%) or a 4 (10%) on a uniformly chosen empty
// cell. It returns false and does nothing when the grid is full.
func (b *Board) AddRandomTile() bool {
	_, _, ok := b.SpawnTile()
	return ok
}

// SpawnTile is AddRandomTile that also reports where the tile went. It draws
// exactly twice from the random source: first the index among the empty cells
// in row-major order, then a percentage for the value.
func (b *Board) SpawnTile() (model.Position, int, bool) {
	empty := b.grid.EmptyPositions()
	if len(empty) == 0 {
		return model.Position{}, 0, false
	}

	pos := empty[b.random.Intn(len(empty))]
	value := 4
	if b.random.Intn(100) < TwoProbability {
		value = 2
	}
	b.grid.Set(pos, value)
	return pos, value, true
}

// CanUndo reports whether a snapshot is pending
func (b *Board) CanUndo() bool {
	return b.undo != nil
}

// Undo restores the grid and score from before the last successful move and
// discards the snapshot. It returns false when there is nothing to undo.
func (b *Board) Undo() bool {
	if b.undo == nil {
		return false
	}
	b.grid = b.undo.Grid
	b.score = b.undo.Score
	b.undo = nil
	return true
}

// Rotate turns the grid a quarter turn as a player action. The score and
// any pending undo snapshot are left alone.
func (b *Board) Rotate(clockwise bool) {
	b.grid = b.grid.Rotate(clockwise)
}

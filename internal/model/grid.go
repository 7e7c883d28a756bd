package model

import (
	"math"
	"math/bits"
)

// MinSize is the smallest playable grid dimension
const MinSize = 2

// MaxTileValue is the largest power of two an int holds. Two tiles of this
// value never merge.
const MaxTileValue = 1 << (bits.UintSize - 2)

// Position identifies a cell on the grid
type Position struct {
	Row int `json:"row"` // 0-indexed from top
	Col int `json:"col"` // 0-indexed from left
}

// Grid is a square board of tile values
type Grid struct {
	Size  int
	Cells [][]int // Row-major: Cells[row][col], 0 means empty
}

// NewGrid creates an empty grid of the given size
func NewGrid(size int) *Grid {
	if size < 0 {
		size = 0
	}
	cells := make([][]int, size)
	for i := range cells {
		cells[i] = make([]int, size)
	}
	return &Grid{
		Size:  size,
		Cells: cells,
	}
}

// GridFromRows builds a grid from a copy of rows, validating shape and tile values
func GridFromRows(rows [][]int) (*Grid, error) {
	g := NewGrid(len(rows))
	for r, row := range rows {
		if len(row) != len(rows) {
			return nil, ErrInvalidSize
		}
		copy(g.Cells[r], row)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// IsTileValue reports whether v may appear in a cell: 0 or a power of two of at
// least 2 and at most MaxTileValue
func IsTileValue(v int) bool {
	if v == 0 {
		return true
	}
	return v > 1 && v <= MaxTileValue && v&(v-1) == 0
}

// CanMerge reports whether two adjacent tiles combine into one
func CanMerge(a, b int) bool {
	return a != 0 && a == b && a < MaxTileValue
}

// AddScore adds delta to score, saturating at math.MaxInt
func AddScore(score, delta int) int {
	if delta > 0 && score > math.MaxInt-delta {
		return math.MaxInt
	}
	return score + delta
}

// Validate checks the size invariant and every cell value
func (g *Grid) Validate() error {
	if g == nil || g.Size < MinSize || len(g.Cells) != g.Size {
		return ErrInvalidSize
	}
	for _, row := range g.Cells {
		if len(row) != g.Size {
			return ErrInvalidSize
		}
		for _, v := range row {
			if !IsTileValue(v) {
				return ErrInvalidTile
			}
		}
	}
	return nil
}

// Get returns the value at the given position, or 0 if out of bounds
func (g *Grid) Get(pos Position) int {
	if !g.IsValidPosition(pos) {
		return 0
	}
	return g.Cells[pos.Row][pos.Col]
}

// Set stores a value at the given position
func (g *Grid) Set(pos Position, value int) {
	if g.IsValidPosition(pos) {
		g.Cells[pos.Row][pos.Col] = value
	}
}

// IsValidPosition returns true if the position is within bounds
func (g *Grid) IsValidPosition(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.Size && pos.Col >= 0 && pos.Col < g.Size
}

// IsFull returns true if no cell is empty
func (g *Grid) IsFull() bool {
	return g.EmptyCount() == 0
}

// EmptyCount returns the number of empty cells
func (g *Grid) EmptyCount() int {
	count := 0
	for _, row := range g.Cells {
		for _, v := range row {
			if v == 0 {
				count++
			}
		}
	}
	return count
}

// EmptyPositions lists empty cells in row-major order
func (g *Grid) EmptyPositions() []Position {
	var empty []Position
	for r, row := range g.Cells {
		for c, v := range row {
			if v == 0 {
				empty = append(empty, Position{Row: r, Col: c})
			}
		}
	}
	return empty
}

// TileCount returns the number of occupied cells
func (g *Grid) TileCount() int {
	return g.Size*g.Size - g.EmptyCount()
}

// MaxTile returns the largest value on the grid
func (g *Grid) MaxTile() int {
	best := 0
	for _, row := range g.Cells {
		for _, v := range row {
			best = max(best, v)
		}
	}
	return best
}

// Row returns a copy of the given row
func (g *Grid) Row(row int) []int {
	if row < 0 || row >= g.Size {
		return nil
	}
	result := make([]int, g.Size)
	copy(result, g.Cells[row])
	return result
}

// Col returns a copy of the given column, top to bottom
func (g *Grid) Col(col int) []int {
	if col < 0 || col >= g.Size {
		return nil
	}
	result := make([]int, g.Size)
	for row := 0; row < g.Size; row++ {
		result[row] = g.Cells[row][col]
	}
	return result
}

// SetRow overwrites a row with values
func (g *Grid) SetRow(row int, values []int) {
	if row < 0 || row >= g.Size {
		return
	}
	copy(g.Cells[row], values)
}

// Rows returns a deep copy of the cells
func (g *Grid) Rows() [][]int {
	return g.Clone().Cells
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	clone := NewGrid(g.Size)
	for r, row := range g.Cells {
		copy(clone.Cells[r], row)
	}
	return clone
}

// Equal reports whether both grids have the same size and values
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.Size != other.Size {
		return false
	}
	for r := range g.Cells {
		for c := range g.Cells[r] {
			if g.Cells[r][c] != other.Cells[r][c] {
				return false
			}
		}
	}
	return true
}

// Rotate returns a new grid turned a quarter turn. Clockwise moves (r, c) to
// (c, N-1-r); counter-clockwise moves (r, c) to (N-1-c, r).
func (g *Grid) Rotate(clockwise bool) *Grid {
	n := g.Size
	rotated := NewGrid(n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if clockwise {
				rotated.Cells[c][n-1-r] = g.Cells[r][c]
			} else {
				rotated.Cells[n-1-c][r] = g.Cells[r][c]
			}
		}
	}
	return rotated
}

package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, rows ...[]int) *Grid {
	t.Helper()
	g, err := GridFromRows(rows)
	require.NoError(t, err)
	return g
}

func TestIsTileValue(t *testing.T) {
	for _, v := range []int{0, 2, 4, 8, 1024, 1 << 20} {
		assert.True(t, IsTileValue(v), "%d", v)
	}
	for _, v := range []int{-2, 1, 3, 6, 12, 1000, math.MinInt} {
		assert.False(t, IsTileValue(v), "%d", v)
	}
	assert.True(t, IsTileValue(MaxTileValue))
}

func TestCanMerge(t *testing.T) {
	assert.True(t, CanMerge(2, 2))
	assert.True(t, CanMerge(MaxTileValue/2, MaxTileValue/2))
	assert.False(t, CanMerge(MaxTileValue, MaxTileValue))
	assert.False(t, CanMerge(0, 0))
	assert.False(t, CanMerge(2, 4))
}

func TestAddScoreSaturates(t *testing.T) {
	assert.Equal(t, 12, AddScore(4, 8))
	assert.Equal(t, math.MaxInt, AddScore(math.MaxInt-1, 8))
	assert.Equal(t, math.MaxInt, AddScore(math.MaxInt, MaxTileValue))
}

func TestGridFromRowsRejectsBadShapes(t *testing.T) {
	_, err := GridFromRows([][]int{{2}})
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = GridFromRows([][]int{{2, 4}, {2}})
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = GridFromRows([][]int{{2, 3}, {0, 0}})
	assert.ErrorIs(t, err, ErrInvalidTile)
}

func TestGridFromRowsCopies(t *testing.T) {
	rows := [][]int{{2, 0}, {0, 4}}
	g := mustGrid(t, rows...)
	rows[0][0] = 8
	assert.Equal(t, 2, g.Get(Position{Row: 0, Col: 0}))
}

func TestEmptyPositionsRowMajor(t *testing.T) {
	g := mustGrid(t,
		[]int{2, 0, 0},
		[]int{0, 4, 2},
		[]int{8, 0, 2},
	)
	assert.Equal(t, []Position{
		{Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 1, Col: 0}, {Row: 2, Col: 1},
	}, g.EmptyPositions())
	assert.Equal(t, 4, g.EmptyCount())
	assert.Equal(t, 5, g.TileCount())
	assert.Equal(t, 8, g.MaxTile())
	assert.False(t, g.IsFull())
}

func TestRowAndColAreCopies(t *testing.T) {
	g := mustGrid(t, []int{2, 4}, []int{8, 16})
	assert.Equal(t, []int{2, 4}, g.Row(0))
	assert.Equal(t, []int{4, 16}, g.Col(1))
	assert.Nil(t, g.Row(2))
	assert.Nil(t, g.Col(-1))

	row := g.Row(0)
	row[0] = 1024
	assert.Equal(t, 2, g.Cells[0][0])
}

func TestGetSetOutOfBounds(t *testing.T) {
	g := NewGrid(2)
	g.Set(Position{Row: 5, Col: 0}, 2)
	assert.Equal(t, 0, g.Get(Position{Row: 5, Col: 0}))
	assert.Equal(t, 4, g.EmptyCount())
}

func TestRotateClockwise(t *testing.T) {
	g := mustGrid(t,
		[]int{2, 4, 8},
		[]int{16, 32, 64},
		[]int{128, 256, 512},
	)
	want := mustGrid(t,
		[]int{128, 16, 2},
		[]int{256, 32, 4},
		[]int{512, 64, 8},
	)
	assert.True(t, want.Equal(g.Rotate(true)))
}

func TestRotateCounterClockwise(t *testing.T) {
	g := mustGrid(t,
		[]int{2, 4, 8},
		[]int{16, 32, 64},
		[]int{128, 256, 512},
	)
	want := mustGrid(t,
		[]int{8, 64, 512},
		[]int{4, 32, 256},
		[]int{2, 16, 128},
	)
	assert.True(t, want.Equal(g.Rotate(false)))
}

func TestRotateInvolution(t *testing.T) {
	for size := 2; size <= 5; size++ {
		g := NewGrid(size)
		v := 2
		for r := 0; r < size; r++ {
			for c := 0; c < size; c++ {
				g.Cells[r][c] = v
				v *= 2
				if v > 1<<16 {
					v = 2
				}
			}
		}

		assert.True(t, g.Equal(g.Rotate(true).Rotate(false)), "size %d cw+ccw", size)
		assert.True(t, g.Equal(g.Rotate(false).Rotate(true)), "size %d ccw+cw", size)
		assert.True(t, g.Equal(g.Rotate(true).Rotate(true).Rotate(true).Rotate(true)), "size %d 4xcw", size)
	}
}

func TestRotateIsPure(t *testing.T) {
	g := mustGrid(t, []int{2, 0}, []int{0, 0})
	_ = g.Rotate(true)
	assert.Equal(t, [][]int{{2, 0}, {0, 0}}, g.Cells)
}

func TestEqual(t *testing.T) {
	a := mustGrid(t, []int{2, 0}, []int{0, 4})
	assert.True(t, a.Equal(a.Clone()))
	assert.False(t, a.Equal(NewGrid(2)))
	assert.False(t, a.Equal(NewGrid(3)))
	assert.False(t, a.Equal(nil))
}

func TestBoardStateValidate(t *testing.T) {
	g := mustGrid(t, []int{2, 0}, []int{0, 4})
	assert.NoError(t, BoardState{Grid: g, Score: 0}.Validate())
	assert.ErrorIs(t, BoardState{Grid: g, Score: -1}.Validate(), ErrInvalidScore)
	assert.ErrorIs(t, BoardState{Grid: nil, Score: 0}.Validate(), ErrInvalidSize)
}

func TestBoardStateCloneIsDeep(t *testing.T) {
	s := BoardState{Grid: mustGrid(t, []int{2, 0}, []int{0, 4}), Score: 12}
	clone := s.Clone()
	clone.Grid.Cells[0][0] = 8
	assert.Equal(t, 2, s.Grid.Cells[0][0])
	assert.Equal(t, 12, clone.Score)
}

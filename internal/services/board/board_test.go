package board

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/merge2048/internal/dependencies/mocks"
	"github.com/mcoot/merge2048/internal/dependencies/random"
	"github.com/mcoot/merge2048/internal/model"
)

type BoardSuite struct {
	suite.Suite
	random *mocks.MockRandom
}

func TestBoardSuite(t *testing.T) {
	suite.Run(t, new(BoardSuite))
}

func (s *BoardSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
}

// Helper to create a board from rows with the mock random source
func (s *BoardSuite) boardFrom(score int, rows ...[]int) *Board {
	grid, err := model.GridFromRows(rows)
	s.Require().NoError(err)
	b, err := FromState(model.BoardState{Grid: grid, Score: score}, s.random)
	s.Require().NoError(err)
	return b
}

func (s *BoardSuite) assertGrid(b *Board, rows ...[]int) {
	s.Equal(rows, b.Grid().Cells)
}

// Construction tests

func (s *BoardSuite) TestNewSpawnsTwoTiles() {
	// first tile: index 0 of 16, value draw 5 (-> 2)
	// second tile: index 14 of 15, value draw 95 (-> 4)
	s.random.QueueIntn(0, 5, 14, 95)

	b, err := New(4, s.random)
	s.Require().NoError(err)

	s.Equal(4, b.Size())
	s.Equal(0, b.Score())
	s.Equal(2, b.Grid().TileCount())
	s.Equal(2, b.Grid().Get(model.Position{Row: 0, Col: 0}))
	s.Equal(4, b.Grid().Get(model.Position{Row: 3, Col: 3}))
	s.Equal([]int{16, 100, 15, 100}, s.random.Calls)
	s.False(b.CanUndo())
}

func (s *BoardSuite) TestNewRejectsSmallSize() {
	_, err := New(1, s.random)
	s.ErrorIs(err, model.ErrInvalidSize)
	s.Empty(s.random.Calls)
}

func (s *BoardSuite) TestFromStateDoesNotSpawnOrAlias() {
	grid, _ := model.GridFromRows([][]int{{2, 0}, {0, 0}})
	b, err := FromState(model.BoardState{Grid: grid, Score: 40}, s.random)
	s.Require().NoError(err)

	grid.Cells[0][0] = 1024
	s.assertGrid(b, []int{2, 0}, []int{0, 0})
	s.Equal(40, b.Score())
	s.Empty(s.random.Calls)
}

func (s *BoardSuite) TestFromStateRejectsInvalidState() {
	grid, _ := model.GridFromRows([][]int{{2, 0}, {0, 0}})
	_, err := FromState(model.BoardState{Grid: grid, Score: -4}, s.random)
	s.ErrorIs(err, model.ErrInvalidScore)

	bad := model.NewGrid(2)
	bad.Cells[1][1] = 6
	_, err = FromState(model.BoardState{Grid: bad}, s.random)
	s.ErrorIs(err, model.ErrInvalidTile)
}

func (s *BoardSuite) TestGridIsACopy() {
	b := s.boardFrom(0, []int{2, 0}, []int{0, 0})
	g := b.Grid()
	g.Cells[0][0] = 64
	s.Equal(2, b.Grid().Cells[0][0])
}

// Move tests

func (s *BoardSuite) TestMoveLeft() {
	b := s.boardFrom(0,
		[]int{2, 2, 2, 2},
		[]int{0, 4, 0, 4},
		[]int{8, 0, 0, 0},
		[]int{0, 0, 2, 4},
	)

	s.True(b.Move(model.Left))
	s.assertGrid(b,
		[]int{4, 4, 0, 0},
		[]int{8, 0, 0, 0},
		[]int{8, 0, 0, 0},
		[]int{2, 4, 0, 0},
	)
	s.Equal(16, b.Score())
}

func (s *BoardSuite) TestMoveRight() {
	b := s.boardFrom(10,
		[]int{4, 4, 4, 4},
		[]int{2, 0, 0, 0},
		[]int{0, 0, 0, 0},
		[]int{2, 2, 0, 8},
	)

	delta, ok := b.MoveWithDelta(model.Right)
	s.True(ok)
	s.Equal(20, delta)
	s.assertGrid(b,
		[]int{0, 0, 8, 8},
		[]int{0, 0, 0, 2},
		[]int{0, 0, 0, 0},
		[]int{0, 0, 4, 8},
	)
	s.Equal(30, b.Score())
}

func (s *BoardSuite) TestMoveUp() {
	b := s.boardFrom(0,
		[]int{2, 0, 4},
		[]int{2, 0, 4},
		[]int{2, 8, 4},
	)

	s.True(b.Move(model.Up))
	s.assertGrid(b,
		[]int{4, 8, 8},
		[]int{2, 0, 4},
		[]int{0, 0, 0},
	)
	s.Equal(12, b.Score())
}

func (s *BoardSuite) TestMoveDown() {
	b := s.boardFrom(0,
		[]int{2, 0, 4},
		[]int{2, 0, 4},
		[]int{2, 8, 4},
	)

	s.True(b.Move(model.Down))
	s.assertGrid(b,
		[]int{0, 0, 0},
		[]int{2, 0, 4},
		[]int{4, 8, 8},
	)
	s.Equal(12, b.Score())
}

func (s *BoardSuite) TestMoveDoesNotSpawn() {
	b := s.boardFrom(0, []int{2, 2}, []int{0, 0})
	s.True(b.Move(model.Left))
	s.Equal(1, b.Grid().TileCount())
	s.Empty(s.random.Calls)
}

func (s *BoardSuite) TestBlockedMoveIsNoOp() {
	b := s.boardFrom(8,
		[]int{2, 4, 0},
		[]int{8, 16, 0},
		[]int{0, 0, 0},
	)
	s.False(b.CanMove(model.Left))
	s.False(b.CanMove(model.Up))

	s.False(b.Move(model.Left))
	s.False(b.Move(model.Up))
	s.assertGrid(b, []int{2, 4, 0}, []int{8, 16, 0}, []int{0, 0, 0})
	s.Equal(8, b.Score())
	s.False(b.CanUndo())
}

func (s *BoardSuite) TestFullLockedBoardBlocksEveryDirection() {
	b := s.boardFrom(100,
		[]int{2, 4, 2},
		[]int{4, 2, 4},
		[]int{2, 4, 2},
	)
	for _, d := range model.AllDirections {
		s.False(b.CanMove(d), d.String())
		s.False(b.Move(d), d.String())
	}
	s.assertGrid(b, []int{2, 4, 2}, []int{4, 2, 4}, []int{2, 4, 2})
	s.Equal(100, b.Score())
}

func (s *BoardSuite) TestLargestTilesDoNotOverflow() {
	half := model.MaxTileValue / 2
	b := s.boardFrom(math.MaxInt-1,
		[]int{half, half},
		[]int{model.MaxTileValue, model.MaxTileValue},
	)
	s.True(b.Move(model.Left))
	s.assertGrid(b, []int{model.MaxTileValue, 0}, []int{model.MaxTileValue, model.MaxTileValue})
	s.Equal(math.MaxInt, b.Score())
	s.NoError(b.State().Validate())

	s.False(b.CanMove(model.Left))
	s.False(b.CanMove(model.Down))
	s.True(b.CanMove(model.Up))
}

func (s *BoardSuite) TestInvalidDirectionIsNoOp() {
	b := s.boardFrom(0, []int{2, 2}, []int{0, 0})
	s.False(b.CanMove(model.Direction(42)))
	s.False(b.Move(model.Direction(42)))
	s.assertGrid(b, []int{2, 2}, []int{0, 0})
}

// CanMove must agree with whether Move changes the grid, for every 3x3 grid
// over {0, 2} and every direction.
func (s *BoardSuite) TestCanMoveMatchesMove() {
	for code := 0; code < 1<<9; code++ {
		rows := [][]int{make([]int, 3), make([]int, 3), make([]int, 3)}
		for i := 0; i < 9; i++ {
			if code&(1<<i) != 0 {
				rows[i/3][i%3] = 2
			}
		}
		for _, d := range model.AllDirections {
			b := s.boardFrom(0, rows...)
			before := b.Grid()
			can := b.CanMove(d)
			moved := b.Move(d)
			s.Equal(can, moved, "%v %s", rows, d)
			s.Equal(moved, !before.Equal(b.Grid()), "%v %s", rows, d)
		}
	}
}

// Game over tests

func (s *BoardSuite) TestGameOverOnLockedTwoByTwo() {
	b := s.boardFrom(0, []int{2, 4}, []int{4, 2})
	s.True(b.IsGameOver())
	s.Equal(model.StatusGameOver, b.Status())
}

func (s *BoardSuite) TestNotGameOverWithMergeAvailable() {
	b := s.boardFrom(0, []int{2, 2}, []int{0, 0})
	s.False(b.IsGameOver())
	s.True(b.CanMove(model.Left))
	s.Equal(model.StatusPlaying, b.Status())
}

func (s *BoardSuite) TestFullBoardWithVerticalMergeIsNotOver() {
	b := s.boardFrom(0, []int{2, 4}, []int{2, 8})
	s.False(b.CanMove(model.Left))
	s.False(b.CanMove(model.Right))
	s.True(b.CanMove(model.Up))
	s.True(b.CanMove(model.Down))
	s.False(b.IsGameOver())
}

// AddRandomTile tests

func (s *BoardSuite) TestAddRandomTileDrawOrderAndPlacement() {
	b := s.boardFrom(0,
		[]int{2, 0, 4},
		[]int{0, 8, 0},
		[]int{16, 0, 32},
	)
	// empty cells row-major: (0,1) (1,0) (1,2) (2,1); pick index 2, value draw 89 (-> 2)
	s.random.QueueIntn(2, 89)

	s.True(b.AddRandomTile())
	s.assertGrid(b,
		[]int{2, 0, 4},
		[]int{0, 8, 2},
		[]int{16, 0, 32},
	)
	s.Equal([]int{4, 100}, s.random.Calls)
}

func (s *BoardSuite) TestAddRandomTileFour() {
	b := s.boardFrom(0, []int{2, 0}, []int{4, 8})
	s.random.QueueIntn(0, 90)

	pos, value, ok := b.SpawnTile()
	s.True(ok)
	s.Equal(model.Position{Row: 0, Col: 1}, pos)
	s.Equal(4, value)
	s.assertGrid(b, []int{2, 4}, []int{4, 8})
}

func (s *BoardSuite) TestAddRandomTileOnFullGridIsNoOp() {
	b := s.boardFrom(0, []int{2, 4}, []int{4, 2})
	s.False(b.AddRandomTile())
	s.assertGrid(b, []int{2, 4}, []int{4, 2})
	s.Empty(s.random.Calls)
}

func (s *BoardSuite) TestAddRandomTileWithSeededSourceAddsExactlyOne() {
	rnd := random.NewSeeded(2048)
	grid, _ := model.GridFromRows([][]int{
		{2, 0, 0, 4},
		{0, 0, 8, 0},
		{0, 16, 0, 0},
		{32, 0, 0, 2},
	})
	b, err := FromState(model.BoardState{Grid: grid}, rnd)
	s.Require().NoError(err)

	for !b.Grid().IsFull() {
		before := b.Grid()
		s.True(b.AddRandomTile())
		after := b.Grid()
		s.Equal(before.TileCount()+1, after.TileCount())

		changed := 0
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				if before.Cells[r][c] != after.Cells[r][c] {
					changed++
					s.Equal(0, before.Cells[r][c])
					s.Contains([]int{2, 4}, after.Cells[r][c])
				}
			}
		}
		s.Equal(1, changed)
	}
	s.False(b.AddRandomTile())
}

// Undo tests

func (s *BoardSuite) TestUndoRestoresExactState() {
	b := s.boardFrom(12, []int{2, 2, 0}, []int{4, 0, 4}, []int{0, 0, 0})
	before := b.State()

	s.False(b.CanUndo())
	s.True(b.Move(model.Left))
	s.True(b.CanUndo())
	s.NotEqual(before.Score, b.Score())

	s.True(b.Undo())
	s.True(before.Equal(b.State()))
	s.False(b.CanUndo())

	s.False(b.Undo(), "second undo is a no-op")
	s.True(before.Equal(b.State()))
}

func (s *BoardSuite) TestUndoIsSingleLevel() {
	b := s.boardFrom(0, []int{2, 2, 4}, []int{0, 0, 0}, []int{0, 0, 0})
	s.True(b.Move(model.Left)) // [4 4 0]
	afterFirst := b.State()
	s.True(b.Move(model.Left)) // [8 0 0]

	s.True(b.Undo())
	s.True(afterFirst.Equal(b.State()))
	s.False(b.Undo())
}

func (s *BoardSuite) TestUndoKeepsSpawnOutOfSnapshot() {
	b := s.boardFrom(0, []int{2, 2}, []int{0, 0})
	s.random.QueueIntn(0, 0)
	s.True(b.Move(model.Left))
	s.True(b.AddRandomTile())
	s.Equal(2, b.Grid().TileCount())

	s.True(b.Undo())
	s.assertGrid(b, []int{2, 2}, []int{0, 0})
}

func (s *BoardSuite) TestBlockedMoveKeepsSnapshot() {
	b := s.boardFrom(0, []int{2, 2}, []int{0, 0})
	s.True(b.Move(model.Left)) // [4 0]
	s.False(b.Move(model.Left))
	s.True(b.CanUndo())
	s.True(b.Undo())
	s.assertGrid(b, []int{2, 2}, []int{0, 0})
}

// Rotate tests

func (s *BoardSuite) TestRotateKeepsScoreAndSnapshot() {
	b := s.boardFrom(4, []int{2, 4}, []int{0, 0})
	b.Rotate(true)
	s.assertGrid(b, []int{0, 2}, []int{0, 4})
	s.Equal(4, b.Score())
	s.False(b.CanUndo())

	s.True(b.Move(model.Left))
	b.Rotate(false)
	s.True(b.CanUndo())
	s.True(b.Undo())
	s.assertGrid(b, []int{0, 2}, []int{0, 4})
}

func (s *BoardSuite) TestMaxTile() {
	b := s.boardFrom(0, []int{2, 64}, []int{0, 8})
	s.Equal(64, b.MaxTile())
}

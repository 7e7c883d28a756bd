package model

// BoardState is the persisted (grid, score) pair. It is also the shape of the
// single undo snapshot a board keeps.
type BoardState struct {
	Grid  *Grid
	Score int
}

// Clone returns a deep copy of the state
func (s BoardState) Clone() BoardState {
	var grid *Grid
	if s.Grid != nil {
		grid = s.Grid.Clone()
	}
	return BoardState{Grid: grid, Score: s.Score}
}

// Validate checks the grid and that the score is non-negative
func (s BoardState) Validate() error {
	if err := s.Grid.Validate(); err != nil {
		return err
	}
	if s.Score < 0 {
		return ErrInvalidScore
	}
	return nil
}

// Equal reports whether both states hold the same grid and score
func (s BoardState) Equal(other BoardState) bool {
	return s.Score == other.Score && s.Grid.Equal(other.Grid)
}

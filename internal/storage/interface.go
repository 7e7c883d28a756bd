package storage

import (
	"context"

	"github.com/mcoot/merge2048/internal/model"
)

// Storage defines the interface for board persistence. Boards are addressed by
// name; for file storage the name is a path.
type Storage interface {
	SaveBoard(ctx context.Context, name string, state model.BoardState) error
	// GetBoard returns model.ErrBoardNotFound for unknown names and a
	// *boardfile.FormatError for malformed content
	GetBoard(ctx context.Context, name string) (model.BoardState, error)
	BoardExists(ctx context.Context, name string) (bool, error)
	// ListBoards returns board names in sorted order
	ListBoards(ctx context.Context) ([]string, error)
}

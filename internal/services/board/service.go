package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/merge2048/internal/dependencies/random"
	"github.com/mcoot/merge2048/internal/model"
	"github.com/mcoot/merge2048/internal/storage"
)

// Service creates, loads and saves boards
type Service struct {
	storage storage.Storage
	random  random.Random
	logger  *slog.Logger
}

// NewService creates a new board Service
func NewService(storage storage.Storage, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		random:  rnd,
		logger:  logger,
	}
}

// NewBoard creates a fresh board with the starting tiles placed
func (s *Service) NewBoard(size int) (*Board, error) {
	b, err := New(size, s.random)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("created board", slog.Int("size", size))
	return b, nil
}

// Create starts a fresh board and saves it under name. A board already saved
// there is kept and model.ErrBoardExists returned unless overwrite is set.
func (s *Service) Create(ctx context.Context, name string, size int, overwrite bool) (*Board, error) {
	if !overwrite {
		exists, err := s.storage.BoardExists(ctx, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: %s", model.ErrBoardExists, name)
		}
	}

	b, err := s.NewBoard(size)
	if err != nil {
		return nil, err
	}
	if err := s.Save(ctx, name, b); err != nil {
		return nil, err
	}
	return b, nil
}

// List returns the names of saved boards in sorted order
func (s *Service) List(ctx context.Context) ([]string, error) {
	return s.storage.ListBoards(ctx)
}

// Load reads a saved board. No tiles are spawned.
func (s *Service) Load(ctx context.Context, name string) (*Board, error) {
	state, err := s.storage.GetBoard(ctx, name)
	if err != nil {
		s.logger.Debug("failed to load board",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	b, err := FromState(state, s.random)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("loaded board",
		slog.String("name", name),
		slog.Int("size", b.Size()),
		slog.Int("score", b.Score()),
	)
	return b, nil
}

// LoadOrNew loads name, falling back to a fresh board of the given size when
// the content is malformed. loaded reports whether the saved board was used.
// Storage failures are still returned.
func (s *Service) LoadOrNew(ctx context.Context, name string, size int) (b *Board, loaded bool, err error) {
	b, err = s.Load(ctx, name)
	if err == nil {
		return b, true, nil
	}
	if !errors.Is(err, model.ErrInvalidFormat) {
		return nil, false, err
	}

	s.logger.Warn("board file is malformed, starting a new board",
		slog.String("name", name),
		slog.String("error", err.Error()),
		slog.Int("size", size),
	)
	b, err = s.NewBoard(size)
	return b, false, err
}

// Save writes the board's current grid and score
func (s *Service) Save(ctx context.Context, name string, b *Board) error {
	if err := s.storage.SaveBoard(ctx, name, b.State()); err != nil {
		s.logger.Error("failed to save board",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.logger.Info("saved board",
		slog.String("name", name),
		slog.Int("score", b.Score()),
	)
	return nil
}

// Validate reports whether name holds a well-formed board
func (s *Service) Validate(ctx context.Context, name string) error {
	_, err := s.storage.GetBoard(ctx, name)
	return err
}

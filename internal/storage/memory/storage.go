package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/mcoot/merge2048/internal/boardfile"
	"github.com/mcoot/merge2048/internal/model"
	"github.com/mcoot/merge2048/internal/storage"
)

// Storage is an in-memory implementation of the storage interface. Boards are
// kept in encoded form so loads go through the same decoder as files do.
type Storage struct {
	mu     sync.RWMutex
	boards map[string][]byte
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		boards: make(map[string][]byte),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveBoard(ctx context.Context, name string, state model.BoardState) error {
	data, err := boardfile.Marshal(state)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards[name] = data
	return nil
}

// SaveRaw stores data under name without checking it
func (s *Storage) SaveRaw(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards[name] = slices.Clone(data)
}

// Raw returns the encoded board stored under name
func (s *Storage) Raw(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.boards[name]
	return slices.Clone(data), ok
}

func (s *Storage) GetBoard(ctx context.Context, name string) (model.BoardState, error) {
	s.mu.RLock()
	data, ok := s.boards[name]
	s.mu.RUnlock()
	if !ok {
		return model.BoardState{}, fmt.Errorf("%w: %w: %s", model.ErrStorage, model.ErrBoardNotFound, name)
	}
	return boardfile.Unmarshal(data)
}

func (s *Storage) BoardExists(ctx context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.boards[name]
	return ok, nil
}

func (s *Storage) ListBoards(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.boards))
	for name := range s.boards {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

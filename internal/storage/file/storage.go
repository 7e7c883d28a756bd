package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mcoot/merge2048/internal/boardfile"
	"github.com/mcoot/merge2048/internal/model"
	"github.com/mcoot/merge2048/internal/storage"
)

// Storage keeps each board in its own text file
type Storage struct {
	cfg Config
}

// New creates a file storage rooted at cfg.Dir
func New(cfg Config) *Storage {
	if cfg.Extension == "" {
		cfg.Extension = DefaultExtension
	}
	return &Storage{cfg: cfg}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Path returns the file path a board name resolves to
func (s *Storage) Path(name string) string {
	if s.cfg.Dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.cfg.Dir, name)
}

// SaveBoard writes the board to a temporary file in the target directory and
// renames it into place, so a failed save never truncates an existing board.
// A replaced file keeps its permissions; new files get FileMode.
func (s *Storage) SaveBoard(ctx context.Context, name string, state model.BoardState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := boardfile.Marshal(state)
	if err != nil {
		return err
	}

	path := s.Path(name)
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return storageErr(name, err)
	}
	tmpName := tmp.Name()

	mode := FileMode
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		mode = info.Mode().Perm()
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return storageErr(name, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return storageErr(name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return storageErr(name, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return storageErr(name, err)
	}
	return nil
}

func (s *Storage) GetBoard(ctx context.Context, name string) (model.BoardState, error) {
	if err := ctx.Err(); err != nil {
		return model.BoardState{}, err
	}
	f, err := os.Open(s.Path(name))
	if err != nil {
		return model.BoardState{}, storageErr(name, err)
	}
	defer func() { _ = f.Close() }()

	state, err := boardfile.Decode(f)
	if err != nil {
		var formatErr *boardfile.FormatError
		if errors.As(err, &formatErr) {
			return model.BoardState{}, err
		}
		return model.BoardState{}, storageErr(name, err)
	}
	return state, nil
}

func (s *Storage) BoardExists(ctx context.Context, name string) (bool, error) {
	info, err := os.Stat(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, storageErr(name, err)
	}
	return info.Mode().IsRegular(), nil
}

// ListBoards returns the names of board files in the base directory
func (s *Storage) ListBoards(ctx context.Context) ([]string, error) {
	dir := s.cfg.Dir
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, storageErr(dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if filepath.Ext(entry.Name()) == s.cfg.Extension {
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

func storageErr(name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w: %s", model.ErrStorage, model.ErrBoardNotFound, name)
	}
	return fmt.Errorf("%w: %w", model.ErrStorage, err)
}

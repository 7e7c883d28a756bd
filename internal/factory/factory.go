package factory

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/merge2048/internal/dependencies/clock"
	"github.com/mcoot/merge2048/internal/dependencies/random"
	"github.com/mcoot/merge2048/internal/services/board"
	"github.com/mcoot/merge2048/internal/services/game"
	"github.com/mcoot/merge2048/internal/storage"
	filestorage "github.com/mcoot/merge2048/internal/storage/file"
	"github.com/mcoot/merge2048/internal/storage/memory"
)

// Storage type constants
const (
	StorageTypeFile   = "file"
	StorageTypeMemory = "memory"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	BoardService *board.Service

	logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("file" or "memory")
	// If empty, defaults to "file"
	StorageType string
	// FileConfig holds file storage settings
	FileConfig filestorage.Config
	// Seed makes tile spawning deterministic (optional)
	// If nil, a crypto random source is used
	Seed *uint64
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeFile
	}

	switch storageType {
	case StorageTypeFile:
		store = filestorage.New(cfg.FileConfig)
	case StorageTypeMemory:
		store = memory.New()
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'file' or 'memory'", storageType)
	}

	// Create external dependencies
	clk := clock.New()
	var rnd random.Random = random.New()
	if cfg.Seed != nil {
		rnd = random.NewSeeded(*cfg.Seed)
		logger.Debug("using seeded random source", slog.Uint64("seed", *cfg.Seed))
	}

	return newWithDependencies(store, clk, rnd, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	return &App{
		Storage:      store,
		Clock:        clk,
		Random:       rnd,
		BoardService: board.NewService(store, rnd, logger),
		logger:       logger,
	}
}

// NewSession creates a game controller playing b and saving to output
func (a *App) NewSession(b *board.Board, output string) *game.Controller {
	return game.NewController(a.BoardService, b, output, a.Clock, a.logger)
}

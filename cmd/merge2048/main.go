package main

import (
	"log/slog"
	"os"

	"github.com/mcoot/merge2048/internal/cli"
)

func main() {
	// Set up logging with JSON output on stderr so it never mixes with the board
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	os.Exit(cli.Execute(logger, level))
}

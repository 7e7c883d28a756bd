package model

import "errors"

// Common errors used across the application
var (
	// Grid errors
	ErrInvalidSize      = errors.New("invalid board size")
	ErrInvalidTile      = errors.New("invalid tile value")
	ErrInvalidScore     = errors.New("invalid score")
	ErrInvalidDirection = errors.New("invalid direction")

	// Board file errors
	ErrInvalidFormat = errors.New("invalid board file format")

	// Storage errors
	ErrStorage       = errors.New("board storage failure")
	ErrBoardNotFound = errors.New("board not found")
	ErrBoardExists   = errors.New("board already exists")

	// Session errors
	ErrUnknownCommand = errors.New("unknown command")
	ErrSessionEnded   = errors.New("session has ended")
)

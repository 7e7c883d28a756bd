package cli

import (
	"errors"

	"github.com/mcoot/merge2048/internal/model"
)

// Error codes reported to the user
const (
	CodeFormatError     = "FORMAT_ERROR"
	CodeBoardNotFound   = "BOARD_NOT_FOUND"
	CodeBoardExists     = "BOARD_EXISTS"
	CodeStorageError    = "STORAGE_ERROR"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeInternalError   = "INTERNAL_ERROR"
)

// Process exit codes
const (
	ExitOK              = 0
	ExitInternalError   = 1
	ExitInvalidArgument = 2
	ExitFormatError     = 3
	ExitStorageError    = 4
)

// CLIError is an error as shown to the user
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps a CLIError for JSON output
type ErrorResponse struct {
	Error CLIError `json:"error"`
}

// usageError marks bad flags or arguments
type usageError struct {
	err error
}

func newUsageError(err error) error {
	return &usageError{err: err}
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// toCLIError converts an error to its user-facing code
func toCLIError(err error) (CLIError, int) {
	var ue *usageError
	switch {
	case errors.As(err, &ue):
		return CLIError{CodeInvalidArgument, err.Error()}, ExitInvalidArgument
	case errors.Is(err, model.ErrInvalidFormat):
		return CLIError{CodeFormatError, err.Error()}, ExitFormatError
	case errors.Is(err, model.ErrBoardNotFound):
		return CLIError{CodeBoardNotFound, err.Error()}, ExitStorageError
	case errors.Is(err, model.ErrBoardExists):
		return CLIError{CodeBoardExists, err.Error()}, ExitStorageError
	case errors.Is(err, model.ErrStorage):
		return CLIError{CodeStorageError, err.Error()}, ExitStorageError
	case errors.Is(err, model.ErrInvalidDirection),
		errors.Is(err, model.ErrInvalidSize),
		errors.Is(err, model.ErrUnknownCommand):
		return CLIError{CodeInvalidArgument, err.Error()}, ExitInvalidArgument
	default:
		return CLIError{CodeInternalError, err.Error()}, ExitInternalError
	}
}

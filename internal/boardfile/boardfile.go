// Package boardfile reads and writes the plain-text board format:
//
//	<size>
//	<score>
//	<size*size tile values, row-major>
//
// Tokens are separated by any whitespace and anything after the last tile value
// is ignored. Encode writes one grid row per line with single spaces between
// values.
package boardfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mcoot/merge2048/internal/model"
)

// Field names used in FormatError
const (
	FieldSize  = "size"
	FieldScore = "score"
	FieldTile  = "tile"
)

// FormatError describes why board file content was rejected.
// errors.Is(err, model.ErrInvalidFormat) holds for every FormatError.
type FormatError struct {
	Field  string
	Index  int    // tile index in row-major order, -1 unless Field is FieldTile
	Token  string // offending token, empty at end of input
	Reason string
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("invalid board file: ")
	b.WriteString(e.Field)
	if e.Index >= 0 {
		fmt.Fprintf(&b, " %d", e.Index)
	}
	if e.Token != "" {
		fmt.Fprintf(&b, " %q", e.Token)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

// Is matches model.ErrInvalidFormat
func (e *FormatError) Is(target error) bool {
	return target == model.ErrInvalidFormat
}

func formatErr(field string, index int, token, reason string) *FormatError {
	return &FormatError{Field: field, Index: index, Token: token, Reason: reason}
}

// tokenizer yields whitespace-separated tokens
type tokenizer struct {
	scanner *bufio.Scanner
}

func newTokenizer(r io.Reader) *tokenizer {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	return &tokenizer{scanner: scanner}
}

// next returns the next token for field, or ok=false at end of input
func (t *tokenizer) next(field string, index int) (string, bool, error) {
	if t.scanner.Scan() {
		return t.scanner.Text(), true, nil
	}
	if err := t.scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return "", false, formatErr(field, index, "", "token too long")
		}
		return "", false, fmt.Errorf("read board file: %w", err)
	}
	return "", false, nil
}

// nextInt reads one integer token for field
func (t *tokenizer) nextInt(field string, index int) (int, string, error) {
	tok, ok, err := t.next(field, index)
	if err != nil {
		return 0, "", err
	}
	if !ok {
		return 0, "", formatErr(field, index, "", "unexpected end of input")
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, tok, formatErr(field, index, tok, "not an integer")
	}
	return v, tok, nil
}

// Decode parses a board file. Nothing is returned unless the whole grid is valid.
// Reading stops after the last tile value.
func Decode(r io.Reader) (model.BoardState, error) {
	t := newTokenizer(r)

	size, tok, err := t.nextInt(FieldSize, -1)
	if err != nil {
		return model.BoardState{}, err
	}
	if size < model.MinSize {
		return model.BoardState{}, formatErr(FieldSize, -1, tok, fmt.Sprintf("must be at least %d", model.MinSize))
	}

	score, tok, err := t.nextInt(FieldScore, -1)
	if err != nil {
		return model.BoardState{}, err
	}
	if score < 0 {
		return model.BoardState{}, formatErr(FieldScore, -1, tok, "must not be negative")
	}

	// Rows are grown as tokens arrive, so memory tracks the input rather than
	// the declared size.
	var cells [][]int
	for row := 0; row < size; row++ {
		var values []int
		for col := 0; col < size; col++ {
			i := row*size + col
			v, tok, err := t.nextInt(FieldTile, i)
			if err != nil {
				return model.BoardState{}, err
			}
			if !model.IsTileValue(v) {
				return model.BoardState{}, formatErr(FieldTile, i, tok, "must be 0 or a power of two")
			}
			values = append(values, v)
		}
		cells = append(cells, values)
	}

	return model.BoardState{Grid: &model.Grid{Size: size, Cells: cells}, Score: score}, nil
}

// Unmarshal decodes a board file held in memory
func Unmarshal(data []byte) (model.BoardState, error) {
	return Decode(bytes.NewReader(data))
}

// Encode writes state in board file form
func Encode(w io.Writer, state model.BoardState) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("encode board: %w", err)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n%d\n", state.Grid.Size, state.Score)
	for _, row := range state.Grid.Cells {
		for c, v := range row {
			if c > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(v))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Marshal encodes state into a new byte slice
func Marshal(state model.BoardState) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, state); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

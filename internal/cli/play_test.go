package cli

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/merge2048/internal/model"
	"github.com/mcoot/merge2048/internal/services/game"
)

func TestKeyReader(t *testing.T) {
	keys := newKeyReader(strings.NewReader("\x1b[A\x1b[B\x1bOC\x1b[Dkjhlx uRrsq\x03"))

	want := []struct {
		input game.Input
		ok    bool
	}{
		{game.MoveInput(model.Up), true},
		{game.MoveInput(model.Down), true},
		{game.MoveInput(model.Right), true},
		{game.MoveInput(model.Left), true},
		{game.MoveInput(model.Up), true},
		{game.MoveInput(model.Down), true},
		{game.MoveInput(model.Left), true},
		{game.MoveInput(model.Right), true},
		{game.Input{}, false},
		{game.Input{}, false},
		{game.UndoInput(), true},
		{game.RotateInput(false), true},
		{game.RotateInput(true), true},
		{game.SaveInput(), true},
		{game.QuitInput(), true},
		{game.QuitInput(), true},
	}

	for i, w := range want {
		input, ok, err := keys.next()
		require.NoError(t, err, "key %d", i)
		assert.Equal(t, w.ok, ok, "key %d", i)
		assert.Equal(t, w.input, input, "key %d", i)
	}

	_, _, err := keys.next()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestKeyReaderUnknownEscape(t *testing.T) {
	keys := newKeyReader(strings.NewReader("\x1b[Zq"))

	_, ok, err := keys.next()
	require.NoError(t, err)
	assert.False(t, ok)

	input, ok, err := keys.next()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, game.QuitInput(), input)
}

func TestCRLFWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &crlfWriter{w: &buf}

	n, err := w.Write([]byte("a\nb\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "a\r\nb\r\n", buf.String())
}

func TestRendererPlain(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, ColorNever)

	out := r.Board(BoardView{
		Size:   2,
		Score:  2060,
		Status: model.StatusPlaying,
		Grid:   [][]int{{2048, 0}, {4, 8}},
	})

	assert.Contains(t, out, "Score: 2060")
	assert.Contains(t, out, "2048")
	assert.Contains(t, out, ".")
	assert.NotContains(t, out, "Game Over!")
	assert.NotContains(t, out, "\x1b[")
}

func TestRendererGameOverBanner(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, ColorNever)

	out := r.Board(BoardView{Size: 2, Status: model.StatusGameOver, Grid: [][]int{{2, 4}, {4, 2}}})
	assert.Contains(t, out, "Game Over!")
}

func TestRendererColour(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, ColorAlways)

	out := r.Board(BoardView{Size: 2, Grid: [][]int{{2, 0}, {0, 0}}})
	assert.Contains(t, out, "\x1b[")
}

func TestCellWidth(t *testing.T) {
	assert.Equal(t, minCellWidth, cellWidth([][]int{{2, 2048}}))
	assert.Equal(t, 8, cellWidth([][]int{{131072}}))
}

func TestTileColours(t *testing.T) {
	assert.Equal(t, colorEmpty, tileBackground(0))
	assert.Equal(t, tileColors[8], tileBackground(8))
	assert.Equal(t, colorOther, tileBackground(4096))
	assert.Equal(t, colorValueDark, tileForeground(4))
	assert.Equal(t, colorValueLight, tileForeground(8))
}

package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mcoot/merge2048/internal/model"
	"github.com/mcoot/merge2048/internal/services/board"
	"github.com/mcoot/merge2048/internal/services/game"
)

const (
	clearScreen = "\x1b[H\x1b[2J"
	keyHelp     = "arrows/hjkl move  u undo  r/R rotate  s save  q quit"

	keyCtrlC  = 0x03
	keyCtrlD  = 0x04
	keyEscape = 0x1b
)

func (e *env) runPlay(ctx context.Context) error {
	b, err := e.startBoard(ctx)
	if err != nil {
		return err
	}
	session := e.app.NewSession(b, e.cfg.Output)

	if f, ok := e.opts.In.(*os.File); ok && e.cfg.Format == FormatText && term.IsTerminal(int(f.Fd())) {
		err = e.playRaw(ctx, session, f)
	} else {
		err = e.playLines(ctx, session, e.opts.In)
	}
	if err != nil {
		return err
	}

	e.output.Print(newSummaryView(session.Summary()))
	return nil
}

// startBoard loads -i if given, otherwise creates a board of -s
func (e *env) startBoard(ctx context.Context) (*board.Board, error) {
	if e.cfg.Input == "" {
		return e.app.BoardService.NewBoard(e.cfg.Size)
	}
	b, loaded, err := e.app.BoardService.LoadOrNew(ctx, e.cfg.Input, e.cfg.Size)
	if err != nil {
		return nil, err
	}
	if !loaded {
		e.output.PrintWarning(fmt.Sprintf("%s is not a valid board file, starting a new %dx%d board",
			e.cfg.Input, e.cfg.Size, e.cfg.Size))
	}
	return b, nil
}

func sessionView(session *game.Controller) BoardView {
	return newBoardView(session.State(), session.IsGameOver(), session.CanUndo())
}

// playLines reads one command per line until quit or end of input
func (e *env) playLines(ctx context.Context, session *game.Controller, in io.Reader) error {
	e.output.Print(sessionView(session))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		input, err := game.ParseCommand(line)
		if err != nil {
			e.output.PrintError(err)
			continue
		}
		events, err := session.Handle(ctx, input)
		if err != nil {
			return err
		}
		if session.Ended() {
			return nil
		}
		e.output.PrintEvents(events)
		e.output.Print(sessionView(session))
	}
	return scanner.Err()
}

// playRaw reads single key presses with the terminal in raw mode
func (e *env) playRaw(ctx context.Context, session *game.Controller, f *os.File) error {
	fd := int(f.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, state) }()

	out := e.output.withWriter(&crlfWriter{w: e.opts.Out})
	keys := newKeyReader(f)
	var events []model.Event

	for {
		_, _ = io.WriteString(e.opts.Out, clearScreen)
		out.Print(sessionView(session))
		out.PrintEvents(events)
		out.PrintMessage(keyHelp)

		input, ok, err := keys.next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if !ok {
			events = nil
			continue
		}

		events, err = session.Handle(ctx, input)
		if err != nil {
			return err
		}
		if session.Ended() {
			_, _ = io.WriteString(e.opts.Out, "\r\n")
			return nil
		}
	}
}

// keyReader decodes key presses from a raw terminal
type keyReader struct {
	r *bufio.Reader
}

func newKeyReader(r io.Reader) *keyReader {
	return &keyReader{r: bufio.NewReader(r)}
}

// next returns the input for the next key. ok is false for keys with no
// binding.
func (k *keyReader) next() (input game.Input, ok bool, err error) {
	c, err := k.r.ReadByte()
	if err != nil {
		return game.Input{}, false, err
	}

	switch c {
	case keyEscape:
		return k.escape()
	case 'k':
		return game.MoveInput(model.Up), true, nil
	case 'j':
		return game.MoveInput(model.Down), true, nil
	case 'h':
		return game.MoveInput(model.Left), true, nil
	case 'l':
		return game.MoveInput(model.Right), true, nil
	case 'u', 'U':
		return game.UndoInput(), true, nil
	case 'r':
		return game.RotateInput(true), true, nil
	case 'R':
		return game.RotateInput(false), true, nil
	case 's', 'S':
		return game.SaveInput(), true, nil
	case 'q', 'Q', keyCtrlC, keyCtrlD:
		return game.QuitInput(), true, nil
	}
	return game.Input{}, false, nil
}

// escape decodes the arrow key sequences ESC [ A-D and ESC O A-D
func (k *keyReader) escape() (game.Input, bool, error) {
	intro, err := k.r.ReadByte()
	if err != nil {
		return game.Input{}, false, err
	}
	if intro != '[' && intro != 'O' {
		return game.Input{}, false, nil
	}
	code, err := k.r.ReadByte()
	if err != nil {
		return game.Input{}, false, err
	}

	switch code {
	case 'A':
		return game.MoveInput(model.Up), true, nil
	case 'B':
		return game.MoveInput(model.Down), true, nil
	case 'C':
		return game.MoveInput(model.Right), true, nil
	case 'D':
		return game.MoveInput(model.Left), true, nil
	}
	return game.Input{}, false, nil
}

// crlfWriter translates line feeds for a terminal in raw mode
type crlfWriter struct {
	w io.Writer
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mcoot/merge2048/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format   string
	out      io.Writer
	errOut   io.Writer
	renderer *Renderer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer, renderer *Renderer) *Output {
	return &Output{format: format, out: out, errOut: errOut, renderer: renderer}
}

// withWriter returns a copy of o writing to out
func (o *Output) withWriter(out io.Writer) *Output {
	c := *o
	c.out = out
	return &c
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == FormatJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error and returns the exit code for it
func (o *Output) PrintError(err error) int {
	cliErr, code := toCLIError(err)
	if o.format == FormatJSON {
		data, _ := json.Marshal(ErrorResponse{Error: cliErr})
		_, _ = fmt.Fprintln(o.errOut, string(data))
	} else {
		_, _ = fmt.Fprintf(o.errOut, "Error: %s\n", cliErr.Message)
	}
	return code
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == FormatJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.out, string(data))
	} else {
		_, _ = fmt.Fprintln(o.out, msg)
	}
}

// PrintWarning outputs a non-fatal problem on the error stream
func (o *Output) PrintWarning(msg string) {
	if o.format == FormatJSON {
		data, _ := json.Marshal(map[string]string{"warning": msg})
		_, _ = fmt.Fprintln(o.errOut, string(data))
	} else {
		_, _ = fmt.Fprintf(o.errOut, "Warning: %s\n", msg)
	}
}

// PrintEvents outputs the events of one input. In text mode only events the
// redrawn board does not already show are printed.
func (o *Output) PrintEvents(events []model.Event) {
	for _, e := range events {
		if o.format == FormatJSON {
			data, _ := json.Marshal(newEventView(e))
			_, _ = fmt.Fprintln(o.out, string(data))
			continue
		}
		if msg := eventMessage(e); msg != "" {
			_, _ = fmt.Fprintln(o.out, msg)
		}
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case BoardView:
		o.printBoard(v)
	case MoveResult:
		o.printMoveResult(v)
	case ValidationReport:
		o.printValidationReport(v)
	case SummaryView:
		o.printSummary(v)
	case BoardList:
		o.printBoardList(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// BoardView is the output form of a board
type BoardView struct {
	Size    int               `json:"size"`
	Score   int               `json:"score"`
	MaxTile int               `json:"max_tile"`
	Status  model.BoardStatus `json:"status"`
	CanUndo bool              `json:"can_undo"`
	Grid    [][]int           `json:"grid"`
}

// MoveStep is the outcome of one requested move
type MoveStep struct {
	Direction model.Direction `json:"direction"`
	Result    string          `json:"result"` // moved, blocked or ignored
	Delta     int             `json:"score_delta,omitempty"`
}

// MoveResult is the output of the move command
type MoveResult struct {
	Steps  []MoveStep `json:"steps"`
	Board  BoardView  `json:"board"`
	Output string     `json:"output"`
}

// ValidationResult is the outcome of checking one board file
type ValidationResult struct {
	File  string `json:"file"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ValidationReport is the output of the validate command
type ValidationReport struct {
	Results []ValidationResult `json:"results"`
}

// BoardList is the output of the list command
type BoardList struct {
	Dir    string   `json:"dir"`
	Boards []string `json:"boards"`
}

// SummaryView is the output form of a finished play session
type SummaryView struct {
	ID       model.SessionID   `json:"id"`
	Status   model.BoardStatus `json:"status"`
	Score    int               `json:"score"`
	MaxTile  int               `json:"max_tile"`
	Moves    int               `json:"moves"`
	Undos    int               `json:"undos"`
	Duration string            `json:"duration"`
}

func newSummaryView(s model.GameSummary) SummaryView {
	return SummaryView{
		ID:       s.ID,
		Status:   s.Status,
		Score:    s.Score,
		MaxTile:  s.MaxTile,
		Moves:    s.Moves,
		Undos:    s.Undos,
		Duration: s.Duration.Round(time.Second).String(),
	}
}

type eventView struct {
	Type    model.EventType `json:"type"`
	Payload any             `json:"payload,omitempty"`
}

func newEventView(e model.Event) eventView {
	return eventView{Type: e.Type, Payload: e.Payload}
}

func eventMessage(e model.Event) string {
	switch e.Type {
	case model.EventMoveBlocked:
		if p, ok := e.Payload.(model.MovedPayload); ok {
			return fmt.Sprintf("Cannot move %s", p.Direction)
		}
		return "Cannot move"
	case model.EventUndone:
		return "Undid last move"
	case model.EventUndoSkipped:
		return "Nothing to undo"
	case model.EventRotated:
		return "Rotating board"
	case model.EventSaved:
		if p, ok := e.Payload.(model.SavedPayload); ok {
			return "Saving board to " + p.Name
		}
	case model.EventSaveFailed:
		if p, ok := e.Payload.(model.SavedPayload); ok {
			return fmt.Sprintf("Could not save board to %s: %s", p.Name, p.Error)
		}
	case model.EventInputIgnored:
		return "Game over: undo or quit"
	}
	return ""
}

func (o *Output) printBoard(v BoardView) {
	_, _ = fmt.Fprintln(o.out, o.renderer.Board(v))
}

func (o *Output) printMoveResult(r MoveResult) {
	for _, step := range r.Steps {
		switch step.Result {
		case moveResultMoved:
			_, _ = fmt.Fprintf(o.out, "%s: +%d\n", step.Direction, step.Delta)
		case moveResultBlocked:
			_, _ = fmt.Fprintf(o.out, "%s: blocked\n", step.Direction)
		default:
			_, _ = fmt.Fprintf(o.out, "%s: ignored, game over\n", step.Direction)
		}
	}
	o.printBoard(r.Board)
	_, _ = fmt.Fprintf(o.out, "Saved to %s\n", r.Output)
}

func (o *Output) printValidationReport(r ValidationReport) {
	for _, res := range r.Results {
		if res.Valid {
			_, _ = fmt.Fprintf(o.out, "%s: ok\n", res.File)
		} else {
			_, _ = fmt.Fprintf(o.out, "%s: %s\n", res.File, res.Error)
		}
	}
}

func (o *Output) printBoardList(l BoardList) {
	if len(l.Boards) == 0 {
		_, _ = fmt.Fprintf(o.out, "No boards in %s\n", l.Dir)
		return
	}
	for _, name := range l.Boards {
		_, _ = fmt.Fprintln(o.out, name)
	}
}

func (o *Output) printSummary(s SummaryView) {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\n", s.ID)
	fmt.Fprintf(&b, "Status: %s\n", s.Status)
	fmt.Fprintf(&b, "Score: %d\n", s.Score)
	fmt.Fprintf(&b, "Max Tile: %d\n", s.MaxTile)
	fmt.Fprintf(&b, "Moves: %d (undos: %d)\n", s.Moves, s.Undos)
	fmt.Fprintf(&b, "Duration: %s\n", s.Duration)
	_, _ = io.WriteString(o.out, b.String())
}

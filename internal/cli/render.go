package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mcoot/merge2048/internal/model"
)

var (
	colorEmpty      = lipgloss.Color("#cdc1b4")
	colorOther      = lipgloss.Color("#000000")
	colorValueDark  = lipgloss.Color("#776e65")
	colorValueLight = lipgloss.Color("#f9f6f2")
	colorGameOver   = lipgloss.Color("#eee4da")
	colorFrame      = lipgloss.Color("#bbada0")

	tileColors = map[int]lipgloss.Color{
		2:    lipgloss.Color("#eee4da"),
		4:    lipgloss.Color("#ede0c8"),
		8:    lipgloss.Color("#f2b179"),
		16:   lipgloss.Color("#f59563"),
		32:   lipgloss.Color("#f67c5f"),
		64:   lipgloss.Color("#f65e3b"),
		128:  lipgloss.Color("#edcf72"),
		256:  lipgloss.Color("#edcc61"),
		512:  lipgloss.Color("#edc850"),
		1024: lipgloss.Color("#edc53f"),
		2048: lipgloss.Color("#edc22e"),
	}
)

const minCellWidth = 6

// Renderer draws boards as coloured tile grids
type Renderer struct {
	r *lipgloss.Renderer
}

// NewRenderer creates a Renderer for w. ColorAuto detects the terminal's
// capabilities; non-terminals get plain text.
func NewRenderer(w io.Writer, color string) *Renderer {
	r := lipgloss.NewRenderer(w)
	switch color {
	case ColorAlways:
		r.SetColorProfile(termenv.TrueColor)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{r: r}
}

func tileBackground(value int) lipgloss.Color {
	if value == 0 {
		return colorEmpty
	}
	if c, ok := tileColors[value]; ok {
		return c
	}
	return colorOther
}

func tileForeground(value int) lipgloss.Color {
	if value == 2 || value == 4 {
		return colorValueDark
	}
	return colorValueLight
}

func cellWidth(grid [][]int) int {
	width := minCellWidth
	for _, row := range grid {
		for _, v := range row {
			if w := len(strconv.Itoa(v)) + 2; w > width {
				width = w
			}
		}
	}
	return width
}

// Board renders the grid with a score header and, when over, a banner
func (r *Renderer) Board(view BoardView) string {
	width := cellWidth(view.Grid)

	rows := make([]string, 0, len(view.Grid))
	for _, row := range view.Grid {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			text := "."
			if v != 0 {
				text = strconv.Itoa(v)
			}
			style := r.r.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Bold(true).
				Background(tileBackground(v)).
				Foreground(tileForeground(v))
			cells = append(cells, style.Render(text))
		}
		rows = append(rows, strings.Join(cells, " "))
	}

	grid := r.r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorFrame).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	header := r.r.NewStyle().Bold(true).Render("Score: " + strconv.Itoa(view.Score))
	parts := []string{header, grid}

	if view.Status == model.StatusGameOver {
		banner := r.r.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(colorGameOver).
			Foreground(colorValueDark).
			Render("Game Over!")
		parts = append(parts, banner)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

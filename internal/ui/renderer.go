package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/foodmaze/internal/game"
	"github.com/samdwyer/foodmaze/internal/gamedata"
	"github.com/samdwyer/foodmaze/internal/maze"
)

// cellWidth is the number of terminal columns per grid cell, so cells look square.
const cellWidth = 2

const (
	playerRune = '@'
	foodRune   = '*'
	hintRune   = '·'
)

// Frame is everything the renderer needs for one redraw.
type Frame struct {
	Snapshot game.Snapshot
	Message  string
	Hint     []maze.Position // Optional path overlay
	Variant  string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen  *Screen
	palette gamedata.Palette
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette gamedata.Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette}
}

// Render draws the maze, the player, the food and the status lines.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()

	snap := f.Snapshot
	y := 0
	r.drawText(0, y, r.header(f), r.textStyle().Bold(true))
	y += 2

	if snap.Grid != nil {
		r.drawGrid(0, y, snap.Grid)
		for _, p := range f.Hint {
			r.drawCell(0, y, p, hintRune, r.floorStyle(p).Foreground(r.palette.Highlight))
		}
		r.drawCell(0, y, snap.Food, foodRune, r.floorStyle(snap.Food).Foreground(r.palette.Food).Bold(true))
		r.drawCell(0, y, snap.Player, playerRune, r.floorStyle(snap.Player).Foreground(r.palette.Player).Bold(true))
		y += snap.Grid.Rows + 1
	}

	r.drawText(0, y, f.Message, r.textStyle().Foreground(r.palette.Highlight))
	r.drawText(0, y+2, "arrows/wasd move  enter/space start  r restart  h hint  q quit", r.textStyle().Dim(true))

	r.screen.Show()
}

func (r *Renderer) header(f Frame) string {
	snap := f.Snapshot
	round := snap.Level
	if round > snap.LevelCount {
		round = snap.LevelCount
	}

	timer := "--"
	if snap.State == game.StateInLevel || snap.State == game.StateLevelFailed {
		timer = fmt.Sprintf("%ds", snap.TimeRemaining)
	}
	return fmt.Sprintf("FoodMaze [%s]  round %d / %d  time %s  moves %d",
		f.Variant, round, snap.LevelCount, timer, snap.Moves)
}

func (r *Renderer) drawGrid(x0, y0 int, g *maze.Grid) {
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			p := maze.Position{Row: row, Col: col}
			if g.At(p) == maze.CellWall {
				r.drawCell(x0, y0, p, ' ', tcell.StyleDefault.Background(r.palette.Wall))
			} else {
				r.drawCell(x0, y0, p, ' ', r.floorStyle(p))
			}
		}
	}
}

// drawCell fills one grid cell, putting ch in its first column.
func (r *Renderer) drawCell(x0, y0 int, p maze.Position, ch rune, style tcell.Style) {
	x := x0 + p.Col*cellWidth
	y := y0 + p.Row
	r.screen.SetContent(x, y, ch, style)
	for i := 1; i < cellWidth; i++ {
		r.screen.SetContent(x+i, y, ' ', style)
	}
}

// floorStyle returns the checkerboard background for an open cell.
func (r *Renderer) floorStyle(p maze.Position) tcell.Style {
	bg := r.palette.Floor
	if (p.Row+p.Col)%2 != 0 {
		bg = r.palette.FloorAlt
	}
	return tcell.StyleDefault.Background(bg).Foreground(tcell.ColorBlack)
}

func (r *Renderer) textStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(r.palette.Text)
}

// drawText writes msg starting at (x, y).
func (r *Renderer) drawText(x, y int, msg string, style tcell.Style) {
	for i, ch := range []rune(msg) {
		r.screen.SetContent(x+i, y, ch, style)
	}
}

package maze

import (
	"errors"
	"fmt"
	"strings"
)

// Grid is a fixed-size maze. Border cells are always walls.
type Grid struct {
	Rows  int
	Cols  int
	Cells [][]Cell
}

// NewGrid creates a grid with solid borders and an open interior.
func NewGrid(rows, cols int) *Grid {
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
		for c := range cells[r] {
			if r == 0 || r == rows-1 || c == 0 || c == cols-1 {
				cells[r][c] = CellWall
			} else {
				cells[r][c] = CellEmpty
			}
		}
	}

	return &Grid{
		Rows:  rows,
		Cols:  cols,
		Cells: cells,
	}
}

// ParseGrid builds a grid from newline-separated rows of '#' and '.'.
// Leading and trailing blank lines and surrounding spaces are ignored.
func ParseGrid(s string) (*Grid, error) {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, errors.New("empty grid")
	}

	cols := len(lines[0])
	g := &Grid{Rows: len(lines), Cols: cols, Cells: make([][]Cell, len(lines))}
	for r, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("row %d has %d cells, want %d", r, len(line), cols)
		}
		g.Cells[r] = make([]Cell, cols)
		for c, ch := range line {
			switch Cell(ch) {
			case CellWall, CellEmpty:
				g.Cells[r][c] = Cell(ch)
			default:
				return nil, fmt.Errorf("invalid cell %q at (%d,%d)", ch, r, c)
			}
		}
	}
	return g, nil
}

// MustParseGrid is like ParseGrid but panics on error.
func MustParseGrid(s string) *Grid {
	g, err := ParseGrid(s)
	if err != nil {
		panic(err)
	}
	return g
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([][]Cell, g.Rows)
	for r := range cells {
		cells[r] = make([]Cell, g.Cols)
		copy(cells[r], g.Cells[r])
	}
	return &Grid{Rows: g.Rows, Cols: g.Cols, Cells: cells}
}

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.Rows && p.Col >= 0 && p.Col < g.Cols
}

// At returns the cell at p. Out-of-bounds positions read as walls.
func (g *Grid) At(p Position) Cell {
	if !g.InBounds(p) {
		return CellWall
	}
	return g.Cells[p.Row][p.Col]
}

// Set overwrites the cell at p. Out-of-bounds positions are ignored.
func (g *Grid) Set(p Position, c Cell) {
	if g.InBounds(p) {
		g.Cells[p.Row][p.Col] = c
	}
}

// IsOpen returns true if p is in bounds and empty.
func (g *Grid) IsOpen(p Position) bool {
	return g.At(p).IsOpen()
}

// IsBorder reports whether p lies on the outer ring of the grid.
func (g *Grid) IsBorder(p Position) bool {
	return p.Row == 0 || p.Row == g.Rows-1 || p.Col == 0 || p.Col == g.Cols-1
}

// FirstOpenInterior scans interior cells row-major and returns the first empty one.
func (g *Grid) FirstOpenInterior() (Position, bool) {
	for r := 1; r < g.Rows-1; r++ {
		for c := 1; c < g.Cols-1; c++ {
			if g.Cells[r][c].IsOpen() {
				return Position{Row: r, Col: c}, true
			}
		}
	}
	return Position{}, false
}

// OpenCount returns the number of empty cells.
func (g *Grid) OpenCount() int {
	n := 0
	for _, row := range g.Cells {
		for _, c := range row {
			if c.IsOpen() {
				n++
			}
		}
	}
	return n
}

// String renders the grid as rows of '#' and '.'.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.Rows * (g.Cols + 1))
	for r, row := range g.Cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			b.WriteRune(c.Rune())
		}
	}
	return b.String()
}

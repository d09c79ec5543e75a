package maze

import "fmt"

// Position is a (row, column) pair on a grid.
type Position struct {
	Row, Col int
}

// Start is the designated start cell of every generated grid.
var Start = Position{Row: 1, Col: 1}

// Add returns p offset by the given deltas.
func (p Position) Add(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// String returns a human-readable "(row,col)" form.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// neighborDeltas lists the 4-connected neighbor offsets (down, up, right, left).
var neighborDeltas = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

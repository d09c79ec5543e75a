// Package maze provides grid generation and reachability queries.
package maze

// Cell represents a single grid cell.
type Cell rune

const (
	// CellWall represents an impassable wall cell.
	CellWall Cell = '#'
	// CellEmpty represents an open cell the player can stand on.
	CellEmpty Cell = '.'
)

// IsOpen returns true if the cell can be walked on.
func (c Cell) IsOpen() bool {
	return c == CellEmpty
}

// Rune returns the cell's display character.
func (c Cell) Rune() rune {
	return rune(c)
}

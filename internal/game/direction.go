package game

// Direction is a player move.
type Direction int

const (
	// Up moves one row toward row 0.
	Up Direction = iota
	// Down moves one row toward the last row.
	Down
	// Left moves one column toward column 0.
	Left
	// Right moves one column toward the last column.
	Right
)

// Delta returns the row and column offset of the move.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	default:
		return 0, 0
	}
}

// Valid reports whether d is one of the four moves.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Package game provides the level session state machine.
package game

// State represents where a session is in its lifecycle.
type State int

const (
	// StateIdle means no game has been started yet.
	StateIdle State = iota
	// StateAwaitingStart is the short "get ready" pause before the first round.
	StateAwaitingStart
	// StateInLevel is active play: moves and ticks are accepted.
	StateInLevel
	// StateLevelCleared is the pause between eating the food and the next round.
	StateLevelCleared
	// StateLevelFailed is terminal: the countdown ran out.
	StateLevelFailed
	// StateGameWon is terminal: every round was cleared.
	StateGameWon
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingStart:
		return "awaiting_start"
	case StateInLevel:
		return "in_level"
	case StateLevelCleared:
		return "level_cleared"
	case StateLevelFailed:
		return "level_failed"
	case StateGameWon:
		return "game_won"
	default:
		return "unknown"
	}
}

// Terminal reports whether only a restart can leave this state.
func (s State) Terminal() bool {
	return s == StateLevelFailed || s == StateGameWon
}

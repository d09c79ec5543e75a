package app

import (
	"fmt"

	"github.com/samdwyer/foodmaze/internal/game"
)

const (
	msgIdle    = "Press Enter to start."
	msgReady   = "Get ready..."
	msgCleared = "Nice! You ate the food. Loading next map..."
	msgFailed  = "Time's up! You failed to eat the food. Game over. Press r to retry."
	msgRunning = "Game already running. Press r to restart."
)

// status tracks the latest snapshot and the line shown under the maze.
type status struct {
	snap    game.Snapshot
	message string
}

func newStatus() *status {
	return &status{message: msgIdle}
}

func (st *status) OnStateChanged(s game.Snapshot) {
	prev := st.snap
	st.snap = s

	// A new round starts when the session enters InLevel, or when a restart
	// replaces a running round directly.
	newRound := s.State == game.StateInLevel &&
		(prev.State != game.StateInLevel || prev.GameID != s.GameID || prev.Level != s.Level)
	if newRound {
		st.message = fmt.Sprintf("Round %d - go get the food!", s.Level+1)
	}
}

func (st *status) OnGameStarted() {
	st.message = msgReady
}

func (st *status) OnLevelCleared(int) {
	st.message = msgCleared
}

func (st *status) OnGameWon() {
	st.message = fmt.Sprintf("YOU WIN! You completed %d rounds. Press r to play again.", st.snap.LevelCount)
}

func (st *status) OnLevelFailed() {
	st.message = msgFailed
}

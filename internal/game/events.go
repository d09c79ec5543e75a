package game

import "github.com/samdwyer/foodmaze/internal/maze"

// Snapshot is the session state delivered to listeners after every mutation.
// Grid is the session's working copy and must not be modified.
type Snapshot struct {
	GameID        string
	State         State
	Grid          *maze.Grid // nil until the first round is set up
	Player        maze.Position
	Food          maze.Position
	Moves         int
	TimeRemaining int // Seconds
	Level         int // 0-based index of the current round; LevelCount once won
	LevelCount    int
	Running       bool
}

// Listener receives session notifications. Callbacks run synchronously on
// the goroutine that drives the session and must not call back into it.
type Listener interface {
	OnStateChanged(s Snapshot)
	OnGameStarted()
	OnLevelCleared(level int)
	OnGameWon()
	OnLevelFailed()
}

// NopListener ignores every notification. Embed it to implement only some callbacks.
type NopListener struct{}

// OnStateChanged does nothing.
func (NopListener) OnStateChanged(Snapshot) {}

// OnGameStarted does nothing.
func (NopListener) OnGameStarted() {}

// OnLevelCleared does nothing.
func (NopListener) OnLevelCleared(int) {}

// OnGameWon does nothing.
func (NopListener) OnGameWon() {}

// OnLevelFailed does nothing.
func (NopListener) OnLevelFailed() {}

// Listeners fans notifications out to each listener in order.
type Listeners []Listener

// OnStateChanged forwards s to every listener.
func (ls Listeners) OnStateChanged(s Snapshot) {
	for _, l := range ls {
		l.OnStateChanged(s)
	}
}

// OnGameStarted notifies every listener.
func (ls Listeners) OnGameStarted() {
	for _, l := range ls {
		l.OnGameStarted()
	}
}

// OnLevelCleared forwards the cleared level index to every listener.
func (ls Listeners) OnLevelCleared(level int) {
	for _, l := range ls {
		l.OnLevelCleared(level)
	}
}

// OnGameWon notifies every listener.
func (ls Listeners) OnGameWon() {
	for _, l := range ls {
		l.OnGameWon()
	}
}

// OnLevelFailed notifies every listener.
func (ls Listeners) OnLevelFailed() {
	for _, l := range ls {
		l.OnLevelFailed()
	}
}

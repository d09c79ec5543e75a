package game

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/foodmaze/internal/maze"
)

// corridor has exactly one open cell besides the start, so food is always (1,2).
const corridor = `
####
#..#
####
`

// recorder is a Listener that keeps every notification.
type recorder struct {
	snapshots []Snapshot
	started   int
	cleared   []int
	won       int
	failed    int
}

func (r *recorder) OnStateChanged(s Snapshot) { r.snapshots = append(r.snapshots, s) }
func (r *recorder) OnGameStarted()            { r.started++ }
func (r *recorder) OnLevelCleared(level int)  { r.cleared = append(r.cleared, level) }
func (r *recorder) OnGameWon()                { r.won++ }
func (r *recorder) OnLevelFailed()            { r.failed++ }

func (r *recorder) last() Snapshot {
	return r.snapshots[len(r.snapshots)-1]
}

// fixedLevels hands out the same grid for every level.
type fixedLevels struct {
	grid  *maze.Grid
	calls int
}

func (f *fixedLevels) GenerateLevels(_ context.Context, n int) ([]*maze.Grid, error) {
	f.calls++
	grids := make([]*maze.Grid, n)
	for i := range grids {
		grids[i] = f.grid
	}
	return grids, nil
}

type failingLevels struct{ err error }

func (f failingLevels) GenerateLevels(context.Context, int) ([]*maze.Grid, error) {
	return nil, f.err
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols = 3, 4
	cfg.MinOpenFraction = 0
	cfg.StartDelay = 0
	cfg.Seed = 42
	return cfg
}

func newCorridorSession(t *testing.T, cfg Config) (*Session, *ManualScheduler, *recorder) {
	t.Helper()
	sched := NewManualScheduler()
	rec := &recorder{}
	s, err := NewSession(cfg, sched,
		WithListener(rec),
		WithLevelSource(&fixedLevels{grid: maze.MustParseGrid(corridor)}),
	)
	require.NoError(t, err)
	return s, sched, rec
}

func TestStartGameSetsUpFirstLevel(t *testing.T) {
	s, _, rec := newCorridorSession(t, testConfig())
	require.NoError(t, s.StartGame(context.Background()))

	assert.Equal(t, StateInLevel, s.State())
	assert.Equal(t, 1, rec.started)
	assert.NotEmpty(t, s.GameID())

	snap := s.Snapshot()
	assert.Equal(t, maze.Start, snap.Player)
	assert.Equal(t, maze.Position{Row: 1, Col: 2}, snap.Food)
	assert.Equal(t, 0, snap.Moves)
	assert.Equal(t, 20, snap.TimeRemaining)
	assert.Equal(t, 0, snap.Level)
	assert.Equal(t, 5, snap.LevelCount)
	assert.True(t, snap.Running)
	require.NotNil(t, snap.Grid)
	assert.Equal(t, snap, rec.last())
}

func TestWinAllLevels(t *testing.T) {
	s, sched, rec := newCorridorSession(t, testConfig())
	require.NoError(t, s.StartGame(context.Background()))

	for level := 0; level < 5; level++ {
		require.Equal(t, StateInLevel, s.State(), "level %d", level)
		require.Equal(t, level, s.Snapshot().Level)

		s.AttemptMove(Right)

		snap := s.Snapshot()
		assert.Equal(t, level+1, snap.Level, "level index advances by exactly one")
		assert.False(t, snap.Running)
		if level < 4 {
			assert.Equal(t, StateLevelCleared, s.State())
			sched.Advance(700 * time.Millisecond)
		}
	}

	assert.Equal(t, StateGameWon, s.State())
	assert.Equal(t, 1, rec.won)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, rec.cleared)
	assert.Equal(t, 0, rec.failed)
	assert.False(t, s.Snapshot().Running)
	assert.Equal(t, 5, s.Snapshot().Level)
	assert.Zero(t, sched.Pending(), "no timers left after winning")

	// Terminal: more input and time change nothing.
	s.AttemptMove(Left)
	sched.Advance(time.Minute)
	assert.Equal(t, StateGameWon, s.State())
	assert.Equal(t, 1, rec.won)
}

func TestRejectedMovesLeaveStateUnchanged(t *testing.T) {
	s, _, rec := newCorridorSession(t, testConfig())
	require.NoError(t, s.StartGame(context.Background()))

	before := s.Snapshot()
	emitted := len(rec.snapshots)

	for _, dir := range []Direction{Up, Down, Left, Direction(42)} {
		s.AttemptMove(dir)
	}

	assert.Equal(t, before, s.Snapshot())
	assert.Len(t, rec.snapshots, emitted, "rejected moves must not emit")
}

func TestMoveIntoGridEdgeIsRejected(t *testing.T) {
	// Hand-made grid with an open border cell next to the start.
	grid := maze.MustParseGrid(`
#####
...##
#.#.#
#####
`)
	edge := maze.Position{Row: 1, Col: 0}
	cfg := testConfig()
	cfg.Rows, cfg.Cols = 4, 5

	// Pick a seed whose food is not on the edge cell, so stepping there keeps the round running.
	var s *Session
	for seed := int64(1); seed <= 50; seed++ {
		candidate, err := NewSession(cfg, NewManualScheduler(),
			WithLevelSource(&fixedLevels{grid: grid}),
			WithRand(rand.New(rand.NewSource(seed))),
		)
		require.NoError(t, err)
		require.NoError(t, candidate.StartGame(context.Background()))
		if candidate.Snapshot().Food != edge {
			s = candidate
			break
		}
	}
	require.NotNil(t, s, "no seed placed food away from the edge")

	s.AttemptMove(Left)
	require.Equal(t, edge, s.Snapshot().Player)

	moves := s.Snapshot().Moves
	s.AttemptMove(Left) // off the grid
	assert.Equal(t, edge, s.Snapshot().Player)
	assert.Equal(t, moves, s.Snapshot().Moves)
	assert.True(t, s.Snapshot().Running)
}

func TestMovesIgnoredWhileNotRunning(t *testing.T) {
	s, sched, rec := newCorridorSession(t, testConfig())

	s.AttemptMove(Right)
	s.Tick()
	assert.Equal(t, StateIdle, s.State())
	assert.Empty(t, rec.snapshots)

	require.NoError(t, s.StartGame(context.Background()))
	s.AttemptMove(Right)
	require.Equal(t, StateLevelCleared, s.State())

	// During the between-round pause nothing moves and the clock is frozen.
	snap := s.Snapshot()
	s.AttemptMove(Left)
	s.Tick()
	assert.Equal(t, snap, s.Snapshot())

	sched.Advance(700 * time.Millisecond)
	assert.Equal(t, StateInLevel, s.State())
	assert.Equal(t, 1, s.Snapshot().Level)
}

func TestCountdownFailsExactlyOnce(t *testing.T) {
	s, _, rec := newCorridorSession(t, testConfig())
	require.NoError(t, s.StartGame(context.Background()))

	for i := 1; i <= 20; i++ {
		s.Tick()
		if i < 20 {
			require.Equal(t, 0, rec.failed, "failed early at tick %d", i)
			require.Equal(t, 20-i, s.Snapshot().TimeRemaining)
		}
	}

	assert.Equal(t, 1, rec.failed)
	assert.Equal(t, StateLevelFailed, s.State())
	assert.False(t, s.Snapshot().Running)
	assert.Equal(t, 0, s.Snapshot().TimeRemaining)

	s.Tick()
	s.AttemptMove(Right)
	assert.Equal(t, 1, rec.failed)
	assert.Empty(t, rec.cleared)
}

func TestCountdownTimerDrivesTicks(t *testing.T) {
	s, sched, rec := newCorridorSession(t, testConfig())
	require.NoError(t, s.StartGame(context.Background()))

	sched.Advance(5 * time.Second)
	assert.Equal(t, 15, s.Snapshot().TimeRemaining)

	sched.Advance(time.Minute)
	assert.Equal(t, 1, rec.failed)
	assert.Equal(t, StateLevelFailed, s.State())
	assert.Zero(t, sched.Pending())
}

func TestRestartCancelsCountdown(t *testing.T) {
	s, sched, rec := newCorridorSession(t, testConfig())
	ctx := context.Background()
	require.NoError(t, s.StartGame(ctx))
	firstID := s.GameID()

	sched.Advance(5 * time.Second)
	require.NoError(t, s.RestartGame(ctx))
	assert.NotEqual(t, firstID, s.GameID())
	assert.Equal(t, 20, s.Snapshot().TimeRemaining)
	assert.Equal(t, 1, sched.Pending(), "only the new countdown is scheduled")

	// A second countdown would halve the remaining time.
	sched.Advance(10 * time.Second)
	assert.Equal(t, 10, s.Snapshot().TimeRemaining)

	sched.Advance(time.Minute)
	assert.Equal(t, 1, rec.failed)
	assert.Equal(t, 2, rec.started)

	// Restarting from a terminal state is allowed and repeated restarts are harmless.
	require.NoError(t, s.RestartGame(ctx))
	require.NoError(t, s.RestartGame(ctx))
	assert.Equal(t, StateInLevel, s.State())
	assert.Equal(t, 1, sched.Pending())
}

func TestRestartDuringClearDelay(t *testing.T) {
	s, sched, _ := newCorridorSession(t, testConfig())
	ctx := context.Background()
	require.NoError(t, s.StartGame(ctx))

	s.AttemptMove(Right)
	require.Equal(t, StateLevelCleared, s.State())

	require.NoError(t, s.RestartGame(ctx))
	assert.Equal(t, 0, s.Snapshot().Level)

	// The deferred setup for level 1 must not fire after the restart.
	sched.Advance(time.Second)
	assert.Equal(t, 0, s.Snapshot().Level)
	assert.Equal(t, StateInLevel, s.State())
}

func TestStartDelay(t *testing.T) {
	cfg := testConfig()
	cfg.StartDelay = 300 * time.Millisecond
	s, sched, rec := newCorridorSession(t, cfg)

	require.NoError(t, s.StartGame(context.Background()))
	assert.Equal(t, StateAwaitingStart, s.State())
	assert.False(t, s.Snapshot().Running)
	assert.Nil(t, s.Snapshot().Grid)
	assert.Equal(t, 1, rec.started)

	s.AttemptMove(Right)
	assert.Equal(t, 0, s.Snapshot().Moves)

	sched.Advance(299 * time.Millisecond)
	assert.Equal(t, StateAwaitingStart, s.State())
	sched.Advance(time.Millisecond)
	assert.Equal(t, StateInLevel, s.State())
	assert.True(t, s.Snapshot().Running)
}

func TestStartGameWhileRunning(t *testing.T) {
	s, _, rec := newCorridorSession(t, testConfig())
	ctx := context.Background()
	require.NoError(t, s.StartGame(ctx))

	assert.ErrorIs(t, s.StartGame(ctx), ErrGameInProgress)
	assert.Equal(t, 1, rec.started)

	for i := 0; i < 20; i++ {
		s.Tick()
	}
	require.Equal(t, StateLevelFailed, s.State())
	assert.NoError(t, s.StartGame(ctx))
	assert.Equal(t, StateInLevel, s.State())
}

func TestLevelGridIsWorkingCopy(t *testing.T) {
	template := maze.MustParseGrid(corridor)
	src := &fixedLevels{grid: template}
	sched := NewManualScheduler()
	s, err := NewSession(testConfig(), sched, WithLevelSource(src))
	require.NoError(t, err)
	require.NoError(t, s.StartGame(context.Background()))

	snap := s.Snapshot()
	assert.NotSame(t, template, snap.Grid)
	assert.Equal(t, template.String(), snap.Grid.String())
	assert.Equal(t, 1, src.calls)

	snap.Grid.Set(maze.Position{Row: 1, Col: 2}, maze.CellWall)
	assert.True(t, template.IsOpen(maze.Position{Row: 1, Col: 2}), "template must stay untouched")
}

func TestFallbackStartPosition(t *testing.T) {
	grid := maze.MustParseGrid(`
#####
##..#
#####
`)
	cfg := testConfig()
	cfg.Rows, cfg.Cols = 3, 5
	s, err := NewSession(cfg, NewManualScheduler(), WithLevelSource(&fixedLevels{grid: grid}))
	require.NoError(t, err)
	require.NoError(t, s.StartGame(context.Background()))

	snap := s.Snapshot()
	assert.Equal(t, maze.Position{Row: 1, Col: 2}, snap.Player)
	assert.Equal(t, maze.Position{Row: 1, Col: 3}, snap.Food)
}

func TestStartGameGenerationFailure(t *testing.T) {
	boom := errors.New("boom")
	rec := &recorder{}
	s, err := NewSession(testConfig(), NewManualScheduler(),
		WithListener(rec),
		WithLevelSource(failingLevels{err: boom}),
	)
	require.NoError(t, err)

	err = s.StartGame(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StateIdle, s.State())
	assert.Zero(t, rec.started)
	assert.Empty(t, rec.snapshots)
}

func TestStartGameExhaustedGenerator(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols = 10, 10
	cfg.WallProbability = 1
	cfg.MinOpenFraction = 0.35
	cfg.KeepExitOpen = false
	cfg.MaxAttempts = 10
	cfg.Seed = 1

	s, err := NewSession(cfg, NewManualScheduler())
	require.NoError(t, err)

	err = s.StartGame(context.Background())
	assert.ErrorIs(t, err, maze.ErrGenerationExhausted)
	assert.Equal(t, StateIdle, s.State())
}

func TestPlayGeneratedGame(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 2024
	cfg.StartDelay = 0
	cfg.ClearDelay = 0
	// Long enough that walking the shortest path never times out.
	cfg.SecondsPerLevel = 1000

	sched := NewManualScheduler()
	rec := &recorder{}
	s, err := NewSession(cfg, sched, WithListener(rec))
	require.NoError(t, err)
	require.NoError(t, s.StartGame(context.Background()))

	for level := 0; level < cfg.LevelCount; level++ {
		snap := s.Snapshot()
		require.Equal(t, level, snap.Level)
		require.NotEqual(t, snap.Player, snap.Food)
		require.True(t, snap.Grid.IsOpen(snap.Food))

		path := maze.ShortestPath(snap.Grid, snap.Player, snap.Food)
		require.NotNil(t, path, "food unreachable on level %d", level)

		for i := 1; i < len(path); i++ {
			s.AttemptMove(directionBetween(t, path[i-1], path[i]))
		}
		require.Contains(t, rec.cleared, level)
	}

	assert.Equal(t, StateGameWon, s.State())
	assert.Equal(t, 1, rec.won)
	assert.Zero(t, rec.failed)
}

func TestSeededSessionsMatch(t *testing.T) {
	play := func() []maze.Position {
		cfg := DefaultConfig()
		cfg.Seed = 99
		cfg.StartDelay = 0
		s, err := NewSession(cfg, NewManualScheduler())
		require.NoError(t, err)
		require.NoError(t, s.StartGame(context.Background()))
		snap := s.Snapshot()
		return []maze.Position{snap.Player, snap.Food}
	}

	assert.Equal(t, play(), play())
}

func TestNewSessionRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LevelCount = 0
	_, err := NewSession(cfg, NewManualScheduler())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.MinOpenFraction = 0.9
	_, err = NewSession(cfg, NewManualScheduler())
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, maze.ErrInvalidConfig)

	_, err = NewSession(DefaultConfig(), nil)
	assert.Error(t, err)
}

func TestShuffledOrderIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for n := 1; n <= 8; n++ {
		order := shuffledOrder(n, rng)
		seen := make(map[int]bool)
		for _, v := range order {
			require.True(t, v >= 0 && v < n)
			seen[v] = true
		}
		assert.Len(t, seen, n)
	}
}

func directionBetween(t *testing.T, from, to maze.Position) Direction {
	t.Helper()
	for _, d := range []Direction{Up, Down, Left, Right} {
		dr, dc := d.Delta()
		if from.Add(dr, dc) == to {
			return d
		}
	}
	t.Fatalf("%v and %v are not adjacent", from, to)
	return Up
}

func TestCloseStopsTimers(t *testing.T) {
	s, sched, rec := newCorridorSession(t, testConfig())
	ctx := context.Background()
	require.NoError(t, s.StartGame(ctx))

	emitted := len(rec.snapshots)
	s.Close()
	assert.Equal(t, 0, sched.Pending())
	assert.Equal(t, StateIdle, s.State())
	assert.False(t, s.Snapshot().Running)
	assert.Nil(t, s.Snapshot().Grid)
	assert.Len(t, rec.snapshots, emitted, "Close notifies no listener")

	sched.Advance(time.Minute)
	assert.Zero(t, rec.failed)

	s.AttemptMove(Right)
	assert.Equal(t, 0, s.Snapshot().Moves)

	// Closing twice is harmless and a closed session starts normally.
	s.Close()
	require.NoError(t, s.StartGame(ctx))
	assert.Equal(t, StateInLevel, s.State())
	assert.True(t, s.Snapshot().Running)

	// Closing during the clear delay drops the pending level setup.
	cfg := testConfig()
	cfg.ClearDelay = time.Second
	s, sched, _ = newCorridorSession(t, cfg)
	require.NoError(t, s.StartGame(ctx))
	s.AttemptMove(Right)
	require.Equal(t, StateLevelCleared, s.State())
	s.Close()
	sched.Advance(time.Minute)
	assert.Equal(t, StateIdle, s.State())
	require.NoError(t, s.StartGame(ctx))
}

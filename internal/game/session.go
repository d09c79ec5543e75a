package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/foodmaze/internal/maze"
	"github.com/samdwyer/foodmaze/internal/telemetry"
)

// ErrGameInProgress is returned by StartGame while a game is still being played.
var ErrGameInProgress = errors.New("game already running")

// tickInterval is the countdown resolution.
const tickInterval = time.Second

// LevelSource produces the grids for one game.
type LevelSource interface {
	GenerateLevels(ctx context.Context, n int) ([]*maze.Grid, error)
}

// Option customizes a Session.
type Option func(*Session)

// WithListener sets the receiver of state and lifecycle notifications.
func WithListener(l Listener) Option {
	return func(s *Session) { s.listener = l }
}

// WithLevelSource replaces the random maze generator.
func WithLevelSource(src LevelSource) Option {
	return func(s *Session) { s.levels = src }
}

// WithRand sets the random source used for level order and food placement.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// Session holds the state of one player's game.
// It is not safe for concurrent use; all calls and scheduler callbacks must
// happen on a single goroutine.
type Session struct {
	cfg      Config
	sched    Scheduler
	listener Listener
	levels   LevelSource
	rng      *rand.Rand

	gameID   string
	grids    []*maze.Grid
	order    []int
	level    int
	grid     *maze.Grid
	player   maze.Position
	food     maze.Position
	moves    int
	timeLeft int
	running  bool
	state    State

	countdown Timer
	pending   Timer
	span      trace.Span
}

// NewSession validates cfg and creates an idle session.
func NewSession(cfg Config, sched Scheduler, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, errors.New("nil scheduler")
	}

	s := &Session{
		cfg:      cfg,
		sched:    sched,
		listener: NopListener{},
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed))
	}
	if s.levels == nil {
		gen, err := maze.NewGenerator(cfg.MazeConfig(), s.rng)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		s.levels = gen
	}
	if s.listener == nil {
		s.listener = NopListener{}
	}
	return s, nil
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// GameID identifies the current game; empty before the first start.
func (s *Session) GameID() string {
	return s.gameID
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		GameID:        s.gameID,
		State:         s.state,
		Grid:          s.grid,
		Player:        s.player,
		Food:          s.food,
		Moves:         s.moves,
		TimeRemaining: s.timeLeft,
		Level:         s.level,
		LevelCount:    s.cfg.LevelCount,
		Running:       s.running,
	}
}

// StartGame generates a new set of levels and begins the first round.
// It fails with ErrGameInProgress unless the session is idle or finished.
func (s *Session) StartGame(ctx context.Context) error {
	switch s.state {
	case StateIdle, StateLevelFailed, StateGameWon:
		return s.start(ctx)
	default:
		return ErrGameInProgress
	}
}

// RestartGame abandons the current game, if any, and starts a new one.
func (s *Session) RestartGame(ctx context.Context) error {
	s.cancelTimers()
	s.running = false
	s.endSpan("restarted")
	return s.start(ctx)
}

// Close stops all timers, ends the current game's span as abandoned and
// returns the session to idle without notifying listeners. The session may
// be started again afterwards.
func (s *Session) Close() {
	s.cancelTimers()
	s.running = false
	s.endSpan("abandoned")
	s.reset()
}

// AttemptMove moves the player one cell. Moves into walls, off the grid or
// while no round is running are ignored.
func (s *Session) AttemptMove(dir Direction) {
	if !s.running || s.state != StateInLevel || !dir.Valid() {
		return
	}

	target := s.player.Add(dir.Delta())
	if !s.grid.IsOpen(target) {
		return
	}

	s.player = target
	s.moves++
	s.emit()

	if s.player == s.food {
		s.levelCleared()
	}
}

// Tick advances the countdown by one second. It is called by the session's
// own countdown timer and is a no-op outside of a running round.
func (s *Session) Tick() {
	if !s.running || s.state != StateInLevel {
		return
	}

	s.timeLeft--
	s.emit()

	if s.timeLeft <= 0 {
		s.levelFailed()
	}
}

func (s *Session) start(ctx context.Context) error {
	s.cancelTimers()

	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.session")

	grids, err := s.levels.GenerateLevels(ctx, s.cfg.LevelCount)
	if err == nil && len(grids) != s.cfg.LevelCount {
		err = fmt.Errorf("level source returned %d grids, want %d", len(grids), s.cfg.LevelCount)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "level generation failed")
		span.End()
		s.reset()
		return fmt.Errorf("generate levels: %w", err)
	}

	s.span = span
	s.grids = grids
	s.order = shuffledOrder(len(grids), s.rng)
	s.level = 0
	s.grid = nil
	s.moves = 0
	s.timeLeft = s.cfg.SecondsPerLevel
	s.running = false
	s.gameID = uuid.NewString()

	span.SetAttributes(
		attribute.String("game.id", s.gameID),
		attribute.Int("game.level_count", s.cfg.LevelCount),
		attribute.Int("game.rows", s.cfg.Rows),
		attribute.Int("game.cols", s.cfg.Cols),
		attribute.IntSlice("game.order", s.order),
	)

	s.listener.OnGameStarted()

	if s.cfg.StartDelay > 0 {
		s.state = StateAwaitingStart
		s.emit()
		s.pending = s.sched.AfterFunc(s.cfg.StartDelay, func() { s.setupLevel(0) })
		return nil
	}
	s.setupLevel(0)
	return nil
}

// setupLevel loads round index from the shuffled level set and starts its countdown.
func (s *Session) setupLevel(index int) {
	s.cancelTimers()

	s.level = index
	s.grid = s.grids[s.order[index]].Clone()
	s.player = startPosition(s.grid)
	s.food = maze.FindGoalCell(s.grid, s.player, s.rng)
	s.moves = 0
	s.timeLeft = s.cfg.SecondsPerLevel
	s.running = true
	s.state = StateInLevel

	s.event("level.setup",
		attribute.Int("level.index", index),
		attribute.Int("level.grid", s.order[index]),
		attribute.String("level.player", s.player.String()),
		attribute.String("level.food", s.food.String()),
	)

	s.emit()
	s.countdown = s.sched.Every(tickInterval, s.Tick)
}

func (s *Session) levelCleared() {
	s.stopCountdown()
	s.running = false

	cleared := s.level
	s.level++

	s.event("level.cleared",
		attribute.Int("level.index", cleared),
		attribute.Int("level.moves", s.moves),
		attribute.Int("level.time_left", s.timeLeft),
	)

	if s.level >= s.cfg.LevelCount {
		s.state = StateGameWon
		s.emit()
		s.listener.OnLevelCleared(cleared)
		s.listener.OnGameWon()
		s.endSpan("won")
		return
	}

	s.state = StateLevelCleared
	s.emit()
	s.listener.OnLevelCleared(cleared)

	next := s.level
	if s.cfg.ClearDelay <= 0 {
		s.setupLevel(next)
		return
	}
	s.pending = s.sched.AfterFunc(s.cfg.ClearDelay, func() { s.setupLevel(next) })
}

func (s *Session) levelFailed() {
	s.stopCountdown()
	s.running = false
	s.state = StateLevelFailed

	s.event("level.failed",
		attribute.Int("level.index", s.level),
		attribute.Int("level.moves", s.moves),
	)

	s.emit()
	s.listener.OnLevelFailed()
	s.endSpan("failed")
}

func (s *Session) emit() {
	s.listener.OnStateChanged(s.Snapshot())
}

func (s *Session) stopCountdown() {
	if s.countdown != nil {
		s.countdown.Stop()
		s.countdown = nil
	}
}

func (s *Session) cancelTimers() {
	s.stopCountdown()
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

// reset returns the session to idle after a failed start or Close.
func (s *Session) reset() {
	s.grids = nil
	s.order = nil
	s.grid = nil
	s.level = 0
	s.moves = 0
	s.timeLeft = 0
	s.running = false
	s.state = StateIdle
}

// event records a lifecycle event on the game span.
func (s *Session) event(name string, attrs ...attribute.KeyValue) {
	if s.span != nil {
		s.span.AddEvent(name, trace.WithAttributes(attrs...))
	}
}

func (s *Session) endSpan(outcome string) {
	if s.span == nil {
		return
	}
	s.span.SetAttributes(
		attribute.String("game.outcome", outcome),
		attribute.Int("game.levels_cleared", s.level),
	)
	s.span.End()
	s.span = nil
}

// startPosition returns Start if it is open, else the first open interior cell.
func startPosition(g *maze.Grid) maze.Position {
	if g.IsOpen(maze.Start) {
		return maze.Start
	}
	if p, ok := g.FirstOpenInterior(); ok {
		return p
	}
	return maze.Start
}

// shuffledOrder returns a uniformly random permutation of 0..n-1 (Fisher-Yates).
func shuffledOrder(n int, rng *rand.Rand) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(n, func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}

package maze

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/foodmaze/internal/telemetry"
)

const (
	// DefaultMaxAttempts bounds the rejection-sampling loop when Config.MaxAttempts is 0.
	DefaultMaxAttempts = 1000

	// thresholdEpsilon absorbs float error in MinOpenFraction * cells.
	thresholdEpsilon = 1e-9
)

var (
	// ErrInvalidConfig is returned for configurations that can never produce a grid.
	ErrInvalidConfig = errors.New("invalid maze config")
	// ErrGenerationExhausted is returned when no candidate grid passed the
	// openness check within the attempt budget.
	ErrGenerationExhausted = errors.New("maze generation exhausted")

	errUnderfilled = errors.New("not enough reachable cells")
)

// Config controls grid generation.
type Config struct {
	Rows int
	Cols int

	// WallProbability is the chance that each interior cell becomes a wall.
	WallProbability float64

	// MinOpenFraction is the share of all Rows*Cols cells that must be
	// reachable from Start for a candidate to be accepted.
	MinOpenFraction float64

	// MaxAttempts caps rejection sampling. 0 means DefaultMaxAttempts.
	MaxAttempts int

	// KeepExitOpen forces the far corner (Rows-2, Cols-2) open as well as Start.
	KeepExitOpen bool
}

// Threshold returns the minimum reachable cell count for acceptance.
func (c Config) Threshold() int {
	return int(math.Ceil(c.MinOpenFraction*float64(c.Rows*c.Cols) - thresholdEpsilon))
}

// Validate reports whether the configuration can ever be satisfied.
func (c Config) Validate() error {
	if c.Rows < 3 || c.Cols < 3 {
		return fmt.Errorf("%w: grid must be at least 3x3, got %dx%d", ErrInvalidConfig, c.Rows, c.Cols)
	}
	if c.WallProbability < 0 || c.WallProbability > 1 {
		return fmt.Errorf("%w: wall probability %v outside [0,1]", ErrInvalidConfig, c.WallProbability)
	}
	if c.MinOpenFraction < 0 || c.MinOpenFraction > 1 {
		return fmt.Errorf("%w: min open fraction %v outside [0,1]", ErrInvalidConfig, c.MinOpenFraction)
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("%w: negative max attempts %d", ErrInvalidConfig, c.MaxAttempts)
	}

	// Only interior cells can ever be open.
	interior := (c.Rows - 2) * (c.Cols - 2)
	if need := c.Threshold(); need > interior {
		return fmt.Errorf("%w: need %d reachable cells but only %d interior cells exist",
			ErrInvalidConfig, need, interior)
	}
	return nil
}

func (c Config) maxAttempts() int {
	if c.MaxAttempts == 0 {
		return DefaultMaxAttempts
	}
	return c.MaxAttempts
}

// Generator produces random grids that satisfy the openness threshold.
//
// Each candidate is accepted or discarded independently, so the number of
// attempts needed is geometric in the acceptance probability. The loop is
// capped by MaxAttempts; a configuration whose wall probability is high
// relative to its threshold fails with ErrGenerationExhausted instead of
// spinning forever.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// NewGenerator validates cfg and returns a generator drawing from rng.
// A nil rng is seeded from the clock.
func NewGenerator(cfg Config, rng *rand.Rand) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{cfg: cfg, rng: rng}, nil
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate samples grids until one has enough cells reachable from Start.
func (g *Generator) Generate(ctx context.Context) (*Grid, error) {
	tracer := telemetry.Tracer("maze")
	ctx, span := tracer.Start(ctx, "maze.generate")
	defer span.End()

	startTime := time.Now()
	need := g.cfg.Threshold()
	attempts := 0
	reachable := 0

	grid, err := backoff.Retry(ctx, func() (*Grid, error) {
		if err := ctx.Err(); err != nil {
			return nil, backoff.Permanent(err)
		}
		attempts++

		candidate := g.sample()
		reachable = CountReachable(candidate, Start)
		if reachable < need {
			return nil, fmt.Errorf("%w: %d < %d", errUnderfilled, reachable, need)
		}
		return candidate, nil
	},
		backoff.WithBackOff(&backoff.ZeroBackOff{}),
		backoff.WithMaxTries(uint(g.cfg.maxAttempts())),
	)

	span.SetAttributes(
		attribute.Int("maze.rows", g.cfg.Rows),
		attribute.Int("maze.cols", g.cfg.Cols),
		attribute.Int("maze.attempts", attempts),
		attribute.Int("maze.threshold", need),
		attribute.Int("maze.reachable", reachable),
		attribute.Int64("maze.generation_ms", time.Since(startTime).Milliseconds()),
	)

	if err != nil {
		span.RecordError(err)
		if errors.Is(err, errUnderfilled) {
			return nil, fmt.Errorf("%w after %d attempts: need %d reachable cells in %dx%d with wall probability %.2f",
				ErrGenerationExhausted, attempts, need, g.cfg.Rows, g.cfg.Cols, g.cfg.WallProbability)
		}
		return nil, err
	}
	return grid, nil
}

// GenerateLevels generates n independent grids.
func (g *Generator) GenerateLevels(ctx context.Context, n int) ([]*Grid, error) {
	levels := make([]*Grid, 0, n)
	for i := 0; i < n; i++ {
		grid, err := g.Generate(ctx)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", i, err)
		}
		levels = append(levels, grid)
	}
	return levels, nil
}

// sample builds one candidate grid without checking connectivity.
func (g *Generator) sample() *Grid {
	grid := NewGrid(g.cfg.Rows, g.cfg.Cols)
	for r := 1; r < grid.Rows-1; r++ {
		for c := 1; c < grid.Cols-1; c++ {
			if g.rng.Float64() < g.cfg.WallProbability {
				grid.Cells[r][c] = CellWall
			}
		}
	}

	grid.Set(Start, CellEmpty)
	if g.cfg.KeepExitOpen {
		grid.Set(Position{Row: grid.Rows - 2, Col: grid.Cols - 2}, CellEmpty)
	}
	return grid
}

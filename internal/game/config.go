package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/samdwyer/foodmaze/internal/gamedata"
	"github.com/samdwyer/foodmaze/internal/maze"
)

// ErrInvalidConfig is returned by NewSession for unusable configurations.
var ErrInvalidConfig = errors.New("invalid game config")

// Config holds game configuration options.
type Config struct {
	Rows            int     // Grid height including borders
	Cols            int     // Grid width including borders
	LevelCount      int     // Rounds per game
	WallProbability float64 // Chance of each interior cell being a wall
	MinOpenFraction float64 // Share of all cells that must be reachable from the start
	SecondsPerLevel int     // Countdown length per round

	// MaxAttempts caps grid rejection sampling. 0 uses maze.DefaultMaxAttempts.
	MaxAttempts int

	// KeepExitOpen forces the corner opposite the start open in every grid.
	KeepExitOpen bool

	// StartDelay is the pause between starting a game and the first round.
	// ClearDelay is the pause between clearing a round and the next one.
	StartDelay time.Duration
	ClearDelay time.Duration

	// Seed for random number generation. Used for reproducible grids.
	// A seed of 0 means a random seed will be generated.
	Seed int64
}

// DefaultConfig returns the classic 15x15, five round game.
func DefaultConfig() Config {
	return Config{
		Rows:            15,
		Cols:            15,
		LevelCount:      5,
		WallProbability: 0.25,
		MinOpenFraction: 0.4,
		SecondsPerLevel: 20,
		KeepExitOpen:    true,
		StartDelay:      300 * time.Millisecond,
		ClearDelay:      700 * time.Millisecond,
	}
}

// ConfigFromVariant builds a configuration from an embedded variant.
func ConfigFromVariant(v *gamedata.VariantDef, seed int64) Config {
	return Config{
		Rows:            v.Rows,
		Cols:            v.Cols,
		LevelCount:      v.LevelCount,
		WallProbability: v.WallProbability,
		MinOpenFraction: v.MinOpenFraction,
		SecondsPerLevel: v.SecondsPerLevel,
		KeepExitOpen:    v.KeepExitOpen,
		StartDelay:      v.StartDelay(),
		ClearDelay:      v.ClearDelay(),
		Seed:            seed,
	}
}

// MazeConfig returns the generator settings embedded in c.
func (c Config) MazeConfig() maze.Config {
	return maze.Config{
		Rows:            c.Rows,
		Cols:            c.Cols,
		WallProbability: c.WallProbability,
		MinOpenFraction: c.MinOpenFraction,
		MaxAttempts:     c.MaxAttempts,
		KeepExitOpen:    c.KeepExitOpen,
	}
}

// Validate checks the session settings and the generator settings.
func (c Config) Validate() error {
	if c.LevelCount < 1 {
		return fmt.Errorf("%w: level count %d", ErrInvalidConfig, c.LevelCount)
	}
	if c.SecondsPerLevel < 1 {
		return fmt.Errorf("%w: seconds per level %d", ErrInvalidConfig, c.SecondsPerLevel)
	}
	if c.StartDelay < 0 || c.ClearDelay < 0 {
		return fmt.Errorf("%w: negative delay", ErrInvalidConfig)
	}
	if err := c.MazeConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

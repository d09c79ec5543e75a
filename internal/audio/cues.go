package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/samdwyer/foodmaze/internal/game"
)

// Cue identifies a game event sound.
type Cue int

const (
	// CueGameStarted is a short blip when a game begins.
	CueGameStarted Cue = iota
	// CueLevelCleared is a rising pair of notes after eating the food.
	CueLevelCleared
	// CueGameWon is a chord after the last round.
	CueGameWon
	// CueLevelFailed is a low buzz when time runs out.
	CueLevelFailed
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueGameStarted:
		return "game_started"
	case CueLevelCleared:
		return "level_cleared"
	case CueGameWon:
		return "game_won"
	case CueLevelFailed:
		return "level_failed"
	default:
		return "unknown"
	}
}

// Duration returns the length of the cue's sound.
func (c Cue) Duration() time.Duration {
	switch c {
	case CueGameStarted:
		return 120 * time.Millisecond
	case CueLevelCleared:
		return 250 * time.Millisecond
	case CueGameWon:
		return 700 * time.Millisecond
	case CueLevelFailed:
		return 1300 * time.Millisecond
	default:
		return 0
	}
}

// Sound synthesizes the streamer for a cue, or nil for an unknown cue.
func Sound(c Cue) beep.Streamer {
	d := c.Duration()
	switch c {
	case CueGameStarted:
		return newEnvelope(newTone(440, d, WaveSine), d, 10*time.Millisecond, 0.1)
	case CueLevelCleared:
		// Rising fifth
		half := d / 2
		return beep.Seq(
			newEnvelope(newTone(660, half, WaveSine), half, 10*time.Millisecond, 0.12),
			newEnvelope(newTone(990, half, WaveSine), half, 10*time.Millisecond, 0.12),
		)
	case CueGameWon:
		// A5 with a fifth above it
		return beep.Mix(
			newVolume(newEnvelope(newTone(880, d, WaveSine), d, 20*time.Millisecond, 0.12), 0.6),
			newVolume(newEnvelope(newTone(1320, d, WaveSine), d, 20*time.Millisecond, 0.12), 0.4),
		)
	case CueLevelFailed:
		return newEnvelope(newTone(220, d, WaveSaw), d, 20*time.Millisecond, 0.15)
	default:
		return nil
	}
}

// Player plays a finished streamer.
type Player interface {
	Play(s beep.Streamer)
}

// Cues plays a sound for each lifecycle notification of a session.
type Cues struct {
	game.NopListener
	player Player
	volume float64
}

// NewCues creates a cue listener. A nil player or zero volume plays nothing.
func NewCues(player Player, volume float64) *Cues {
	return &Cues{player: player, volume: volume}
}

// OnGameStarted plays CueGameStarted.
func (c *Cues) OnGameStarted() { c.play(CueGameStarted) }

// OnLevelCleared plays CueLevelCleared.
func (c *Cues) OnLevelCleared(int) { c.play(CueLevelCleared) }

// OnGameWon plays CueGameWon.
func (c *Cues) OnGameWon() { c.play(CueGameWon) }

// OnLevelFailed plays CueLevelFailed.
func (c *Cues) OnLevelFailed() { c.play(CueLevelFailed) }

func (c *Cues) play(cue Cue) {
	if c.player == nil || c.volume <= 0 {
		return
	}
	if s := Sound(cue); s != nil {
		c.player.Play(newVolume(s, c.volume))
	}
}

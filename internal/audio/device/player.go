// Package device plays audio cues on the system sound card. It needs a cgo
// audio backend, so only the binary imports it.
package device

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/samdwyer/foodmaze/internal/audio"
)

// SpeakerPlayer plays cues on the system audio device.
type SpeakerPlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSpeakerPlayer opens the audio device. It fails when no backend is
// available; callers should fall back to silence.
func NewSpeakerPlayer() (*SpeakerPlayer, error) {
	if err := speaker.Init(audio.SampleRate, audio.SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}

	p := &SpeakerPlayer{mixer: &beep.Mixer{}, initialized: true}
	speaker.Play(p.mixer)
	return p, nil
}

// Play mixes s into the output. Overlapping cues play together.
func (p *SpeakerPlayer) Play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close stops all sounds and releases the device.
func (p *SpeakerPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

var _ audio.Player = (*SpeakerPlayer)(nil)

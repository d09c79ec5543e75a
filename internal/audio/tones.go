// Package audio synthesizes the short sound cues played on game events.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the rate every cue is rendered at.
const SampleRate = beep.SampleRate(44100)

// Wave selects an oscillator shape.
type Wave int

const (
	// WaveSine is a pure sine tone.
	WaveSine Wave = iota
	// WaveSaw is a sawtooth, brighter and harsher.
	WaveSaw
)

// tone is a fixed-length oscillator.
type tone struct {
	freq     float64
	phase    float64
	wave     Wave
	total    int
	position int
}

// newTone creates a tone of the given frequency and length.
func newTone(freq float64, d time.Duration, wave Wave) beep.Streamer {
	return &tone{freq: freq, wave: wave, total: SampleRate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, i > 0
		}

		var val float64
		switch t.wave {
		case WaveSaw:
			val = 2.0 * (t.phase - 0.5)
		default:
			val = math.Sin(2 * math.Pi * t.phase)
		}
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(SampleRate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope ramps the wrapped stream up to peak over attack, then decays it
// exponentially to silence by the end of the stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	total    int
	peak     float64
}

func newEnvelope(s beep.Streamer, d, attack time.Duration, peak float64) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   SampleRate.N(attack),
		total:    SampleRate.N(d),
		peak:     peak,
	}
}

// floorGain is the gain the decay ends at.
const floorGain = 1e-4

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		var gain float64
		switch {
		case e.position < e.attack:
			gain = e.peak * float64(e.position) / float64(e.attack)
		case e.total > e.attack:
			frac := float64(e.position-e.attack) / float64(e.total-e.attack)
			gain = e.peak * math.Pow(floorGain/e.peak, math.Min(frac, 1))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

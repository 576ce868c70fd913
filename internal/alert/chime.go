package alert

import (
	"fmt"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const (
	chimeRate      = beep.SampleRate(44100)
	chimeFrequency = 880.0
	chimeLength    = 250 * time.Millisecond
	chimeVolume    = 0.3
)

// tone is an endless sine wave streamer.
type tone struct {
	step  float64
	phase float64
}

func newTone(rate beep.SampleRate, freq float64) *tone {
	return &tone{step: freq / float64(rate)}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := chimeVolume * math.Sin(2*math.Pi*t.phase)
		samples[i][0] = v
		samples[i][1] = v
		t.phase += t.step
		if t.phase >= 1 {
			t.phase--
		}
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// NewChimeStreamer returns a finite sine beep of the given length.
func NewChimeStreamer(rate beep.SampleRate, freq float64, length time.Duration) beep.Streamer {
	return beep.Take(rate.N(length), newTone(rate, freq))
}

// Chime plays a short beep on alerts without blocking.
type Chime struct {
	rate beep.SampleRate
	play func(s ...beep.Streamer)
}

// NewChime initialises the speaker and returns a Chime.
func NewChime() (*Chime, error) {
	if err := speaker.Init(chimeRate, chimeRate.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Chime{rate: chimeRate, play: speaker.Play}, nil
}

func (c *Chime) Notify(d Decision) error {
	if !d.IsAlert() {
		return nil
	}
	c.play(NewChimeStreamer(c.rate, chimeFrequency, chimeLength))
	return nil
}

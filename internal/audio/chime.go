// Package audio plays a short bell when the container cap is released.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate    = beep.SampleRate(44100)
	chimeDuration = 600 * time.Millisecond
)

// BellGenerator is a struck bell: a fundamental plus an inharmonic partial
// under an exponential decay.
type BellGenerator struct {
	sr    beep.SampleRate
	freq  float64
	gain  float64
	decay float64
	pos   int
}

// NewBellGenerator returns an endless bell tone; wrap it in beep.Take.
func NewBellGenerator(sr beep.SampleRate, freq, gain float64) *BellGenerator {
	return &BellGenerator{sr: sr, freq: freq, gain: gain, decay: 6}
}

func (g *BellGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		env := g.gain * math.Exp(-g.decay*t)
		// Fade in over 5ms to avoid a click.
		env *= math.Min(t/0.005, 1)
		s := env * (0.7*math.Sin(2*math.Pi*g.freq*t) + 0.3*math.Sin(2*math.Pi*g.freq*2.76*t))
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *BellGenerator) Err() error { return nil }

// Chime returns a finite bell streamer. Larger releases ring lower and
// louder.
func Chime(freq float64, chunks int) beep.Streamer {
	if freq <= 0 {
		freq = 880
	}
	weight := math.Min(float64(chunks)/80, 1)
	return beep.Take(sampleRate.N(chimeDuration), NewBellGenerator(sampleRate, freq*(1-0.25*weight), 0.12+0.1*weight))
}

// Player mixes chimes into the speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	freq        float64
	initialized bool
}

// NewPlayer returns a player ringing at freq.
func NewPlayer(freq float64) *Player {
	return &Player{mixer: &beep.Mixer{}, freq: freq}
}

// Initialize opens the speaker. Failure is not fatal; Play becomes a no-op.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play rings once for a release of the given size.
func (p *Player) Play(chunks int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized || chunks <= 0 {
		return
	}
	speaker.Lock()
	p.mixer.Add(Chime(p.freq, chunks))
	speaker.Unlock()
}

// Close silences pending chimes.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

package snow

import (
	"math"

	"snowfall/internal/core"
)

// Ground is the accumulated snow profile across the scene floor. Samples are
// depths measured up from the bottom edge, one per horizontal bucket.
type Ground struct {
	bucketWidth float64
	base        float64
	amplitude   float64
	frequency   float64
	jitter      float64
	radius      int
	decay       float64

	width   float64
	samples []float64
}

// NewGround builds an empty ground using the heightmap settings from p. Call
// Init before use.
func NewGround(p Params) *Ground {
	bw := p.BucketWidth
	if bw <= 0 {
		bw = 1
	}
	radius := p.ClumpRadius
	if radius < 1 {
		radius = 1
	}
	return &Ground{
		bucketWidth: bw,
		base:        math.Max(0, p.BaseHeight),
		amplitude:   p.DriftAmplitude,
		frequency:   p.DriftFrequency,
		jitter:      p.DriftJitter,
		radius:      radius,
		decay:       p.DecayRate,
	}
}

// Init replaces the profile with ceil(width/bucketWidth) samples of
// base + A*sin(i*f) + U(0, B). Any accumulated snow is discarded.
func (g *Ground) Init(width float64, rng *core.RNG) {
	if width < 0 {
		width = 0
	}
	n := int(math.Ceil(width / g.bucketWidth))
	g.width = width
	if cap(g.samples) >= n {
		g.samples = g.samples[:n]
	} else {
		g.samples = make([]float64, n)
	}
	for i := range g.samples {
		h := g.base + g.amplitude*math.Sin(float64(i)*g.frequency)
		if rng != nil && g.jitter > 0 {
			h += rng.Range(0, g.jitter)
		}
		g.samples[i] = math.Max(0, h)
	}
}

// Deposit spreads a landing event at x over the buckets within the clump
// radius using triangular weights, then softens the centre bucket once
// against its neighbours. Out of range positions are ignored.
func (g *Ground) Deposit(x, intensity float64) {
	if intensity <= 0 || math.IsNaN(x) {
		return
	}
	idx, ok := g.index(x)
	if !ok {
		return
	}
	n := len(g.samples)
	r := float64(g.radius)
	for d := -g.radius; d <= g.radius; d++ {
		i := idx + d
		if i < 0 || i >= n {
			continue
		}
		weight := 1 - math.Abs(float64(d))/r
		if weight <= 0 {
			continue
		}
		g.samples[i] += weight * intensity
	}
	if idx > 0 && idx < n-1 {
		avg := (g.samples[idx-1] + g.samples[idx+1]) / 2
		g.samples[idx] = 0.8*g.samples[idx] + 0.2*avg
	}
}

// Sink settles every bucket above the base height by the constant decay
// rate, never dropping below the base.
func (g *Ground) Sink() {
	if g.decay <= 0 {
		return
	}
	for i, h := range g.samples {
		if h <= g.base {
			continue
		}
		h -= g.decay
		if h < g.base {
			h = g.base
		}
		g.samples[i] = h
	}
}

// HeightAt returns the snow depth under x, or 0 outside the profile.
func (g *Ground) HeightAt(x float64) float64 {
	idx, ok := g.index(x)
	if !ok {
		return 0
	}
	return g.samples[idx]
}

// Outline returns the silhouette polygon for a canvas of the given height:
// bottom-left, the top of every bucket, then bottom-right.
func (g *Ground) Outline(canvasHeight float64) []core.Point {
	pts := make([]core.Point, 0, len(g.samples)+2)
	pts = append(pts, core.Point{X: 0, Y: canvasHeight})
	for i, h := range g.samples {
		pts = append(pts, core.Point{X: float64(i) * g.bucketWidth, Y: canvasHeight - h})
	}
	pts = append(pts, core.Point{X: g.width, Y: canvasHeight})
	return pts
}

// SetDecayRate changes the per-frame settling amount.
func (g *Ground) SetDecayRate(rate float64) {
	if rate < 0 {
		rate = 0
	}
	g.decay = rate
}

// Len returns the number of buckets.
func (g *Ground) Len() int { return len(g.samples) }

// Samples exposes the bucket heights. Callers must not retain the slice across
// Init calls.
func (g *Ground) Samples() []float64 { return g.samples }

// BucketWidth returns the horizontal size of one bucket.
func (g *Ground) BucketWidth() float64 { return g.bucketWidth }

// Base returns the resting height the profile sinks towards.
func (g *Ground) Base() float64 { return g.base }

// Width returns the width the profile was initialised for.
func (g *Ground) Width() float64 { return g.width }

func (g *Ground) index(x float64) (int, bool) {
	if x < 0 || math.IsNaN(x) {
		return 0, false
	}
	idx := int(math.Floor(x / g.bucketWidth))
	if idx >= len(g.samples) {
		return 0, false
	}
	return idx, true
}

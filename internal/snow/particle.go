package snow

import "snowfall/internal/core"

// Particle is one falling unit: an ambient flake or a released chunk.
type Particle struct {
	X, Y   float64
	R      float64
	VX, VY float64
}

// respawnY is where recycled flakes re-enter, just above the viewport.
const respawnY = -20

// Field holds both particle populations.
type Field struct {
	Flakes []Particle
	Chunks []Particle
}

func newFlake(rng *core.RNG, width, y float64) Particle {
	return Particle{
		X:  rng.Range(0, width),
		Y:  y,
		R:  rng.Range(1, 3),
		VY: rng.Range(0.8, 1.8),
		VX: rng.Range(-0.2, 0.2),
	}
}

func newChunk(rng *core.RNG, x, y, spread float64) Particle {
	return Particle{
		X:  x + rng.Jitter(spread),
		Y:  y + rng.Jitter(4),
		R:  rng.Range(1, 3.5),
		VY: rng.Range(1, 2),
		VX: rng.Jitter(1.2),
	}
}

// advance moves p by its velocity, after applying gravity to the vertical
// component.
func (p *Particle) advance(gravity float64) {
	p.VY += gravity
	p.Y += p.VY
	p.X += p.VX
}

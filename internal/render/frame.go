package render

import (
	"snowfall/internal/core"
	"snowfall/internal/snow"
)

// Frame is a copy of everything the painter needs from a scene, so drawing can
// happen after the scene lock is released.
type Frame struct {
	Size      core.Size
	Ground    []core.Point
	Container core.Rect
	Cap       []core.Point
	Flakes    []snow.Particle
	Chunks    []snow.Particle
	Figure    core.Point
	Shaking   bool
}

// Capture copies the drawable state of s.
func Capture(s *snow.Scene) Frame {
	size := s.Size()
	rect := s.DrawnContainer()
	return Frame{
		Size:      size,
		Ground:    s.Ground().Outline(float64(size.H)),
		Container: rect,
		Cap:       s.Cap().Outline(rect),
		Flakes:    append([]snow.Particle(nil), s.Flakes()...),
		Chunks:    append([]snow.Particle(nil), s.Chunks()...),
		Figure:    s.FigureBase(),
		Shaking:   s.Shaking(),
	}
}

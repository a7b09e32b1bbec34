package snow

import "github.com/charmbracelet/harmonica"

// Shake is the short horizontal jitter the container performs when its cap
// is released. An under-damped spring pulls the offset back to 0.
type Shake struct {
	spring  harmonica.Spring
	impulse float64
	frames  int

	offset   float64
	velocity float64
	left     int
}

// NewShake configures a shake for the given tick rate.
func NewShake(tps int, p Params) *Shake {
	if tps <= 0 {
		tps = 60
	}
	return &Shake{
		spring:  harmonica.NewSpring(harmonica.FPS(tps), p.ShakeFrequency, p.ShakeDamping),
		impulse: p.ShakeImpulse,
		frames:  p.ShakeFrames,
	}
}

// Trigger starts a new shake by kicking the spring sideways.
func (s *Shake) Trigger() {
	if s.frames <= 0 {
		return
	}
	s.velocity += s.impulse
	s.left = s.frames
}

// Step advances the spring by one tick.
func (s *Shake) Step() {
	if s.left <= 0 {
		s.offset, s.velocity = 0, 0
		return
	}
	s.left--
	s.offset, s.velocity = s.spring.Update(s.offset, s.velocity, 0)
}

// Active reports whether the container is still shaking.
func (s *Shake) Active() bool { return s.left > 0 }

// Offset returns the current horizontal displacement.
func (s *Shake) Offset() float64 { return s.offset }

package core

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// FixedStep helps run simulation updates at a steady ticks-per-second rate.
type FixedStep struct {
	clock       clockwork.Clock
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	maxCatchUp  int
}

// NewFixedStepWithClock constructs a FixedStep targeting tps ticks per
// second of clock time.
func NewFixedStepWithClock(tps int, clock clockwork.Clock) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	fs := &FixedStep{clock: clock, maxCatchUp: 5}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the duration of one tick.
func (f *FixedStep) Step() time.Duration { return f.step }

// Pending returns how many ticks are due since the last call and consumes
// them. After a long stall at most maxCatchUp ticks are reported so a frozen
// terminal does not replay seconds of simulation in one frame.
func (f *FixedStep) Pending() int {
	now := f.clock.Now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	n := 0
	for f.accumulator >= f.step {
		f.accumulator -= f.step
		n++
	}
	if n > f.maxCatchUp {
		n = f.maxCatchUp
		f.accumulator = 0
	}
	return n
}

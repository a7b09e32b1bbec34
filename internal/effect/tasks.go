package effect

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"snowfall/internal/clock"
	"snowfall/internal/countdown"
	"snowfall/internal/scheduler"
)

// ReleaseInterval is the default period between cap releases.
const ReleaseInterval = 12 * time.Second

// Timings configures the periodic tasks. A zero interval disables the task.
type Timings struct {
	Frame     time.Duration
	Release   time.Duration
	Countdown time.Duration
	Resync    time.Duration
}

// DefaultTimings returns the standard cadence for a scene running at tps.
func DefaultTimings(tps int) Timings {
	t := Timings{
		Release:   ReleaseInterval,
		Countdown: countdown.UpdateInterval,
		Resync:    clock.DefaultResyncInterval,
	}
	if tps > 0 {
		t.Frame = time.Second / time.Duration(tps)
	}
	return t
}

// Syncer refreshes a time anchor.
type Syncer interface {
	Sync(ctx context.Context) error
}

// Schedule registers the frame, release, countdown and resync tasks on s.
// Nil collaborators and zero intervals are skipped.
func Schedule(s *scheduler.Scheduler, t Timings, c *Controller, src Syncer, p *countdown.Presenter) error {
	if c != nil && t.Frame > 0 {
		if err := s.Every("frame", t.Frame, func() { c.Frame() }); err != nil {
			return err
		}
	}
	if c != nil && t.Release > 0 {
		err := s.Every("release", t.Release, func() {
			n := c.Release()
			log.Debug().Int("chunks", n).Msg("cap released")
		})
		if err != nil {
			return err
		}
	}
	if p != nil && t.Countdown > 0 {
		if err := s.Every("countdown", t.Countdown, func() { p.Update() }); err != nil {
			return err
		}
	}
	if src != nil && t.Resync > 0 {
		err := s.Add(scheduler.Task{
			Name:     "resync",
			Interval: t.Resync,
			Run: func(ctx context.Context) {
				// Failures are logged by the source and the previous anchor kept.
				_ = src.Sync(ctx)
			},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

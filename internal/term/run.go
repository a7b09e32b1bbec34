package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"snowfall/internal/clock"
	"snowfall/internal/core"
	"snowfall/internal/effect"
	"snowfall/internal/ui"
)

// Options configures Run.
type Options struct {
	TPS   int
	Seed  int64
	Clock clockwork.Clock
	// Status reports the clock sync state for the second text line.
	Status func() clock.Status
}

// Run drives ctrl on screen until ctx ends or the user quits. Keys: q/Esc
// quit, space pause, n step, c release, r reset, s reseed.
func Run(ctx context.Context, screen tcell.Screen, ctrl *effect.Controller, label *ui.Label, opts Options) error {
	if opts.TPS <= 0 {
		opts.TPS = 30
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r := NewRenderer(screen, nil)
	size := r.SceneSize()
	ctrl.Resize(size.W, size.H)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	step := core.NewFixedStepWithClock(opts.TPS, opts.Clock)
	ticker := opts.Clock.NewTicker(time.Second / time.Duration(opts.TPS))
	defer ticker.Stop()

	seed := opts.Seed
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				size := r.SceneSize()
				ctrl.Resize(size.W, size.H)
				log.Debug().Int("w", size.W).Int("h", size.H).Msg("terminal resized")
			case *tcell.EventKey:
				if !handleKey(ev, ctrl, &seed) {
					return nil
				}
			}
		case <-ticker.Chan():
			for n := step.Pending(); n > 0; n-- {
				ctrl.Frame()
			}
			main, _ := label.Text()
			lines := []string{main}
			if opts.Status != nil {
				lines = append(lines, opts.Status().Summary())
			}
			r.Draw(ctrl.Capture(), lines...)
		}
	}
}

func handleKey(ev *tcell.EventKey, ctrl *effect.Controller, seed *int64) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case ' ':
			ctrl.SetPaused(!ctrl.Paused())
		case 'n', 'N':
			ctrl.Step()
		case 'c', 'C':
			ctrl.Release()
		case 'r', 'R':
			ctrl.Reset(*seed)
		case 's', 'S':
			*seed = time.Now().UnixNano()
			ctrl.Reset(*seed)
		}
	}
	return true
}

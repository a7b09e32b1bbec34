package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"snowfall/internal/clock"
	"snowfall/internal/config"
	"snowfall/internal/countdown"
	"snowfall/internal/effect"
	"snowfall/internal/scheduler"
	"snowfall/internal/snow"
)

// Runtime bundles the pieces every frontend shares.
type Runtime struct {
	ID        string
	File      *config.File
	Ctrl      *effect.Controller
	Source    *clock.Source
	Presenter *countdown.Presenter
	Scheduler *scheduler.Scheduler
	Timings   effect.Timings

	clock clockwork.Clock
}

// Build loads the config file named by c, applies the environment and then
// the flags in visited, and constructs the shared runtime. With driveFrames
// false the frontend is expected to call Ctrl.Frame itself.
func Build(c *Config, visited map[string]bool, driveFrames bool) (*Runtime, error) {
	file, err := config.Load(c.ConfigFile)
	if err != nil {
		return nil, err
	}
	file.ApplyEnv()
	mergeFlags(file, c, visited)
	if err := file.Validate(); err != nil {
		return nil, err
	}

	factory, ok := snow.Variants()[file.Variant]
	if !ok {
		return nil, fmt.Errorf("unknown variant %q", file.Variant)
	}
	overrides := file.SceneOverrides()
	if visited["w"] {
		overrides["w"] = strconv.Itoa(c.Width)
	}
	if visited["h"] {
		overrides["h"] = strconv.Itoa(c.Height)
	}
	if _, set := overrides["tps"]; visited["tps"] || !set {
		overrides["tps"] = strconv.Itoa(c.TPS)
	}
	if visited["seed"] {
		overrides["seed"] = strconv.FormatInt(c.Seed, 10)
	}
	scene := factory(overrides)

	loc, err := file.Location()
	if err != nil {
		return nil, err
	}

	rt := &Runtime{
		ID:    uuid.New().String()[:8],
		File:  file,
		Ctrl:  effect.New(scene),
		clock: clockwork.NewRealClock(),
	}

	var fetcher clock.Fetcher
	if !file.Clock.Offline {
		fetcher = clock.NewHTTPFetcher(file.Clock.URL, file.Clock.Timeout)
	}
	rt.Source = clock.NewSource(fetcher, clock.WithClock(rt.clock), clock.WithTimeout(file.Clock.Timeout))
	rt.Presenter = countdown.NewPresenter(rt.Source, nil,
		countdown.WithLocation(loc),
		countdown.WithDate(time.Month(file.Countdown.Month), file.Countdown.Day),
	)

	rt.Timings = effect.DefaultTimings(scene.Config().TPS)
	rt.Timings.Release = file.ReleaseInterval
	rt.Timings.Resync = file.Clock.Resync
	if !driveFrames {
		rt.Timings.Frame = 0
	}
	if file.Clock.Offline {
		rt.Timings.Resync = 0
	}
	rt.Scheduler = scheduler.New(rt.clock)
	var syncer effect.Syncer
	if !file.Clock.Offline {
		syncer = rt.Source
	}
	if err := effect.Schedule(rt.Scheduler, rt.Timings, rt.Ctrl, syncer, rt.Presenter); err != nil {
		return nil, err
	}

	log.Info().
		Str("instance", rt.ID).
		Str("variant", scene.Name()).
		Int64("seed", scene.Config().Seed).
		Str("time_url", file.Clock.URL).
		Bool("offline", file.Clock.Offline).
		Msg("runtime ready")
	return rt, nil
}

// Start pushes a first countdown update, performs the initial bounded sync in
// the background and runs the scheduler until ctx is done. Offline runtimes
// stay unsynced and count down from local time.
func (rt *Runtime) Start(ctx context.Context) {
	rt.Presenter.Update()
	if !rt.File.Clock.Offline {
		go func() {
			if err := rt.Source.Sync(ctx); err == nil {
				log.Info().Time("now", rt.Source.Now()).Msg("network time synced")
			}
			rt.Presenter.Update()
		}()
	}
	go rt.Scheduler.Run(ctx)
}

func mergeFlags(file *config.File, c *Config, visited map[string]bool) {
	if visited["variant"] {
		file.Variant = c.Variant
	}
	if visited["time-url"] && c.TimeURL != "" {
		file.Clock.URL = c.TimeURL
	}
	if visited["offline"] {
		file.Clock.Offline = c.Offline
	}
	if visited["release"] {
		file.ReleaseInterval = c.Release
	}
	if visited["log-level"] {
		file.LogLevel = c.LogLevel
	}
}

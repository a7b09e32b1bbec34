//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"snowfall/internal/app"
	"snowfall/internal/audio"
	"snowfall/internal/config"
	"snowfall/internal/effect"
	"snowfall/internal/logging"
	"snowfall/internal/ui"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	config.LoadDotenv()
	logging.Setup(cfg.LogLevel, os.Stderr)

	rt, err := app.Build(cfg, app.Visited(flag.CommandLine), false)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}
	logging.Setup(rt.File.LogLevel, os.Stderr)

	label := ui.NewLabel()
	rt.Presenter.AddSink(label)

	if rt.File.Audio.Enabled {
		player := audio.NewPlayer(rt.File.Audio.Frequency)
		if err := player.Initialize(); err != nil {
			log.Warn().Err(err).Msg("audio disabled")
		} else {
			defer player.Close()
			rt.Ctrl.OnRelease(func(ev effect.ReleaseEvent) { player.Play(ev.Chunks) })
		}
	}

	err = rt.Scheduler.Every("status", time.Second, func() {
		label.SetDetail(rt.Source.Status().Summary())
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to schedule status")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rt.Start(ctx)

	game := app.New(rt.Ctrl, label, cfg.HUDWidth, cfg.Seed)
	size := rt.Ctrl.Size()

	ebiten.SetWindowTitle("snowfall - " + rt.Ctrl.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W+max(cfg.HUDWidth, 0), size.H)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal().Err(err).Msg("game exited")
	}
}

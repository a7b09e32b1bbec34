package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"snowfall/internal/app"
	"snowfall/internal/audio"
	"snowfall/internal/config"
	"snowfall/internal/effect"
	"snowfall/internal/logging"
	"snowfall/internal/term"
	"snowfall/internal/ui"
)

func main() {
	cfg := app.NewConfig()
	cfg.TPS = 30
	cfg.Bind(flag.CommandLine)
	logFile := flag.String("log", "", "log file (logs are discarded when empty)")
	chime := flag.Bool("chime", false, "ring a chime on every cap release")
	flag.Parse()

	config.LoadDotenv()
	closer, err := logging.SetupFile(cfg.LogLevel, *logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	rt, err := app.Build(cfg, app.Visited(flag.CommandLine), false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	label := ui.NewLabel()
	rt.Presenter.AddSink(label)

	if *chime || rt.File.Audio.Enabled {
		player := audio.NewPlayer(rt.File.Audio.Frequency)
		if err := player.Initialize(); err != nil {
			log.Warn().Err(err).Msg("audio disabled")
		} else {
			defer player.Close()
			rt.Ctrl.OnRelease(func(ev effect.ReleaseEvent) { player.Play(ev.Chunks) })
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	rt.Start(ctx)

	err = term.Run(ctx, screen, rt.Ctrl, label, term.Options{
		TPS:    cfg.TPS,
		Seed:   cfg.Seed,
		Status: rt.Source.Status,
	})
	screen.Fini()
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal loop failed: %v\n", err)
		os.Exit(1)
	}
}

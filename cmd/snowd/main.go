package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"snowfall/internal/app"
	"snowfall/internal/config"
	"snowfall/internal/logging"
	"snowfall/internal/server"
)

func main() {
	cfg := app.NewConfig()
	cfg.TPS = 30
	cfg.Bind(flag.CommandLine)
	addr := flag.String("addr", "", "listen address (overrides config and PORT)")
	flag.Parse()

	config.LoadDotenv()
	logging.Setup(cfg.LogLevel, os.Stderr)

	rt, err := app.Build(cfg, app.Visited(flag.CommandLine), true)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}
	logging.Setup(rt.File.LogLevel, os.Stderr)

	listen := rt.File.Server.Addr
	if *addr != "" {
		listen = *addr
	}

	srv := server.New(rt.Ctrl, rt.Presenter, rt.Source, server.Options{
		SnapshotWidth:  rt.File.Server.SnapshotWidth,
		AllowedOrigins: rt.File.Server.AllowedOrigins,
		InstanceID:     rt.ID,
	})
	httpServer := srv.HTTPServer(listen)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rt.Start(ctx)

	go func() {
		log.Info().Str("addr", listen).Str("instance", rt.ID).Msg("HTTP server starting")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	srv.Hub().Close()
	log.Info().Msg("server stopped")
}

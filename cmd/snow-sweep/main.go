package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"

	"snowfall/internal/logging"
	"snowfall/internal/snow"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	steps := flag.Int("steps", 3600, "frames to simulate per seed")
	seeds := flag.Int("seeds", 8, "number of consecutive seeds to run")
	seed := flag.Int64("seed", 1225, "first seed")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel runs")
	releaseEvery := flag.Int("release", 720, "frames between cap releases, 0 to never release")
	variant := flag.String("variant", "snow", "scene variant")
	logLevel := flag.String("log-level", "warn", "zerolog level")
	var overrides kvList
	flag.Var(&overrides, "set", "parameter override in key=value form (repeatable)")
	flag.Parse()

	logging.Setup(*logLevel, os.Stderr)

	factory, ok := snow.Variants()[*variant]
	if !ok {
		log.Fatal().Str("variant", *variant).Msg("unknown variant")
	}
	kv := make(map[string]string, len(overrides))
	for _, item := range overrides {
		key, value, found := strings.Cut(item, "=")
		if !found {
			log.Warn().Str("set", item).Msg("ignoring override without '='")
			continue
		}
		kv[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	scene := factory(kv)
	cfg := scene.Config()

	list := make([]int64, *seeds)
	for i := range list {
		list[i] = *seed + int64(i)
	}

	fmt.Printf("variant %s, %dx%d, %d frames, release every %d\n", *variant, cfg.Width, cfg.Height, *steps, *releaseEvery)
	results := snow.Sweep(cfg, list, *steps, *releaseEvery, *workers)

	var meanSum, peak, capPeak float64
	var chunks uint64
	for _, r := range results {
		fmt.Printf("seed %d: mean ground %.2f, peak %.2f, cap peak %.1f, releases %d, chunks %d/%d landed, landings ground %d cap %d\n",
			r.Seed, r.MeanGround, r.PeakGround, r.CapPeak, r.Releases, r.ChunksLanded, r.ChunksReleased, r.GroundLandings, r.CapLandings)
		meanSum += r.MeanGround
		peak = max(peak, r.PeakGround)
		capPeak = max(capPeak, r.CapPeak)
		chunks += r.ChunksReleased
	}
	if len(results) == 0 {
		return
	}
	fmt.Printf("\nSummary: mean ground %.2f, peak ground %.2f, cap peak %.1f, chunks released %d\n",
		meanSum/float64(len(results)), peak, capPeak, chunks)

	fmt.Println("\nParameters:")
	for _, g := range scene.Parameters().Groups {
		for _, p := range g.Params {
			fmt.Printf("  %s=%s\n", p.Key, p.Value)
		}
	}
}

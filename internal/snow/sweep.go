package snow

import (
	"runtime"
	"sort"
	"sync"
)

// RunResult summarises one headless run.
type RunResult struct {
	Seed           int64
	Frames         int
	MeanGround     float64
	PeakGround     float64
	CapPeak        float64
	Releases       uint64
	ChunksReleased uint64
	ChunksLanded   uint64
	GroundLandings uint64
	CapLandings    uint64
}

// Run simulates frames steps of a scene built from cfg, releasing the cap
// every releaseEvery frames (never when releaseEvery <= 0).
func Run(cfg Config, frames, releaseEvery int) RunResult {
	s := NewWithConfig(cfg)
	res := RunResult{Seed: cfg.Seed, Frames: frames}
	for i := 1; i <= frames; i++ {
		s.Step()
		res.CapPeak = max(res.CapPeak, s.cap.Peak())
		if releaseEvery > 0 && i%releaseEvery == 0 {
			s.ReleaseCap()
		}
	}
	samples := s.ground.Samples()
	sum := 0.0
	for _, h := range samples {
		sum += h
		res.PeakGround = max(res.PeakGround, h)
	}
	if len(samples) > 0 {
		res.MeanGround = sum / float64(len(samples))
	}
	st := s.Stats()
	res.Releases = st.Releases
	res.ChunksReleased = st.ChunksReleased
	res.ChunksLanded = st.ChunksLanded
	res.GroundLandings = st.GroundLandings
	res.CapLandings = st.CapLandings
	return res
}

// Sweep runs cfg once per seed on a pool of workers and returns the results
// ordered by seed.
func Sweep(cfg Config, seeds []int64, frames, releaseEvery, workers int) []RunResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	jobs := make(chan int64)
	results := make(chan RunResult)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				c := cfg
				c.Seed = seed
				results <- Run(c, frames, releaseEvery)
			}
		}()
	}
	go func() {
		for _, seed := range seeds {
			jobs <- seed
		}
		close(jobs)
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]RunResult, 0, len(seeds))
	for r := range results {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seed < out[j].Seed })
	return out
}

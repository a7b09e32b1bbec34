package snow

import "testing"

func sweepConfig() Config {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 320, 240
	cfg.Params.FlakeCount = 80
	return cfg
}

func TestRunIsDeterministic(t *testing.T) {
	cfg := sweepConfig()
	a := Run(cfg, 400, 120)
	b := Run(cfg, 400, 120)
	if a != b {
		t.Fatalf("expected identical runs, got %+v and %+v", a, b)
	}
	if a.Releases != 3 {
		t.Fatalf("expected 3 releases in 400 frames, got %d", a.Releases)
	}
	if a.MeanGround < cfg.Params.BaseHeight-cfg.Params.DriftAmplitude {
		t.Fatalf("mean ground %.2f below the drift floor", a.MeanGround)
	}
	if a.CapPeak > cfg.Params.CapMax {
		t.Fatalf("cap peak %.2f above max", a.CapPeak)
	}
}

func TestRunWithoutReleases(t *testing.T) {
	res := Run(sweepConfig(), 200, 0)
	if res.Releases != 0 || res.ChunksReleased != 0 {
		t.Fatalf("expected no releases, got %+v", res)
	}
}

func TestSweepOrdersBySeed(t *testing.T) {
	cfg := sweepConfig()
	seeds := []int64{9, 3, 7, 1}
	out := Sweep(cfg, seeds, 120, 60, 3)
	if len(out) != len(seeds) {
		t.Fatalf("expected %d results, got %d", len(seeds), len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i-1].Seed >= out[i].Seed {
			t.Fatalf("results not sorted: %v", out)
		}
	}
	c := cfg
	c.Seed = 7
	if want := Run(c, 120, 60); out[2] != want {
		t.Fatalf("sweep result for seed 7 differs from a direct run")
	}
}

package snow

import (
	"math"
	"testing"

	"snowfall/internal/core"
)

func flatParams() Params {
	p := DefaultConfig().Params
	p.BucketWidth = 4
	p.BaseHeight = 0
	p.DriftAmplitude = 0
	p.DriftJitter = 0
	p.ClumpRadius = 10
	return p
}

func TestGroundInitSampleCount(t *testing.T) {
	cases := []struct {
		width float64
		want  int
	}{
		{0, 0},
		{1, 1},
		{4, 1},
		{100, 25},
		{101, 26},
		{959.5, 240},
	}
	g := NewGround(DefaultConfig().Params)
	rng := core.NewRNG(1)
	for _, tc := range cases {
		g.Init(tc.width, rng)
		if g.Len() != tc.want {
			t.Fatalf("width %.1f: expected %d samples, got %d", tc.width, tc.want, g.Len())
		}
	}
}

func TestGroundInitDriftStaysWithinBounds(t *testing.T) {
	p := DefaultConfig().Params
	g := NewGround(p)
	g.Init(800, core.NewRNG(7))
	lo := p.BaseHeight - p.DriftAmplitude
	hi := p.BaseHeight + p.DriftAmplitude + p.DriftJitter
	for i, h := range g.Samples() {
		if h < lo-1e-9 || h > hi+1e-9 {
			t.Fatalf("sample %d = %f outside [%f, %f]", i, h, lo, hi)
		}
	}
}

func TestGroundInitClampsNegativeDrift(t *testing.T) {
	p := flatParams()
	p.BaseHeight = 1
	p.DriftAmplitude = 10
	g := NewGround(p)
	g.Init(400, core.NewRNG(3))
	for i, h := range g.Samples() {
		if h < 0 {
			t.Fatalf("sample %d negative after init: %f", i, h)
		}
	}
}

func TestGroundInitDiscardsAccumulation(t *testing.T) {
	g := NewGround(flatParams())
	g.Init(400, nil)
	g.Deposit(200, 5)
	g.Init(400, nil)
	for i, h := range g.Samples() {
		if h != 0 {
			t.Fatalf("expected re-init to reset bucket %d, got %f", i, h)
		}
	}
}

func TestGroundDepositClumpShape(t *testing.T) {
	g := NewGround(flatParams())
	g.Init(400, nil)

	g.Deposit(202, 1)
	h := g.Samples()

	center := 50
	if h[center] <= 0 {
		t.Fatalf("expected centre bucket to rise, got %f", h[center])
	}
	for d := 1; d < 10; d++ {
		want := 1 - float64(d)/10
		if math.Abs(h[center+d]-want) > 1e-9 || math.Abs(h[center-d]-want) > 1e-9 {
			t.Fatalf("offset %d: expected weight %f, got %f / %f", d, want, h[center-d], h[center+d])
		}
		if h[center+d] >= h[center+d-1] {
			t.Fatalf("expected weight to strictly decrease at offset %d", d)
		}
	}
	for i := range h {
		if i > center-10 && i < center+10 {
			continue
		}
		if h[i] != 0 {
			t.Fatalf("bucket %d outside the clump window changed to %f", i, h[i])
		}
	}
}

func TestGroundDepositSmoothsCentreOnly(t *testing.T) {
	g := NewGround(flatParams())
	g.Init(400, nil)
	g.Deposit(200, 1)
	// 0.8 * 1 + 0.2 * avg(0.9, 0.9)
	if got := g.Samples()[50]; math.Abs(got-0.98) > 1e-9 {
		t.Fatalf("expected smoothed centre 0.98, got %f", got)
	}
}

func TestGroundDepositEdgeSkipsSmoothing(t *testing.T) {
	g := NewGround(flatParams())
	g.Init(400, nil)
	g.Deposit(0, 2)
	if got := g.Samples()[0]; math.Abs(got-2) > 1e-9 {
		t.Fatalf("expected unsmoothed edge bucket 2, got %f", got)
	}
	if got := g.Samples()[1]; math.Abs(got-1.8) > 1e-9 {
		t.Fatalf("expected neighbour 1.8, got %f", got)
	}
}

func TestGroundDepositOutOfRangeIsNoop(t *testing.T) {
	g := NewGround(flatParams())
	g.Init(400, nil)
	g.Deposit(-1, 5)
	g.Deposit(400, 5)
	g.Deposit(10_000, 5)
	g.Deposit(math.NaN(), 5)
	g.Deposit(100, -3)
	for i, h := range g.Samples() {
		if h != 0 {
			t.Fatalf("expected no change, bucket %d = %f", i, h)
		}
	}
}

func TestGroundSinkSettlesToBase(t *testing.T) {
	p := flatParams()
	p.BaseHeight = 10
	p.DecayRate = 0.3
	g := NewGround(p)
	g.Init(200, nil)
	for x := 10.0; x < 200; x += 13 {
		g.Deposit(x, 4)
	}

	prev := append([]float64(nil), g.Samples()...)
	for step := 0; step < 2000; step++ {
		g.Sink()
		for i, h := range g.Samples() {
			if h > prev[i] {
				t.Fatalf("step %d: bucket %d rose from %f to %f", step, i, prev[i], h)
			}
			if h < p.BaseHeight {
				t.Fatalf("step %d: bucket %d dropped below base: %f", step, i, h)
			}
		}
		copy(prev, g.Samples())
	}
	for i, h := range g.Samples() {
		if h != p.BaseHeight {
			t.Fatalf("expected bucket %d at base, got %f", i, h)
		}
	}

	g.Sink()
	for i, h := range g.Samples() {
		if h != p.BaseHeight {
			t.Fatalf("sink at baseline should be idempotent, bucket %d = %f", i, h)
		}
	}
}

func TestGroundSinkLeavesLowBucketsAlone(t *testing.T) {
	p := flatParams()
	p.BaseHeight = 10
	p.DriftAmplitude = 5
	p.DecayRate = 0.5
	g := NewGround(p)
	g.Init(200, nil)
	before := append([]float64(nil), g.Samples()...)
	g.Sink()
	for i, h := range g.Samples() {
		if before[i] <= p.BaseHeight && h != before[i] {
			t.Fatalf("bucket %d below base should not change: %f -> %f", i, before[i], h)
		}
	}
}

func TestGroundHeightAt(t *testing.T) {
	g := NewGround(flatParams())
	g.Init(40, nil)
	g.Samples()[2] = 7
	if got := g.HeightAt(9.5); got != 7 {
		t.Fatalf("expected height 7 at x=9.5, got %f", got)
	}
	if got := g.HeightAt(-0.1); got != 0 {
		t.Fatalf("expected 0 left of the profile, got %f", got)
	}
	if got := g.HeightAt(40); got != 0 {
		t.Fatalf("expected 0 right of the profile, got %f", got)
	}
}

func TestGroundOutline(t *testing.T) {
	g := NewGround(flatParams())
	g.Init(10, nil)
	g.Samples()[1] = 3
	pts := g.Outline(100)
	if len(pts) != g.Len()+2 {
		t.Fatalf("expected %d points, got %d", g.Len()+2, len(pts))
	}
	if pts[0] != (core.Point{X: 0, Y: 100}) {
		t.Fatalf("outline must start at bottom-left, got %+v", pts[0])
	}
	if pts[2] != (core.Point{X: 4, Y: 97}) {
		t.Fatalf("expected bucket 1 top at (4, 97), got %+v", pts[2])
	}
	if last := pts[len(pts)-1]; last != (core.Point{X: 10, Y: 100}) {
		t.Fatalf("outline must end at bottom-right, got %+v", last)
	}
}

package snow

import (
	"slices"
	"testing"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 320
	cfg.Height = 200
	cfg.Params.ContainerWidth = 120
	cfg.Params.ContainerHeight = 60
	cfg.Params.FlakeCount = 80
	return cfg
}

func TestResetDeterministic(t *testing.T) {
	cfg := smallConfig()
	cfg.Seed = 99
	s := NewWithConfig(cfg)

	initialGround := append([]float64(nil), s.Ground().Samples()...)
	initialFlakes := append([]Particle(nil), s.Flakes()...)

	for i := 0; i < 300; i++ {
		s.Step()
	}
	s.ReleaseCap()

	s.Reset(0)
	if !slices.Equal(initialGround, s.Ground().Samples()) {
		t.Fatal("Reset with config seed not deterministic for ground")
	}
	if !slices.Equal(initialFlakes, s.Flakes()) {
		t.Fatal("Reset with config seed not deterministic for flakes")
	}
	if len(s.Chunks()) != 0 {
		t.Fatalf("expected chunks cleared, got %d", len(s.Chunks()))
	}
	if s.Cap().Total() != 0 {
		t.Fatal("expected empty cap after reset")
	}

	s.Reset(777)
	if slices.Equal(initialGround, s.Ground().Samples()) {
		t.Fatal("different seeds should produce different ground drift")
	}
}

func TestStepKeepsHeightsNonNegative(t *testing.T) {
	s := NewWithConfig(smallConfig())
	for i := 0; i < 2000; i++ {
		s.Step()
		if i%600 == 599 {
			s.ReleaseCap()
		}
		for x := 0.0; x < float64(s.Size().W); x += 1.5 {
			if h := s.Ground().HeightAt(x); h < 0 {
				t.Fatalf("frame %d: negative ground height %f at x=%f", i, h, x)
			}
		}
		for j, h := range s.Cap().Samples() {
			if h < 0 || h > s.Cap().Max() {
				t.Fatalf("frame %d: cap bucket %d out of range: %f", i, j, h)
			}
		}
	}
	if s.Stats().GroundLandings == 0 {
		t.Fatal("expected flakes to reach the ground")
	}
	if s.Stats().CapLandings == 0 {
		t.Fatal("expected flakes to land on the container")
	}
}

func TestFlakeLandingOnCapRecycles(t *testing.T) {
	cfg := smallConfig()
	cfg.Params.FlakeCount = 1
	s := NewWithConfig(cfg)
	rect := s.Container()

	f := &s.field.Flakes[0]
	f.X = rect.Left() + 10
	f.Y = rect.Top() - 0.5
	f.VX = 0
	f.VY = 1

	s.Step()

	if got := s.Cap().HeightAt(10); got != cfg.Params.CapIncrement {
		t.Fatalf("expected cap increment %f, got %f", cfg.Params.CapIncrement, got)
	}
	if len(s.Flakes()) != 1 {
		t.Fatalf("flake must be recycled, not removed; have %d", len(s.Flakes()))
	}
	if s.Flakes()[0].Y != respawnY {
		t.Fatalf("expected flake to respawn at %d, got %f", respawnY, s.Flakes()[0].Y)
	}
}

func TestFlakeLandingOnGroundDeposits(t *testing.T) {
	cfg := smallConfig()
	cfg.Params.FlakeCount = 1
	cfg.Params.DecayRate = 0
	cfg.Params.DriftJitter = 0
	s := NewWithConfig(cfg)

	x := 10.0
	before := s.Ground().HeightAt(x)
	f := &s.field.Flakes[0]
	f.X = x
	f.Y = float64(s.Size().H) - before - 0.5
	f.VX = 0
	f.VY = 1

	s.Step()

	if after := s.Ground().HeightAt(x); after <= before {
		t.Fatalf("expected ground to rise at x=%f: %f -> %f", x, before, after)
	}
	if s.Flakes()[0].Y != respawnY {
		t.Fatalf("expected flake to respawn at the top, got y=%f", s.Flakes()[0].Y)
	}
}

func TestReleaseCapSpawnsChunksThatLandOnce(t *testing.T) {
	cfg := smallConfig()
	cfg.Params.FlakeCount = 0
	s := NewWithConfig(cfg)

	s.Cap().Deposit(4, 12)
	s.Cap().Deposit(40, 0.5)
	s.Cap().Deposit(70, 30)

	want := ChunkCount(12, cfg.Params.ChunkDivisor) + ChunkCount(30, cfg.Params.ChunkDivisor)
	got := s.ReleaseCap()
	if got != want {
		t.Fatalf("expected %d chunks, got %d", want, got)
	}
	if len(s.Chunks()) != want {
		t.Fatalf("expected %d live chunks, got %d", want, len(s.Chunks()))
	}
	for i, h := range s.Cap().Samples() {
		if h != 0 {
			t.Fatalf("cap bucket %d not emptied: %f", i, h)
		}
	}
	if !s.Shaking() {
		t.Fatal("expected container to shake after release")
	}

	for i := 0; i < 1000 && len(s.Chunks()) > 0; i++ {
		s.Step()
	}
	if len(s.Chunks()) != 0 {
		t.Fatalf("expected every chunk to land, %d still falling", len(s.Chunks()))
	}
	if s.Stats().ChunksLanded != uint64(want) {
		t.Fatalf("expected %d landings, got %d", want, s.Stats().ChunksLanded)
	}
}

func TestChunksAccelerate(t *testing.T) {
	cfg := smallConfig()
	cfg.Params.FlakeCount = 0
	s := NewWithConfig(cfg)
	s.Cap().Deposit(10, 5)
	s.ReleaseCap()
	v0 := s.Chunks()[0].VY
	s.Step()
	if v1 := s.Chunks()[0].VY; v1 <= v0 {
		t.Fatalf("expected chunk to accelerate: %f -> %f", v0, v1)
	}
}

func TestShakeSettles(t *testing.T) {
	s := NewWithConfig(smallConfig())
	s.ReleaseCap()
	moved := false
	for i := 0; i < s.Config().Params.ShakeFrames; i++ {
		s.Step()
		if s.DrawnContainer().X != s.Container().X {
			moved = true
		}
	}
	s.Step()
	if !moved {
		t.Fatal("expected container to move while shaking")
	}
	if s.Shaking() || s.DrawnContainer() != s.Container() {
		t.Fatal("expected shake to settle back to rest")
	}
}

func TestResizeReinitialisesGroundOnWidthChange(t *testing.T) {
	cfg := smallConfig()
	cfg.Params.DecayRate = 0
	s := NewWithConfig(cfg)
	s.Ground().Deposit(100, 50)
	peak := s.Ground().HeightAt(100)

	s.Resize(cfg.Width, cfg.Height+40)
	if s.Ground().HeightAt(100) != peak {
		t.Fatal("height-only resize must keep ground state")
	}

	s.Resize(480, cfg.Height)
	if s.Ground().Len() != 120 {
		t.Fatalf("expected 120 buckets after resize, got %d", s.Ground().Len())
	}
	if s.Ground().HeightAt(100) >= peak {
		t.Fatal("expected width resize to discard accumulated ground")
	}
}

func TestResizeRecentresContainer(t *testing.T) {
	s := NewWithConfig(smallConfig())
	s.Cap().Deposit(10, 5)
	s.Resize(640, 400)
	rect := s.Container()
	if rect.X != (640-rect.W)/2 || rect.Y != (400-rect.H)/2 {
		t.Fatalf("expected centred container, got %+v", rect)
	}
	if s.Cap().Total() == 0 {
		t.Fatal("cap should survive a resize that keeps the container width")
	}

	s.Resize(100, 400)
	if s.Cap().Width() != 100 {
		t.Fatalf("expected cap to shrink with container, got width %f", s.Cap().Width())
	}
	if s.Cap().Total() != 0 {
		t.Fatal("expected cap to reset when the container width changes")
	}
}

func TestFigureStandsOnGround(t *testing.T) {
	s := NewWithConfig(smallConfig())
	base := s.FigureBase()
	want := float64(s.Size().H) - s.Ground().HeightAt(base.X)
	if base.Y != want {
		t.Fatalf("expected figure at y=%f, got %f", want, base.Y)
	}
}

func TestSetParameters(t *testing.T) {
	s := NewWithConfig(smallConfig())
	if !s.SetIntParameter("count", 10) {
		t.Fatal("expected count to be adjustable")
	}
	if len(s.Flakes()) != 10 {
		t.Fatalf("expected 10 flakes, got %d", len(s.Flakes()))
	}
	if !s.SetFloatParameter("decay_rate", 0.2) {
		t.Fatal("expected decay rate to be adjustable")
	}
	p, ok := s.Parameters().Find("decay_rate")
	if !ok || p.Value != "0.2" {
		t.Fatalf("expected snapshot to report decay 0.2, got %+v", p)
	}
	if s.SetFloatParameter("nope", 1) {
		t.Fatal("unknown keys must be rejected")
	}
}

func TestVariantsRegistered(t *testing.T) {
	for _, name := range []string{"snow", "blizzard"} {
		f, ok := Variants()[name]
		if !ok {
			t.Fatalf("variant %q not registered", name)
		}
		s := f(map[string]string{"w": "200", "h": "100"})
		if s.Name() != name {
			t.Fatalf("expected name %q, got %q", name, s.Name())
		}
		if s.Size().W != 200 || s.Size().H != 100 {
			t.Fatalf("expected overrides applied, got %+v", s.Size())
		}
	}
	if n := len(Variants()["blizzard"](map[string]string{"count": "5"}).Flakes()); n != 5 {
		t.Fatalf("user overrides must win over variant defaults, got %d flakes", n)
	}
}

func TestFromMapRejectsInvalid(t *testing.T) {
	cfg := FromMap(map[string]string{
		"bucket_width": "0",
		"count":        "-4",
		"decay_rate":   "abc",
		"cap_max":      "30",
	})
	def := DefaultConfig().Params
	if cfg.Params.BucketWidth != def.BucketWidth {
		t.Fatalf("expected invalid bucket width to keep default, got %f", cfg.Params.BucketWidth)
	}
	if cfg.Params.FlakeCount != def.FlakeCount {
		t.Fatalf("expected negative count to keep default, got %d", cfg.Params.FlakeCount)
	}
	if cfg.Params.DecayRate != def.DecayRate {
		t.Fatalf("expected unparsable decay to keep default, got %f", cfg.Params.DecayRate)
	}
	if cfg.Params.CapMax != 30 {
		t.Fatalf("expected cap max override, got %f", cfg.Params.CapMax)
	}
}

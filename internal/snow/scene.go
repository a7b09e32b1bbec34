package snow

import (
	"snowfall/internal/core"
)

// Stats counts scene events since the last Reset.
type Stats struct {
	Frames         uint64 `json:"frames"`
	GroundLandings uint64 `json:"ground_landings"`
	CapLandings    uint64 `json:"cap_landings"`
	Releases       uint64 `json:"releases"`
	ChunksReleased uint64 `json:"chunks_released"`
	ChunksLanded   uint64 `json:"chunks_landed"`
}

// Scene owns every piece of mutable snow state: both heightmaps, both particle
// populations and the container shake. It is not safe for concurrent use.
type Scene struct {
	name string
	cfg  Config

	w, h      int
	container core.Rect

	ground *Ground
	cap    *Cap
	field  Field
	shake  *Shake
	stats  Stats

	rng *core.RNG
}

// New returns a scene with the provided dimensions using defaults.
func New(w, h int) *Scene {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a scene configured from the provided options. The
// scene is seeded from cfg.Seed and ready to Step.
func NewWithConfig(cfg Config) *Scene {
	s := &Scene{
		name:   "snow",
		cfg:    cfg,
		ground: NewGround(cfg.Params),
		cap:    NewCap(cfg.Params),
		shake:  NewShake(cfg.TPS, cfg.Params),
	}
	s.Reset(cfg.Seed)
	return s
}

// Name returns the scene variant identifier.
func (s *Scene) Name() string { return s.name }

// Size reports the viewport dimensions.
func (s *Scene) Size() core.Size { return core.Size{W: s.w, H: s.h} }

// Config returns the active configuration.
func (s *Scene) Config() Config { return s.cfg }

// Ground exposes the ground heightmap.
func (s *Scene) Ground() *Ground { return s.ground }

// Cap exposes the container cap heightmap.
func (s *Scene) Cap() *Cap { return s.cap }

// Flakes exposes the ambient particles.
func (s *Scene) Flakes() []Particle { return s.field.Flakes }

// Chunks exposes the released chunks still falling.
func (s *Scene) Chunks() []Particle { return s.field.Chunks }

// Stats returns the event counters.
func (s *Scene) Stats() Stats { return s.stats }

// Container returns the collision rectangle of the foreground container.
func (s *Scene) Container() core.Rect { return s.container }

// DrawnContainer returns the container rectangle displaced by the shake.
func (s *Scene) DrawnContainer() core.Rect {
	return s.container.Offset(s.shake.Offset(), 0)
}

// Shaking reports whether a release shake is in progress.
func (s *Scene) Shaking() bool { return s.shake.Active() }

// FigureBase returns where the decorative figure stands: a fixed fraction of
// the width, resting on the current ground height.
func (s *Scene) FigureBase() core.Point {
	x := s.cfg.Params.FigureAnchor * float64(s.w)
	return core.Point{X: x, Y: float64(s.h) - s.ground.HeightAt(x)}
}

// Reset re-seeds the scene: new ground drift, empty cap, fresh flakes
// scattered over the full height and no chunks.
func (s *Scene) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = s.cfg.Seed
	}
	s.rng = core.NewRNG(effective)
	s.stats = Stats{}
	s.w, s.h = s.cfg.Width, s.cfg.Height
	s.layoutContainer()
	s.ground.Init(float64(s.w), s.rng)
	s.cap.Init(s.container.W)
	s.field.Chunks = s.field.Chunks[:0]
	s.field.Flakes = s.field.Flakes[:0]
	for i := 0; i < s.cfg.Params.FlakeCount; i++ {
		s.field.Flakes = append(s.field.Flakes, newFlake(s.rng, float64(s.w), s.rng.Range(0, float64(s.h))))
	}
}

// Resize adapts the scene to a new viewport. A width change re-initialises
// the ground profile, discarding accumulated snow; a container width change
// empties the cap.
func (s *Scene) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if w == s.w && h == s.h {
		return
	}
	widthChanged := w != s.w
	s.w, s.h = w, h
	s.cfg.Width, s.cfg.Height = w, h
	prevCapWidth := s.container.W
	s.layoutContainer()
	if widthChanged {
		s.ground.Init(float64(w), s.rng)
	}
	if int(s.container.W) != int(prevCapWidth) {
		s.cap.Init(s.container.W)
	}
}

// Step advances the scene by one frame: the ground settles, flakes fall and
// land on the cap or the ground, chunks accelerate and land, and the
// container shake eases out.
func (s *Scene) Step() {
	p := s.cfg.Params
	s.stats.Frames++
	s.ground.Sink()

	rect := s.container
	height := float64(s.h)
	width := float64(s.w)
	for i := range s.field.Flakes {
		f := &s.field.Flakes[i]
		f.advance(0)

		if f.Y >= rect.Top() && f.Y <= rect.Top()+p.CapBand && f.X >= rect.Left() && f.X <= rect.Right() {
			s.cap.Deposit(f.X-rect.Left(), p.CapIncrement)
			s.stats.CapLandings++
			*f = newFlake(s.rng, width, respawnY)
			continue
		}
		if f.Y >= height-s.ground.HeightAt(f.X) {
			s.ground.Deposit(f.X, p.DepositIntensity)
			s.stats.GroundLandings++
			*f = newFlake(s.rng, width, respawnY)
		}
	}

	live := s.field.Chunks[:0]
	for _, c := range s.field.Chunks {
		c.advance(p.ChunkGravity)
		if c.Y >= height-s.ground.HeightAt(c.X) {
			s.ground.Deposit(c.X, p.ChunkIntensity)
			s.stats.ChunksLanded++
			continue
		}
		live = append(live, c)
	}
	s.field.Chunks = live

	s.shake.Step()
}

// ReleaseCap drains the cap: every bucket above the release threshold becomes
// ChunkCount(h) falling chunks, then the cap is emptied and the container
// shakes. It returns the number of chunks spawned.
func (s *Scene) ReleaseCap() int {
	p := s.cfg.Params
	rect := s.container
	bw := s.cap.BucketWidth()
	spawned := 0
	s.cap.Drain(p.ReleaseThreshold, func(i int, h float64) {
		x := rect.Left() + (float64(i)+0.5)*bw
		y := rect.Top() - h
		n := ChunkCount(h, p.ChunkDivisor)
		for j := 0; j < n; j++ {
			s.field.Chunks = append(s.field.Chunks, newChunk(s.rng, x, y, bw))
		}
		spawned += n
	})
	s.shake.Trigger()
	s.stats.Releases++
	s.stats.ChunksReleased += uint64(spawned)
	return spawned
}

func (s *Scene) layoutContainer() {
	p := s.cfg.Params
	s.container = core.CenteredRect(core.Size{W: s.w, H: s.h}, p.ContainerWidth, p.ContainerHeight)
}

func (s *Scene) setFlakeCount(n int) {
	if n < 0 {
		n = 0
	}
	for len(s.field.Flakes) < n {
		s.field.Flakes = append(s.field.Flakes, newFlake(s.rng, float64(s.w), respawnY))
	}
	s.field.Flakes = s.field.Flakes[:n]
	s.cfg.Params.FlakeCount = n
}

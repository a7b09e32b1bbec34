package snow

import "strconv"

// Params holds the tunable constants of the snow effect.
type Params struct {
	FlakeCount int

	BucketWidth      float64
	BaseHeight       float64
	DriftAmplitude   float64
	DriftFrequency   float64
	DriftJitter      float64
	ClumpRadius      int
	DepositIntensity float64
	DecayRate        float64

	CapBucketWidth   float64
	CapMax           float64
	CapIncrement     float64
	CapBand          float64
	ReleaseThreshold float64
	ChunkDivisor     float64
	ChunkGravity     float64
	ChunkIntensity   float64

	ContainerWidth  float64
	ContainerHeight float64
	FigureAnchor    float64

	ShakeFrequency float64
	ShakeDamping   float64
	ShakeImpulse   float64
	ShakeFrames    int
}

// Config controls the scene dimensions and seeding.
type Config struct {
	Width  int
	Height int
	TPS    int

	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  960,
		Height: 600,
		TPS:    60,
		Seed:   1225,
		Params: Params{
			FlakeCount:       220,
			BucketWidth:      4,
			BaseHeight:       18,
			DriftAmplitude:   6,
			DriftFrequency:   0.08,
			DriftJitter:      3,
			ClumpRadius:      10,
			DepositIntensity: 0.35,
			DecayRate:        0.015,
			CapBucketWidth:   3,
			CapMax:           45,
			CapIncrement:     1.5,
			CapBand:          5,
			ReleaseThreshold: 1,
			ChunkDivisor:     5,
			ChunkGravity:     0.03,
			ChunkIntensity:   0.6,
			ContainerWidth:   420,
			ContainerHeight:  150,
			FigureAnchor:     0.16,
			ShakeFrequency:   9,
			ShakeDamping:     0.25,
			ShakeImpulse:     180,
			ShakeFrames:      54,
		},
	}
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	p := &c.Params
	setInt(cfg, "w", &c.Width, 1)
	setInt(cfg, "h", &c.Height, 1)
	setInt(cfg, "tps", &c.TPS, 1)
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	setInt(cfg, "count", &p.FlakeCount, 0)
	setFloat(cfg, "bucket_width", &p.BucketWidth, 0.5)
	setFloat(cfg, "base_height", &p.BaseHeight, 0)
	setFloat(cfg, "drift_amplitude", &p.DriftAmplitude, 0)
	setFloat(cfg, "drift_frequency", &p.DriftFrequency, 0)
	setFloat(cfg, "drift_jitter", &p.DriftJitter, 0)
	setInt(cfg, "clump_radius", &p.ClumpRadius, 1)
	setFloat(cfg, "deposit_intensity", &p.DepositIntensity, 0)
	setFloat(cfg, "decay_rate", &p.DecayRate, 0)
	setFloat(cfg, "cap_bucket_width", &p.CapBucketWidth, 0.5)
	setFloat(cfg, "cap_max", &p.CapMax, 0)
	setFloat(cfg, "cap_increment", &p.CapIncrement, 0)
	setFloat(cfg, "cap_band", &p.CapBand, 0)
	setFloat(cfg, "release_threshold", &p.ReleaseThreshold, 0)
	setFloat(cfg, "chunk_divisor", &p.ChunkDivisor, 0.1)
	setFloat(cfg, "chunk_gravity", &p.ChunkGravity, 0)
	setFloat(cfg, "chunk_intensity", &p.ChunkIntensity, 0)
	setFloat(cfg, "container_w", &p.ContainerWidth, 0)
	setFloat(cfg, "container_h", &p.ContainerHeight, 0)
	setFloat(cfg, "figure_anchor", &p.FigureAnchor, 0)
	if p.FigureAnchor > 1 {
		p.FigureAnchor = 1
	}
	setFloat(cfg, "shake_frequency", &p.ShakeFrequency, 0)
	setFloat(cfg, "shake_damping", &p.ShakeDamping, 0)
	setFloat(cfg, "shake_impulse", &p.ShakeImpulse, 0)
	setInt(cfg, "shake_frames", &p.ShakeFrames, 0)
	return c
}

func setInt(cfg map[string]string, key string, dst *int, min int) {
	v, ok := cfg[key]
	if !ok {
		return
	}
	if parsed, err := strconv.Atoi(v); err == nil && parsed >= min {
		*dst = parsed
	}
}

func setFloat(cfg map[string]string, key string, dst *float64, min float64) {
	v, ok := cfg[key]
	if !ok {
		return
	}
	if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= min {
		*dst = parsed
	}
}

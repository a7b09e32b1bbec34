package snow

import (
	"strconv"

	"snowfall/internal/core"
)

// Parameters reports the scene's tunables grouped for display.
func (s *Scene) Parameters() core.ParameterSnapshot {
	params := s.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "Scene",
			Params: []core.Parameter{
				intParam("w", "Width", s.w),
				intParam("h", "Height", s.h),
				int64Param("seed", "Seed", s.cfg.Seed),
				intParam("count", "Flake count", params.FlakeCount),
			},
		},
		{
			Name: "Ground",
			Params: []core.Parameter{
				floatParam("bucket_width", "Bucket width", params.BucketWidth),
				floatParam("base_height", "Base height", params.BaseHeight),
				floatParam("drift_amplitude", "Drift amplitude", params.DriftAmplitude),
				floatParam("drift_frequency", "Drift frequency", params.DriftFrequency),
				floatParam("drift_jitter", "Drift jitter", params.DriftJitter),
				intParam("clump_radius", "Clump radius", params.ClumpRadius),
				floatParam("deposit_intensity", "Deposit intensity", params.DepositIntensity),
				floatParam("decay_rate", "Decay rate", params.DecayRate),
			},
		},
		{
			Name: "Cap",
			Params: []core.Parameter{
				floatParam("cap_bucket_width", "Cap bucket width", params.CapBucketWidth),
				floatParam("cap_max", "Cap max height", params.CapMax),
				floatParam("cap_increment", "Cap increment", params.CapIncrement),
				floatParam("cap_band", "Cap band", params.CapBand),
				floatParam("release_threshold", "Release threshold", params.ReleaseThreshold),
				floatParam("chunk_divisor", "Chunk divisor", params.ChunkDivisor),
				floatParam("chunk_gravity", "Chunk gravity", params.ChunkGravity),
				floatParam("chunk_intensity", "Chunk intensity", params.ChunkIntensity),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values the HUD may adjust while running.
func (s *Scene) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "count", Label: "Flakes", Type: core.ParamTypeInt, Step: 20, Min: 0, Max: 2000, HasMin: true, HasMax: true},
		{Key: "deposit_intensity", Label: "Deposit", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 5, HasMin: true, HasMax: true},
		{Key: "decay_rate", Label: "Decay", Type: core.ParamTypeFloat, Step: 0.005, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "cap_increment", Label: "Cap increment", Type: core.ParamTypeFloat, Step: 0.25, Min: 0, Max: 10, HasMin: true, HasMax: true},
		{Key: "chunk_gravity", Label: "Chunk gravity", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates an integer tunable. It reports whether key is known.
func (s *Scene) SetIntParameter(key string, value int) bool {
	switch key {
	case "count":
		s.setFlakeCount(value)
		return true
	}
	return false
}

// SetFloatParameter updates a float tunable. It reports whether key is known.
func (s *Scene) SetFloatParameter(key string, value float64) bool {
	if value < 0 {
		value = 0
	}
	p := &s.cfg.Params
	switch key {
	case "deposit_intensity":
		p.DepositIntensity = value
	case "decay_rate":
		p.DecayRate = value
		s.ground.SetDecayRate(value)
	case "cap_increment":
		p.CapIncrement = value
	case "chunk_gravity":
		p.ChunkGravity = value
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

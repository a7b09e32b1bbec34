package snow

import "maps"

// Factory constructs a Scene from flag-style key/value overrides.
type Factory func(cfg map[string]string) *Scene

var variants = map[string]Factory{}

// Register adds a scene factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	variants[name] = f
}

// Variants exposes the registry of available scene factories.
func Variants() map[string]Factory {
	return variants
}

// withDefaults layers user overrides on top of a variant's own defaults.
func withDefaults(base, overrides map[string]string) map[string]string {
	merged := maps.Clone(base)
	maps.Copy(merged, overrides)
	return merged
}

func init() {
	Register("snow", func(cfg map[string]string) *Scene {
		s := NewWithConfig(FromMap(cfg))
		s.name = "snow"
		return s
	})
	Register("blizzard", func(cfg map[string]string) *Scene {
		s := NewWithConfig(FromMap(withDefaults(map[string]string{
			"count":             "640",
			"deposit_intensity": "0.25",
			"decay_rate":        "0.01",
			"cap_increment":     "2",
		}, cfg)))
		s.name = "blizzard"
		return s
	})
}
